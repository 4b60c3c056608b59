package http

import (
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	health, err := h.services.HealthService.Health(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		writeFailure(w, r, http.StatusServiceUnavailable, "Service is degraded", health)
		return
	}

	writeSuccess(w, r, http.StatusOK, "Service is healthy", health)
}
