package http

import (
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/models"
)

func writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	writeEnvelope(w, r, status, models.Response{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	writeEnvelope(w, r, status, models.Response{Success: false, Message: message, Data: data})
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, resp models.Response) {
	if _, err := utils.WriteJSON(w, resp, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeEnvelope").Msg("error writing response")
	}
}

// readRequest decodes the JSON body into dst. On failure it answers 400 and
// returns false.
func readRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.ReadJSON(r, dst); err != nil {
		logger.FromRequest(r).Err(err).Msg(msgInvalidJSON)
		writeFailure(w, r, http.StatusBadRequest, msgInvalidJSON, nil)
		return false
	}
	return true
}
