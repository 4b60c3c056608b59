package handler

import (
	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/handler/http"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
)

// Handlers groups the inbound transports. Only HTTP is served.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
