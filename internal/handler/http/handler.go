package http

import (
	"time"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	loginLimiter   *ipRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		loginLimiter:   newIPRateLimiter(cfg.LoginRateLimit, time.Minute),
		logger:         logger,
	}
}
