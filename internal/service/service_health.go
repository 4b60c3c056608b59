package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/models"
)

// Health statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	DatabaseUp     = "up"
	DatabaseDown   = "down"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	db    Pinger
	build models.AppBuildInfo

	logger *logger.Logger
}

func NewHealthService(db Pinger, build models.AppBuildInfo, logger *logger.Logger) HealthService {
	return &healthService{
		db:     db,
		build:  build,
		logger: logger,
	}
}

// Health reports the build and the database state. A failed ping yields a
// degraded report together with ErrDatabaseNotReachable.
func (s *healthService) Health(ctx context.Context) (models.Health, error) {
	health := models.Health{
		Status:   StatusOK,
		Database: DatabaseUp,
		Build:    s.build,
	}

	if err := s.db.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthService.Health").Msg("database ping failed")
		health.Status = StatusDegraded
		health.Database = DatabaseDown
		return health, fmt.Errorf("%w: %w", ErrDatabaseNotReachable, err)
	}

	return health, nil
}
