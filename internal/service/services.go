package service

import (
	"fmt"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/internal/validators"
	"github.com/MKhiriev/clearnext/models"
)

type Services struct {
	UserService       UserService
	AuthService       AuthService
	TaskService       TaskService
	ReflectionService ReflectionService
	JourneyService    JourneyService
	HealthService     HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	window, err := validators.NewTaskWindow(cfg.App.TaskWindow.Start, cfg.App.TaskWindow.End, cfg.App.TaskWindow.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error creating task service: %w", err)
	}

	userService, err := NewUserService(storages.UserRepository, storages.TxManager, validators.NewRequestValidator(), cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating user service: %w", err)
	}

	reflectionService := NewReflectionService(storages.UserRepository, storages.TaskRepository,
		storages.ReflectionRepository, storages.TxManager, validators.NewReflectionValidator(), logger)

	return &Services{
		UserService:       userService,
		AuthService:       NewAuthService(cfg.App, logger),
		TaskService:       NewTaskService(storages.UserRepository, storages.TaskRepository, storages.TxManager, window, logger),
		ReflectionService: reflectionService,
		JourneyService:    NewJourneyService(storages.UserRepository, storages.TaskRepository, storages.ReflectionRepository, logger),
		HealthService:     NewHealthService(storages.DB, build, logger),
	}, nil
}
