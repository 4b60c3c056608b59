package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
)

// Storages bundles every repository built over a single connection. It is
// the value injected into the service layer.
type Storages struct {
	DB *DB

	UserRepository       UserRepository
	TaskRepository       TaskRepository
	ReflectionRepository ReflectionRepository
	TxManager            TxManager
}

// NewStorages connects to the database selected by cfg.Driver and builds
// the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories over an already open connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                   db,
		UserRepository:       NewUserRepository(db, log),
		TaskRepository:       NewTaskRepository(db, log),
		ReflectionRepository: NewReflectionRepository(db, log),
		TxManager:            NewTxManager(db),
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}
