// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	minPasswordHashCost = 4
	maxPasswordHashCost = 31
	maxJourneyDays      = 365
	clockLayout         = "15:04"
)

// validate checks that the final merged [StructuredConfig] is usable before
// the server starts.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.PasswordHashCost < minPasswordHashCost || cfg.App.PasswordHashCost > maxPasswordHashCost {
		return fmt.Errorf("%w: password hash cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordHashCost)
	}
	if cfg.App.DefaultJourneyDays < 1 || cfg.App.DefaultJourneyDays > maxJourneyDays {
		return fmt.Errorf("%w: default journey days %d out of range", ErrInvalidAppConfigs, cfg.App.DefaultJourneyDays)
	}
	if err := cfg.App.TaskWindow.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}
	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 || cfg.Server.LoginRateLimit < 0 {
		return fmt.Errorf("%w: negative timeout or rate limit", ErrInvalidServerConfigs)
	}

	return nil
}

func (w TaskWindow) validate() error {
	if _, err := time.Parse(clockLayout, w.Start); err != nil {
		return fmt.Errorf("%w: task window start %q: %w", ErrInvalidAppConfigs, w.Start, err)
	}
	if _, err := time.Parse(clockLayout, w.End); err != nil {
		return fmt.Errorf("%w: task window end %q: %w", ErrInvalidAppConfigs, w.End, err)
	}
	if _, err := time.LoadLocation(w.Timezone); err != nil {
		return fmt.Errorf("%w: task window timezone %q: %w", ErrInvalidAppConfigs, w.Timezone, err)
	}
	return nil
}
