// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// dbEnvPrefix is the prefix of [DB] variables inside [StructuredConfig].
const dbEnvPrefix = "STORAGE_DB_"

// parseEnv populates cfg from environment variables using the `env` and
// `envPrefix` tags of [StructuredConfig] and its nested types.
func parseEnv(cfg any) error {
	return parseEnvWithPrefix(cfg, "")
}

// GetDBEnvConfig reads only the STORAGE_DB_* variables. Schema tools use it
// to reach the database without the rest of the server configuration.
// Missing variables leave fields empty; nothing is validated.
func GetDBEnvConfig() (DB, error) {
	var db DB
	if err := parseEnvWithPrefix(&db, dbEnvPrefix); err != nil {
		return DB{}, err
	}
	return db, nil
}

func parseEnvWithPrefix(cfg any, prefix string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
