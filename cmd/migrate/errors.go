package main

import "errors"

var errEmptyDSN = errors.New("database DSN is required: pass --dsn or set STORAGE_DB_DATABASE_URI")
