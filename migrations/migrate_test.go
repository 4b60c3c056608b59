// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose queries the database on its own

	err = Migrate(db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for name, fn := range map[string]func(*sql.DB, string) error{
		"Migrate":  Migrate,
		"Rollback": Rollback,
		"Status":   Status,
	} {
		err := fn(db, DialectPostgres)
		if err == nil {
			t.Fatalf("%s: expected error when db is nil, got nil", name)
		}

		if !strings.Contains(err.Error(), "db is nil") {
			t.Errorf("%s: expected 'db is nil' error, got: %v", name, err)
		}
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, "oracle")
	if err == nil || !strings.Contains(err.Error(), "setting dialect") {
		t.Fatalf("expected dialect error, got: %v", err)
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// one connection keeps the in-memory database alive across queries
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}

	return count == 1
}

func TestMigrate_SQLiteUpAndDown(t *testing.T) {
	db := openSQLite(t)

	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"users", "tasks", "reflections"} {
		if !tableExists(t, db, table) {
			t.Errorf("expected table %q after migration", table)
		}
	}

	// applying twice is a no-op
	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	if err := Status(db, DialectSQLite); err != nil {
		t.Fatalf("Status: %v", err)
	}

	if err := Rollback(db, DialectSQLite); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if tableExists(t, db, "users") {
		t.Error("expected users table to be dropped after rollback")
	}
}

func TestMigrate_SQLiteConstraints(t *testing.T) {
	db := openSQLite(t)
	if err := Migrate(db, DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	_, err := db.Exec(`INSERT INTO users (user_id, name, user_type, created_at) VALUES ('GUEST_1', 'Ann', 'guest', CURRENT_TIMESTAMP)`)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	insertTask := `INSERT INTO tasks (task_id, user_id, day_number, task_content, created_at) VALUES (?, 'GUEST_1', 1, 'x', CURRENT_TIMESTAMP)`
	if _, err = db.Exec(insertTask, "task_1"); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	if _, err = db.Exec(insertTask, "task_2"); err == nil {
		t.Error("expected unique violation for a second task on the same day")
	}

	_, err = db.Exec(`INSERT INTO tasks (task_id, user_id, day_number, task_content) VALUES ('task_3', 'GUEST_404', 1, 'x')`)
	if err == nil {
		t.Error("expected foreign key violation for an unknown user")
	}
}
