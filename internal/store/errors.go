package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// Generic sentinel errors. Repository specific errors below wrap one of them,
// so callers may match either the precise or the generic value with
// [errors.Is].
var (
	// ErrNotFound is returned when a queried row does not exist or a
	// referenced row is missing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when an insert violates a unique
	// constraint.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConflict is returned when a conditional update matched no row
	// because the row is not in the expected state.
	ErrConflict = errors.New("state conflict")
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions.
var (
	// ErrUserNotFound is returned when no user has the requested id or email.
	ErrUserNotFound = wrapSentinel("user not found", ErrNotFound)

	// ErrEmailAlreadyExists is returned when registering an email that is
	// already bound to another user.
	ErrEmailAlreadyExists = wrapSentinel("email already exists", ErrAlreadyExists)

	// ErrTaskNotFound is returned when no task matches the query.
	ErrTaskNotFound = wrapSentinel("task not found", ErrNotFound)

	// ErrTaskAlreadyExists is returned when a task for the same user and day
	// was stored concurrently.
	ErrTaskAlreadyExists = wrapSentinel("task for this day already exists", ErrAlreadyExists)

	// ErrTaskAlreadyCompleted is returned by CompleteTask for a task that is
	// not pending.
	ErrTaskAlreadyCompleted = wrapSentinel("task already completed", ErrConflict)

	// ErrReflectionNotFound is returned when no reflection has the requested id.
	ErrReflectionNotFound = wrapSentinel("reflection not found", ErrNotFound)

	// ErrReflectionAlreadyExists is returned when the user already reflected
	// on the same day.
	ErrReflectionAlreadyExists = wrapSentinel("reflection for this day already exists", ErrAlreadyExists)
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRows is returned when scanning a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDriver is returned by NewStorages for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

type sentinelError struct {
	msg    string
	parent error
}

func wrapSentinel(msg string, parent error) error {
	return &sentinelError{msg: msg, parent: parent}
}

func (e *sentinelError) Error() string { return e.msg }

func (e *sentinelError) Unwrap() error { return e.parent }

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// constraintViolation recognises integrity errors of both supported drivers.
func constraintViolation(err error) violation {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return uniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return foreignKeyViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return uniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return foreignKeyViolation
		}
	}

	return noViolation
}

// mapError converts driver errors into store errors. notFound is returned for
// missing rows and broken references, exists for unique violations. Context
// errors pass through untouched; anything else is wrapped with
// ErrExecutingQuery.
func mapError(err, notFound, exists error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, sql.ErrNoRows) && notFound != nil:
		return notFound
	}

	switch constraintViolation(err) {
	case uniqueViolation:
		if exists != nil {
			return exists
		}
	case foreignKeyViolation:
		if notFound != nil {
			return notFound
		}
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
