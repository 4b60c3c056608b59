package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the stored row.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row userRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, mapError(err, nil, ErrEmailAlreadyExists)
	}

	return row.toModel(), nil
}

// GetUser returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.GetUser", sq.Eq{"user_id": userID})
}

// FindUserByEmail looks a registered user up by the unique email index.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row userRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		mapped := mapError(err, ErrUserNotFound, nil)
		if mapped != ErrUserNotFound {
			log.Err(err).Str("func", funcName).Msg("error selecting user")
		}
		return models.User{}, mapped
	}

	return row.toModel(), nil
}

// UpdateUser applies the non-nil fields of update and returns the new row.
func (r *userRepository) UpdateUser(ctx context.Context, userID string, update models.UserUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder, userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row userRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, mapError(err, ErrUserNotFound, nil)
	}

	return row.toModel(), nil
}

// AdvanceDay implements [UserRepository].
func (r *userRepository) AdvanceDay(ctx context.Context, userID string, nextDay int, at time.Time) error {
	query, args, err := buildAdvanceDayQuery(r.db.builder, userID, nextDay, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "*userRepository.AdvanceDay", query, args)
}

// AddWords implements [UserRepository].
func (r *userRepository) AddWords(ctx context.Context, userID string, words int) error {
	query, args, err := buildAddWordsQuery(r.db.builder, userID, words)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "*userRepository.AddWords", query, args)
}

// execOne runs an UPDATE that must match exactly one user.
func (r *userRepository) execOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error updating user")
		return mapError(err, ErrUserNotFound, nil)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
