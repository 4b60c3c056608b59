package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	l := logger.Nop()
	repo := &userRepository{
		db:     db,
		logger: l,
	}
	return repo, mock
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(anyArgs(len(userColumns))...).
		WillReturnRows(userRows(user))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_GuestWithoutEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()
	user.UserID = "GUEST_0196"
	user.Email = ""
	user.PasswordHash = ""
	user.UserType = models.UserTypeGuest

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(anyArgs(len(userColumns))...).
		WillReturnRows(userRows(user))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, created.Email)
	assert.Empty(t, created.PasswordHash)
	assert.Equal(t, models.UserTypeGuest, created.UserType)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(anyArgs(len(userColumns))...).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), sampleUser())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(anyArgs(len(userColumns))...).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateUser(context.Background(), sampleUser())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()
	lastActive := testNow.Add(time.Hour)
	user.LastActiveDate = &lastActive
	user.TotalWords = 42

	mock.ExpectQuery(`SELECT .* FROM users WHERE user_id = \$1`).
		WithArgs(user.UserID).
		WillReturnRows(userRows(user))

	got, err := repo.GetUser(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestGetUser_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT .* FROM users").
		WithArgs("GUEST_missing").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetUser(context.Background(), "GUEST_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUser_ContextCanceled(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT .* FROM users").
		WillReturnError(context.Canceled)

	_, err := repo.GetUser(context.Background(), "GUEST_1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrExecutingQuery)
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(userRows(user))

	got, err := repo.FindUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
}

func TestUpdateUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := sampleUser()
	name := "Annie"
	days := 14
	user.Name = name
	user.JourneyDays = days

	mock.ExpectQuery(`UPDATE users SET journey_days = \$1, name = \$2 WHERE user_id = \$3 RETURNING`).
		WithArgs(days, name, user.UserID).
		WillReturnRows(userRows(user))

	got, err := repo.UpdateUser(context.Background(), user.UserID, models.UserUpdateRequest{Name: &name, JourneyDays: &days})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, days, got.JourneyDays)
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	name := "Annie"

	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.UpdateUser(context.Background(), "GUEST_missing", models.UserUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_NothingToUpdate(t *testing.T) {
	repo, _ := newTestUserRepo(t)

	_, err := repo.UpdateUser(context.Background(), "GUEST_1", models.UserUpdateRequest{})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func TestAdvanceDay(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`UPDATE users SET current_day = CASE WHEN current_day < \$1 THEN \$2 ELSE current_day END, last_active_date = \$3 WHERE user_id = \$4`).
		WithArgs(3, 3, testNow, "GUEST_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AdvanceDay(context.Background(), "GUEST_1", 3, testNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceDay_UnknownUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AdvanceDay(context.Background(), "GUEST_missing", 2, testNow)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddWords(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`UPDATE users SET total_words = total_words \+ \$1 WHERE user_id = \$2`).
		WithArgs(12, "GUEST_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddWords(context.Background(), "GUEST_1", 12))
}

func TestAddWords_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))

	err := repo.AddWords(context.Background(), "GUEST_1", 12)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
