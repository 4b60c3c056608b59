package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReflectionRepo(t *testing.T) (*reflectionRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &reflectionRepository{db: db, logger: logger.Nop()}, mock
}

func TestCreateReflection_Success(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)
	reflection := sampleReflection()

	mock.ExpectQuery("INSERT INTO reflections").
		WithArgs(anyArgs(len(reflectionColumns))...).
		WillReturnRows(reflectionRows(reflection))

	stored, err := repo.CreateReflection(context.Background(), reflection)
	require.NoError(t, err)
	assert.Equal(t, reflection, stored)
}

func TestCreateReflection_Duplicate(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)

	mock.ExpectQuery("INSERT INTO reflections").
		WithArgs(anyArgs(len(reflectionColumns))...).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateReflection(context.Background(), sampleReflection())
	assert.ErrorIs(t, err, ErrReflectionAlreadyExists)
}

func TestCreateReflection_UnknownTask(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)

	mock.ExpectQuery("INSERT INTO reflections").
		WithArgs(anyArgs(len(reflectionColumns))...).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateReflection(context.Background(), sampleReflection())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReflection(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)
	reflection := sampleReflection()

	mock.ExpectQuery(`SELECT .* FROM reflections WHERE reflection_id = \$1`).
		WithArgs(reflection.ReflectionID).
		WillReturnRows(reflectionRows(reflection))

	got, err := repo.GetReflection(context.Background(), reflection.ReflectionID)
	require.NoError(t, err)
	assert.Equal(t, reflection, got)
}

func TestGetReflection_NotFound(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)

	mock.ExpectQuery("SELECT .* FROM reflections").
		WillReturnRows(sqlmock.NewRows(reflectionColumns))

	_, err := repo.GetReflection(context.Background(), "ref_missing_1")
	assert.ErrorIs(t, err, ErrReflectionNotFound)
}

func TestListReflections(t *testing.T) {
	repo, mock := newTestReflectionRepo(t)
	first := sampleReflection()
	second := sampleReflection()
	second.DayNumber = 2
	second.ReflectionID = "ref_REG_0196_2"

	mock.ExpectQuery(`SELECT .* FROM reflections WHERE user_id = \$1 ORDER BY day_number ASC`).
		WithArgs(first.UserID).
		WillReturnRows(reflectionRows(first, second))

	got, err := repo.ListReflections(context.Background(), first.UserID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].DayNumber)
}
