package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type reflectionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReflectionRepository constructs a [ReflectionRepository] over the
// "reflections" table.
func NewReflectionRepository(db *DB, logger *logger.Logger) ReflectionRepository {
	logger.Debug().Msg("creating reflection repository")
	return &reflectionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateReflection inserts reflection and returns the stored row.
// A reflection for a day that already has one yields
// [ErrReflectionAlreadyExists].
func (r *reflectionRepository) CreateReflection(ctx context.Context, reflection models.Reflection) (models.Reflection, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertReflectionQuery(r.db.builder, reflection)
	if err != nil {
		log.Err(err).Str("func", "*reflectionRepository.CreateReflection").Msg("error building query")
		return models.Reflection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row reflectionRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		log.Err(err).Str("func", "*reflectionRepository.CreateReflection").Msg("error inserting reflection")
		return models.Reflection{}, mapError(err, ErrTaskNotFound, ErrReflectionAlreadyExists)
	}

	return row.toModel(), nil
}

func (r *reflectionRepository) GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReflectionsQuery(r.db.builder, sq.Eq{"reflection_id": reflectionID})
	if err != nil {
		log.Err(err).Str("func", "*reflectionRepository.GetReflection").Msg("error building query")
		return models.Reflection{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row reflectionRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		mapped := mapError(err, ErrReflectionNotFound, nil)
		if mapped != ErrReflectionNotFound {
			log.Err(err).Str("func", "*reflectionRepository.GetReflection").Msg("error selecting reflection")
		}
		return models.Reflection{}, mapped
	}

	return row.toModel(), nil
}

func (r *reflectionRepository) ListReflections(ctx context.Context, userID string) ([]models.Reflection, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReflectionsQuery(r.db.builder, sq.Eq{"user_id": userID})
	if err != nil {
		log.Err(err).Str("func", "*reflectionRepository.ListReflections").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows []reflectionRow
	if err = sqlx.SelectContext(ctx, r.db.conn(ctx), &rows, query, args...); err != nil {
		log.Err(err).Str("func", "*reflectionRepository.ListReflections").Msg("error selecting reflections")
		return nil, mapError(err, ErrReflectionNotFound, nil)
	}

	reflections := make([]models.Reflection, 0, len(rows))
	for _, row := range rows {
		reflections = append(reflections, row.toModel())
	}

	return reflections, nil
}
