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

type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] over the "tasks" table.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask inserts task. A second task for the same user and day yields
// [ErrTaskAlreadyExists]; an unknown owner yields [ErrUserNotFound].
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(r.db.builder, task)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row taskRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, mapError(err, ErrUserNotFound, ErrTaskAlreadyExists)
	}

	return row.toModel(), nil
}

func (r *taskRepository) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	return r.findOne(ctx, "*taskRepository.GetTask", sq.Eq{"task_id": taskID})
}

func (r *taskRepository) GetTaskByDay(ctx context.Context, userID string, dayNumber int) (models.Task, error) {
	return r.findOne(ctx, "*taskRepository.GetTaskByDay", sq.Eq{"user_id": userID, "day_number": dayNumber})
}

func (r *taskRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row taskRow
	if err = sqlx.GetContext(ctx, r.db.conn(ctx), &row, query, args...); err != nil {
		mapped := mapError(err, ErrTaskNotFound, nil)
		if mapped != ErrTaskNotFound {
			log.Err(err).Str("func", funcName).Msg("error selecting task")
		}
		return models.Task{}, mapped
	}

	return row.toModel(), nil
}

// ListTasks returns the tasks of a user ordered by day.
func (r *taskRepository) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(r.db.builder, sq.Eq{"user_id": userID})
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows []taskRow
	if err = sqlx.SelectContext(ctx, r.db.conn(ctx), &rows, query, args...); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error selecting tasks")
		return nil, mapError(err, ErrTaskNotFound, nil)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toModel())
	}

	return tasks, nil
}

// CompleteTask implements [TaskRepository]. Zero affected rows means the
// task is missing or was completed already; the two cases are told apart
// with a follow-up read.
func (r *taskRepository) CompleteTask(ctx context.Context, taskID, response string, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCompleteTaskQuery(r.db.builder, taskID, response, at.UTC())
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CompleteTask").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CompleteTask").Msg("error updating task")
		return mapError(err, ErrTaskNotFound, nil)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err = r.GetTask(ctx, taskID); err != nil {
		return err
	}

	return ErrTaskAlreadyCompleted
}
