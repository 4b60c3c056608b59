package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/internal/validators"
	"github.com/MKhiriev/clearnext/models"
)

type taskService struct {
	users  store.UserRepository
	tasks  store.TaskRepository
	tx     store.TxManager
	window validators.TaskWindow
	ids    IDGenerator

	now    func() time.Time
	logger *logger.Logger
}

// NewTaskService constructs a TaskService. Today's task may only be fetched
// inside window.
func NewTaskService(users store.UserRepository, tasks store.TaskRepository, tx store.TxManager, window validators.TaskWindow, logger *logger.Logger) TaskService {
	return &taskService{
		users:  users,
		tasks:  tasks,
		tx:     tx,
		window: window,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

func (s *taskService) CheckTaskWindow(ctx context.Context) (bool, string) {
	return s.window.Check(s.now())
}

func (s *taskService) TodayTask(ctx context.Context, userID string, mood models.Mood) (models.TodayTask, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.TodayTask{}, err
	}

	task, err := s.GetOrCreateTodayTask(ctx, user, mood)
	if err != nil {
		return models.TodayTask{}, err
	}

	return models.TodayTask{
		Task:             task,
		UserCurrentDay:   user.CurrentDay,
		JourneyDays:      user.JourneyDays,
		JourneyCompleted: user.JourneyCompleted(),
	}, nil
}

// GetOrCreateTodayTask is idempotent per (user, day). When two requests race
// to create the same day, the loser reads the winner's task.
func (s *taskService) GetOrCreateTodayTask(ctx context.Context, user models.User, mood models.Mood) (*models.Task, error) {
	log := logger.FromContext(ctx)

	if user.JourneyCompleted() {
		return nil, nil
	}

	day := user.CurrentDay
	existing, err := s.tasks.GetTaskByDay(ctx, user.UserID, day)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, store.ErrTaskNotFound) {
		log.Err(err).Str("func", "*taskService.GetOrCreateTodayTask").Msg("error looking up today's task")
		return nil, fmt.Errorf("error looking up today's task: %w", err)
	}

	now := s.now()
	if s.completedToday(user, now) {
		log.Debug().Str("user_id", user.UserID).Int("day", day).Msg("next task is locked until tomorrow")
		return nil, &NextTaskLockedError{NextAvailable: s.window.NextOpening(now).UTC()}
	}

	generated := generateTask(user, day, mood)
	created, err := s.tasks.CreateTask(ctx, models.Task{
		TaskID:      s.ids.NewID(utils.TaskIDPrefix),
		UserID:      user.UserID,
		DayNumber:   day,
		TaskContent: generated.Content,
		TaskType:    generated.Type,
		Difficulty:  generated.Difficulty,
		MoodAdapted: mood,
		CreatedAt:   now.UTC(),
	})
	if errors.Is(err, store.ErrTaskAlreadyExists) {
		log.Debug().Str("func", "*taskService.GetOrCreateTodayTask").Int("day", day).Msg("task created concurrently, reading it back")
		existing, err = s.tasks.GetTaskByDay(ctx, user.UserID, day)
		if err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*taskService.GetOrCreateTodayTask").Msg("error creating today's task")
		return nil, fmt.Errorf("error creating today's task: %w", err)
	}

	log.Info().Str("user_id", user.UserID).Int("day", day).Str("difficulty", created.Difficulty).Msg("task created")
	return &created, nil
}

// TaskStatus reports whether userID may be issued a new task now.
func (s *taskService) TaskStatus(ctx context.Context, userID string) (models.TaskStatus, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.TaskStatus{}, err
	}

	now := s.now()
	open, windowMessage := s.window.Check(now)
	status := models.TaskStatus{
		CanGenerateTask: true,
		TimeWindowOpen:  open,
		CurrentDay:      user.CurrentDay,
		JourneyDays:     user.JourneyDays,
	}

	switch {
	case user.JourneyCompleted():
		status.CanGenerateTask = false
		status.Reason = "journey_completed"
		status.Message = "Your journey is completed"
	case s.completedToday(user, now):
		_, err = s.tasks.GetTaskByDay(ctx, user.UserID, user.CurrentDay)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrTaskNotFound) {
			return models.TaskStatus{}, fmt.Errorf("error looking up today's task: %w", err)
		}
		next := s.window.NextOpening(now).UTC()
		status.CanGenerateTask = false
		status.Reason = "already_completed_today"
		status.Message = "Come back tomorrow for your next task"
		status.NextAvailable = &next
	case !open:
		status.Message = windowMessage
	}

	return status, nil
}

// completedToday reports whether user finished a task on now's calendar
// date. Only task completion sets last_active_date.
func (s *taskService) completedToday(user models.User, now time.Time) bool {
	return user.LastActiveDate != nil && s.window.SameDay(*user.LastActiveDate, now)
}

// CompleteTask marks the task completed and advances its owner's journey in
// one transaction.
func (s *taskService) CompleteTask(ctx context.Context, taskID, response string) (models.TaskCompletion, error) {
	var nextDay int

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetTask(ctx, taskID)
		if err != nil {
			return err
		}

		at := s.now()
		if err = task.Complete(response, at); err != nil {
			return store.ErrTaskAlreadyCompleted
		}
		if err = s.tasks.CompleteTask(ctx, taskID, response, at); err != nil {
			return err
		}

		user, err := s.users.GetUser(ctx, task.UserID)
		if err != nil {
			return err
		}

		nextDay = user.NextDay(task.DayNumber)
		return s.users.AdvanceDay(ctx, user.UserID, nextDay, at)
	})
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrConflict) {
			logger.FromContext(ctx).Err(err).Str("func", "*taskService.CompleteTask").Str("task_id", taskID).Msg("task completion failed")
		}
		return models.TaskCompletion{}, err
	}

	return models.TaskCompletion{
		TaskCompleted: true,
		NextDay:       nextDay,
	}, nil
}

func (s *taskService) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	return s.tasks.GetTask(ctx, taskID)
}

// ListUserTasks returns the tasks of userID ordered by day. Unknown users
// have no tasks.
func (s *taskService) ListUserTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.tasks.ListTasks(ctx, userID)
}
