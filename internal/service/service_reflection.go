package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/internal/validators"
	"github.com/MKhiriev/clearnext/models"
)

type reflectionService struct {
	users       store.UserRepository
	tasks       store.TaskRepository
	reflections store.ReflectionRepository
	tx          store.TxManager
	checker     validators.ReflectionChecker

	now    func() time.Time
	logger *logger.Logger
}

func NewReflectionService(users store.UserRepository, tasks store.TaskRepository, reflections store.ReflectionRepository, tx store.TxManager, checker validators.ReflectionChecker, logger *logger.Logger) ReflectionService {
	return &reflectionService{
		users:       users,
		tasks:       tasks,
		reflections: reflections,
		tx:          tx,
		checker:     checker,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *reflectionService) ValidateReflection(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails) {
	return s.checker.ValidateReflection(ctx, req)
}

// SubmitReflection stores the reflection of req and adds its words to the
// user's total. Both writes share one transaction.
//
// The task must belong to req.UserID. A zero req.DayNumber takes the task's
// day; any other value must match it.
func (s *reflectionService) SubmitReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error) {
	ok, message, details := s.checker.ValidateReflection(ctx, req)
	if !ok {
		return models.ReflectionSubmission{}, &ReflectionRejectedError{Message: message, Details: details}
	}

	var created models.Reflection
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		task, err := s.tasks.GetTask(ctx, req.TaskID)
		if err != nil {
			return err
		}
		if task.UserID != req.UserID {
			return ErrTaskNotOwned
		}

		resolved := req
		switch {
		case resolved.DayNumber == 0:
			resolved.DayNumber = task.DayNumber
		case resolved.DayNumber != task.DayNumber:
			return ErrDayMismatch
		}

		created, err = s.CreateReflection(ctx, models.NewReflection(resolved))
		if err != nil {
			return err
		}

		return s.UpdateUserProgress(ctx, created.UserID, created.WordCount)
	})
	if err != nil {
		return models.ReflectionSubmission{}, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", created.UserID).
		Int("day", created.DayNumber).
		Int("quality_score", created.QualityScore).
		Msg("reflection submitted")

	return models.ReflectionSubmission{
		ReflectionID:      created.ReflectionID,
		QualityScore:      created.QualityScore,
		WordCount:         created.WordCount,
		MicroAppreciation: created.MicroAppreciation,
		ValidationDetails: details,
	}, nil
}

// CreateReflection stores reflection and returns it as persisted.
func (s *reflectionService) CreateReflection(ctx context.Context, reflection models.Reflection) (models.Reflection, error) {
	if reflection.CreatedAt.IsZero() {
		reflection.CreatedAt = s.now().UTC()
	}

	created, err := s.reflections.CreateReflection(ctx, reflection)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrAlreadyExists) {
			logger.FromContext(ctx).Err(err).Str("func", "*reflectionService.CreateReflection").Msg("error storing reflection")
		}
		return models.Reflection{}, fmt.Errorf("error storing reflection: %w", err)
	}

	return created, nil
}

// UpdateUserProgress adds wordCount to the lifetime word total of userID.
func (s *reflectionService) UpdateUserProgress(ctx context.Context, userID string, wordCount int) error {
	if err := s.users.AddWords(ctx, userID, wordCount); err != nil {
		return fmt.Errorf("error updating user progress: %w", err)
	}
	return nil
}

func (s *reflectionService) GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error) {
	return s.reflections.GetReflection(ctx, reflectionID)
}

func (s *reflectionService) ListUserReflections(ctx context.Context, userID string) ([]models.Reflection, error) {
	return s.reflections.ListReflections(ctx, userID)
}
