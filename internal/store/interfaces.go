//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/clearnext/models"
)

// UserRepository persists journey participants.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, update models.UserUpdateRequest) (models.User, error)

	// AdvanceDay refreshes last_active_date and raises current_day to
	// nextDay. current_day is never lowered.
	AdvanceDay(ctx context.Context, userID string, nextDay int, at time.Time) error

	// AddWords increments the lifetime word counter of a user.
	AddWords(ctx context.Context, userID string, words int) error
}

// TaskRepository persists daily tasks. A user has at most one task per day.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, taskID string) (models.Task, error)
	GetTaskByDay(ctx context.Context, userID string, dayNumber int) (models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)

	// CompleteTask marks a pending task completed. It returns
	// ErrTaskAlreadyCompleted if the task is not pending anymore.
	CompleteTask(ctx context.Context, taskID, response string, at time.Time) error
}

// ReflectionRepository persists reflections. Reflections are immutable.
type ReflectionRepository interface {
	CreateReflection(ctx context.Context, reflection models.Reflection) (models.Reflection, error)
	GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error)
	ListReflections(ctx context.Context, userID string) ([]models.Reflection, error)
}

// TxManager runs a function inside a database transaction. Repositories
// called with the context passed to fn take part in that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
