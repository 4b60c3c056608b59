package service

import (
	"context"

	"github.com/MKhiriev/clearnext/models"
)

type UserService interface {
	CreateGuest(ctx context.Context, req models.GuestRequest) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type TaskService interface {
	// CheckTaskWindow reports whether today's task may be fetched now. The
	// message explains the window when it is closed.
	CheckTaskWindow(ctx context.Context) (bool, string)

	// TodayTask loads the user and returns the task of their current day.
	TodayTask(ctx context.Context, userID string, mood models.Mood) (models.TodayTask, error)

	// GetOrCreateTodayTask returns the task of user's current day, creating
	// it on first request. It returns nil once the journey is completed.
	// A user who completed a task today gets a *NextTaskLockedError instead
	// of the next day's task.
	GetOrCreateTodayTask(ctx context.Context, user models.User, mood models.Mood) (*models.Task, error)

	// TaskStatus reports whether a new task may be issued now and, if not,
	// when the next one opens.
	TaskStatus(ctx context.Context, userID string) (models.TaskStatus, error)

	CompleteTask(ctx context.Context, taskID, response string) (models.TaskCompletion, error)
	GetTask(ctx context.Context, taskID string) (models.Task, error)
	ListUserTasks(ctx context.Context, userID string) ([]models.Task, error)
}

type ReflectionService interface {
	ValidateReflection(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails)

	// SubmitReflection validates, stores and accounts a reflection in one
	// transaction.
	SubmitReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error)

	CreateReflection(ctx context.Context, reflection models.Reflection) (models.Reflection, error)
	UpdateUserProgress(ctx context.Context, userID string, wordCount int) error
	GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error)
	ListUserReflections(ctx context.Context, userID string) ([]models.Reflection, error)
}

type JourneyService interface {
	Summary(ctx context.Context, userID string) (models.JourneySummary, error)
}

type HealthService interface {
	Health(ctx context.Context) (models.Health, error)
}
