package models

import (
	"errors"
	"time"
)

// Task difficulties, from gentlest to most demanding.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyDeep   = "deep"
)

// Defaults applied to stored tasks that lack a type or difficulty.
const (
	DefaultTaskType   = "learning"
	DefaultDifficulty = DifficultyMedium
)

// ErrTaskAlreadyCompleted is returned when completing a task twice.
var ErrTaskAlreadyCompleted = errors.New("task already completed")

// Task is the unit of work issued to a user for one day of the journey.
// A user has at most one task per day.
type Task struct {
	TaskID      string `json:"task_id"`
	UserID      string `json:"user_id"`
	DayNumber   int    `json:"day_number"`
	TaskContent string `json:"task_content"`
	TaskType    string `json:"task_type"`
	Difficulty  string `json:"difficulty"`

	// MoodAdapted is the mood the content was generated for.
	MoodAdapted Mood `json:"mood_adapted"`

	Completed   bool       `json:"completed"`
	Response    string     `json:"response,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Complete moves a pending task to the completed state.
func (t *Task) Complete(response string, at time.Time) error {
	if t.Completed {
		return ErrTaskAlreadyCompleted
	}

	t.Completed = true
	t.Response = response
	completedAt := at.UTC()
	t.CompletedAt = &completedAt

	return nil
}
