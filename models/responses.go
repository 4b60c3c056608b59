package models

import "time"

// Response is the envelope of every HTTP response body.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// UserResult is returned by guest creation, registration and login.
type UserResult struct {
	UserID   string   `json:"user_id"`
	UserType UserType `json:"user_type"`
	User     User     `json:"user"`
}

// UserData wraps a single user.
type UserData struct {
	User User `json:"user"`
}

// TaskData wraps a single task.
type TaskData struct {
	Task Task `json:"task"`
}

// TasksData is the list of a user's tasks.
type TasksData struct {
	Tasks      []Task `json:"tasks"`
	TotalTasks int    `json:"total_tasks"`
}

// TodayTask is the result of fetching today's task. Task is nil once the
// journey is completed.
type TodayTask struct {
	Task             *Task `json:"task"`
	UserCurrentDay   int   `json:"user_current_day"`
	JourneyDays      int   `json:"journey_days"`
	JourneyCompleted bool  `json:"journey_completed"`
}

// TaskStatus tells whether the user may be issued a new task right now.
// NextAvailable is set when the next task is locked until a later day.
type TaskStatus struct {
	CanGenerateTask bool       `json:"can_generate_task"`
	Reason          string     `json:"reason,omitempty"`
	Message         string     `json:"message,omitempty"`
	NextAvailable   *time.Time `json:"next_available,omitempty"`
	TimeWindowOpen  bool       `json:"time_window_open"`
	CurrentDay      int        `json:"current_day"`
	JourneyDays     int        `json:"journey_days"`
}

// TaskCompletion is the result of completing a task.
type TaskCompletion struct {
	TaskCompleted bool `json:"task_completed"`
	NextDay       int  `json:"next_day"`
}

// ReflectionSubmission is the result of submitting a reflection.
type ReflectionSubmission struct {
	ReflectionID      string            `json:"reflection_id"`
	QualityScore      int               `json:"quality_score"`
	WordCount         int               `json:"word_count"`
	MicroAppreciation string            `json:"micro_appreciation"`
	ValidationDetails ValidationDetails `json:"validation_details"`
}

// ReflectionData wraps a single reflection.
type ReflectionData struct {
	Reflection Reflection `json:"reflection"`
}

// ReflectionsData is the list of a user's reflections.
type ReflectionsData struct {
	Reflections      []Reflection `json:"reflections"`
	TotalReflections int          `json:"total_reflections"`
}

// ReflectionCheck is the result of POST /reflections/validate.
type ReflectionCheck struct {
	IsValid           bool              `json:"is_valid"`
	ValidationDetails ValidationDetails `json:"validation_details"`
}

// JourneyData wraps a journey summary.
type JourneyData struct {
	Summary JourneySummary `json:"summary"`
}
