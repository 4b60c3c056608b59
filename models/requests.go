package models

// GuestRequest is the body of POST /users/guest.
type GuestRequest struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	ConfusionArea string `json:"confusion_area"`
	StruggleType  string `json:"struggle_type"`
	JourneyDays   int    `json:"journey_days,omitempty"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	GuestRequest
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest is the body of PUT /users/{user_id}. Nil fields are left
// unchanged. Progress counters cannot be updated through it.
type UserUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Status        *string `json:"status,omitempty"`
	ConfusionArea *string `json:"confusion_area,omitempty"`
	StruggleType  *string `json:"struggle_type,omitempty"`
	JourneyDays   *int    `json:"journey_days,omitempty"`
}

// Empty reports whether the update changes nothing.
func (r UserUpdateRequest) Empty() bool {
	return r.Name == nil && r.Status == nil && r.ConfusionArea == nil &&
		r.StruggleType == nil && r.JourneyDays == nil
}

// ReflectionRequest is the body of POST /reflections/ and
// POST /reflections/validate. A zero DayNumber means "the task's day".
type ReflectionRequest struct {
	UserID           string `json:"user_id"`
	TaskID           string `json:"task_id"`
	DayNumber        int    `json:"day_number,omitempty"`
	Learning         string `json:"learning"`
	Feeling          string `json:"feeling"`
	Improvement      string `json:"improvement"`
	MoodBefore       string `json:"mood_before,omitempty"`
	MoodAfter        string `json:"mood_after,omitempty"`
	HonestyConfirmed bool   `json:"honesty_confirmed,omitempty"`
}

// CompleteTaskRequest is the optional body of POST /tasks/{task_id}/complete.
type CompleteTaskRequest struct {
	Response string `json:"response"`
}
