package models

import "time"

// UserType distinguishes anonymous guests from registered accounts.
type UserType string

const (
	UserTypeGuest      UserType = "guest"
	UserTypeRegistered UserType = "registered"
)

// DefaultJourneyDays is the journey length used when none is requested.
const DefaultJourneyDays = 7

// User is a participant of a journey.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is prefixed by the account type: GUEST_ or REG_.
	UserID string `json:"user_id"`

	Name string `json:"name"`

	// Email is set only for registered users and is stored lower-cased.
	Email string `json:"email,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password. It is never
	// serialized.
	PasswordHash string `json:"-"`

	Status        string `json:"status"`
	ConfusionArea string `json:"confusion_area"`
	StruggleType  string `json:"struggle_type"`

	// JourneyDays is the planned length of the journey.
	JourneyDays int `json:"journey_days"`

	// CurrentDay is the next day to work on. It never decreases and stops at
	// JourneyDays+1, which marks a finished journey.
	CurrentDay int `json:"current_day"`

	UserType UserType `json:"user_type"`

	// TotalWords is the lifetime number of words written in reflections.
	TotalWords int `json:"total_words"`

	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// JourneyCompleted reports whether every day of the journey is done.
func (u User) JourneyCompleted() bool {
	return u.CurrentDay > u.JourneyDays
}

// NextDay returns the value of CurrentDay after completing completedDay.
func (u User) NextDay(completedDay int) int {
	next := min(completedDay+1, u.JourneyDays+1)
	return max(u.CurrentDay, next)
}
