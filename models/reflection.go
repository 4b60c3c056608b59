package models

import (
	"fmt"
	"strings"
	"time"
)

// Scoring parameters of a reflection. See Reflection.QualityScore.
const (
	// MinFieldWords is the soft minimum of words per free-text field.
	MinFieldWords = 3

	lengthScoreCap     = 60
	lengthScoreWeight  = 50
	completeFieldBonus = 10
	honestyBonus       = 20
	maxQualityScore    = 100
)

// Reflection is a user's written answer to a completed task. Derived
// fields are computed on construction and are not mutated independently.
type Reflection struct {
	// ReflectionID is ref_{user_id}_{day_number}; at most one per user and day.
	ReflectionID string `json:"reflection_id"`
	UserID       string `json:"user_id"`
	TaskID       string `json:"task_id"`
	DayNumber    int    `json:"day_number"`

	Learning    string `json:"learning"`
	Feeling     string `json:"feeling"`
	Improvement string `json:"improvement"`

	MoodBefore Mood `json:"mood_before"`
	MoodAfter  Mood `json:"mood_after"`

	HonestyConfirmed bool `json:"honesty_confirmed"`

	WordCount         int    `json:"word_count"`
	QualityScore      int    `json:"quality_score"`
	MicroAppreciation string `json:"micro_appreciation"`

	CreatedAt time.Time `json:"created_at"`
}

// ReflectionID builds the identifier of a user's reflection for a day.
func ReflectionID(userID string, dayNumber int) string {
	return fmt.Sprintf("ref_%s_%d", userID, dayNumber)
}

// NewReflection builds a reflection from a validated request. req.DayNumber
// must already be resolved.
func NewReflection(req ReflectionRequest) Reflection {
	r := Reflection{
		ReflectionID: ReflectionID(req.UserID, req.DayNumber),
		UserID:       req.UserID,
		TaskID:       req.TaskID,
		DayNumber:    req.DayNumber,
		Learning:     req.Learning,
		Feeling:      req.Feeling,
		Improvement:  req.Improvement,
		MoodBefore:   ParseMood(req.MoodBefore),
		MoodAfter:    ParseMood(req.MoodAfter),
	}
	r.recompute()

	if req.HonestyConfirmed {
		r.ConfirmHonesty()
	}

	return r
}

// ConfirmHonesty marks the reflection as honest and refreshes the score.
func (r *Reflection) ConfirmHonesty() {
	r.HonestyConfirmed = true
	r.recompute()
}

func (r *Reflection) recompute() {
	fieldWords := [...]int{
		CountWords(r.Learning),
		CountWords(r.Feeling),
		CountWords(r.Improvement),
	}

	r.WordCount = 0
	for _, n := range fieldWords {
		r.WordCount += n
	}

	r.QualityScore = QualityScore(fieldWords[:], r.HonestyConfirmed)
	r.MicroAppreciation = r.MoodAfter.Appreciation()
}

// QualityScore rates a reflection on a 0..100 scale from the word counts of
// its free-text fields:
//   - up to 50 points for length, linear until 60 words;
//   - 10 points for every field with at least MinFieldWords words;
//   - 20 points when honesty is confirmed.
func QualityScore(fieldWords []int, honestyConfirmed bool) int {
	total := 0
	complete := 0
	for _, n := range fieldWords {
		total += n
		if n >= MinFieldWords {
			complete++
		}
	}

	score := min(total, lengthScoreCap) * lengthScoreWeight / lengthScoreCap
	score += complete * completeFieldBonus
	if honestyConfirmed {
		score += honestyBonus
	}

	return max(0, min(score, maxQualityScore))
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
