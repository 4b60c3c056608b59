package models

// Overall tones of a journey summary.
const (
	ToneAccomplished = "accomplished"
	ToneProgressing  = "progressing"
)

// JourneySummary is the end-of-journey feedback computed from a user's tasks
// and reflections.
type JourneySummary struct {
	UserID           string `json:"user_id"`
	JourneyDays      int    `json:"journey_days"`
	CompletedDays    int    `json:"completed_days"`
	CompletionRate   int    `json:"completion_rate"`
	JourneyCompleted bool   `json:"journey_completed"`

	ReflectionCount     int     `json:"reflection_count"`
	TotalWords          int     `json:"total_words"`
	AverageQualityScore float64 `json:"average_quality_score"`

	MoodDistribution map[MoodTier]int `json:"mood_distribution"`
	DominantMood     MoodTier         `json:"dominant_mood"`
	Positivity       int              `json:"positivity"`
	Resilience       string           `json:"resilience"`

	LongestStreak int `json:"longest_streak"`

	Strengths     []string `json:"strengths"`
	ClarityGained []string `json:"clarity_gained"`
	NextStep      string   `json:"next_step"`
	OverallTone   string   `json:"overall_tone"`
	Headline      string   `json:"headline"`
}
