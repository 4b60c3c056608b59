package models

import "strings"

// Mood is the self-reported state of a user before or after a task.
type Mood string

// Known moods. Anything else is accepted and stored as given, but maps to the
// default appreciation message and to the neutral tier.
const (
	MoodGreat   Mood = "great"
	MoodHappy   Mood = "happy"
	MoodGood    Mood = "good"
	MoodOkay    Mood = "okay"
	MoodTired   Mood = "tired"
	MoodLow     Mood = "low"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
)

// MoodTier groups moods into the three bands used when adapting tasks and
// summarising a journey.
type MoodTier string

const (
	TierLow  MoodTier = "low"
	TierOkay MoodTier = "okay"
	TierGood MoodTier = "good"
)

// DefaultAppreciation is returned for moods without a dedicated message.
const DefaultAppreciation = "Keep going, you're doing well."

var appreciations = map[Mood]string{
	MoodGreat:   "Your energy today is inspiring!",
	MoodHappy:   "Excellent work today!",
	MoodGood:    "You're making real progress.",
	MoodOkay:    "Your steady effort is impressive.",
	MoodTired:   "Taking time for yourself is wisdom.",
	MoodLow:     "You showed up today. That matters.",
	MoodSad:     "Being here is enough today.",
	MoodAnxious: "Small steps create real change.",
}

var tiers = map[Mood]MoodTier{
	MoodGreat:   TierGood,
	MoodHappy:   TierGood,
	MoodGood:    TierGood,
	MoodOkay:    TierOkay,
	MoodTired:   TierLow,
	MoodLow:     TierLow,
	MoodSad:     TierLow,
	MoodAnxious: TierLow,
}

// ParseMood normalises raw input. Empty input yields MoodOkay.
func ParseMood(s string) Mood {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MoodOkay
	}
	return Mood(s)
}

// Known reports whether m is one of the enumerated moods.
func (m Mood) Known() bool {
	_, ok := appreciations[m]
	return ok
}

// Appreciation returns the micro appreciation message for m.
func (m Mood) Appreciation() string {
	if msg, ok := appreciations[m]; ok {
		return msg
	}
	return DefaultAppreciation
}

// Tier returns the band m belongs to. Unknown moods are neutral.
func (m Mood) Tier() MoodTier {
	if t, ok := tiers[m]; ok {
		return t
	}
	return TierOkay
}
