package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/clearnext/models"
)

// Reflection field names as they appear in requests.
const (
	FieldUserID      = "user_id"
	FieldTaskID      = "task_id"
	FieldDayNumber   = "day_number"
	FieldLearning    = "learning"
	FieldFeeling     = "feeling"
	FieldImprovement = "improvement"
	FieldMoodBefore  = "mood_before"
	FieldMoodAfter   = "mood_after"
)

// Outcome messages of ValidateReflection.
const (
	MessageReflectionValid      = "Reflection is valid"
	MessageReflectionNeedsDepth = "Reflection is valid but could be more detailed"
)

const (
	minMeaningfulWords = 15
	minMeaningfulChars = 50
	minFieldChars      = 20
	repeatedRunLength  = 5
)

var (
	uncertainStart = regexp.MustCompile(`(?i)^(idk|dunno|no idea|not sure)\b`)
	oneWordAnswer  = regexp.MustCompile(`(?i)^(ok|okay|good|fine|bad|alright|nothing|none|n/a)[.!]?$`)
	reasoningWords = regexp.MustCompile(`(?i)\b(because|since|due to|feel|felt|think|believe|realize|realized|understand|learn|learned)\b`)
	qualityWords   = regexp.MustCompile(`(?i)\b(challenge|challenging|difficult|easy|helpful|useful|confusing|clear|interesting)\b`)
)

// ReflectionValidator implements ReflectionChecker.
type ReflectionValidator struct {
	minFieldWords int
}

// NewReflectionValidator constructs a ReflectionValidator using
// models.MinFieldWords as the soft per-field minimum.
func NewReflectionValidator() *ReflectionValidator {
	return &ReflectionValidator{minFieldWords: models.MinFieldWords}
}

// ValidateReflection runs hard presence checks and soft content heuristics.
//
// Hard failures make isValid false and name the first failing field in
// message. Soft findings (short, rushed or shallow fields, unknown moods)
// never block the submission; they are reported in details and lower the
// quality score through the field completeness term.
func (v *ReflectionValidator) ValidateReflection(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails) {
	details := models.ValidationDetails{
		Fields: make(map[string]models.FieldAnalysis, 3),
	}

	required := []struct {
		field string
		value string
	}{
		{FieldUserID, req.UserID},
		{FieldTaskID, req.TaskID},
		{FieldLearning, req.Learning},
		{FieldFeeling, req.Feeling},
		{FieldImprovement, req.Improvement},
	}
	for _, r := range required {
		if blank(r.value) {
			details.MissingFields = append(details.MissingFields, r.field)
		}
	}

	texts := []struct {
		field string
		value string
	}{
		{FieldLearning, req.Learning},
		{FieldFeeling, req.Feeling},
		{FieldImprovement, req.Improvement},
	}
	for _, t := range texts {
		analysis := v.analyzeField(t.value)
		details.Fields[t.field] = analysis
		details.TotalWordCount += analysis.WordCount
	}

	for _, m := range []struct {
		field string
		value string
	}{
		{FieldMoodBefore, req.MoodBefore},
		{FieldMoodAfter, req.MoodAfter},
	} {
		if !models.ParseMood(m.value).Known() {
			details.Warnings = append(details.Warnings, m.field+" is not a known mood")
		}
	}

	if len(details.MissingFields) > 0 {
		return false, details.MissingFields[0] + " is required", details
	}
	if req.DayNumber < 0 {
		return false, FieldDayNumber + " must be a positive integer", details
	}

	for _, t := range texts {
		a := details.Fields[t.field]
		if !a.MeetsMinimum || a.IsRushed {
			details.Warnings = append(details.Warnings, t.field+" could be more detailed")
		}
	}

	if len(details.Warnings) > 0 {
		return true, MessageReflectionNeedsDepth, details
	}
	return true, MessageReflectionValid, details
}

func (v *ReflectionValidator) analyzeField(text string) models.FieldAnalysis {
	trimmed := strings.TrimSpace(text)
	a := models.FieldAnalysis{
		WordCount:      models.CountWords(trimmed),
		CharacterCount: utf8.RuneCountInString(trimmed),
		MinWords:       v.minFieldWords,
	}
	a.MeetsMinimum = a.WordCount >= v.minFieldWords

	if a.CharacterCount < minFieldChars {
		a.Issues = append(a.Issues, "too short to be meaningful")
	}

	a.IsRushed = !a.MeetsMinimum ||
		oneWordAnswer.MatchString(trimmed) ||
		uncertainStart.MatchString(trimmed) ||
		hasRepeatedRun(trimmed, repeatedRunLength)
	if a.IsRushed {
		a.Issues = append(a.Issues, "appears rushed or lacks depth")
	}

	signals := 0
	if reasoningWords.MatchString(trimmed) {
		signals++
	}
	if qualityWords.MatchString(trimmed) {
		signals++
	}
	if a.WordCount >= minMeaningfulWords {
		signals++
	}
	if a.CharacterCount >= minMeaningfulChars {
		signals++
	}
	a.IsMeaningful = signals >= 2

	return a
}

// hasRepeatedRun reports whether s contains n identical consecutive runes.
func hasRepeatedRun(s string, n int) bool {
	run := 0
	var prev rune = -1
	for _, r := range s {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run >= n {
			return true
		}
	}
	return false
}
