package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/models"
	"golang.org/x/sync/errgroup"
)

const (
	accomplishedShare     = 0.8
	deepReflectionChars   = 200
	committedDays         = 10
	lowPositivityPercent  = 40
	strengthDeepReflect   = "Deep self-reflection and thoughtful analysis"
	strengthCommitment    = "Strong commitment and consistency"
	strengthBuilding      = "Building self-awareness through regular practice"
	resilienceChallenging = "You showed resilience on challenging days"
	resiliencePositive    = "Consistently positive mindset"
	clarityDefault        = "Developing self-awareness through regular reflection"
	nextStepCompassion    = "Focus on building positive routines and self-compassion"
	nextStepApply         = "Apply your insights to new learning challenges"
	nextStepContinue      = "Continue your reflection practice with new topics or goals"
)

var clarityThemes = []struct {
	keywords []string
	text     string
}{
	{[]string{"understand", "clear"}, "Better understanding of personal learning patterns"},
	{[]string{"time", "schedule"}, "Improved time management awareness"},
	{[]string{"motivation", "energy"}, "Deeper insight into personal motivation"},
}

type journeyService struct {
	users       store.UserRepository
	tasks       store.TaskRepository
	reflections store.ReflectionRepository

	logger *logger.Logger
}

func NewJourneyService(users store.UserRepository, tasks store.TaskRepository, reflections store.ReflectionRepository, logger *logger.Logger) JourneyService {
	return &journeyService{
		users:       users,
		tasks:       tasks,
		reflections: reflections,
		logger:      logger,
	}
}

// Summary computes the end-of-journey feedback of userID. It can be requested
// at any point of the journey.
func (s *journeyService) Summary(ctx context.Context, userID string) (models.JourneySummary, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.JourneySummary{}, err
	}

	var (
		tasks       []models.Task
		reflections []models.Reflection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListTasks(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		reflections, err = s.reflections.ListReflections(gctx, userID)
		return err
	})
	if err = g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*journeyService.Summary").Msg("error loading journey")
		return models.JourneySummary{}, fmt.Errorf("error loading journey: %w", err)
	}

	return summarize(user, tasks, reflections), nil
}

func summarize(user models.User, tasks []models.Task, reflections []models.Reflection) models.JourneySummary {
	completedDays := make([]int, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			completedDays = append(completedDays, t.DayNumber)
		}
	}
	completed := len(completedDays)

	rate := 0
	if user.JourneyDays > 0 {
		rate = int(math.Round(float64(completed) / float64(user.JourneyDays) * 100))
	}

	summary := models.JourneySummary{
		UserID:           user.UserID,
		JourneyDays:      user.JourneyDays,
		CompletedDays:    completed,
		CompletionRate:   rate,
		JourneyCompleted: user.JourneyCompleted(),
		ReflectionCount:  len(reflections),
		TotalWords:       user.TotalWords,
		LongestStreak:    longestStreak(completedDays),
		Headline:         fmt.Sprintf("You completed %d out of %d days (%d%% completion rate)", completed, user.JourneyDays, rate),
		OverallTone:      models.ToneProgressing,
	}
	if float64(completed) >= float64(user.JourneyDays)*accomplishedShare {
		summary.OverallTone = models.ToneAccomplished
	}

	summary.MoodDistribution = map[models.MoodTier]int{
		models.TierLow:  0,
		models.TierOkay: 0,
		models.TierGood: 0,
	}
	totalScore, totalChars := 0, 0
	for _, r := range reflections {
		summary.MoodDistribution[r.MoodAfter.Tier()]++
		totalScore += r.QualityScore
		totalChars += utf8.RuneCountInString(r.Learning) + utf8.RuneCountInString(r.Feeling) + utf8.RuneCountInString(r.Improvement)
	}

	if n := len(reflections); n > 0 {
		summary.AverageQualityScore = math.Round(float64(totalScore)/float64(n)*10) / 10
		summary.Positivity = int(math.Round(float64(summary.MoodDistribution[models.TierGood]) / float64(n) * 100))

		// ties go to the more positive tier
		for _, tier := range []models.MoodTier{models.TierLow, models.TierOkay, models.TierGood} {
			if summary.DominantMood == "" || summary.MoodDistribution[tier] >= summary.MoodDistribution[summary.DominantMood] {
				summary.DominantMood = tier
			}
		}
	}

	summary.Resilience = resiliencePositive
	if summary.MoodDistribution[models.TierLow] > 0 {
		summary.Resilience = resilienceChallenging
	}

	avgChars := totalChars / max(len(reflections), 1)
	if avgChars > deepReflectionChars {
		summary.Strengths = append(summary.Strengths, strengthDeepReflect)
	}
	if completed > committedDays {
		summary.Strengths = append(summary.Strengths, strengthCommitment)
	}
	if len(summary.Strengths) == 0 {
		summary.Strengths = []string{strengthBuilding}
	}

	summary.ClarityGained = clarityGained(reflections)

	switch {
	case summary.Positivity < lowPositivityPercent:
		summary.NextStep = nextStepCompassion
	case slices.Contains(summary.Strengths, strengthDeepReflect):
		summary.NextStep = nextStepApply
	default:
		summary.NextStep = nextStepContinue
	}

	return summary
}

func clarityGained(reflections []models.Reflection) []string {
	var gained []string
	for _, r := range reflections {
		text := strings.ToLower(r.Learning + " " + r.Improvement)
		for _, theme := range clarityThemes {
			if slices.Contains(gained, theme.text) {
				continue
			}
			for _, kw := range theme.keywords {
				if strings.Contains(text, kw) {
					gained = append(gained, theme.text)
					break
				}
			}
		}
	}

	if len(gained) == 0 {
		return []string{clarityDefault}
	}
	return gained
}

// longestStreak returns the longest run of consecutive day numbers.
func longestStreak(days []int) int {
	if len(days) == 0 {
		return 0
	}

	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	return longest
}
