package service

import (
	"strings"
	"testing"

	"github.com/MKhiriev/clearnext/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerateTask_Deterministic(t *testing.T) {
	user := sampleUser()

	for day := 1; day <= user.JourneyDays; day++ {
		for _, mood := range []models.Mood{models.MoodGreat, models.MoodOkay, models.MoodSad, "ecstatic"} {
			assert.Equal(t, generateTask(user, day, mood), generateTask(user, day, mood), "day %d mood %s", day, mood)
		}
	}
}

func TestGenerateTask_Content(t *testing.T) {
	user := sampleUser()

	task := generateTask(user, 3, models.MoodLow)

	assert.Equal(t, models.DifficultyEasy, task.Difficulty)
	assert.Equal(t, "Easy", titleCase(task.Difficulty))
	// easy types are indexed by day: 3 % 3 == 0
	assert.Equal(t, "Reflection", task.Type)

	assert.True(t, strings.HasPrefix(task.Content, "Day 3 - Reflection Task (Easy)\n\n"))
	assert.Contains(t, task.Content, "Time: 30-45 minutes")
	assert.Contains(t, task.Content, "Focus: algorithms")
	assert.Contains(t, task.Content, "Tone: gentle, reassuring")
	assert.Contains(t, task.Content, "Today's task: Take 15 minutes to reflect on your recent learning experiences. Write about what worked well and what challenges you faced.\n")
	assert.NotContains(t, task.Content, "Consider how you can apply these insights going forward.")
	assert.True(t, strings.HasSuffix(task.Content, taskClosing))
}

func TestGenerateTask_DefaultFocus(t *testing.T) {
	user := sampleUser()
	user.ConfusionArea = ""

	task := generateTask(user, 1, models.MoodOkay)
	assert.Contains(t, task.Content, "Focus: Personal Growth")
}

func TestGenerateTask_Encouragement(t *testing.T) {
	user := sampleUser()
	user.JourneyDays = 30

	// even days use the mood list, odd days the stage list
	even := generateTask(user, 2, models.MoodGood)
	assert.Contains(t, even.Content, moodEncouragement[models.TierGood][2%3])

	odd := generateTask(user, 3, models.MoodGood)
	assert.Contains(t, odd.Content, stageEncouragement[stageEarly][3%3])
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		day, journey int
		want         journeyStage
	}{
		{1, 7, stageEarly},
		{2, 7, stageMid},
		{4, 7, stageMid},
		{5, 7, stageLate},
		{7, 7, stageLate},
		{7, 30, stageEarly},
		{8, 30, stageMid},
		{21, 30, stageMid},
		{22, 30, stageLate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stageOf(tt.day, tt.journey), "day %d of %d", tt.day, tt.journey)
	}
}

func TestChooseDifficulty(t *testing.T) {
	tests := []struct {
		name      string
		struggle  string
		confusion string
		stage     journeyStage
		tier      models.MoodTier
		want      string
	}{
		{name: "low mood is always easy", stage: stageLate, tier: models.TierLow, want: models.DifficultyEasy},
		{name: "motivation struggle", struggle: "Lack of Motivation", stage: stageLate, tier: models.TierGood, want: models.DifficultyEasy},
		{name: "overwhelmed", struggle: "overwhelmed", stage: stageMid, tier: models.TierGood, want: models.DifficultyEasy},
		{name: "early and good", stage: stageEarly, tier: models.TierGood, want: models.DifficultyMedium},
		{name: "early and okay", stage: stageEarly, tier: models.TierOkay, want: models.DifficultyEasy},
		{name: "mid and good", struggle: "time", stage: stageMid, tier: models.TierGood, want: models.DifficultyMedium},
		{name: "mid okay with time struggle", struggle: "no time", stage: stageMid, tier: models.TierOkay, want: models.DifficultyEasy},
		{name: "mid okay", struggle: "focus", stage: stageMid, tier: models.TierOkay, want: models.DifficultyMedium},
		{name: "late good advanced", confusion: "Advanced topics", stage: stageLate, tier: models.TierGood, want: models.DifficultyDeep},
		{name: "late good", confusion: "basics", stage: stageLate, tier: models.TierGood, want: models.DifficultyMedium},
		{name: "late okay advanced", confusion: "advanced", stage: stageLate, tier: models.TierOkay, want: models.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.User{StruggleType: tt.struggle, ConfusionArea: tt.confusion}
			assert.Equal(t, tt.want, chooseDifficulty(user, tt.stage, tt.tier))
		})
	}
}

func TestTaskInstructions(t *testing.T) {
	full := strings.Join(instructions["Synthesis"], " ")

	assert.Equal(t, full, taskInstructions("Synthesis", models.DifficultyMedium))
	assert.Equal(t, full+deepInstructionSuffix, taskInstructions("Synthesis", models.DifficultyDeep))
	assert.Equal(t, strings.Join(instructions["Reflection"][:2], " "), taskInstructions("Unknown", models.DifficultyEasy))
}

func TestEveryTaskTypeHasInstructions(t *testing.T) {
	for difficulty, types := range taskTypes {
		for _, taskType := range types {
			steps, ok := instructions[taskType]
			assert.True(t, ok, "%s (%s)", taskType, difficulty)
			assert.GreaterOrEqual(t, len(steps), 2, taskType)
		}
	}
}
