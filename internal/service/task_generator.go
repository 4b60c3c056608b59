package service

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/clearnext/models"
)

const (
	taskTimeLimit = "30-45 minutes"
	defaultFocus  = "Personal Growth"

	deepInstructionSuffix = " Additionally, consider how this connects to your broader learning goals and future aspirations."
	taskClosing           = "Remember: This is about understanding yourself better, not perfection. Take your time and be gentle with yourself."
)

type journeyStage string

const (
	stageEarly journeyStage = "early"
	stageMid   journeyStage = "mid"
	stageLate  journeyStage = "late"
)

var taskTypes = map[string][]string{
	models.DifficultyEasy:   {"Reflection", "Writing", "Observation"},
	models.DifficultyMedium: {"Analysis", "Planning", "Application"},
	models.DifficultyDeep:   {"Synthesis", "Creation", "Evaluation"},
}

var instructions = map[string][]string{
	"Reflection": {
		"Take 15 minutes to reflect on your recent learning experiences.",
		"Write about what worked well and what challenges you faced.",
		"Consider how you can apply these insights going forward.",
	},
	"Writing": {
		"Spend 20 minutes writing about your current learning journey.",
		"Focus on your thoughts and feelings about the process.",
		"End with 3 key takeaways from this writing exercise.",
	},
	"Observation": {
		"Notice how you approach one learning session today without changing anything.",
		"Write down when your focus was strongest and when it drifted.",
		"Describe one pattern you did not expect to see.",
	},
	"Analysis": {
		"Pick one recent learning setback and describe what happened.",
		"List the factors that contributed to it, separating those you control from those you do not.",
		"Choose one factor you control and decide how to handle it next time.",
	},
	"Planning": {
		"Review your learning goals for the next 7 days.",
		"Break down one goal into small, actionable steps.",
		"Create a realistic timeline for completing these steps.",
	},
	"Application": {
		"Choose one idea you learned recently.",
		"Use it in a small practical exercise or real situation today.",
		"Write about what worked and what you would adjust.",
	},
	"Synthesis": {
		"Gather three things you learned during this journey.",
		"Connect them into a single explanation of how you learn best.",
		"Summarize that explanation in one paragraph you could share with someone else.",
	},
	"Creation": {
		"Design a small resource that would have helped you at the start of this journey.",
		"It can be a checklist, a diagram or a short guide.",
		"Describe who else could benefit from it and why.",
	},
	"Evaluation": {
		"Compare how you approached learning on day one with how you approach it now.",
		"Rate which of your new habits made the biggest difference.",
		"Decide which habit to keep, which to change and which to drop.",
	},
}

var moodEncouragement = map[models.MoodTier][]string{
	models.TierLow: {
		"It's okay to have difficult days. Be gentle with yourself today.",
		"You're showing up, and that's what matters most. Take it one step at a time.",
		"Even small progress is progress. You've got this, at your own pace.",
	},
	models.TierOkay: {
		"You're building consistency, and that's a real achievement.",
		"Every day you engage with your learning, you're growing stronger.",
		"Your steady approach is creating lasting change.",
	},
	models.TierGood: {
		"Your energy today is perfect for tackling meaningful challenges!",
		"You're in a great mindset to make significant progress today.",
		"Your positive attitude will help you achieve great things today!",
	},
}

var stageEncouragement = map[journeyStage][]string{
	stageEarly: {
		"You're building a strong foundation for your learning journey.",
		"Every small step counts toward your growth.",
		"Trust the process, you're doing great!",
	},
	stageMid: {
		"You're making meaningful progress on your journey.",
		"Your consistency is paying off in ways you might not see yet.",
		"Keep showing up, that's what matters most.",
	},
	stageLate: {
		"You've come so far, look at how much you've grown!",
		"Your dedication to learning is truly inspiring.",
		"You're developing skills that will serve you for life.",
	},
}

var tones = map[models.MoodTier]string{
	models.TierLow:  "gentle, reassuring",
	models.TierOkay: "neutral",
	models.TierGood: "slightly challenging",
}

// generatedTask is the mood-adapted content of a day's task.
type generatedTask struct {
	Type       string
	Difficulty string
	Content    string
}

// generateTask builds the content of day's task for user. The result depends
// only on its inputs.
func generateTask(user models.User, day int, mood models.Mood) generatedTask {
	tier := mood.Tier()
	stage := stageOf(day, user.JourneyDays)
	difficulty := chooseDifficulty(user, stage, tier)

	types := taskTypes[difficulty]
	taskType := types[day%len(types)]

	focus := user.ConfusionArea
	if focus == "" {
		focus = defaultFocus
	}

	var encouragement string
	if day%2 == 0 {
		list := moodEncouragement[tier]
		encouragement = list[day%len(list)]
	} else {
		list := stageEncouragement[stage]
		encouragement = list[day%len(list)]
	}

	content := fmt.Sprintf("Day %d - %s Task (%s)\n\nTime: %s\nFocus: %s\nTone: %s\n\nToday's task: %s\n\n%s\n\n%s",
		day, taskType, titleCase(difficulty),
		taskTimeLimit, focus, tones[tier],
		taskInstructions(taskType, difficulty),
		encouragement,
		taskClosing,
	)

	return generatedTask{
		Type:       taskType,
		Difficulty: difficulty,
		Content:    content,
	}
}

// stageOf splits a journey into the first quarter, the last 30% and the
// middle part.
func stageOf(day, journeyDays int) journeyStage {
	switch {
	case day*4 <= journeyDays:
		return stageEarly
	case day*10 > journeyDays*7:
		return stageLate
	default:
		return stageMid
	}
}

func chooseDifficulty(user models.User, stage journeyStage, tier models.MoodTier) string {
	struggle := strings.ToLower(user.StruggleType)

	if tier == models.TierLow {
		return models.DifficultyEasy
	}
	if strings.Contains(struggle, "motivation") || strings.Contains(struggle, "overwhelm") {
		return models.DifficultyEasy
	}

	good := tier == models.TierGood
	switch stage {
	case stageEarly:
		if good {
			return models.DifficultyMedium
		}
		return models.DifficultyEasy
	case stageMid:
		if !good && strings.Contains(struggle, "time") {
			return models.DifficultyEasy
		}
		return models.DifficultyMedium
	default:
		if good && strings.Contains(strings.ToLower(user.ConfusionArea), "advanced") {
			return models.DifficultyDeep
		}
		return models.DifficultyMedium
	}
}

func taskInstructions(taskType, difficulty string) string {
	steps, ok := instructions[taskType]
	if !ok {
		steps = instructions["Reflection"]
	}

	switch difficulty {
	case models.DifficultyEasy:
		return strings.Join(steps[:2], " ")
	case models.DifficultyDeep:
		return strings.Join(steps, " ") + deepInstructionSuffix
	default:
		return strings.Join(steps, " ")
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
