package service

import (
	"context"
	"time"

	"github.com/MKhiriev/clearnext/internal/mock"
	"github.com/MKhiriev/clearnext/models"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// fixedIDs returns ids in order: prefix + "1", prefix + "2", ...
type fixedIDs struct {
	n int
}

func (f *fixedIDs) NewID(prefix string) string {
	f.n++
	return prefix + string(rune('0'+f.n))
}

// expectTx makes tx run the function it is given, like a real transaction
// that commits.
func expectTx(tx *mock.MockTxManager) *gomock.Call {
	return tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func ptr[T any](v T) *T { return &v }

func sampleUser() models.User {
	return models.User{
		UserID:        "GUEST_1",
		Name:          "Ann",
		Status:        "student",
		ConfusionArea: "algorithms",
		StruggleType:  "focus",
		JourneyDays:   7,
		CurrentDay:    2,
		UserType:      models.UserTypeGuest,
		CreatedAt:     testNow.Add(-48 * time.Hour),
	}
}

func sampleTask(day int) models.Task {
	return models.Task{
		TaskID:      "task_" + string(rune('a'+day)),
		UserID:      "GUEST_1",
		DayNumber:   day,
		TaskContent: "Day content",
		TaskType:    "Reflection",
		Difficulty:  models.DifficultyEasy,
		MoodAdapted: models.MoodOkay,
		CreatedAt:   testNow,
	}
}

func detailedReflectionRequest() models.ReflectionRequest {
	return models.ReflectionRequest{
		UserID:      "GUEST_1",
		TaskID:      "task_c",
		Learning:    "I learned that spaced repetition works because it forces recall",
		Feeling:     "I felt calm and focused, the exercise was helpful and clear",
		Improvement: "Tomorrow I will start earlier since mornings are less busy for me",
		MoodBefore:  "tired",
		MoodAfter:   "good",
	}
}
