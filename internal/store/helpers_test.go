package store

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/migrations"
	"github.com/MKhiriev/clearnext/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := newDB(sqlx.NewDb(mockDB, "sqlmock"), migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop())
	return db, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

func nullable(s string) driver.Value {
	if s == "" {
		return nil
	}
	return s
}

func sampleUser() models.User {
	return models.User{
		UserID:        "REG_0196",
		Name:          "Ann",
		Email:         "ann@example.com",
		PasswordHash:  "$2a$10$hash",
		Status:        "student",
		ConfusionArea: "career",
		StruggleType:  "focus",
		JourneyDays:   7,
		CurrentDay:    1,
		UserType:      models.UserTypeRegistered,
		CreatedAt:     testNow,
	}
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		var lastActive driver.Value
		if u.LastActiveDate != nil {
			lastActive = *u.LastActiveDate
		}
		rows.AddRow(u.UserID, u.Name, nullable(u.Email), nullable(u.PasswordHash), u.Status, u.ConfusionArea,
			u.StruggleType, u.JourneyDays, u.CurrentDay, string(u.UserType), u.TotalWords, lastActive, u.CreatedAt)
	}
	return rows
}

func sampleTask(day int) models.Task {
	return models.Task{
		TaskID:      "task_" + string(rune('a'+day)),
		UserID:      "REG_0196",
		DayNumber:   day,
		TaskContent: "Day content",
		TaskType:    "Reflection",
		Difficulty:  models.DifficultyEasy,
		MoodAdapted: models.MoodOkay,
		CreatedAt:   testNow,
	}
}

func taskRows(tasks ...models.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows(taskColumns)
	for _, t := range tasks {
		var completedAt driver.Value
		if t.CompletedAt != nil {
			completedAt = *t.CompletedAt
		}
		rows.AddRow(t.TaskID, t.UserID, t.DayNumber, t.TaskContent, t.TaskType, t.Difficulty,
			string(t.MoodAdapted), t.Completed, t.Response, completedAt, t.CreatedAt)
	}
	return rows
}

func sampleReflection() models.Reflection {
	r := models.NewReflection(models.ReflectionRequest{
		UserID:      "REG_0196",
		TaskID:      "task_b",
		DayNumber:   1,
		Learning:    "I learned to slow down",
		Feeling:     "calm and focused",
		Improvement: "start earlier tomorrow",
		MoodAfter:   "happy",
	})
	r.CreatedAt = testNow
	return r
}

func reflectionRows(reflections ...models.Reflection) *sqlmock.Rows {
	rows := sqlmock.NewRows(reflectionColumns)
	for _, r := range reflections {
		rows.AddRow(r.ReflectionID, r.UserID, r.TaskID, r.DayNumber, r.Learning, r.Feeling,
			r.Improvement, string(r.MoodBefore), string(r.MoodAfter), r.HonestyConfirmed, r.WordCount,
			r.QualityScore, r.MicroAppreciation, r.CreatedAt)
	}
	return rows
}

func sqlmockResult(affected int64) driver.Result {
	return sqlmock.NewResult(0, affected)
}
