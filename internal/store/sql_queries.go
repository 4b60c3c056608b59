package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/MKhiriev/clearnext/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable       = "users"
	tasksTable       = "tasks"
	reflectionsTable = "reflections"
)

var (
	userColumns = []string{
		"user_id", "name", "email", "password_hash", "status", "confusion_area",
		"struggle_type", "journey_days", "current_day", "user_type", "total_words",
		"last_active_date", "created_at",
	}

	taskColumns = []string{
		"task_id", "user_id", "day_number", "task_content", "task_type", "difficulty",
		"mood_adapted", "completed", "response", "completed_at", "created_at",
	}

	reflectionColumns = []string{
		"reflection_id", "user_id", "task_id", "day_number", "learning", "feeling",
		"improvement", "mood_before", "mood_after", "honesty_confirmed", "word_count",
		"quality_score", "micro_appreciation", "created_at",
	}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ─────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────

func buildInsertUserQuery(sb sq.StatementBuilderType, u models.User) (string, []any, error) {
	return sb.Insert(usersTable).
		Columns(userColumns...).
		Values(
			u.UserID, u.Name, nullString(u.Email), nullString(u.PasswordHash), u.Status, u.ConfusionArea,
			u.StruggleType, u.JourneyDays, u.CurrentDay, string(u.UserType), u.TotalWords,
			nullTime(u.LastActiveDate), u.CreatedAt,
		).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of update.
func buildUpdateUserQuery(sb sq.StatementBuilderType, userID string, update models.UserUpdateRequest) (string, []any, error) {
	set := make(map[string]any, 5)
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.ConfusionArea != nil {
		set["confusion_area"] = *update.ConfusionArea
	}
	if update.StruggleType != nil {
		set["struggle_type"] = *update.StruggleType
	}
	if update.JourneyDays != nil {
		set["journey_days"] = *update.JourneyDays
	}

	return sb.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"user_id": userID}).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildAdvanceDayQuery raises current_day to nextDay without ever lowering it.
func buildAdvanceDayQuery(sb sq.StatementBuilderType, userID string, nextDay int, at time.Time) (string, []any, error) {
	return sb.Update(usersTable).
		Set("current_day", sq.Expr("CASE WHEN current_day < ? THEN ? ELSE current_day END", nextDay, nextDay)).
		Set("last_active_date", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildAddWordsQuery(sb sq.StatementBuilderType, userID string, words int) (string, []any, error) {
	return sb.Update(usersTable).
		Set("total_words", sq.Expr("total_words + ?", words)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ─────────────────────────────────────────────
// Tasks
// ─────────────────────────────────────────────

func buildInsertTaskQuery(sb sq.StatementBuilderType, t models.Task) (string, []any, error) {
	return sb.Insert(tasksTable).
		Columns(taskColumns...).
		Values(
			t.TaskID, t.UserID, t.DayNumber, t.TaskContent, t.TaskType, t.Difficulty,
			string(t.MoodAdapted), t.Completed, t.Response, nullTime(t.CompletedAt), t.CreatedAt,
		).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildSelectTasksQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(taskColumns...).
		From(tasksTable).
		Where(where).
		OrderBy("day_number ASC").
		ToSql()
}

// buildCompleteTaskQuery only matches pending tasks.
func buildCompleteTaskQuery(sb sq.StatementBuilderType, taskID, response string, at time.Time) (string, []any, error) {
	return sb.Update(tasksTable).
		Set("completed", true).
		Set("response", response).
		Set("completed_at", at).
		Where(sq.Eq{"task_id": taskID, "completed": false}).
		ToSql()
}

// ─────────────────────────────────────────────
// Reflections
// ─────────────────────────────────────────────

func buildInsertReflectionQuery(sb sq.StatementBuilderType, r models.Reflection) (string, []any, error) {
	return sb.Insert(reflectionsTable).
		Columns(reflectionColumns...).
		Values(
			r.ReflectionID, r.UserID, r.TaskID, r.DayNumber, r.Learning, r.Feeling,
			r.Improvement, string(r.MoodBefore), string(r.MoodAfter), r.HonestyConfirmed, r.WordCount,
			r.QualityScore, r.MicroAppreciation, r.CreatedAt,
		).
		Suffix(returning(reflectionColumns)).
		ToSql()
}

func buildSelectReflectionsQuery(sb sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return sb.Select(reflectionColumns...).
		From(reflectionsTable).
		Where(where).
		OrderBy("day_number ASC").
		ToSql()
}

// ─────────────────────────────────────────────
// Rows
// ─────────────────────────────────────────────

type userRow struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          sql.NullString `db:"email"`
	PasswordHash   sql.NullString `db:"password_hash"`
	Status         string         `db:"status"`
	ConfusionArea  string         `db:"confusion_area"`
	StruggleType   string         `db:"struggle_type"`
	JourneyDays    int            `db:"journey_days"`
	CurrentDay     int            `db:"current_day"`
	UserType       string         `db:"user_type"`
	TotalWords     int            `db:"total_words"`
	LastActiveDate sql.NullTime   `db:"last_active_date"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r userRow) toModel() models.User {
	return models.User{
		UserID:         r.UserID,
		Name:           r.Name,
		Email:          r.Email.String,
		PasswordHash:   r.PasswordHash.String,
		Status:         r.Status,
		ConfusionArea:  r.ConfusionArea,
		StruggleType:   r.StruggleType,
		JourneyDays:    r.JourneyDays,
		CurrentDay:     r.CurrentDay,
		UserType:       models.UserType(r.UserType),
		TotalWords:     r.TotalWords,
		LastActiveDate: timePtr(r.LastActiveDate),
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

type taskRow struct {
	TaskID      string       `db:"task_id"`
	UserID      string       `db:"user_id"`
	DayNumber   int          `db:"day_number"`
	TaskContent string       `db:"task_content"`
	TaskType    string       `db:"task_type"`
	Difficulty  string       `db:"difficulty"`
	MoodAdapted string       `db:"mood_adapted"`
	Completed   bool         `db:"completed"`
	Response    string       `db:"response"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (r taskRow) toModel() models.Task {
	task := models.Task{
		TaskID:      r.TaskID,
		UserID:      r.UserID,
		DayNumber:   r.DayNumber,
		TaskContent: r.TaskContent,
		TaskType:    r.TaskType,
		Difficulty:  r.Difficulty,
		MoodAdapted: models.Mood(r.MoodAdapted),
		Completed:   r.Completed,
		Response:    r.Response,
		CompletedAt: timePtr(r.CompletedAt),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if task.TaskType == "" {
		task.TaskType = models.DefaultTaskType
	}
	if task.Difficulty == "" {
		task.Difficulty = models.DefaultDifficulty
	}

	return task
}

type reflectionRow struct {
	ReflectionID      string    `db:"reflection_id"`
	UserID            string    `db:"user_id"`
	TaskID            string    `db:"task_id"`
	DayNumber         int       `db:"day_number"`
	Learning          string    `db:"learning"`
	Feeling           string    `db:"feeling"`
	Improvement       string    `db:"improvement"`
	MoodBefore        string    `db:"mood_before"`
	MoodAfter         string    `db:"mood_after"`
	HonestyConfirmed  bool      `db:"honesty_confirmed"`
	WordCount         int       `db:"word_count"`
	QualityScore      int       `db:"quality_score"`
	MicroAppreciation string    `db:"micro_appreciation"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r reflectionRow) toModel() models.Reflection {
	return models.Reflection{
		ReflectionID:      r.ReflectionID,
		UserID:            r.UserID,
		TaskID:            r.TaskID,
		DayNumber:         r.DayNumber,
		Learning:          r.Learning,
		Feeling:           r.Feeling,
		Improvement:       r.Improvement,
		MoodBefore:        models.Mood(r.MoodBefore),
		MoodAfter:         models.Mood(r.MoodAfter),
		HonestyConfirmed:  r.HonestyConfirmed,
		WordCount:         r.WordCount,
		QualityScore:      r.QualityScore,
		MicroAppreciation: r.MicroAppreciation,
		CreatedAt:         r.CreatedAt.UTC(),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
