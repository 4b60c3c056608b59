package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each mock implements a service interface through overridable func fields.
// Calling a method whose field is nil panics, which fails the test.

type mockUserService struct {
	createGuestFn func(ctx context.Context, req models.GuestRequest) (models.User, error)
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.User, error)
	getUserFn     func(ctx context.Context, userID string) (models.User, error)
	updateUserFn  func(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error)
}

func (m *mockUserService) CreateGuest(ctx context.Context, req models.GuestRequest) (models.User, error) {
	return m.createGuestFn(ctx, req)
}

func (m *mockUserService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockUserService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockUserService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error) {
	return m.updateUserFn(ctx, userID, req)
}

type mockAuthService struct {
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockTaskService struct {
	checkTaskWindowFn      func(ctx context.Context) (bool, string)
	todayTaskFn            func(ctx context.Context, userID string, mood models.Mood) (models.TodayTask, error)
	getOrCreateTodayTaskFn func(ctx context.Context, user models.User, mood models.Mood) (*models.Task, error)
	taskStatusFn           func(ctx context.Context, userID string) (models.TaskStatus, error)
	completeTaskFn         func(ctx context.Context, taskID, response string) (models.TaskCompletion, error)
	getTaskFn              func(ctx context.Context, taskID string) (models.Task, error)
	listUserTasksFn        func(ctx context.Context, userID string) ([]models.Task, error)
}

func (m *mockTaskService) CheckTaskWindow(ctx context.Context) (bool, string) {
	return m.checkTaskWindowFn(ctx)
}

func (m *mockTaskService) TodayTask(ctx context.Context, userID string, mood models.Mood) (models.TodayTask, error) {
	return m.todayTaskFn(ctx, userID, mood)
}

func (m *mockTaskService) GetOrCreateTodayTask(ctx context.Context, user models.User, mood models.Mood) (*models.Task, error) {
	return m.getOrCreateTodayTaskFn(ctx, user, mood)
}

func (m *mockTaskService) TaskStatus(ctx context.Context, userID string) (models.TaskStatus, error) {
	return m.taskStatusFn(ctx, userID)
}

func (m *mockTaskService) CompleteTask(ctx context.Context, taskID, response string) (models.TaskCompletion, error) {
	return m.completeTaskFn(ctx, taskID, response)
}

func (m *mockTaskService) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	return m.getTaskFn(ctx, taskID)
}

func (m *mockTaskService) ListUserTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return m.listUserTasksFn(ctx, userID)
}

type mockReflectionService struct {
	validateReflectionFn  func(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails)
	submitReflectionFn    func(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error)
	createReflectionFn    func(ctx context.Context, reflection models.Reflection) (models.Reflection, error)
	updateUserProgressFn  func(ctx context.Context, userID string, wordCount int) error
	getReflectionFn       func(ctx context.Context, reflectionID string) (models.Reflection, error)
	listUserReflectionsFn func(ctx context.Context, userID string) ([]models.Reflection, error)
}

func (m *mockReflectionService) ValidateReflection(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails) {
	return m.validateReflectionFn(ctx, req)
}

func (m *mockReflectionService) SubmitReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error) {
	return m.submitReflectionFn(ctx, req)
}

func (m *mockReflectionService) CreateReflection(ctx context.Context, reflection models.Reflection) (models.Reflection, error) {
	return m.createReflectionFn(ctx, reflection)
}

func (m *mockReflectionService) UpdateUserProgress(ctx context.Context, userID string, wordCount int) error {
	return m.updateUserProgressFn(ctx, userID, wordCount)
}

func (m *mockReflectionService) GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error) {
	return m.getReflectionFn(ctx, reflectionID)
}

func (m *mockReflectionService) ListUserReflections(ctx context.Context, userID string) ([]models.Reflection, error) {
	return m.listUserReflectionsFn(ctx, userID)
}

type mockJourneyService struct {
	summaryFn func(ctx context.Context, userID string) (models.JourneySummary, error)
}

func (m *mockJourneyService) Summary(ctx context.Context, userID string) (models.JourneySummary, error) {
	return m.summaryFn(ctx, userID)
}

type mockHealthService struct {
	healthFn func(ctx context.Context) (models.Health, error)
}

func (m *mockHealthService) Health(ctx context.Context) (models.Health, error) {
	return m.healthFn(ctx)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testServerConfig = config.Server{LoginRateLimit: 3}

// newTestHandler builds a Handler over svcs. Nil services stay nil.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs == nil {
		svcs = &service.Services{}
	}
	return NewHandler(svcs, testServerConfig, logger.Nop())
}

// tokenFor returns an AuthService that signs "token-<user_id>".
func tokenFor() *mockAuthService {
	return &mockAuthService{
		createTokenFn: func(_ context.Context, u models.User) (models.Token, error) {
			return models.Token{SignedString: "token-" + u.UserID, UserID: u.UserID}, nil
		},
		parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
			if !strings.HasPrefix(s, "token-") {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: strings.TrimPrefix(s, "token-")}, nil
		},
	}
}

// jsonBody serialises v into a request body.
func jsonBody(t *testing.T, v any) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

// withURLParams attaches chi route parameters to r so handlers can be called
// directly.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// contextWithUserID mimics a request that passed the auth middleware.
func contextWithUserID(r *http.Request, userID string) context.Context {
	return context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
}

// envelope is the decoded response body with raw data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func sampleUser() models.User {
	return models.User{
		UserID:        "GUEST_0192",
		Name:          "Ada",
		Status:        "student",
		ConfusionArea: "algorithms",
		StruggleType:  "focus",
		JourneyDays:   7,
		CurrentDay:    1,
		UserType:      models.UserTypeGuest,
	}
}
