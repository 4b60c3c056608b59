package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/models"
	"github.com/go-resty/resty/v2"
)

// Config configures [NewHTTPServerAdapter].
type Config struct {
	// HTTPAddress is the server base URL. A missing scheme means http.
	HTTPAddress string
	// RequestTimeout bounds each request, retries included.
	RequestTimeout time.Duration
	// Retries is how many times failed GET requests are repeated.
	Retries int
}

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// Returns an error if cfg.HTTPAddress is empty or not a valid URL.
func NewHTTPServerAdapter(cfg Config, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := utils.NewHTTPClient(baseURL, timeout, cfg.Retries)
	client.SetLogger(restyLogger{logger})

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) CreateGuest(ctx context.Context, req models.GuestRequest) (models.UserResult, error) {
	return h.authenticate(ctx, "create guest", "/users/guest", req)
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserResult, error) {
	return h.authenticate(ctx, "register", "/users/register", req)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.UserResult, error) {
	return h.authenticate(ctx, "login", "/users/login", req)
}

// authenticate posts body to path and keeps the token from the
// Authorization response header.
func (h *httpServerAdapter) authenticate(ctx context.Context, op, path string, body any) (models.UserResult, error) {
	resp, err := h.request(ctx).SetBody(body).Post(path)
	result, err := decode[models.UserResult](op, resp, err)
	if err != nil {
		return result, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return result, fmt.Errorf("%s parse bearer token: %w", op, err)
	}

	h.SetToken(token)
	return result, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID string) (models.User, error) {
	resp, err := h.request(ctx).SetPathParam("user_id", userID).Get("/users/{user_id}")
	data, err := decode[models.UserData]("get user", resp, err)
	return data.User, err
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error) {
	resp, err := h.request(ctx).
		SetPathParam("user_id", userID).
		SetBody(req).
		Put("/users/{user_id}")
	data, err := decode[models.UserData]("update user", resp, err)
	return data.User, err
}

func (h *httpServerAdapter) JourneySummary(ctx context.Context, userID string) (models.JourneySummary, error) {
	resp, err := h.request(ctx).SetPathParam("user_id", userID).Get("/users/{user_id}/journey")
	data, err := decode[models.JourneyData]("journey summary", resp, err)
	return data.Summary, err
}

func (h *httpServerAdapter) TodayTask(ctx context.Context, userID, mood string) (models.TodayTask, error) {
	r := h.request(ctx).SetPathParam("user_id", userID)
	if mood != "" {
		r.SetQueryParam("mood", mood)
	}
	resp, err := r.Get("/tasks/today/{user_id}")
	return decode[models.TodayTask]("today task", resp, err)
}

func (h *httpServerAdapter) TaskStatus(ctx context.Context, userID string) (models.TaskStatus, error) {
	resp, err := h.request(ctx).SetPathParam("user_id", userID).Get("/tasks/status/{user_id}")
	return decode[models.TaskStatus]("task status", resp, err)
}

func (h *httpServerAdapter) CompleteTask(ctx context.Context, taskID, response string) (models.TaskCompletion, error) {
	r := h.request(ctx).SetPathParam("task_id", taskID)
	if response != "" {
		r.SetBody(models.CompleteTaskRequest{Response: response})
	}
	resp, err := r.Post("/tasks/{task_id}/complete")
	return decode[models.TaskCompletion]("complete task", resp, err)
}

func (h *httpServerAdapter) ListUserTasks(ctx context.Context, userID string) (models.TasksData, error) {
	resp, err := h.request(ctx).SetPathParam("user_id", userID).Get("/tasks/user/{user_id}")
	return decode[models.TasksData]("list user tasks", resp, err)
}

func (h *httpServerAdapter) GetTask(ctx context.Context, taskID string) (models.Task, error) {
	resp, err := h.request(ctx).SetPathParam("task_id", taskID).Get("/tasks/{task_id}")
	data, err := decode[models.TaskData]("get task", resp, err)
	return data.Task, err
}

func (h *httpServerAdapter) SubmitReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error) {
	resp, err := h.request(ctx).SetBody(req).Post("/reflections/")
	return decode[models.ReflectionSubmission]("submit reflection", resp, err)
}

func (h *httpServerAdapter) ValidateReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionCheck, error) {
	resp, err := h.request(ctx).SetBody(req).Post("/reflections/validate")
	return decode[models.ReflectionCheck]("validate reflection", resp, err)
}

func (h *httpServerAdapter) ListUserReflections(ctx context.Context, userID string) (models.ReflectionsData, error) {
	resp, err := h.request(ctx).SetPathParam("user_id", userID).Get("/reflections/user/{user_id}")
	return decode[models.ReflectionsData]("list user reflections", resp, err)
}

func (h *httpServerAdapter) GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error) {
	resp, err := h.request(ctx).SetPathParam("reflection_id", reflectionID).Get("/reflections/{reflection_id}")
	data, err := decode[models.ReflectionData]("get reflection", resp, err)
	return data.Reflection, err
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.Health, error) {
	resp, err := h.request(ctx).Get("/health")
	return decode[models.Health]("health", resp, err)
}

// request starts a JSON request carrying the bearer token when one is set.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decode unwraps the data field of the response envelope. Data sent along
// with a failure status is still decoded and returned next to the error.
func decode[T any](op string, resp *resty.Response, err error) (T, error) {
	var env struct {
		Data T `json:"data"`
	}
	if err != nil {
		return env.Data, fmt.Errorf("%s request: %w", op, err)
	}

	mapped := mapHTTPError(resp)
	if body := resp.Body(); len(body) > 0 {
		if jerr := json.Unmarshal(body, &env); jerr != nil && mapped == nil {
			return env.Data, fmt.Errorf("decode %s response: %w", op, jerr)
		}
	}
	if mapped != nil {
		return env.Data, fmt.Errorf("%s: %w", op, mapped)
	}

	return env.Data, nil
}

// restyLogger routes resty's own diagnostics to zerolog.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any) { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }
