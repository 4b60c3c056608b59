// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the clearnext HTTP API.
//
// [NewHTTPServerAdapter] returns a [ServerAdapter] that speaks the JSON
// envelope protocol, keeps the bearer token issued by guest creation,
// registration or login, and maps failure statuses to the sentinel errors in
// errors.go so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/clearnext/models"
)

// ServerAdapter defines communication with the clearnext server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	// Token returns the stored bearer token or "".
	Token() string

	// CreateGuest, Register and Login store the issued token on success.
	CreateGuest(ctx context.Context, req models.GuestRequest) (models.UserResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.UserResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.UserResult, error)

	GetUser(ctx context.Context, userID string) (models.User, error)
	// UpdateUser requires the token of the same user.
	UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (models.User, error)
	JourneySummary(ctx context.Context, userID string) (models.JourneySummary, error)

	// TodayTask fetches the task of the user's current day. mood may be "".
	TodayTask(ctx context.Context, userID, mood string) (models.TodayTask, error)
	// TaskStatus reports whether a new task may be fetched now.
	TaskStatus(ctx context.Context, userID string) (models.TaskStatus, error)
	CompleteTask(ctx context.Context, taskID, response string) (models.TaskCompletion, error)
	ListUserTasks(ctx context.Context, userID string) (models.TasksData, error)
	GetTask(ctx context.Context, taskID string) (models.Task, error)

	SubmitReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionSubmission, error)
	ValidateReflection(ctx context.Context, req models.ReflectionRequest) (models.ReflectionCheck, error)
	ListUserReflections(ctx context.Context, userID string) (models.ReflectionsData, error)
	GetReflection(ctx context.Context, reflectionID string) (models.Reflection, error)

	// Health returns the health report. A degraded service yields both the
	// report and an error wrapping [ErrServiceUnavailable].
	Health(ctx context.Context) (models.Health, error)
}
