// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and enforcement of business
// rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate request structures with
//     optional field-level scoping. Failures are *ValidationError values
//     whose message is safe to show to the client.
//   - ReflectionValidator: hard and soft checks of a reflection submission.
//     Hard failures block the submission; soft findings are only reported.
//   - TaskWindow: the time-of-day gate for fetching today's task.
package validators

import (
	"context"

	"github.com/MKhiriev/clearnext/models"
)

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// ReflectionChecker validates reflection submissions.
type ReflectionChecker interface {
	// ValidateReflection returns whether req passes the hard checks, a
	// message describing the outcome and the full structured analysis.
	ValidateReflection(ctx context.Context, req models.ReflectionRequest) (bool, string, models.ValidationDetails)
}
