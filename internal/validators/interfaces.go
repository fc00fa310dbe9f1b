// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user-supplied form input before it reaches the
// service layer.
//
// Validators collect every failing field in one pass and return them as
// [FieldErrors], so the UI can show all problems of a submission at once.
// Passing field names to Validate restricts the check to those fields.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
