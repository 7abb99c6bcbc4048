// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

// Package validators enforces input rules on user-provided content before it
// reaches the network or the local queue.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Implementations are injected into services so the same rules apply to both
// the online submission path and the offline capture path.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
