// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Request validation structs with go-playground/validator tags. Incoming
// bodies are validated before any handler logic runs.
package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate caches struct
// metadata, so a single instance serves all requests.
var validate = validator.New()

// SearchVideosRequest is the body of POST /api/v1/videos/search.
//
// Fields:
//   - Prompt: Free-text search prompt; empty means trending
//   - QuickMode: Request the upstream's cheaper, lower-recall search path
//   - Category: Optional listing filter; "all" or empty passes everything
type SearchVideosRequest struct {
	Prompt    string `json:"prompt" validate:"max=500"`
	QuickMode bool   `json:"quick_mode"`
	Category  string `json:"category" validate:"max=100"`
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

// validateRequest runs validator tags over v and flattens failures into one
// client-facing error. Returns nil when the request is valid.
func validateRequest(v interface{}) *APIError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !isValidationErrors(err, &fieldErrs) {
		return &APIError{
			Code:    ErrCodeValidationFailed,
			Message: "request validation failed",
		}
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: failed %q constraint", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "request validation failed",
		Details: details,
	}
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns this type directly
	if ok {
		*target = ve
	}
	return ok
}
