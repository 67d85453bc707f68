// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/olegiv/cargo-site/internal/forms"
)

// maxSubmitBody bounds the size of a submission request body.
const maxSubmitBody = 64 << 10

// Response codes of the submission endpoint.
const (
	CodeValidation = "FORM_VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// Submitter processes a form submission.
type Submitter interface {
	Handle(ctx context.Context, formType string, values map[string]any) (forms.Result, error)
}

// SubmitResponse is the body of every submission response.
type SubmitResponse struct {
	Success bool         `json:"success"`
	Errors  *SubmitError `json:"errors,omitempty"`
}

// SubmitError carries the error code of a failed submission.
type SubmitError struct {
	Code string `json:"code"`
}

// SubmitHandler handles POST /api/submit.
type SubmitHandler struct {
	intake Submitter
	logger *slog.Logger
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(intake Submitter, logger *slog.Logger) *SubmitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmitHandler{intake: intake, logger: logger}
}

// Submit accepts a JSON object or a form-encoded body. The formType field
// selects the form; the remaining fields are the form values.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)

	values, err := decodeSubmission(r)
	if err != nil {
		h.logger.InfoContext(r.Context(), "submission body rejected", "error", err)
		writeSubmitError(w, http.StatusBadRequest, CodeValidation)
		return
	}

	formType, _ := values["formType"].(string)
	if _, err := h.intake.Handle(r.Context(), formType, values); err != nil {
		if errors.Is(err, forms.ErrValidation) {
			writeSubmitError(w, http.StatusBadRequest, CodeValidation)
			return
		}
		writeSubmitError(w, http.StatusInternalServerError, CodeInternal)
		return
	}

	writeJSON(w, http.StatusOK, SubmitResponse{Success: true})
}

func writeSubmitError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, SubmitResponse{Errors: &SubmitError{Code: code}})
}

// decodeSubmission reads the request body into a value map. Form bodies
// use the first value of each key.
func decodeSubmission(r *http.Request) (map[string]any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxSubmitBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("parsing form: %w", err)
		}
		values := make(map[string]any, len(r.PostForm))
		for k, v := range r.PostForm {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
		return values, nil
	default:
		var values map[string]any
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		if values == nil {
			values = map[string]any{}
		}
		return values, nil
	}
}
