// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stellar/internal/platform/apperr"
	"github.com/taibuivan/stellar/internal/platform/respond"
)

/*
TestError_Shapes verifies the two error body shapes and their status codes.
*/
func TestError_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "not_found",
			err:        apperr.NotFound("Scientist"),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "Scientist not found"},
		},
		{
			name: "validation",
			err: apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: "name", Message: "Name has to be present"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   map[string]any{"errors": []any{"Name has to be present"}},
		},
		{
			name:       "constraint",
			err:        apperr.ConstraintViolation("Planet 9 does not exist", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   map[string]any{"errors": []any{"Planet 9 does not exist"}},
		},
		{
			name:       "unknown_error_is_hidden",
			err:        errors.New("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "An unexpected error occurred"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

/*
TestJSON_Indented checks that payloads are written in multi-line form.
*/
func TestJSON_Indented(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, map[string]string{"name": "Mars"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(recorder.Body.String(), "\n  \"name\": \"Mars\""))
}

/*
TestNoContent writes an empty body.
*/
func TestNoContent(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.NoContent(recorder)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}
