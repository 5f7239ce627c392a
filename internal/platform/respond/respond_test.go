// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/respond"
)

/*
TestOK_BareBody verifies successful payloads are written without an envelope.
*/
func TestOK_BareBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]int{"totalBlogs": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"totalBlogs":3}`, recorder.Body.String())
}

/*
TestError_Envelope verifies the status code and JSON shape for typed and untyped errors.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"not_found", apperr.NotFound("Blog"), http.StatusNotFound, apperr.CodeNotFound, "Blog not found"},
		{"unprocessable", apperr.Unprocessable("Status must be one of: DRAFT, PUBLISHED"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable, "Status must be one of: DRAFT, PUBLISHED"},
		{"internal_hides_cause", apperr.InternalMsg("Failed to create blog", errors.New("pq: boom")), http.StatusInternalServerError, apperr.CodeInternal, "Failed to create blog"},
		{"untyped_error", errors.New("driver exploded"), http.StatusInternalServerError, apperr.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

/*
TestError_ValidationDetails verifies field details are forwarded to the client.
*/
func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "title", Message: "This field is required"},
	))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t,
		`{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"title","message":"This field is required"}]}`,
		recorder.Body.String(),
	)
}
