package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/facerelay"
	relayhttp "github.com/sagarc03/facerelay/http"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		errCode string
		message string
	}{
		{
			name:    "not found",
			err:     facerelay.ErrNotFound,
			code:    http.StatusNotFound,
			errCode: "not_found",
			message: "No data available",
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("latest: %w", facerelay.ErrNotFound),
			code:    http.StatusNotFound,
			errCode: "not_found",
			message: "No data available",
		},
		{
			name:    "no file",
			err:     fmt.Errorf("latest file: %w", facerelay.ErrNoFile),
			code:    http.StatusNotFound,
			errCode: "not_found",
			message: "No file available",
		},
		{
			name:    "invalid input",
			err:     facerelay.ErrInvalidInput,
			code:    http.StatusBadRequest,
			errCode: "invalid_input",
			message: "Invalid file name",
		},
		{
			name:    "missing field",
			err:     fmt.Errorf("parse upload: %w", &relayhttp.MissingFieldError{Field: "age"}),
			code:    http.StatusUnprocessableEntity,
			errCode: "invalid_form",
			message: `"message":"missing field \"age\""`,
		},
		{
			name:    "unparseable form",
			err:     fmt.Errorf("parse form: %w: %w", relayhttp.ErrInvalidForm, errors.New("multipart: NextPart: EOF")),
			code:    http.StatusUnprocessableEntity,
			errCode: "invalid_form",
			message: `"message":"Request body is not a valid form"`,
		},
		{
			name:    "too large",
			err:     relayhttp.ErrTooLarge,
			code:    http.StatusRequestEntityTooLarge,
			errCode: "too_large",
			message: "size limit",
		},
		{
			name:    "internal",
			err:     errors.New("some unexpected error"),
			code:    http.StatusInternalServerError,
			errCode: "internal_error",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			relayhttp.HandleError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error":"`+tt.errCode+`"`)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.NotContains(t, rec.Body.String(), "NextPart")
		})
	}
}

func TestMissingFieldError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &relayhttp.MissingFieldError{Field: "mood"})

	assert.ErrorIs(t, err, relayhttp.ErrInvalidForm)
	assert.Equal(t, `wrapped: missing field "mood"`, err.Error())
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	relayhttp.WriteError(rec, http.StatusBadRequest, "bad_request", "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"bad_request"`)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid request"`)
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	err := relayhttp.WriteJSON(rec, http.StatusOK, relayhttp.MessageResponse{Message: "ok"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestWriteJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()

	// Channels cannot be JSON encoded
	err := relayhttp.WriteJSON(rec, http.StatusOK, make(chan int))

	assert.Error(t, err)
}
