package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest},
		{"validation", NewValidationError("invalid"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized},
		{"not found", NewNotFoundError(""), http.StatusNotFound},
		{"conflict", NewConflictError("taken"), http.StatusConflict},
		{"internal", NewInternalError(""), http.StatusInternalServerError},
		{"bad gateway", NewBadGatewayError("upstream broke"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestUpstreamErrorPinsStatus(t *testing.T) {
	err := NewUpstreamError(http.StatusTooManyRequests, "quota exceeded", `{"error":{}}`)

	assert.Equal(t, CodeUpstreamError, err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.StatusCode())
	assert.Equal(t, "quota exceeded", err.Message)
	assert.Equal(t, `{"error":{}}`, err.Details)
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "whatever"))
	})

	t.Run("app error passes through", func(t *testing.T) {
		orig := NewConflictError("taken")
		assert.Same(t, orig, Wrap(orig, "ignored"))
	})

	t.Run("plain error becomes internal with cause", func(t *testing.T) {
		cause := errors.New("disk full")
		wrapped := Wrap(cause, "Server error")

		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.Equal(t, "Server error", wrapped.Message)
		assert.ErrorIs(t, wrapped, cause)
	})
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(NewNotFoundError("")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("anything else")))
}
