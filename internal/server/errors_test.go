package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/ats"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "email already registered: a@example.com", (&ErrEmailAlreadyExists{Email: "a@example.com"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "user not found: "+id.String(), (&ErrUserNotFound{UserID: id}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())
	assert.Equal(t, "validation error: weeks - required", (&ErrValidation{Field: "weeks", Message: "required"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{}, http.StatusConflict},
		{"bad credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{}, http.StatusNotFound},
		{"row not found", fmt.Errorf("application x: %w", db.ErrNotFound), http.StatusNotFound},
		{"validation", &ErrValidation{}, http.StatusBadRequest},
		{"empty job text", ats.ErrEmptyJobText, http.StatusBadRequest},
		{"extraction unavailable", ErrExtractionUnavailable, http.StatusServiceUnavailable},
		{"bad completion", fmt.Errorf("wrap: %w", &schemas.ValidationError{}), http.StatusBadGateway},
		{"wrapped typed error", fmt.Errorf("login: %w", &ErrInvalidCredentials{}), http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
