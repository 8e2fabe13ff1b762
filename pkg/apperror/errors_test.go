package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("INSUFFICIENT_FUNDS", "Insufficient funds", http.StatusUnprocessableEntity),
			expected: "[INSUFFICIENT_FUNDS] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("INTERNAL", "Internal server error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[INTERNAL] Internal server error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("INTERNAL", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("AMOUNT_INVALID", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestLedgerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAmount", ErrInvalidAmount(), "AMOUNT_INVALID", 400},
		{"InvalidRole", ErrInvalidRole(), "ROLE_INVALID", 400},
		{"SelfTransfer", ErrSelfTransfer(), "SELF_TRANSFER", 400},
		{"UsernameTaken", ErrUsernameTaken(), "USERNAME_TAKEN", 409},
		{"UserNotFound", ErrUserNotFound(), "USER_NOT_FOUND", 404},
		{"SenderNotFound", ErrSenderNotFound(), "SENDER_NOT_FOUND", 404},
		{"ReceiverNotFound", ErrReceiverNotFound(), "RECEIVER_NOT_FOUND", 404},
		{"InsufficientFunds", ErrInsufficientFunds(), "INSUFFICIENT_FUNDS", 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidCredentials", ErrInvalidCredentials(), "INVALID_CREDENTIALS", 401},
		{"InvalidToken", ErrInvalidToken(), "TOKEN_INVALID", 401},
		{"Forbidden", ErrForbidden(), "FORBIDDEN", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	err := InternalError(inner)
	assert.Equal(t, "INTERNAL", err.Code)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.True(t, errors.Is(err, inner))
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_LIMITED", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestValidation(t *testing.T) {
	err := Validation("amount must have at most 2 decimal places")
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Equal(t, 400, err.HTTPStatus)
	assert.Contains(t, err.Message, "decimal")
}
