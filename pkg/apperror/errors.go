package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger business rules ----

func ErrInvalidAmount() *AppError {
	return New("AMOUNT_INVALID", "Amount must be > 0", http.StatusBadRequest)
}

func ErrInvalidRole() *AppError {
	return New("ROLE_INVALID", "Role must be USER or ADMIN", http.StatusBadRequest)
}

func ErrSelfTransfer() *AppError {
	return New("SELF_TRANSFER", "Cannot transfer to the same account", http.StatusBadRequest)
}

func ErrUsernameTaken() *AppError {
	return New("USERNAME_TAKEN", "Username is already taken", http.StatusConflict)
}

func ErrUserNotFound() *AppError {
	return New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
}

func ErrSenderNotFound() *AppError {
	return New("SENDER_NOT_FOUND", "Sender not found", http.StatusNotFound)
}

func ErrReceiverNotFound() *AppError {
	return New("RECEIVER_NOT_FOUND", "Receiver not found", http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("INSUFFICIENT_FUNDS", "Insufficient funds", http.StatusUnprocessableEntity)
}

// ---- Authentication ----

func ErrInvalidCredentials() *AppError {
	return New("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("TOKEN_INVALID", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("FORBIDDEN", "Access denied", http.StatusForbidden)
}

// ---- Rate limiting ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_LIMITED", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & infrastructure ----

// InternalError wraps an unexpected infrastructure failure. It aborts the
// enclosing atomic unit and is never retried by the core.
func InternalError(err error) *AppError {
	return Wrap("INTERNAL", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a 400 with a request-specific message.
func Validation(message string) *AppError {
	return New("VALIDATION_FAILED", message, http.StatusBadRequest)
}
