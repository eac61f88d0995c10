// Package errors provides custom error types for the Coinvault API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Coin errors.
var (
	ErrCoinNotFound    = &AppError{Code: "COIN_NOT_FOUND", Message: "Coin not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSymbol = &AppError{Code: "DUPLICATE_SYMBOL", Message: "A coin with this symbol already exists", StatusCode: http.StatusConflict}
)

// Trade errors.
var (
	ErrInsufficientSupply = &AppError{Code: "INSUFFICIENT_SUPPLY", Message: "Insufficient coins available", StatusCode: http.StatusBadRequest}
	ErrInvalidTradeSide   = &AppError{Code: "INVALID_TRADE_SIDE", Message: "Trade side must be buy or sell", StatusCode: http.StatusBadRequest}
	// ErrStorageFailure is returned when the ledger or supply store is
	// unavailable. The request may be retried by the caller; the trade
	// state is unchanged unless the compensation path also failed, which
	// is logged separately as an inconsistency alert.
	ErrStorageFailure = &AppError{Code: "STORAGE_FAILURE", Message: "Trade storage is temporarily unavailable", StatusCode: http.StatusInternalServerError}
)
