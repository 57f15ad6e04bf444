// Package errors provides structured error handling for the application.
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"

	// Remote advisory failures. All three are treated identically by the
	// dual-path coordinator: the local rule engines take over.
	CodeAIConfiguration     ErrorCode = "AI_CONFIGURATION_ERROR"
	CodeAINetwork           ErrorCode = "AI_NETWORK_ERROR"
	CodeAIMalformedResponse ErrorCode = "AI_MALFORMED_RESPONSE"

	// Business logic errors
	CodeItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUsernameExists     ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	CodeUnsafeItem         ErrorCode = "UNSAFE_ITEM"
	CodeEmptyCart          ErrorCode = "EMPTY_CART"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeEmptyCart:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeNotFound, CodeItemNotFound, CodeUserNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeUsernameExists, CodeUnsafeItem:
		return http.StatusConflict
	case CodeServiceUnavailable, CodeAIConfiguration, CodeAINetwork, CodeAIMalformedResponse:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", strings.Title(resource))
	}
	return NewAppError(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Remote advisory error constructors. The advisory client converts every
// failure mode into one of these so the coordinator can fall back locally
// without inspecting transport details.

// NewAIConfigurationError indicates the advisory credential is absent.
func NewAIConfigurationError() *AppError {
	return NewAppError(
		CodeAIConfiguration,
		"AI advisory not configured",
		"No API credential is configured for the remote advisory service",
	)
}

// NewAINetworkError indicates the advisory endpoint could not be reached.
func NewAINetworkError(cause error) *AppError {
	return NewAppError(
		CodeAINetwork,
		"AI advisory unreachable",
		"Network failure while contacting the remote advisory service",
	).WithCause(cause)
}

// NewAIMalformedResponseError indicates the advisory payload failed parsing
// or shape validation.
func NewAIMalformedResponseError(cause error) *AppError {
	return NewAppError(
		CodeAIMalformedResponse,
		"AI advisory returned malformed response",
		"The remote advisory response could not be parsed into the expected shape",
	).WithCause(cause)
}

// IsAdvisoryFailure reports whether the error is any of the remote advisory
// failure codes that trigger the local fallback path.
func IsAdvisoryFailure(err error) bool {
	code := GetCode(err)
	return code == CodeAIConfiguration || code == CodeAINetwork || code == CodeAIMalformedResponse
}

// Business domain specific errors

// NewItemNotFoundError creates a food item not found error
func NewItemNotFoundError(itemID string) *AppError {
	return NewAppError(
		CodeItemNotFound,
		"Food item not found",
		fmt.Sprintf("Item with ID %s does not exist in the catalog", itemID),
	).WithMetadata("item_id", itemID)
}

// NewUserNotFoundError creates a user not found error
func NewUserNotFoundError(username string) *AppError {
	return NewAppError(
		CodeUserNotFound,
		"User not found",
		fmt.Sprintf("User %s does not exist", username),
	).WithMetadata("username", username)
}

// NewUsernameExistsError creates a username already exists error
func NewUsernameExistsError(username string) *AppError {
	return NewAppError(
		CodeUsernameExists,
		"Username already exists",
		"This username is already taken",
	).WithMetadata("username", username)
}

// NewInvalidCredentialsError creates an invalid credentials error
func NewInvalidCredentialsError() *AppError {
	return NewAppError(
		CodeInvalidCredentials,
		"Invalid credentials",
		"The provided username or password is incorrect",
	)
}

// NewOrderNotFoundError creates an order not found error
func NewOrderNotFoundError(orderID string) *AppError {
	return NewAppError(
		CodeOrderNotFound,
		"Order not found",
		fmt.Sprintf("Order with ID %s does not exist", orderID),
	).WithMetadata("order_id", orderID)
}

// NewUnsafeItemError creates an error for a cart add blocked by a safety
// verdict. The caller may retry with an explicit override.
func NewUnsafeItemError(itemName, reason string) *AppError {
	return NewAppError(
		CodeUnsafeItem,
		"Item flagged unsafe for your health profile",
		reason,
	).WithMetadata("item_name", itemName)
}

// NewEmptyCartError creates an error for checkout with no cart items.
func NewEmptyCartError() *AppError {
	return NewAppError(
		CodeEmptyCart,
		"Cart is empty",
		"Add at least one item before placing an order",
	)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "pkg/errors") {
			builder.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return builder.String()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
