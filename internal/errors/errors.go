package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrFailedDecodeRequestBody        = "Failed to decode request body"
	ErrInvalidRequestBody             = "Invalid request body"
	ErrFailedAdjustBalance            = "Failed to adjust balance"
	ErrFailedProcessRefund            = "Failed to process refund"
	ErrFailedPayExpense               = "Failed to pay expense"
	ErrFailedDispatchNotifications    = "Failed to dispatch scheduled notifications"
	ErrSourceIDRequired               = "Payment source ID is required"
	ErrInvalidSourceID                = "Invalid payment source ID"
	ErrSessionRequired                = "Session cookie is required"
	ErrInvalidSession                 = "Invalid or expired session"
	ErrCSRFTokenRequired              = "x-csrf-token header is required"
	ErrInvalidCSRFToken               = "Invalid CSRF token"
	ErrAdminRequired                  = "Admin role is required"
)

type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation failed: %s", e.Message)
}

// CeilingExceededError is returned when a refund amount is larger than the
// available credit or refundable remainder. Nothing is written when it fires.
type CeilingExceededError struct{}

func NewCeilingExceededError() *CeilingExceededError {
	return &CeilingExceededError{}
}

func (e *CeilingExceededError) Error() string {
	return "refund amount exceeds available ceiling"
}

type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

type UnauthorizedError struct {
	Message string
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

type ForbiddenError struct {
	Message string
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
