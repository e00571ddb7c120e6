package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps these to HTTP status codes.
var (
	// ErrCategoryNotFound indicates a referenced category does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTopicNotFound indicates a referenced topic does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrPostNotFound indicates a referenced post does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPostNotFound = errors.New("post not found")

	// ErrUserNotFound indicates the acting user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates registration with a username already in use.
	// API layer should map this to HTTP 409 Conflict.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken indicates registration with an email already in use.
	// API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials indicates a failed login. It does not say which
	// of username or password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// storeSentinels maps store errors onto the service sentinels callers see.
var storeSentinels = []struct {
	from error
	to   error
}{
	{store.ErrCategoryNotFound, ErrCategoryNotFound},
	{store.ErrTopicNotFound, ErrTopicNotFound},
	{store.ErrPostNotFound, ErrPostNotFound},
	{store.ErrUserNotFound, ErrUserNotFound},
	{store.ErrUsernameExists, ErrUsernameTaken},
	{store.ErrEmailExists, ErrEmailTaken},
}

var serviceSentinels = []error{
	ErrCategoryNotFound,
	ErrTopicNotFound,
	ErrPostNotFound,
	ErrUserNotFound,
	ErrUsernameTaken,
	ErrEmailTaken,
	ErrInvalidCredentials,
}

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string // e.g. "post"
	Operation string // e.g. "create_post"
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s service %s failed", e.Service, e.Operation)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError classifies err. Validation errors and service sentinels
// pass through unchanged, store sentinels are translated, and anything else
// is wrapped in a *ServiceError.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	for _, sentinel := range serviceSentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	for _, m := range storeSentinels {
		if errors.Is(err, m.from) {
			return m.to
		}
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
