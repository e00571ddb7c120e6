package store

import (
	"errors"
	"fmt"
)

// Store errors. Implementations wrap driver errors in these so callers
// never depend on a particular database.
var (
	// ErrNotFound means no row matched. The per-entity errors wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means a unique key is already taken.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means a row broke a check, not-null or unnamed
	// foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed covers begin/commit failures and exhausted retries.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrTopicNotFound    = fmt.Errorf("%w: topic", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("%w: post", ErrNotFound)

	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
