package store

import (
	"context"

	"github.com/phrazzld/discuss-api/internal/domain"
)

// CategoryFilter narrows category listings. Zero values do not filter.
type CategoryFilter struct {
	Slug *string
}

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// GetOrCreate looks the category up by slug and inserts it when absent.
	// It is atomic with respect to concurrent callers using the same slug.
	// On return category holds the stored row; created reports whether this
	// call inserted it.
	GetOrCreate(ctx context.Context, category *domain.Category) (created bool, err error)

	// GetByID retrieves a category by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// List returns categories matching filter, ordered by ID.
	List(ctx context.Context, filter CategoryFilter, page Page) ([]*domain.Category, error)

	// Count returns the number of categories matching filter.
	Count(ctx context.Context, filter CategoryFilter) (int, error)
}
