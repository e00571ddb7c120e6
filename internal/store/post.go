package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
)

// PostFilter narrows post listings. Nil/zero fields do not filter.
type PostFilter struct {
	TopicID           *int64
	TopicSlug         *string
	TopicCategoryID   *int64
	TopicCategorySlug *string
	UserID            *uuid.UUID
	Username          *string
	ReplyToPostID     *int64
	ReplyToPostIsNull *bool
	ReplyToPostUserID *uuid.UUID
}

// PostStore defines the interface for post persistence.
// Read methods return posts with User, ReplyToUser and LastEditor populated.
type PostStore interface {
	// Create inserts a new post and sets its ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// List returns posts matching filter, oldest first.
	List(ctx context.Context, filter PostFilter, page Page) ([]*domain.Post, error)

	// Count returns the number of posts matching filter.
	Count(ctx context.Context, filter PostFilter) (int, error)

	// WithTx returns a PostStore bound to tx.
	WithTx(tx *sql.Tx) PostStore
}
