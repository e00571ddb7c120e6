package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
)

// TopicFilter narrows topic listings. Nil/zero fields do not filter.
type TopicFilter struct {
	Slug         *string
	CategoryID   *int64
	CategorySlug *string
}

// TopicStore defines the interface for topic persistence.
// Read methods return topics with User and LastPostUser populated.
type TopicStore interface {
	// Create inserts a new topic and sets its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	Create(ctx context.Context, topic *domain.Topic) error

	// GetByID retrieves a topic by its ID.
	// Returns ErrTopicNotFound if the topic does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Topic, error)

	// GetByIDForUpdate is GetByID holding a row lock until the surrounding
	// transaction ends. Only meaningful on a store returned by WithTx.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Topic, error)

	// List returns topics matching filter, most recently active first.
	List(ctx context.Context, filter TopicFilter, page Page) ([]*domain.Topic, error)

	// Count returns the number of topics matching filter.
	Count(ctx context.Context, filter TopicFilter) (int, error)

	// RecordPost advances the topic's highest post and last poster.
	// Returns ErrTopicNotFound if the topic does not exist.
	RecordPost(ctx context.Context, topicID, postID int64, userID uuid.UUID, at time.Time) error

	// WithTx returns a TopicStore bound to tx.
	WithTx(tx *sql.Tx) TopicStore
}
