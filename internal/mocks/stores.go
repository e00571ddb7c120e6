package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
)

// calls counts invocations per method name.
type calls struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *calls) record(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[method]++
}

// Calls returns how many times method was invoked.
func (c *calls) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[method]
}

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	calls
	GetOrCreateFn func(ctx context.Context, category *domain.Category) (bool, error)
	GetByIDFn     func(ctx context.Context, id int64) (*domain.Category, error)
	ListFn        func(ctx context.Context, filter store.CategoryFilter, page store.Page) ([]*domain.Category, error)
	CountFn       func(ctx context.Context, filter store.CategoryFilter) (int, error)
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// GetOrCreate implements store.CategoryStore
func (m *MockCategoryStore) GetOrCreate(ctx context.Context, category *domain.Category) (bool, error) {
	m.record("GetOrCreate")
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, category)
	}
	return true, nil
}

// GetByID implements store.CategoryStore
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrCategoryNotFound
}

// List implements store.CategoryStore
func (m *MockCategoryStore) List(
	ctx context.Context,
	filter store.CategoryFilter,
	page store.Page,
) ([]*domain.Category, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return []*domain.Category{}, nil
}

// Count implements store.CategoryStore
func (m *MockCategoryStore) Count(ctx context.Context, filter store.CategoryFilter) (int, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// MockTopicStore implements store.TopicStore for testing
type MockTopicStore struct {
	calls
	CreateFn           func(ctx context.Context, topic *domain.Topic) error
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Topic, error)
	GetByIDForUpdateFn func(ctx context.Context, id int64) (*domain.Topic, error)
	ListFn             func(ctx context.Context, filter store.TopicFilter, page store.Page) ([]*domain.Topic, error)
	CountFn            func(ctx context.Context, filter store.TopicFilter) (int, error)
	RecordPostFn       func(ctx context.Context, topicID, postID int64, userID uuid.UUID, at time.Time) error
}

var _ store.TopicStore = (*MockTopicStore)(nil)

// Create implements store.TopicStore
func (m *MockTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, topic)
	}
	return nil
}

// GetByID implements store.TopicStore
func (m *MockTopicStore) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTopicNotFound
}

// GetByIDForUpdate implements store.TopicStore
func (m *MockTopicStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Topic, error) {
	m.record("GetByIDForUpdate")
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// List implements store.TopicStore
func (m *MockTopicStore) List(
	ctx context.Context,
	filter store.TopicFilter,
	page store.Page,
) ([]*domain.Topic, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return []*domain.Topic{}, nil
}

// Count implements store.TopicStore
func (m *MockTopicStore) Count(ctx context.Context, filter store.TopicFilter) (int, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// RecordPost implements store.TopicStore
func (m *MockTopicStore) RecordPost(
	ctx context.Context,
	topicID, postID int64,
	userID uuid.UUID,
	at time.Time,
) error {
	m.record("RecordPost")
	if m.RecordPostFn != nil {
		return m.RecordPostFn(ctx, topicID, postID, userID, at)
	}
	return nil
}

// WithTx implements store.TopicStore; the mock ignores the transaction.
func (m *MockTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return m
}

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	calls
	CreateFn  func(ctx context.Context, post *domain.Post) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Post, error)
	ListFn    func(ctx context.Context, filter store.PostFilter, page store.Page) ([]*domain.Post, error)
	CountFn   func(ctx context.Context, filter store.PostFilter) (int, error)
}

var _ store.PostStore = (*MockPostStore)(nil)

// Create implements store.PostStore
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}
	return nil
}

// GetByID implements store.PostStore
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrPostNotFound
}

// List implements store.PostStore
func (m *MockPostStore) List(
	ctx context.Context,
	filter store.PostFilter,
	page store.Page,
) ([]*domain.Post, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return []*domain.Post{}, nil
}

// Count implements store.PostStore
func (m *MockPostStore) Count(ctx context.Context, filter store.PostFilter) (int, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// WithTx implements store.PostStore; the mock ignores the transaction.
func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	calls
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

// GetByID implements store.UserStore
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements store.UserStore
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.record("GetByUsername")
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, store.ErrUserNotFound
}

// MockTransactor implements store.Transactor by calling fn with a nil tx.
type MockTransactor struct {
	calls
	Err error // returned instead of running fn when set
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTransaction implements store.Transactor
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.record("RunInTransaction")
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
