package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockCategoryStore mocks store.CategoryStore
type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) GetOrCreate(ctx context.Context, category *domain.Category) (bool, error) {
	args := m.Called(ctx, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *MockCategoryStore) List(
	ctx context.Context,
	filter store.CategoryFilter,
	page store.Page,
) ([]*domain.Category, error) {
	args := m.Called(ctx, filter, page)
	categories, _ := args.Get(0).([]*domain.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryStore) Count(ctx context.Context, filter store.CategoryFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockTopicStore mocks store.TopicStore
type MockTopicStore struct {
	mock.Mock
}

func (m *MockTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

func (m *MockTopicStore) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	topic, _ := args.Get(0).(*domain.Topic)
	return topic, args.Error(1)
}

func (m *MockTopicStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Topic, error) {
	args := m.Called(ctx, id)
	topic, _ := args.Get(0).(*domain.Topic)
	return topic, args.Error(1)
}

func (m *MockTopicStore) List(
	ctx context.Context,
	filter store.TopicFilter,
	page store.Page,
) ([]*domain.Topic, error) {
	args := m.Called(ctx, filter, page)
	topics, _ := args.Get(0).([]*domain.Topic)
	return topics, args.Error(1)
}

func (m *MockTopicStore) Count(ctx context.Context, filter store.TopicFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTopicStore) RecordPost(
	ctx context.Context,
	topicID, postID int64,
	userID uuid.UUID,
	at time.Time,
) error {
	args := m.Called(ctx, topicID, postID, userID, at)
	return args.Error(0)
}

func (m *MockTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return m
}

// MockPostStore mocks store.PostStore
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*domain.Post)
	return post, args.Error(1)
}

func (m *MockPostStore) List(
	ctx context.Context,
	filter store.PostFilter,
	page store.Page,
) ([]*domain.Post, error) {
	args := m.Called(ctx, filter, page)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

func (m *MockPostStore) Count(ctx context.Context, filter store.PostFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// fakeTransactor runs the function without a real transaction and records
// whether it reported failure.
type fakeTransactor struct {
	calls   int
	lastErr error
}

func (f *fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	f.calls++
	f.lastErr = fn(ctx, nil)
	return f.lastErr
}

// stubRenderer wraps source in a paragraph.
type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(source string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + source + "</p>\n", nil
}

var errDatabase = errors.New("database unavailable")
