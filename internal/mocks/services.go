package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
)

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	calls
	GetOrCreateCategoryFn func(ctx context.Context, title string) (*domain.Category, bool, error)
}

// GetOrCreateCategory implements service.CategoryService
func (m *MockCategoryService) GetOrCreateCategory(
	ctx context.Context,
	title string,
) (*domain.Category, bool, error) {
	m.record("GetOrCreateCategory")
	if m.GetOrCreateCategoryFn != nil {
		return m.GetOrCreateCategoryFn(ctx, title)
	}
	category, err := domain.NewCategory(title)
	if err != nil {
		return nil, false, err
	}
	category.ID = 1
	return category, true, nil
}

// MockTopicService implements service.TopicService for testing
type MockTopicService struct {
	calls
	CreateTopicFn func(ctx context.Context, title string, categoryID int64, userID uuid.UUID) (*domain.Topic, error)
}

// CreateTopic implements service.TopicService
func (m *MockTopicService) CreateTopic(
	ctx context.Context,
	title string,
	categoryID int64,
	userID uuid.UUID,
) (*domain.Topic, error) {
	m.record("CreateTopic")
	if m.CreateTopicFn != nil {
		return m.CreateTopicFn(ctx, title, categoryID, userID)
	}
	topic, err := domain.NewTopic(title, categoryID, userID)
	if err != nil {
		return nil, err
	}
	topic.ID = 1
	topic.User = &domain.User{ID: userID, DateJoined: topic.CreatedAt}
	return topic, nil
}

// MockPostService implements service.PostService for testing
type MockPostService struct {
	calls
	CreatePostFn func(
		ctx context.Context,
		topicID int64,
		userID uuid.UUID,
		message string,
		replyToPostID *int64,
	) (*domain.Post, error)
}

// CreatePost implements service.PostService
func (m *MockPostService) CreatePost(
	ctx context.Context,
	topicID int64,
	userID uuid.UUID,
	message string,
	replyToPostID *int64,
) (*domain.Post, error) {
	m.record("CreatePost")
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, topicID, userID, message, replyToPostID)
	}
	post, err := domain.NewPost(topicID, userID, message, nil)
	if err != nil {
		return nil, err
	}
	post.ID = 1
	post.Message = message
	post.ReplyToPostID = replyToPostID
	post.User = &domain.User{ID: userID, DateJoined: post.CreatedAt}
	return post, nil
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	calls
	RegisterFn     func(ctx context.Context, username, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
}

// Register implements service.UserService
func (m *MockUserService) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	m.record("Register")
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return &domain.User{ID: uuid.New(), Username: username, Email: email}, nil
}

// Authenticate implements service.UserService
func (m *MockUserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	m.record("Authenticate")
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return &domain.User{ID: uuid.New(), Username: username}, nil
}
