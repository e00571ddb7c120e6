package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postServiceFixture struct {
	tx     *fakeTransactor
	topics *MockTopicStore
	posts  *MockPostStore
	svc    PostService
}

func newPostServiceFixture(t *testing.T, renderer MarkdownRenderer) *postServiceFixture {
	t.Helper()
	f := &postServiceFixture{
		tx:     &fakeTransactor{},
		topics: new(MockTopicStore),
		posts:  new(MockPostStore),
	}
	svc, err := NewPostService(f.tx, f.topics, f.posts, renderer, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewPostService_RequiresDependencies(t *testing.T) {
	tx, topics, posts, renderer := &fakeTransactor{}, new(MockTopicStore), new(MockPostStore), stubRenderer{}

	_, err := NewPostService(nil, topics, posts, renderer, nil)
	assert.Error(t, err)
	_, err = NewPostService(tx, nil, posts, renderer, nil)
	assert.Error(t, err)
	_, err = NewPostService(tx, topics, nil, renderer, nil)
	assert.Error(t, err)
	_, err = NewPostService(tx, topics, posts, nil, nil)
	assert.Error(t, err)
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	topic := &domain.Topic{ID: 5, Title: "Hello", Slug: "hello", CategoryID: 1, UserID: alice}

	t.Run("top level post", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})

		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)
		f.posts.On("Create", ctx, mock.MatchedBy(func(p *domain.Post) bool {
			return p.TopicID == 5 && p.UserID == bob && p.Raw == "hi *there*" &&
				p.Message == "<p>hi *there*</p>\n" && p.ReplyToPostID == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Post).ID = 20
		}).Return(nil)
		f.topics.On("RecordPost", ctx, int64(5), int64(20), bob, mock.Anything).Return(nil)
		hydrated := &domain.Post{ID: 20, TopicID: 5, UserID: bob}
		f.posts.On("GetByID", ctx, int64(20)).Return(hydrated, nil)

		post, err := f.svc.CreatePost(ctx, 5, bob, "hi *there*", nil)
		require.NoError(t, err)
		assert.Same(t, hydrated, post)
		assert.Equal(t, 1, f.tx.calls)
		f.topics.AssertExpectations(t)
		f.posts.AssertExpectations(t)
	})

	t.Run("reply inherits target author and thread root", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})

		root := int64(11)
		target := &domain.Post{ID: 12, TopicID: 5, UserID: alice, ReplyBelowPostID: &root}
		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)
		f.posts.On("GetByID", ctx, int64(12)).Return(target, nil).Once()
		f.posts.On("Create", ctx, mock.MatchedBy(func(p *domain.Post) bool {
			return p.ReplyToPostID != nil && *p.ReplyToPostID == 12 &&
				p.ReplyToUserID != nil && *p.ReplyToUserID == alice &&
				p.ReplyBelowPostID != nil && *p.ReplyBelowPostID == 11
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Post).ID = 21
		}).Return(nil)
		f.topics.On("RecordPost", ctx, int64(5), int64(21), bob, mock.Anything).Return(nil)
		f.posts.On("GetByID", ctx, int64(21)).Return(&domain.Post{ID: 21}, nil).Once()

		replyTo := int64(12)
		post, err := f.svc.CreatePost(ctx, 5, bob, "agreed", &replyTo)
		require.NoError(t, err)
		assert.Equal(t, int64(21), post.ID)
		f.posts.AssertExpectations(t)
	})

	t.Run("reply outside topic", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})

		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)
		f.posts.On("GetByID", ctx, int64(30)).Return(&domain.Post{ID: 30, TopicID: 6, UserID: alice}, nil)

		replyTo := int64(30)
		_, err := f.svc.CreatePost(ctx, 5, bob, "wrong thread", &replyTo)
		assert.ErrorIs(t, err, domain.ErrReplyOutsideTopic)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Error(t, f.tx.lastErr, "transaction must roll back")
	})

	t.Run("unknown topic", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})
		f.topics.On("GetByIDForUpdate", ctx, int64(404)).Return(nil, store.ErrTopicNotFound)

		_, err := f.svc.CreatePost(ctx, 404, bob, "hello", nil)
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("unknown reply target", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})
		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)
		f.posts.On("GetByID", ctx, int64(999)).Return(nil, store.ErrPostNotFound)

		replyTo := int64(999)
		_, err := f.svc.CreatePost(ctx, 5, bob, "hello", &replyTo)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("blank message", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})
		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)

		_, err := f.svc.CreatePost(ctx, 5, bob, "  \n ", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})

	t.Run("render failure is wrapped", func(t *testing.T) {
		renderErr := errors.New("renderer exploded")
		f := newPostServiceFixture(t, stubRenderer{err: renderErr})
		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)

		_, err := f.svc.CreatePost(ctx, 5, bob, "hello", nil)
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.ErrorIs(t, err, renderErr)
	})

	t.Run("topic update failure rolls back", func(t *testing.T) {
		f := newPostServiceFixture(t, stubRenderer{})
		f.topics.On("GetByIDForUpdate", ctx, int64(5)).Return(topic, nil)
		f.posts.On("Create", ctx, mock.Anything).Return(nil)
		f.topics.On("RecordPost", ctx, int64(5), mock.Anything, bob, mock.Anything).Return(errDatabase)

		_, err := f.svc.CreatePost(ctx, 5, bob, "hello", nil)
		assert.ErrorIs(t, err, errDatabase)
		assert.Error(t, f.tx.lastErr)
		f.posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
