package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// MarkdownRenderer turns a post's raw markdown into HTML.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}

// PostService provides post operations.
type PostService interface {
	// CreatePost appends a post to topicID. When replyToPostID is set the
	// target must be in the same topic. The returned post is fully hydrated.
	CreatePost(
		ctx context.Context,
		topicID int64,
		userID uuid.UUID,
		message string,
		replyToPostID *int64,
	) (*domain.Post, error)
}

type postServiceImpl struct {
	transactor store.Transactor
	topics     store.TopicStore
	posts      store.PostStore
	renderer   MarkdownRenderer
	logger     *slog.Logger
}

// NewPostService creates a PostService.
// It returns an error if any of the required dependencies are nil.
func NewPostService(
	transactor store.Transactor,
	topics store.TopicStore,
	posts store.PostStore,
	renderer MarkdownRenderer,
	logger *slog.Logger,
) (PostService, error) {
	newErr := func(msg string) error {
		return &ServiceError{Service: "post", Operation: "create_service", Message: msg}
	}
	switch {
	case transactor == nil:
		return nil, newErr("transactor cannot be nil")
	case topics == nil:
		return nil, newErr("topics cannot be nil")
	case posts == nil:
		return nil, newErr("posts cannot be nil")
	case renderer == nil:
		return nil, newErr("renderer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &postServiceImpl{
		transactor: transactor,
		topics:     topics,
		posts:      posts,
		renderer:   renderer,
		logger:     logger.With("component", "post_service"),
	}, nil
}

// CreatePost implements PostService. The topic row stays locked from the
// reply check until the topic's highest post is advanced, so concurrent
// posts to one topic are serialized.
func (s *postServiceImpl) CreatePost(
	ctx context.Context,
	topicID int64,
	userID uuid.UUID,
	message string,
	replyToPostID *int64,
) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Post
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		topics := s.topics.WithTx(tx)
		posts := s.posts.WithTx(tx)

		topic, err := topics.GetByIDForUpdate(ctx, topicID)
		if err != nil {
			log.Debug("post topic lookup failed", "error", err, "topic_id", topicID)
			return NewServiceError("post", "create_post", "failed to lock topic", err)
		}

		var target *domain.Post
		if replyToPostID != nil {
			target, err = posts.GetByID(ctx, *replyToPostID)
			if err != nil {
				log.Debug("reply target lookup failed", "error", err, "reply_to_post_id", *replyToPostID)
				return NewServiceError("post", "create_post", "failed to load reply target", err)
			}
		}

		post, err := domain.NewPost(topic.ID, userID, message, target)
		if err != nil {
			return err
		}

		post.Message, err = s.renderer.Render(post.Raw)
		if err != nil {
			return NewServiceError("post", "create_post", "failed to render message", err)
		}

		if err := posts.Create(ctx, post); err != nil {
			log.Error("failed to create post",
				"error", err,
				"topic_id", topicID,
				"user_id", userID)
			return NewServiceError("post", "create_post", "failed to save post", err)
		}

		if err := topics.RecordPost(ctx, topic.ID, post.ID, userID, post.CreatedAt); err != nil {
			log.Error("failed to advance topic",
				"error", err,
				"topic_id", topicID,
				"post_id", post.ID)
			return NewServiceError("post", "create_post", "failed to update topic", err)
		}

		created, err = posts.GetByID(ctx, post.ID)
		if err != nil {
			return NewServiceError("post", "create_post", "failed to reload post", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("post created",
		"post_id", created.ID,
		"topic_id", topicID,
		"user_id", userID)
	return created, nil
}
