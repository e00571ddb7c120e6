package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// TopicService provides topic operations.
type TopicService interface {
	// CreateTopic opens a topic in categoryID on behalf of userID and
	// returns it with its author populated.
	CreateTopic(ctx context.Context, title string, categoryID int64, userID uuid.UUID) (*domain.Topic, error)
}

type topicServiceImpl struct {
	categories store.CategoryStore
	topics     store.TopicStore
	logger     *slog.Logger
}

// NewTopicService creates a TopicService.
// It returns an error if any of the required dependencies are nil.
func NewTopicService(
	categories store.CategoryStore,
	topics store.TopicStore,
	logger *slog.Logger,
) (TopicService, error) {
	if categories == nil {
		return nil, &ServiceError{Service: "topic", Operation: "create_service", Message: "categories cannot be nil"}
	}
	if topics == nil {
		return nil, &ServiceError{Service: "topic", Operation: "create_service", Message: "topics cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &topicServiceImpl{
		categories: categories,
		topics:     topics,
		logger:     logger.With("component", "topic_service"),
	}, nil
}

// CreateTopic implements TopicService.
func (s *topicServiceImpl) CreateTopic(
	ctx context.Context,
	title string,
	categoryID int64,
	userID uuid.UUID,
) (*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topic, err := domain.NewTopic(title, categoryID, userID)
	if err != nil {
		log.Debug("rejected topic", "error", err)
		return nil, err
	}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		log.Debug("topic category lookup failed",
			"error", err,
			"category_id", categoryID)
		return nil, NewServiceError("topic", "create_topic", "failed to load category", err)
	}

	if err := s.topics.Create(ctx, topic); err != nil {
		log.Error("failed to create topic",
			"error", err,
			"category_id", categoryID,
			"user_id", userID)
		return nil, NewServiceError("topic", "create_topic", "failed to save topic", err)
	}

	created, err := s.topics.GetByID(ctx, topic.ID)
	if err != nil {
		log.Error("failed to reload created topic",
			"error", err,
			"topic_id", topic.ID)
		return nil, NewServiceError("topic", "create_topic", "failed to reload topic", err)
	}

	log.Info("topic created",
		"topic_id", created.ID,
		"category_id", categoryID,
		"user_id", userID)
	return created, nil
}
