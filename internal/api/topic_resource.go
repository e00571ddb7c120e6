package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/store"
)

// TopicResourceName is the URL segment of the topic resource.
const TopicResourceName = "topic"

// CreateTopicRequest is the body of POST /topic/. The author is the
// authenticated user.
type CreateTopicRequest struct {
	requestEnvelope
	Title    string       `json:"title"    validate:"required,notblank,max=255"`
	Category *ResourceRef `json:"category" validate:"required"`
}

var topicSchema = &Schema[*domain.Topic]{
	Resource: TopicResourceName,
	Key:      func(t *domain.Topic) int64 { return t.ID },
	Fields: []FieldSpec[*domain.Topic]{
		URI("category", CategoryResourceName, false, func(t *domain.Topic) (int64, bool) {
			return t.CategoryID, t.CategoryID > 0
		}),
		Scalar("created_at", func(t *domain.Topic) any { return t.CreatedAt }),
		URI("highest_post", PostResourceName, true, func(t *domain.Topic) (int64, bool) {
			return derefID(t.HighestPostID)
		}),
		Scalar("id", func(t *domain.Topic) any { return t.ID }),
		Full("last_post_user", true, userSchema, func(t *domain.Topic) (*domain.User, bool) {
			return t.LastPostUser, t.LastPostUser != nil
		}),
		Scalar("slug", func(t *domain.Topic) any { return t.Slug }),
		Scalar("title", func(t *domain.Topic) any { return t.Title }),
		Scalar("updated_at", func(t *domain.Topic) any { return t.UpdatedAt }),
		Full("user", false, userSchema, func(t *domain.Topic) (*domain.User, bool) {
			return t.User, t.User != nil
		}),
	},
}

var topicFilters = Filters[store.TopicFilter]{
	"slug": {
		Lookups: []string{"exact"},
		Apply: func(f *store.TopicFilter, _, value string) error {
			f.Slug = &value
			return nil
		},
	},
	"category": {
		Lookups: []string{"exact"},
		Apply: func(f *store.TopicFilter, _, value string) (err error) {
			f.CategoryID, err = filterInt64("category", value)
			return err
		},
	},
	"category__id": {
		Lookups: []string{"exact"},
		Apply: func(f *store.TopicFilter, _, value string) (err error) {
			f.CategoryID, err = filterInt64("category__id", value)
			return err
		},
	},
	"category__slug": {
		Lookups: []string{"exact"},
		Apply: func(f *store.TopicFilter, _, value string) error {
			f.CategorySlug = &value
			return nil
		},
	},
}

// TopicResource serves /topic/.
type TopicResource = Resource[*domain.Topic, store.TopicFilter]

// NewTopicResource creates the topic resource.
func NewTopicResource(
	topics store.TopicStore,
	topicService service.TopicService,
	cfg config.APIConfig,
	logger *slog.Logger,
) *TopicResource {
	res := &TopicResource{
		handlerBase: newHandlerBase(cfg, logger),
		name:        TopicResourceName,
		schema:      topicSchema,
		filters:     topicFilters,
		get:         topics.GetByID,
		list:        topics.List,
		count:       topics.Count,
	}
	res.create = func(w http.ResponseWriter, r *http.Request) {
		log := logFor(r, res.logger, "topic_resource")

		userID, ok := requireUserID(w, r, log)
		if !ok {
			return
		}

		var req CreateTopicRequest
		if !res.decodeAndValidate(w, r, &req) {
			return
		}
		req.logRequestedTime(log)

		categoryID, err := req.Category.Resolve("category", cfg.BasePath, CategoryResourceName)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		topic, err := topicService.CreateTopic(r.Context(), req.Title, categoryID, userID)
		if err != nil {
			log.Debug("failed to create topic", "error", err, "category_id", categoryID)
			HandleAPIError(w, r, err, "Failed to create topic")
			return
		}

		res.respond(w, r, http.StatusCreated, topic)
	}
	return res
}

func derefID(id *int64) (int64, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}
