package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/store"
)

// PostResourceName is the URL segment of the post resource.
const PostResourceName = "post"

// CreatePostRequest is the body of POST /post/. The author is the
// authenticated user.
type CreatePostRequest struct {
	requestEnvelope
	Topic       *ResourceRef `json:"topic"         validate:"required"`
	Message     string       `json:"message"       validate:"required,notblank"`
	ReplyToPost *ResourceRef `json:"reply_to_post"`
}

// postSchema never exposes raw, spam_count or inappropriate_count.
// reply_to_post is a bare id in list and detail responses alike.
var postSchema = &Schema[*domain.Post]{
	Resource: PostResourceName,
	Key:      func(p *domain.Post) int64 { return p.ID },
	Fields: []FieldSpec[*domain.Post]{
		Scalar("created_at", func(p *domain.Post) any { return p.CreatedAt }),
		Scalar("id", func(p *domain.Post) any { return p.ID }),
		Full("last_editor", true, userSchema, func(p *domain.Post) (*domain.User, bool) {
			return p.LastEditor, p.LastEditor != nil
		}),
		Scalar("message", func(p *domain.Post) any { return p.Message }),
		URI("reply_below_post", PostResourceName, true, func(p *domain.Post) (int64, bool) {
			return derefID(p.ReplyBelowPostID)
		}),
		ID("reply_to_post", true, func(p *domain.Post) (int64, bool) {
			return derefID(p.ReplyToPostID)
		}),
		Full("reply_to_user", true, userSchema, func(p *domain.Post) (*domain.User, bool) {
			return p.ReplyToUser, p.ReplyToUser != nil
		}),
		URI("topic", TopicResourceName, false, func(p *domain.Post) (int64, bool) {
			return p.TopicID, p.TopicID > 0
		}),
		Scalar("updated_at", func(p *domain.Post) any { return p.UpdatedAt }),
		Full("user", false, userSchema, func(p *domain.Post) (*domain.User, bool) {
			return p.User, p.User != nil
		}),
	},
}

var postFilters = Filters[store.PostFilter]{
	"topic": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) (err error) {
			f.TopicID, err = filterInt64("topic", value)
			return err
		},
	},
	"topic__id": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) (err error) {
			f.TopicID, err = filterInt64("topic__id", value)
			return err
		},
	},
	"topic__slug": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) error {
			f.TopicSlug = &value
			return nil
		},
	},
	"topic__category": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) (err error) {
			f.TopicCategoryID, err = filterInt64("topic__category", value)
			return err
		},
	},
	"topic__category__slug": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) error {
			f.TopicCategorySlug = &value
			return nil
		},
	},
	"user": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) (err error) {
			f.UserID, err = filterUUID("user", value)
			return err
		},
	},
	"user__username": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) error {
			f.Username = &value
			return nil
		},
	},
	"reply_to_post": {
		Lookups: []string{"exact", "isnull"},
		Apply: func(f *store.PostFilter, lookup, value string) (err error) {
			if lookup == "isnull" {
				f.ReplyToPostIsNull, err = filterBool("reply_to_post__isnull", value)
				return err
			}
			f.ReplyToPostID, err = filterInt64("reply_to_post", value)
			return err
		},
	},
	"reply_to_post__user": {
		Lookups: []string{"exact"},
		Apply: func(f *store.PostFilter, _, value string) (err error) {
			f.ReplyToPostUserID, err = filterUUID("reply_to_post__user", value)
			return err
		},
	},
}

// PostResource serves /post/.
type PostResource = Resource[*domain.Post, store.PostFilter]

// NewPostResource creates the post resource.
func NewPostResource(
	posts store.PostStore,
	postService service.PostService,
	cfg config.APIConfig,
	logger *slog.Logger,
) *PostResource {
	res := &PostResource{
		handlerBase: newHandlerBase(cfg, logger),
		name:        PostResourceName,
		schema:      postSchema,
		filters:     postFilters,
		get:         posts.GetByID,
		list:        posts.List,
		count:       posts.Count,
	}
	res.create = func(w http.ResponseWriter, r *http.Request) {
		log := logFor(r, res.logger, "post_resource")

		userID, ok := requireUserID(w, r, log)
		if !ok {
			return
		}

		var req CreatePostRequest
		if !res.decodeAndValidate(w, r, &req) {
			return
		}
		req.logRequestedTime(log)

		topicID, err := req.Topic.Resolve("topic", cfg.BasePath, TopicResourceName)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}

		var replyToPostID *int64
		if req.ReplyToPost != nil {
			id, err := req.ReplyToPost.Resolve("reply_to_post", cfg.BasePath, PostResourceName)
			if err != nil {
				HandleAPIError(w, r, err, "")
				return
			}
			replyToPostID = &id
		}

		post, err := postService.CreatePost(r.Context(), topicID, userID, req.Message, replyToPostID)
		if err != nil {
			log.Debug("failed to create post", "error", err, "topic_id", topicID)
			HandleAPIError(w, r, err, "Failed to create post")
			return
		}

		res.respond(w, r, http.StatusCreated, post)
	}
	return res
}
