package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloTopic() *domain.Topic {
	return &domain.Topic{
		ID:         7,
		Title:      "Hello World",
		Slug:       "hello-world",
		CategoryID: 3,
		UserID:     testUserID,
		User:       testUser(testUserID, "alice"),
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

func TestTopicResource_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		serviceErr     error
		wantStatus     int
		wantCategoryID int64
		wantError      string
	}{
		{name: "integer category", body: map[string]any{"title": "Hello World", "category": 3}, wantStatus: http.StatusCreated, wantCategoryID: 3},
		{name: "string category", body: map[string]any{"title": "Hello World", "category": "3"}, wantStatus: http.StatusCreated, wantCategoryID: 3},
		{
			name:           "category uri",
			body:           map[string]any{"title": "Hello World", "category": "/api/v1/category/3/"},
			wantStatus:     http.StatusCreated,
			wantCategoryID: 3,
		},
		{
			name:       "missing category",
			body:       map[string]any{"title": "Hello World"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid category: required field",
		},
		{
			name:       "null category",
			body:       map[string]any{"title": "Hello World", "category": nil},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid category: required field",
		},
		{
			name:       "missing title",
			body:       map[string]any{"category": 3},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid title: required field",
		},
		{
			name:       "topic uri as category",
			body:       map[string]any{"title": "Hello World", "category": "/api/v1/topic/3/"},
			wantStatus: http.StatusBadRequest,
			wantError:  "category is not a valid reference",
		},
		{
			name:       "unknown category",
			body:       map[string]any{"title": "Hello World", "category": 99},
			serviceErr: service.ErrCategoryNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Category not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRouter(t)
			var gotCategoryID int64
			var gotUserID uuid.UUID
			tr.topicService.CreateTopicFn = func(
				ctx context.Context,
				title string,
				categoryID int64,
				userID uuid.UUID,
			) (*domain.Topic, error) {
				gotCategoryID, gotUserID = categoryID, userID
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return helloTopic(), nil
			}

			rec := tr.do(t, http.MethodPost, "/api/v1/topic/", tt.body, &testUserID)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Equal(t, tt.wantCategoryID, gotCategoryID)
			assert.Equal(t, testUserID, gotUserID)
			assert.Equal(t, "/api/v1/topic/7/", rec.Header().Get("Location"))
			assert.Equal(t, "/api/v1/category/3/", body["category"])
		})
	}
}

func TestTopicResource_UserComesFromAuthentication(t *testing.T) {
	tr := newTestRouter(t)
	var gotUserID uuid.UUID
	tr.topicService.CreateTopicFn = func(ctx context.Context, title string, categoryID int64, userID uuid.UUID) (*domain.Topic, error) {
		gotUserID = userID
		return helloTopic(), nil
	}

	body := map[string]any{"title": "Hello", "category": 3, "user": otherUserID.String()}
	rec := tr.do(t, http.MethodPost, "/api/v1/topic/", body, &testUserID)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUserID, gotUserID)
}

func TestTopicResource_Detail(t *testing.T) {
	tr := newTestRouter(t)
	tr.topics.GetByIDFn = func(ctx context.Context, id int64) (*domain.Topic, error) {
		if id != 7 {
			return nil, store.ErrTopicNotFound
		}
		topic := helloTopic()
		topic.LastPostUser = testUser(otherUserID, "bob")
		topic.HighestPostID = ptr(int64(40))
		return topic, nil
	}

	rec := tr.do(t, http.MethodGet, "/api/v1/topic/hello-world-7/", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		`{"category":"/api/v1/category/3/","created_at":"2025-04-01T12:00:00Z","highest_post":"/api/v1/post/40/","id":7,`+
			`"last_post_user":{"date_joined":"2025-04-01T12:00:00Z","id":"22222222-2222-2222-2222-222222222222","username":"bob"},`+
			`"resource_uri":"/api/v1/topic/7/","slug":"hello-world","title":"Hello World","updated_at":"2025-04-01T12:00:00Z",`+
			`"user":{"date_joined":"2025-04-01T12:00:00Z","id":"11111111-1111-1111-1111-111111111111","username":"alice"}}`+"\n",
		rec.Body.String())

	missing := tr.do(t, http.MethodGet, "/api/v1/topic/8/", nil, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Topic not found", decodeBody(t, missing)["error"])
}

func TestTopicResource_ListFilters(t *testing.T) {
	tr := newTestRouter(t)
	var gotFilter store.TopicFilter
	tr.topics.ListFn = func(ctx context.Context, filter store.TopicFilter, page store.Page) ([]*domain.Topic, error) {
		gotFilter = filter
		return []*domain.Topic{helloTopic()}, nil
	}
	tr.topics.CountFn = func(ctx context.Context, filter store.TopicFilter) (int, error) {
		return 45, nil
	}

	rec := tr.do(t, http.MethodGet, "/api/v1/topic/?category__slug=news&limit=20&offset=20", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, store.TopicFilter{CategorySlug: ptr("news")}, gotFilter)

	meta := decodeBody(t, rec)["meta"].(map[string]any)
	assert.Equal(t, "/api/v1/topic/?category__slug=news&limit=20&offset=40", meta["next"])
	assert.Equal(t, "/api/v1/topic/?category__slug=news&limit=20&offset=0", meta["previous"])
}

func TestTopicResource_ListStoreFailure(t *testing.T) {
	tr := newTestRouter(t)
	tr.topics.CountFn = func(ctx context.Context, filter store.TopicFilter) (int, error) {
		return 0, fmt.Errorf("count topics: %w", assert.AnError)
	}

	rec := tr.do(t, http.MethodGet, "/api/v1/topic/", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list topic", decodeBody(t, rec)["error"])
}
