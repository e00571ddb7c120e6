package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/api/shared"
	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

var (
	testUserID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	otherUserID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testTime     = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	testTimeText = "2025-04-01T12:00:00Z"
)

func testAPIConfig() config.APIConfig {
	return config.APIConfig{
		BasePath:        "/api/v1",
		DefaultPageSize: 20,
		MaxPageSize:     100,
		MaxBodyBytes:    1 << 16,
	}
}

func testUser(id uuid.UUID, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Email: username + "@example.com", DateJoined: testTime}
}

// fakeAuth authenticates every request carrying X-Test-User as that user.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Test-User")
		if raw == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), uuid.MustParse(raw))))
	})
}

// testRouter wires the three resources the way the server does.
type testRouter struct {
	categories      *mocks.MockCategoryStore
	topics          *mocks.MockTopicStore
	posts           *mocks.MockPostStore
	categoryService *mocks.MockCategoryService
	topicService    *mocks.MockTopicService
	postService     *mocks.MockPostService
	handler         http.Handler
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()
	tr := &testRouter{
		categories:      &mocks.MockCategoryStore{},
		topics:          &mocks.MockTopicStore{},
		posts:           &mocks.MockPostStore{},
		categoryService: &mocks.MockCategoryService{},
		topicService:    &mocks.MockTopicService{},
		postService:     &mocks.MockPostService{},
	}
	cfg := testAPIConfig()

	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Route(cfg.BasePath, func(r chi.Router) {
		MountResources(r, fakeAuth,
			NewCategoryResource(tr.categories, tr.categoryService, cfg, nil),
			NewTopicResource(tr.topics, tr.topicService, cfg, nil),
			NewPostResource(tr.posts, tr.postService, cfg, nil),
		)
	})
	tr.handler = r
	return tr
}

func (tr *testRouter) do(t *testing.T, method, path string, body any, user *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("X-Test-User", user.String())
	}
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&out), "body: %s", rec.Body.String())
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func (tr *testRouter) doRaw(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Test-User", testUserID.String())
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}
