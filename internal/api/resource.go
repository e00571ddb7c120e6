package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/discuss-api/internal/api/shared"
	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/store"
)

// handlerBase carries what every handler needs.
type handlerBase struct {
	cfg       config.APIConfig
	validator *validator.Validate
	logger    *slog.Logger
}

func newHandlerBase(cfg config.APIConfig, logger *slog.Logger) handlerBase {
	if logger == nil {
		logger = slog.Default()
	}
	return handlerBase{cfg: cfg, validator: newValidator(), logger: logger}
}

// Resource serves one entity type: a filtered, paginated list, detail
// lookups by id or slug and id, a create handler and no-op writes.
type Resource[T any, F any] struct {
	handlerBase
	name    string
	schema  *Schema[T]
	filters Filters[F]
	get     func(ctx context.Context, id int64) (T, error)
	list    func(ctx context.Context, filter F, page store.Page) ([]T, error)
	count   func(ctx context.Context, filter F) (int, error)
	create  http.HandlerFunc
}

// Name returns the URL segment the resource is mounted under.
func (res *Resource[T, F]) Name() string {
	return res.name
}

// Routes returns the resource's router. Writes go through requireAuth
// when it is non-nil.
func (res *Resource[T, F]) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", res.List)
	r.Get("/{"+paramRef+"}", res.Detail)
	r.Get("/{"+paramSlug+"}/{"+paramID+"}", res.Detail)

	r.Group(func(r chi.Router) {
		if requireAuth != nil {
			r.Use(requireAuth)
		}
		r.Post("/", res.create)
		for _, pattern := range []string{"/", "/{" + paramRef + "}", "/{" + paramSlug + "}/{" + paramID + "}"} {
			r.Put(pattern, res.NoOp)
			r.Patch(pattern, res.NoOp)
			r.Delete(pattern, res.NoOp)
		}
	})

	return r
}

// List handles GET /{resource}/.
func (res *Resource[T, F]) List(w http.ResponseWriter, r *http.Request) {
	log := logFor(r, res.logger, res.name+"_resource")

	query := r.URL.Query()
	filter, err := res.filters.Parse(query, res.schema.HasField)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := parsePage(query, res.cfg)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	total, err := res.count(r.Context(), filter)
	if err != nil {
		log.Error("failed to count", "error", err)
		HandleAPIError(w, r, err, "Failed to list "+res.name)
		return
	}
	items, err := res.list(r.Context(), filter, page)
	if err != nil {
		log.Error("failed to list", "error", err)
		HandleAPIError(w, r, err, "Failed to list "+res.name)
		return
	}

	objects := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rep, err := res.schema.Represent(item, res.cfg.BasePath)
		if err != nil {
			log.Error("failed to serialize", "error", err)
			HandleAPIError(w, r, err, "Failed to list "+res.name)
			return
		}
		objects = append(objects, rep)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"meta":    pageMeta(r, page, total),
		"objects": objects,
	})
}

// Detail handles GET on every lookup route. The slug is ignored.
func (res *Resource[T, F]) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := lookupID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
		return
	}

	item, err := res.get(r.Context(), id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logFor(r, res.logger, res.name+"_resource").Error("failed to get", "id", id, "error", err)
		}
		HandleAPIError(w, r, err, "Failed to get "+res.name)
		return
	}

	res.respond(w, r, http.StatusOK, item)
}

// NoOp answers PUT, PATCH and DELETE with 204 without touching storage.
func (res *Resource[T, F]) NoOp(w http.ResponseWriter, r *http.Request) {
	logFor(r, res.logger, res.name+"_resource").Debug("ignoring write",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	shared.RespondNoContent(w)
}

// respond serializes item with the resource schema.
func (res *Resource[T, F]) respond(w http.ResponseWriter, r *http.Request, status int, item T) {
	rep, err := res.schema.Represent(item, res.cfg.BasePath)
	if err != nil {
		logFor(r, res.logger, res.name+"_resource").Error("failed to serialize", "error", err)
		HandleAPIError(w, r, err, "Failed to serialize "+res.name)
		return
	}
	if status == http.StatusCreated {
		if uri, ok := rep["resource_uri"].(string); ok {
			w.Header().Set("Location", uri)
		}
	}
	shared.RespondWithJSON(w, r, status, rep)
}
