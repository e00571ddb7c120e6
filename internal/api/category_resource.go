package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/service"
	"github.com/phrazzld/discuss-api/internal/store"
)

// CategoryResourceName is the URL segment of the category resource.
const CategoryResourceName = "category"

// CreateCategoryRequest is the body of POST /category/.
type CreateCategoryRequest struct {
	requestEnvelope
	Title string `json:"title" validate:"required,notblank,max=255"`
}

var categorySchema = &Schema[*domain.Category]{
	Resource: CategoryResourceName,
	Key:      func(c *domain.Category) int64 { return c.ID },
	Fields: []FieldSpec[*domain.Category]{
		Scalar("id", func(c *domain.Category) any { return c.ID }),
		Scalar("slug", func(c *domain.Category) any { return c.Slug }),
		Scalar("title", func(c *domain.Category) any { return c.Title }),
	},
}

var categoryFilters = Filters[store.CategoryFilter]{
	"slug": {
		Lookups: []string{"exact"},
		Apply: func(f *store.CategoryFilter, _, value string) error {
			f.Slug = &value
			return nil
		},
	},
}

// CategoryResource serves /category/.
type CategoryResource = Resource[*domain.Category, store.CategoryFilter]

// NewCategoryResource creates the category resource.
func NewCategoryResource(
	categories store.CategoryStore,
	categoryService service.CategoryService,
	cfg config.APIConfig,
	logger *slog.Logger,
) *CategoryResource {
	res := &CategoryResource{
		handlerBase: newHandlerBase(cfg, logger),
		name:        CategoryResourceName,
		schema:      categorySchema,
		filters:     categoryFilters,
		get:         categories.GetByID,
		list:        categories.List,
		count:       categories.Count,
	}
	res.create = func(w http.ResponseWriter, r *http.Request) {
		log := logFor(r, res.logger, "category_resource")

		var req CreateCategoryRequest
		if !res.decodeAndValidate(w, r, &req) {
			return
		}
		req.logRequestedTime(log)

		category, created, err := categoryService.GetOrCreateCategory(r.Context(), req.Title)
		if err != nil {
			log.Error("failed to get or create category", "error", err)
			HandleAPIError(w, r, err, "Failed to create category")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		res.respond(w, r, status, category)
	}
	return res
}
