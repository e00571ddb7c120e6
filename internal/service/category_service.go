package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// CategoryService provides category operations.
type CategoryService interface {
	// GetOrCreateCategory returns the category whose slug matches title's
	// slug, creating it if needed. created reports whether it was new.
	GetOrCreateCategory(ctx context.Context, title string) (category *domain.Category, created bool, err error)
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
// It returns an error if any of the required dependencies are nil.
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categories == nil {
		return nil, &ServiceError{Service: "category", Operation: "create_service", Message: "categories cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryServiceImpl{
		categories: categories,
		logger:     logger.With("component", "category_service"),
	}, nil
}

// GetOrCreateCategory implements CategoryService.
func (s *categoryServiceImpl) GetOrCreateCategory(
	ctx context.Context,
	title string,
) (*domain.Category, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(title)
	if err != nil {
		log.Debug("rejected category title", "error", err)
		return nil, false, err
	}

	created, err := s.categories.GetOrCreate(ctx, category)
	if err != nil {
		log.Error("failed to get or create category",
			"error", err,
			"slug", category.Slug)
		return nil, false, NewServiceError("category", "get_or_create_category", "failed to store category", err)
	}

	if created {
		log.Info("category created",
			"category_id", category.ID,
			"slug", category.Slug)
	}
	return category, created, nil
}
