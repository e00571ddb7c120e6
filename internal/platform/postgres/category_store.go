package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// getOrCreateAttempts bounds retries of the get-or-create statement. A retry
// is needed only when a concurrent insert of the same slug commits after our
// snapshot was taken, so the insert conflicts and the select sees nothing.
const getOrCreateAttempts = 3

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

const getOrCreateCategoryQuery = `
	WITH ins AS (
		INSERT INTO categories (title, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO NOTHING
		RETURNING id, title, slug
	)
	SELECT id, title, slug, TRUE FROM ins
	UNION ALL
	SELECT id, title, slug, FALSE FROM categories WHERE slug = $2
	LIMIT 1
`

// GetOrCreate implements store.CategoryStore.GetOrCreate
func (s *PostgresCategoryStore) GetOrCreate(
	ctx context.Context,
	category *domain.Category,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during get-or-create",
			slog.String("error", err.Error()),
			slog.String("slug", category.Slug))
		return false, err
	}

	for attempt := 1; attempt <= getOrCreateAttempts; attempt++ {
		var created bool
		err := s.db.QueryRowContext(ctx, getOrCreateCategoryQuery, category.Title, category.Slug).
			Scan(&category.ID, &category.Title, &category.Slug, &created)
		if err == nil {
			log.Debug("category resolved",
				slog.Int64("category_id", category.ID),
				slog.String("slug", category.Slug),
				slog.Bool("created", created))
			return created, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to get or create category",
				slog.String("error", err.Error()),
				slog.String("slug", category.Slug))
			return false, MapError(err)
		}
		log.Debug("category slug claimed concurrently, retrying",
			slog.String("slug", category.Slug),
			slog.Int("attempt", attempt))
	}

	return false, fmt.Errorf("%w: category %q could not be resolved after %d attempts",
		store.ErrTransactionFailed, category.Slug, getOrCreateAttempts)
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, slug FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}
	return &c, nil
}

func categoryConditions(filter store.CategoryFilter) *conditions {
	c := &conditions{}
	if filter.Slug != nil {
		c.add("slug = $%d", *filter.Slug)
	}
	return c
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(
	ctx context.Context,
	filter store.CategoryFilter,
	page store.Page,
) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conds := categoryConditions(filter)
	limit, args := conds.paginate(page)
	query := `SELECT id, title, slug FROM categories` + conds.where() + ` ORDER BY id` + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// Count implements store.CategoryStore.Count
func (s *PostgresCategoryStore) Count(ctx context.Context, filter store.CategoryFilter) (int, error) {
	conds := categoryConditions(filter)
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories`+conds.where(), conds.args...,
	).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count categories",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}
