package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// PostgresTopicStore implements the store.TopicStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTopicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTopicStore creates a new PostgreSQL implementation of the TopicStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTopicStore(db store.DBTX, logger *slog.Logger) *PostgresTopicStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure PostgresTopicStore implements store.TopicStore interface
var _ store.TopicStore = (*PostgresTopicStore)(nil)

const topicSelect = `
	SELECT t.id, t.title, t.slug, t.category_id, t.highest_post_id, t.created_at, t.updated_at,
		u.id, u.username, u.date_joined,
		lu.id, lu.username, lu.date_joined
	FROM topics t
	JOIN categories c ON c.id = t.category_id
	JOIN users u ON u.id = t.user_id
	LEFT JOIN users lu ON lu.id = t.last_post_user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (*domain.Topic, error) {
	var (
		t             domain.Topic
		highestPostID sql.NullInt64
		author        userRef
		lastPoster    userRef
	)
	dest := []any{&t.ID, &t.Title, &t.Slug, &t.CategoryID, &highestPostID, &t.CreatedAt, &t.UpdatedAt}
	dest = append(dest, author.dest()...)
	dest = append(dest, lastPoster.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	t.HighestPostID = nullInt64(highestPostID)
	t.User = author.user()
	if t.User != nil {
		t.UserID = t.User.ID
	}
	t.LastPostUser = lastPoster.user()
	if t.LastPostUser != nil {
		id := t.LastPostUser.ID
		t.LastPostUserID = &id
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

// Create implements store.TopicStore.Create
// Returns validation errors from the domain Topic if data is invalid and
// store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := topic.Validate(); err != nil {
		log.Warn("topic validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("category_id", topic.CategoryID))
		return err
	}

	query := `
		INSERT INTO topics (title, slug, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		topic.Title,
		topic.Slug,
		topic.CategoryID,
		topic.UserID,
		topic.CreatedAt,
		topic.UpdatedAt,
	).Scan(&topic.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Warn("topic references a missing row",
				slog.String("error", err.Error()),
				slog.Int64("category_id", topic.CategoryID),
				slog.String("user_id", topic.UserID.String()))
			return mapped
		}
		log.Error("failed to create topic",
			slog.String("error", err.Error()),
			slog.Int64("category_id", topic.CategoryID))
		return mapped
	}

	log.Info("topic created successfully",
		slog.Int64("topic_id", topic.ID),
		slog.Int64("category_id", topic.CategoryID),
		slog.String("user_id", topic.UserID.String()))
	return nil
}

// GetByID implements store.TopicStore.GetByID
func (s *PostgresTopicStore) GetByID(ctx context.Context, id int64) (*domain.Topic, error) {
	return s.get(ctx, id, "")
}

// GetByIDForUpdate implements store.TopicStore.GetByIDForUpdate
func (s *PostgresTopicStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Topic, error) {
	return s.get(ctx, id, " FOR UPDATE OF t")
}

func (s *PostgresTopicStore) get(ctx context.Context, id int64, lock string) (*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	topic, err := scanTopic(s.db.QueryRowContext(ctx, topicSelect+` WHERE t.id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("topic not found", slog.Int64("topic_id", id))
			return nil, store.ErrTopicNotFound
		}
		log.Error("failed to get topic",
			slog.String("error", err.Error()),
			slog.Int64("topic_id", id))
		return nil, MapError(err)
	}
	return topic, nil
}

func topicConditions(filter store.TopicFilter) *conditions {
	c := &conditions{}
	if filter.Slug != nil {
		c.add("t.slug = $%d", *filter.Slug)
	}
	if filter.CategoryID != nil {
		c.add("t.category_id = $%d", *filter.CategoryID)
	}
	if filter.CategorySlug != nil {
		c.add("c.slug = $%d", *filter.CategorySlug)
	}
	return c
}

// List implements store.TopicStore.List
func (s *PostgresTopicStore) List(
	ctx context.Context,
	filter store.TopicFilter,
	page store.Page,
) ([]*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conds := topicConditions(filter)
	limit, args := conds.paginate(page)
	query := topicSelect + conds.where() + ` ORDER BY t.updated_at DESC, t.id DESC` + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list topics", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	topics := []*domain.Topic{}
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return topics, nil
}

// Count implements store.TopicStore.Count
func (s *PostgresTopicStore) Count(ctx context.Context, filter store.TopicFilter) (int, error) {
	conds := topicConditions(filter)
	query := `SELECT COUNT(*) FROM topics t JOIN categories c ON c.id = t.category_id` + conds.where()

	var n int
	if err := s.db.QueryRowContext(ctx, query, conds.args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count topics",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// RecordPost implements store.TopicStore.RecordPost
func (s *PostgresTopicStore) RecordPost(
	ctx context.Context,
	topicID, postID int64,
	userID uuid.UUID,
	at time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE topics
		SET highest_post_id = $2, last_post_user_id = $3, updated_at = $4
		WHERE id = $1
	`, topicID, postID, userID, at)
	if err != nil {
		log.Error("failed to record post on topic",
			slog.String("error", err.Error()),
			slog.Int64("topic_id", topicID),
			slog.Int64("post_id", postID))
		return MapError(err)
	}
	return requireRow(result, store.ErrTopicNotFound)
}

// WithTx implements store.TopicStore.WithTx
func (s *PostgresTopicStore) WithTx(tx *sql.Tx) store.TopicStore {
	return &PostgresTopicStore{db: tx, logger: s.logger}
}
