package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/platform/logger"
	"github.com/phrazzld/discuss-api/internal/store"
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

const postSelect = `
	SELECT p.id, p.topic_id, p.message, p.raw, p.reply_to_post_id, p.reply_below_post_id,
		p.spam_count, p.inappropriate_count, p.created_at, p.updated_at,
		u.id, u.username, u.date_joined,
		ru.id, ru.username, ru.date_joined,
		eu.id, eu.username, eu.date_joined
	FROM posts p
	JOIN topics t ON t.id = p.topic_id
	JOIN categories c ON c.id = t.category_id
	JOIN users u ON u.id = p.user_id
	LEFT JOIN users ru ON ru.id = p.reply_to_user_id
	LEFT JOIN users eu ON eu.id = p.last_editor_id`

// postFrom is postSelect's FROM clause, shared with Count.
const postFrom = `
	FROM posts p
	JOIN topics t ON t.id = p.topic_id
	JOIN categories c ON c.id = t.category_id
	JOIN users u ON u.id = p.user_id`

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p                domain.Post
		replyToPostID    sql.NullInt64
		replyBelowPostID sql.NullInt64
		author           userRef
		replyTo          userRef
		editor           userRef
	)
	dest := []any{
		&p.ID, &p.TopicID, &p.Message, &p.Raw, &replyToPostID, &replyBelowPostID,
		&p.SpamCount, &p.InappropriateCount, &p.CreatedAt, &p.UpdatedAt,
	}
	dest = append(dest, author.dest()...)
	dest = append(dest, replyTo.dest()...)
	dest = append(dest, editor.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	p.ReplyToPostID = nullInt64(replyToPostID)
	p.ReplyBelowPostID = nullInt64(replyBelowPostID)
	p.User = author.user()
	if p.User != nil {
		p.UserID = p.User.ID
	}
	p.ReplyToUser = replyTo.user()
	p.ReplyToUserID = nullUUID(replyTo.id)
	p.LastEditor = editor.user()
	p.LastEditorID = nullUUID(editor.id)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// Create implements store.PostStore.Create
// Returns validation errors from the domain Post if data is invalid,
// store.ErrTopicNotFound if the topic does not exist and store.ErrPostNotFound
// if the reply target does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("topic_id", post.TopicID))
		return err
	}

	query := `
		INSERT INTO posts (
			topic_id, user_id, message, raw,
			reply_to_post_id, reply_to_user_id, reply_below_post_id, last_editor_id,
			spam_count, inappropriate_count, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		post.TopicID,
		post.UserID,
		post.Message,
		post.Raw,
		post.ReplyToPostID,
		uuidOrNull(post.ReplyToUserID),
		post.ReplyBelowPostID,
		uuidOrNull(post.LastEditorID),
		post.SpamCount,
		post.InappropriateCount,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Warn("post references a missing row",
				slog.String("error", err.Error()),
				slog.Int64("topic_id", post.TopicID))
			return mapped
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.Int64("topic_id", post.TopicID))
		return mapped
	}

	log.Info("post created successfully",
		slog.Int64("post_id", post.ID),
		slog.Int64("topic_id", post.TopicID),
		slog.String("user_id", post.UserID.String()))
	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := scanPost(s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, MapError(err)
	}
	return post, nil
}

func postConditions(filter store.PostFilter) *conditions {
	c := &conditions{}
	if filter.TopicID != nil {
		c.add("p.topic_id = $%d", *filter.TopicID)
	}
	if filter.TopicSlug != nil {
		c.add("t.slug = $%d", *filter.TopicSlug)
	}
	if filter.TopicCategoryID != nil {
		c.add("t.category_id = $%d", *filter.TopicCategoryID)
	}
	if filter.TopicCategorySlug != nil {
		c.add("c.slug = $%d", *filter.TopicCategorySlug)
	}
	if filter.UserID != nil {
		c.add("p.user_id = $%d", *filter.UserID)
	}
	if filter.Username != nil {
		c.add("u.username = $%d", *filter.Username)
	}
	if filter.ReplyToPostID != nil {
		c.add("p.reply_to_post_id = $%d", *filter.ReplyToPostID)
	}
	if filter.ReplyToPostIsNull != nil {
		if *filter.ReplyToPostIsNull {
			c.addRaw("p.reply_to_post_id IS NULL")
		} else {
			c.addRaw("p.reply_to_post_id IS NOT NULL")
		}
	}
	if filter.ReplyToPostUserID != nil {
		c.add("p.reply_to_post_id IN (SELECT rp.id FROM posts rp WHERE rp.user_id = $%d)", *filter.ReplyToPostUserID)
	}
	return c
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(
	ctx context.Context,
	filter store.PostFilter,
	page store.Page,
) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conds := postConditions(filter)
	limit, args := conds.paginate(page)
	query := postSelect + conds.where() + ` ORDER BY p.id` + limit

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return posts, nil
}

// Count implements store.PostStore.Count
func (s *PostgresPostStore) Count(ctx context.Context, filter store.PostFilter) (int, error) {
	conds := postConditions(filter)
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+postFrom+conds.where(), conds.args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count posts",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}

func uuidOrNull(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
