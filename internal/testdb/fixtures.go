package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user with a unique username and returns it.
func CreateTestUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()

	id := uuid.New()
	user := &domain.User{
		ID:             id,
		Username:       "user-" + id.String()[:8],
		Email:          fmt.Sprintf("%s@example.com", id.String()[:8]),
		HashedPassword: "$2a$04$placeholderplaceholderplaceholderplaceholderplace",
		DateJoined:     time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := tx.ExecContext(context.Background(), `
		INSERT INTO users (id, username, email, hashed_password, date_joined)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, user.Email, user.HashedPassword, user.DateJoined)
	require.NoError(t, err, "Failed to insert test user")

	return user
}

// CreateTestCategory inserts a category with the given title.
func CreateTestCategory(t *testing.T, tx *sql.Tx, title string) *domain.Category {
	t.Helper()

	c, err := domain.NewCategory(title)
	require.NoError(t, err)

	err = tx.QueryRowContext(context.Background(),
		`INSERT INTO categories (title, slug) VALUES ($1, $2) RETURNING id`,
		c.Title, c.Slug,
	).Scan(&c.ID)
	require.NoError(t, err, "Failed to insert test category")

	return c
}

// CreateTestTopic inserts a topic in category authored by user.
func CreateTestTopic(t *testing.T, tx *sql.Tx, title string, categoryID int64, userID uuid.UUID) *domain.Topic {
	t.Helper()

	topic, err := domain.NewTopic(title, categoryID, userID)
	require.NoError(t, err)

	err = tx.QueryRowContext(context.Background(), `
		INSERT INTO topics (title, slug, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, topic.Title, topic.Slug, topic.CategoryID, topic.UserID, topic.CreatedAt, topic.UpdatedAt).Scan(&topic.ID)
	require.NoError(t, err, "Failed to insert test topic")

	return topic
}
