package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/discuss-api/internal/store"
)

// SQLSTATE classes this package translates.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors maps named constraints onto the store error a caller
// can act on. Names follow the Postgres defaults (<table>_<column>_fkey,
// <table>_<column>_key) used by the migrations.
var constraintErrors = map[string]error{
	"topics_category_id_fkey":     store.ErrCategoryNotFound,
	"topics_user_id_fkey":         store.ErrUserNotFound,
	"posts_topic_id_fkey":         store.ErrTopicNotFound,
	"posts_user_id_fkey":          store.ErrUserNotFound,
	"posts_reply_to_post_id_fkey": store.ErrPostNotFound,
	"users_username_key":          store.ErrUsernameExists,
	"users_email_key":             store.ErrEmailExists,
}

// MapError translates a database error into a store error. The driver
// error is kept in the message for logging but not in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if specific, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w: %v", specific, err)
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode, checkViolationCode:
		return fmt.Errorf("%w: constraint %s: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s is required: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	}
	return err
}

// requireRow returns notFound when an UPDATE or DELETE touched no rows.
func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
