package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
)

// conditions accumulates AND-ed WHERE predicates with positional arguments.
// Each predicate is a format string with a single %d for its placeholder.
type conditions struct {
	preds []string
	args  []any
}

func (c *conditions) add(pred string, arg any) {
	c.args = append(c.args, arg)
	c.preds = append(c.preds, fmt.Sprintf(pred, len(c.args)))
}

// addRaw adds a predicate that takes no argument.
func (c *conditions) addRaw(pred string) {
	c.preds = append(c.preds, pred)
}

func (c *conditions) where() string {
	if len(c.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.preds, " AND ")
}

// paginate appends LIMIT/OFFSET placeholders and returns the clause and args.
func (c *conditions) paginate(page store.Page) (string, []any) {
	args := append([]any{}, c.args...)
	clause := ""
	if page.Limit > 0 {
		args = append(args, page.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}

// userRef scans the public columns of a possibly absent joined user.
type userRef struct {
	id         uuid.NullUUID
	username   sql.NullString
	dateJoined sql.NullTime
}

func (r *userRef) dest() []any {
	return []any{&r.id, &r.username, &r.dateJoined}
}

func (r *userRef) user() *domain.User {
	if !r.id.Valid {
		return nil
	}
	return &domain.User{
		ID:         r.id.UUID,
		Username:   r.username.String,
		DateJoined: r.dateJoined.Time.UTC(),
	}
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullUUID(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	v := n.UUID
	return &v
}
