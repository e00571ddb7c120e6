package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topic is a discussion thread inside a category.
//
// User and LastPostUser are populated by stores when reading; writers only
// set the ID fields.
type Topic struct {
	ID             int64
	Title          string
	Slug           string
	CategoryID     int64
	UserID         uuid.UUID
	User           *User
	LastPostUserID *uuid.UUID
	LastPostUser   *User
	HighestPostID  *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTopic builds an unsaved topic.
func NewTopic(title string, categoryID int64, userID uuid.UUID) (*Topic, error) {
	title = strings.TrimSpace(title)
	now := time.Now().UTC()
	t := &Topic{
		Title:      title,
		Slug:       Slugify(title),
		CategoryID: categoryID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the topic's own fields. Referential checks (category
// exists) belong to the service layer.
func (t *Topic) Validate() error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if t.Slug == "" {
		return NewValidationError("title", "must contain at least one letter or digit", ErrEmptySlug)
	}
	if t.CategoryID <= 0 {
		return NewValidationError("category", "is required", ErrInvalidID)
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("user", "is required", ErrInvalidID)
	}
	return nil
}
