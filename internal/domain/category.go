package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest accepted category or topic title, in runes.
const MaxTitleLength = 255

// Category groups topics. Its slug is unique and derived from the title.
type Category struct {
	ID    int64
	Title string
	Slug  string
}

// NewCategory builds an unsaved category from a title.
func NewCategory(title string) (*Category, error) {
	title = strings.TrimSpace(title)
	c := &Category{
		Title: title,
		Slug:  Slugify(title),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks title and slug.
func (c *Category) Validate() error {
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	if c.Slug == "" {
		return NewValidationError("title", "must contain at least one letter or digit", ErrEmptySlug)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "is too long", ErrTitleTooLong)
	}
	return nil
}
