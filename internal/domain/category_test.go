package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  General Discussion ")
	require.NoError(t, err)
	assert.Equal(t, "General Discussion", c.Title)
	assert.Equal(t, "general-discussion", c.Slug)
	assert.Zero(t, c.ID)
}

func TestNewCategoryValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "blank", title: "   ", wantErr: ErrEmptyTitle},
		{name: "no slug characters", title: "???", wantErr: ErrEmptySlug},
		{name: "too long", title: strings.Repeat("a", MaxTitleLength+1), wantErr: ErrTitleTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCategory(tc.title)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "title", vErr.Field)
		})
	}
}
