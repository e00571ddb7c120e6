package service

import (
	"context"
	"testing"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCategoryService_RequiresStore(t *testing.T) {
	_, err := NewCategoryService(nil, nil)
	assert.Error(t, err)
}

func TestGetOrCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new category", func(t *testing.T) {
		categories := new(MockCategoryStore)
		categories.On("GetOrCreate", ctx, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Title == "Go Programming" && c.Slug == "go-programming"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Category).ID = 4
		}).Return(true, nil)

		svc, err := NewCategoryService(categories, nil)
		require.NoError(t, err)

		category, created, err := svc.GetOrCreateCategory(ctx, "  Go Programming ")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(4), category.ID)
		categories.AssertExpectations(t)
	})

	t.Run("returns existing category", func(t *testing.T) {
		categories := new(MockCategoryStore)
		categories.On("GetOrCreate", ctx, mock.Anything).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Category)
			c.ID = 4
			c.Title = "Go Programming"
		}).Return(false, nil)

		svc, err := NewCategoryService(categories, nil)
		require.NoError(t, err)

		category, created, err := svc.GetOrCreateCategory(ctx, "go programming")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Go Programming", category.Title)
	})

	t.Run("blank title is a validation error", func(t *testing.T) {
		categories := new(MockCategoryStore)
		svc, err := NewCategoryService(categories, nil)
		require.NoError(t, err)

		_, _, err = svc.GetOrCreateCategory(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		categories.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	})

	t.Run("punctuation only title has no slug", func(t *testing.T) {
		svc, err := NewCategoryService(new(MockCategoryStore), nil)
		require.NoError(t, err)

		_, _, err = svc.GetOrCreateCategory(ctx, "!!!")
		assert.ErrorIs(t, err, domain.ErrEmptySlug)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		categories := new(MockCategoryStore)
		categories.On("GetOrCreate", ctx, mock.Anything).Return(false, store.ErrTransactionFailed)
		svc, err := NewCategoryService(categories, nil)
		require.NoError(t, err)

		_, _, err = svc.GetOrCreateCategory(ctx, "News")
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "get_or_create_category", serviceErr.Operation)
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}
