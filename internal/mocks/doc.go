// Package mocks provides function-field test doubles for the store,
// service and auth interfaces.
//
// Each mock exposes a <Method>Fn field; when it is nil the mock falls back
// to a fixed default (usually a not-found error) and records the call.
//
//	categories := &mocks.MockCategoryStore{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Category, error) {
//	        return &domain.Category{ID: id, Title: "News", Slug: "news"}, nil
//	    },
//	}
package mocks
