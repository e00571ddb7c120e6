package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/phrazzld/discuss-api/internal/config"
	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
)

// parsePage reads limit and offset from the query string. A limit of 0
// asks for the largest page; larger values are clamped to it.
func parsePage(query url.Values, cfg config.APIConfig) (store.Page, error) {
	page := store.Page{Limit: cfg.DefaultPageSize}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return store.Page{}, domain.NewValidationError("limit", "must be a non-negative integer", domain.ErrValidation)
		}
		page.Limit = limit
	}
	if page.Limit == 0 || page.Limit > cfg.MaxPageSize {
		page.Limit = cfg.MaxPageSize
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return store.Page{}, domain.NewValidationError("offset", "must be a non-negative integer", domain.ErrValidation)
		}
		page.Offset = offset
	}

	return page, nil
}

// pageMeta builds the "meta" object of a collection response.
func pageMeta(r *http.Request, page store.Page, total int) map[string]any {
	meta := map[string]any{
		"limit":       page.Limit,
		"offset":      page.Offset,
		"total_count": total,
		"next":        nil,
		"previous":    nil,
	}

	if page.Offset < total-page.Limit {
		meta["next"] = pageLink(r, page.Limit, page.Offset+page.Limit)
	}
	if page.Offset > 0 {
		meta["previous"] = pageLink(r, page.Limit, max(page.Offset-page.Limit, 0))
	}
	return meta
}

func pageLink(r *http.Request, limit, offset int) string {
	query := r.URL.Query()
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return r.URL.Path + "?" + query.Encode()
}
