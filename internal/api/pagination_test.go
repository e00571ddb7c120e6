package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/phrazzld/discuss-api/internal/domain"
	"github.com/phrazzld/discuss-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	cfg := testAPIConfig()

	tests := []struct {
		name    string
		query   string
		want    store.Page
		wantErr bool
	}{
		{name: "defaults", want: store.Page{Limit: 20}},
		{name: "explicit", query: "limit=5&offset=10", want: store.Page{Limit: 5, Offset: 10}},
		{name: "zero means max", query: "limit=0", want: store.Page{Limit: 100}},
		{name: "clamped", query: "limit=5000", want: store.Page{Limit: 100}},
		{name: "negative limit", query: "limit=-1", wantErr: true},
		{name: "text limit", query: "limit=ten", wantErr: true},
		{name: "negative offset", query: "offset=-5", wantErr: true},
		{name: "text offset", query: "offset=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := parsePage(query, cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageMeta(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/post/?topic=3&limit=2&offset=2", nil)

	meta := pageMeta(req, store.Page{Limit: 2, Offset: 2}, 5)

	assert.Equal(t, 2, meta["limit"])
	assert.Equal(t, 2, meta["offset"])
	assert.Equal(t, 5, meta["total_count"])
	assert.Equal(t, "/api/v1/post/?limit=2&offset=4&topic=3", meta["next"])
	assert.Equal(t, "/api/v1/post/?limit=2&offset=0&topic=3", meta["previous"])
}

func TestPageMeta_Edges(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/category/", nil)

	first := pageMeta(req, store.Page{Limit: 20}, 3)
	assert.Nil(t, first["next"])
	assert.Nil(t, first["previous"])

	last := pageMeta(req, store.Page{Limit: 20, Offset: 5}, 10)
	assert.Nil(t, last["next"])
	assert.Equal(t, "/api/v1/category/?limit=20&offset=0", last["previous"])
}

func TestPageMeta_HugeOffset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/topic/?offset=9223372036854775807", nil)

	page, err := parsePage(req.URL.Query(), testAPIConfig())
	require.NoError(t, err)
	require.Equal(t, math.MaxInt, page.Offset)

	meta := pageMeta(req, page, 42)
	assert.Nil(t, meta["next"])
	assert.Equal(t, "/api/v1/topic/?limit=20&offset="+strconv.Itoa(math.MaxInt-20), meta["previous"])
}
