package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/discuss-api/internal/domain"
)

// Query parameters that never name a filter.
var reservedParams = map[string]bool{
	"limit":  true,
	"offset": true,
	"format": true,
}

// queryLookups are the lookup suffixes recognized after "__".
var queryLookups = map[string]bool{
	"exact": true, "iexact": true, "contains": true, "icontains": true,
	"in": true, "gt": true, "gte": true, "lt": true, "lte": true,
	"startswith": true, "istartswith": true, "endswith": true, "iendswith": true,
	"range": true, "isnull": true, "regex": true, "iregex": true,
}

// FilterSpec is a filterable path such as "slug" or "topic__category__slug".
type FilterSpec[F any] struct {
	Lookups []string
	Apply   func(f *F, lookup, value string) error
}

func (s FilterSpec[F]) allows(lookup string) bool {
	for _, l := range s.Lookups {
		if l == lookup {
			return true
		}
	}
	return false
}

// Filters maps filter paths to their specs.
type Filters[F any] map[string]FilterSpec[F]

// Parse turns query parameters into a store filter. Parameters that name
// a declared field but no allowed filter are rejected; parameters naming
// nothing the resource knows about are ignored.
func (fs Filters[F]) Parse(query url.Values, isField func(name string) bool) (F, error) {
	var filter F

	if format := query.Get("format"); format != "" && format != "json" {
		return filter, domain.NewValidationError("format", "is not supported", domain.ErrValidation)
	}

	for key, values := range query {
		if reservedParams[key] || len(values) == 0 {
			continue
		}

		path, lookup := splitLookup(key)
		def, ok := fs[path]
		if !ok || !def.allows(lookup) {
			field := strings.SplitN(path, "__", 2)[0]
			if _, known := fs[field]; known || isField(field) || ok {
				return filter, notFilterable(field)
			}
			continue
		}

		if err := def.Apply(&filter, lookup, values[len(values)-1]); err != nil {
			return filter, err
		}
	}

	return filter, nil
}

func splitLookup(key string) (path, lookup string) {
	if i := strings.LastIndex(key, "__"); i >= 0 && queryLookups[key[i+2:]] {
		return key[:i], key[i+2:]
	}
	return key, "exact"
}

func notFilterable(field string) error {
	return domain.NewValidationError("", fmt.Sprintf("The '%s' field does not allow filtering.", field), domain.ErrValidation)
}

func invalidFilterValue(key string) error {
	return domain.NewValidationError("", fmt.Sprintf("Invalid value for the '%s' filter.", key), domain.ErrValidation)
}

// Value parsers shared by the resource filter tables.

func filterInt64(key, value string) (*int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, invalidFilterValue(key)
	}
	return &id, nil
}

func filterUUID(key, value string) (*uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, invalidFilterValue(key)
	}
	return &id, nil
}

func filterBool(key, value string) (*bool, error) {
	switch strings.ToLower(value) {
	case "true", "1":
		b := true
		return &b, nil
	case "false", "0":
		b := false
		return &b, nil
	}
	return nil, invalidFilterValue(key)
}
