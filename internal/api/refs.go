package api

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/discuss-api/internal/domain"
)

// ResourceRef is an inbound reference to another resource: an integer id,
// a numeric string, or a resource URI such as "/api/v1/category/3/".
type ResourceRef struct {
	raw json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ResourceRef) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[:0], data...)
	return nil
}

// Resolve returns the referenced id. URIs must point at resource under
// basePath; only the id segment is authoritative.
func (r *ResourceRef) Resolve(field, basePath, resource string) (int64, error) {
	invalid := domain.NewValidationError(field, "is not a valid reference", domain.ErrInvalidID)

	raw := bytes.TrimSpace(r.raw)
	if len(raw) == 0 {
		return 0, invalid
	}

	if raw[0] != '"' {
		id, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil || id <= 0 {
			return 0, invalid
		}
		return id, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, invalid
	}
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return 0, invalid
		}
		return id, nil
	}

	id, ok := parseResourceURI(s, basePath, resource)
	if !ok {
		return 0, invalid
	}
	return id, nil
}

// parseResourceURI accepts absolute URLs or paths of the form
// {base}/{resource}/{lookup}/ where lookup is any detail route shape.
func parseResourceURI(s, basePath, resource string) (int64, bool) {
	u, err := url.Parse(s)
	if err != nil {
		return 0, false
	}
	rest, ok := strings.CutPrefix(u.Path, basePath+"/")
	if !ok {
		return 0, false
	}

	var segments []string
	for _, seg := range strings.Split(rest, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) < 2 || segments[0] != resource {
		return 0, false
	}

	switch len(segments) {
	case 2:
		return parseLookup(segments[1])
	case 3:
		return parseID(segments[2])
	}
	return 0, false
}

// parseLookup extracts the id from "{id}" or "{slug}-{id}". The slug part
// is informational and never checked.
func parseLookup(ref string) (int64, bool) {
	if id, ok := parseID(ref); ok {
		return id, true
	}
	if i := strings.LastIndexByte(ref, '-'); i >= 0 {
		return parseID(ref[i+1:])
	}
	return 0, false
}

func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
