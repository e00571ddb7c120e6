package api

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Embed controls how a field's value appears in a representation.
type Embed int

const (
	// EmbedScalar copies the value as is. Timestamps become RFC 3339 UTC strings.
	EmbedScalar Embed = iota
	// EmbedFull inlines the related entity using its own schema.
	EmbedFull
	// EmbedURI renders the related entity as its resource URI.
	EmbedURI
	// EmbedID renders the related entity as its bare integer id.
	EmbedID
)

// ErrMissingField is returned when a non-nullable field has no value.
var ErrMissingField = errors.New("required field has no value")

// FieldSpec describes one field of a representation of T.
type FieldSpec[T any] struct {
	Name     string
	Embed    Embed
	Nullable bool

	render func(v T, basePath string) (value any, ok bool, err error)
}

// Scalar declares a field copied from v.
func Scalar[T any](name string, value func(v T) any) FieldSpec[T] {
	return FieldSpec[T]{
		Name:  name,
		Embed: EmbedScalar,
		render: func(v T, _ string) (any, bool, error) {
			out := value(v)
			if t, ok := out.(time.Time); ok {
				if t.IsZero() {
					return nil, false, nil
				}
				return t.UTC().Format(time.RFC3339Nano), true, nil
			}
			return out, true, nil
		},
	}
}

// Full declares a related entity embedded with schema. value reports
// false when the relation is empty.
func Full[T, R any](name string, nullable bool, schema *Schema[R], value func(v T) (R, bool)) FieldSpec[T] {
	return FieldSpec[T]{
		Name:     name,
		Embed:    EmbedFull,
		Nullable: nullable,
		render: func(v T, basePath string) (any, bool, error) {
			related, ok := value(v)
			if !ok {
				return nil, false, nil
			}
			rep, err := schema.Represent(related, basePath)
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", name, err)
			}
			return rep, true, nil
		},
	}
}

// URI declares a related entity rendered as "{base}/{resource}/{id}/".
func URI[T any](name, resource string, nullable bool, value func(v T) (int64, bool)) FieldSpec[T] {
	return FieldSpec[T]{
		Name:     name,
		Embed:    EmbedURI,
		Nullable: nullable,
		render: func(v T, basePath string) (any, bool, error) {
			id, ok := value(v)
			if !ok {
				return nil, false, nil
			}
			return ResourceURI(basePath, resource, id), true, nil
		},
	}
}

// ID declares a related entity rendered as its integer id.
func ID[T any](name string, nullable bool, value func(v T) (int64, bool)) FieldSpec[T] {
	return FieldSpec[T]{
		Name:     name,
		Embed:    EmbedID,
		Nullable: nullable,
		render: func(v T, _ string) (any, bool, error) {
			id, ok := value(v)
			if !ok {
				return nil, false, nil
			}
			return id, true, nil
		},
	}
}

// Schema enumerates the fields of a representation. Schemas with a
// Resource name also emit resource_uri.
type Schema[T any] struct {
	Resource string
	Fields   []FieldSpec[T]
	Key      func(v T) int64
}

// Represent renders v as a map; encoding/json emits its keys sorted.
func (s *Schema[T]) Represent(v T, basePath string) (map[string]any, error) {
	rep := make(map[string]any, len(s.Fields)+1)
	for _, f := range s.Fields {
		value, ok, err := f.render(v, basePath)
		if err != nil {
			return nil, err
		}
		if !ok {
			if !f.Nullable {
				return nil, fmt.Errorf("%w: %s", ErrMissingField, f.Name)
			}
			value = nil
		}
		rep[f.Name] = value
	}
	if s.Resource != "" && s.Key != nil {
		rep["resource_uri"] = ResourceURI(basePath, s.Resource, s.Key(v))
	}
	return rep, nil
}

// HasField reports whether name is a declared field.
func (s *Schema[T]) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ResourceURI formats the canonical URI of a resource instance.
func ResourceURI(basePath, resource string, id int64) string {
	return basePath + "/" + resource + "/" + strconv.FormatInt(id, 10) + "/"
}
