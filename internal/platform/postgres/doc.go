// Package postgres provides the PostgreSQL implementations of the store
// interfaces in internal/store, the mapping of driver errors onto store
// sentinels, and the embedded goose migrations that create the schema.
package postgres
