// Package store defines the persistence interfaces for categories, topics,
// posts and users, together with the filter and paging types the resource
// layer passes through, the shared sentinel errors, and transaction helpers.
// Implementations live in internal/platform/postgres.
package store
