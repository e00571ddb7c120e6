// Package service holds the write-side use cases: get-or-create of
// categories, topic creation, post creation, and user registration and
// authentication. Services depend on the store interfaces, never on a
// concrete database, and translate store errors into the sentinels below
// so the API layer can map them to status codes with errors.Is.
package service
