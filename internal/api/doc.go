// Package api exposes categories, topics and posts as JSON resources.
//
// Each resource pairs a Schema, which declares the fields of its
// representation and how related entities are embedded, with a set of
// query filters, a paginated list, slug-or-id detail routes and a create
// handler that delegates to the service layer. Update and delete requests
// are accepted and ignored.
//
// The package also hosts the authentication endpoints. Response helpers
// live in the shared subpackage and request middleware in middleware.
package api
