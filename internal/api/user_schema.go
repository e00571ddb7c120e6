package api

import "github.com/phrazzld/discuss-api/internal/domain"

// userSchema is the public, embedded representation of a user. There is
// no user resource, so it carries no resource_uri.
var userSchema = &Schema[*domain.User]{
	Fields: []FieldSpec[*domain.User]{
		Scalar("date_joined", func(u *domain.User) any { return u.DateJoined }),
		Scalar("id", func(u *domain.User) any { return u.ID.String() }),
		Scalar("username", func(u *domain.User) any { return u.Username }),
	},
}
