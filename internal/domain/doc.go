// Package domain contains the discussion entities (categories, topics,
// posts and users), their validation rules and slug derivation. It has no
// knowledge of storage or transport.
package domain
