package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		fallbackURL string
		want        string
	}{
		{"neither set", "", "", ""},
		{"primary only", "postgres://a", "", "postgres://a"},
		{"fallback only", "", "postgres://b", "postgres://b"},
		{"primary wins", "postgres://a", "postgres://b", "postgres://a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.databaseURL)
			t.Setenv("DISCUSS_TEST_DB_URL", tt.fallbackURL)

			assert.Equal(t, tt.want, GetTestDatabaseURL())
			assert.Equal(t, tt.want != "", IsIntegrationTestEnvironment())
		})
	}
}

func TestGetTestDBWithT_SkipsWithoutURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DISCUSS_TEST_DB_URL", "")

	skipped := false
	t.Run("inner", func(t *testing.T) {
		defer func() { skipped = t.Skipped() }()
		GetTestDBWithT(t)
	})
	assert.True(t, skipped)
}
