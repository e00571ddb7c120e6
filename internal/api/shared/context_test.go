package shared

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))

	assert.Regexp(t, traceIDPattern, first)
	assert.Regexp(t, traceIDPattern, second)
	assert.NotEqual(t, first, second)
}

func TestTraceID_WrongTypeIgnored(t *testing.T) {
	ctx := context.WithValue(context.Background(), traceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestUserIDContext(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		ctx    context.Context
		want   uuid.UUID
		wantOK bool
	}{
		{name: "absent", ctx: context.Background()},
		{name: "nil uuid", ctx: WithUserID(context.Background(), uuid.Nil)},
		{name: "wrong type", ctx: context.WithValue(context.Background(), userIDKey, id.String())},
		{name: "present", ctx: WithUserID(context.Background(), id), want: id, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
