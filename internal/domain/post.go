package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is a single message in a topic.
//
// Raw holds the submitted markdown and Message its rendered form. Raw,
// SpamCount and InappropriateCount are internal and never published.
type Post struct {
	ID                 int64
	TopicID            int64
	UserID             uuid.UUID
	User               *User
	Message            string
	Raw                string
	ReplyToPostID      *int64
	ReplyToUserID      *uuid.UUID
	ReplyToUser        *User
	ReplyBelowPostID   *int64
	LastEditorID       *uuid.UUID
	LastEditor         *User
	SpamCount          int
	InappropriateCount int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewPost builds an unsaved post in topicID. When replyTo is non-nil it
// must belong to the same topic; the reply inherits the target's author as
// ReplyToUserID and hangs below the target's thread root.
func NewPost(topicID int64, userID uuid.UUID, raw string, replyTo *Post) (*Post, error) {
	now := time.Now().UTC()
	p := &Post{
		TopicID:   topicID,
		UserID:    userID,
		Raw:       raw,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if replyTo != nil {
		if replyTo.TopicID != topicID {
			return nil, NewValidationError("reply_to_post", "belongs to another topic", ErrReplyOutsideTopic)
		}
		replyToID := replyTo.ID
		replyToUser := replyTo.UserID
		p.ReplyToPostID = &replyToID
		p.ReplyToUserID = &replyToUser

		below := replyTo.ID
		if replyTo.ReplyBelowPostID != nil {
			below = *replyTo.ReplyBelowPostID
		}
		p.ReplyBelowPostID = &below
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the post's own fields.
func (p *Post) Validate() error {
	if p.TopicID <= 0 {
		return NewValidationError("topic", "is required", ErrInvalidID)
	}
	if p.UserID == uuid.Nil {
		return NewValidationError("user", "is required", ErrInvalidID)
	}
	if strings.TrimSpace(p.Raw) == "" {
		return NewValidationError("message", "cannot be empty", ErrEmptyMessage)
	}
	return nil
}
