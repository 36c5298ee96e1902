package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// NewUserMessage builds a user message echoing the prompt and its attached
// images.
func NewUserMessage(content string, images []chat.Image) *chat.Message {
	return &chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleUser,
		Content:   content,
		Images:    append([]chat.Image(nil), images...),
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantPlaceholder builds the empty assistant message a playback job
// will grow into.
func NewAssistantPlaceholder() *chat.Message {
	return &chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleAssistant,
		Content:   "",
		Timestamp: time.Now().UTC(),
	}
}
