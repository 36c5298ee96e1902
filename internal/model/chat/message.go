package chat

import (
	"fmt"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript. An assistant message starts
// empty and grows by append while its playback job is running; it is never
// rewritten or shortened.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Images    []Image   `json:"images,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Image is an attachment carried on a user message, fixed at creation.
type Image struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// DataURI renders the image as an inline data URI.
func (i Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MimeType, i.Base64)
}
