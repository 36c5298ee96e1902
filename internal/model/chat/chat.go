package chat

import "time"

// DefaultTitle is the placeholder title for a chat with no turns yet.
const DefaultTitle = "New Chat"

// Chat is a single conversation: an ordered, append-only message list plus
// bookkeeping for the sidebar (title, optional category).
type Chat struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CategoryID string     `json:"categoryId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Messages   []*Message `json:"messages"`
}

// MessageByID returns the message with the given id, or nil.
func (c *Chat) MessageByID(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Clone returns a deep copy so callers can hand chats out of the store
// without exposing internal slices to mutation.
func (c *Chat) Clone() *Chat {
	cp := *c
	cp.Messages = make([]*Message, len(c.Messages))
	for i, m := range c.Messages {
		mc := *m
		mc.Images = append([]Image(nil), m.Images...)
		cp.Messages[i] = &mc
	}
	return &cp
}
