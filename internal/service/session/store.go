package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/model/chat"
)

// titleLimit is the number of leading runes kept when deriving a chat title
// from its first prompt.
const titleLimit = 30

// Store owns the chat collection and the pointer to the current chat. It is
// a pure state container: no generation or playback logic lives here. All
// methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	chats    []*chat.Chat
	current  string
	onChange func()
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{}
}

// OnChange registers a hook invoked after every mutating operation,
// typically the debounced persistence trigger.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify(hook func()) {
	if hook != nil {
		hook()
	}
}

// CreateChat inserts a new empty chat at the head of the collection and
// makes it current.
func (s *Store) CreateChat() *chat.Chat {
	c := &chat.Chat{
		ID:        uuid.NewString(),
		Title:     chat.DefaultTitle,
		CreatedAt: time.Now().UTC(),
		Messages:  make([]*chat.Message, 0, 8),
	}

	s.mu.Lock()
	s.chats = append([]*chat.Chat{c}, s.chats...)
	s.current = c.ID
	hook := s.onChange
	s.mu.Unlock()

	log.Debug().Str("chat", c.ID).Msg("chat created")
	s.notify(hook)
	return c.Clone()
}

// DeleteChat removes the chat. If it was current, the head of the remaining
// collection becomes current, or none if the collection is empty. Unknown
// ids are a no-op.
func (s *Store) DeleteChat(chatID string) {
	s.mu.Lock()
	idx := -1
	for i, c := range s.chats {
		if c.ID == chatID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.chats = append(s.chats[:idx], s.chats[idx+1:]...)
	if s.current == chatID {
		if len(s.chats) > 0 {
			s.current = s.chats[0].ID
		} else {
			s.current = ""
		}
	}
	hook := s.onChange
	s.mu.Unlock()

	log.Debug().Str("chat", chatID).Msg("chat deleted")
	s.notify(hook)
}

// SelectChat moves the current pointer. Selecting an unknown id leaves the
// state untouched and reports false.
func (s *Store) SelectChat(chatID string) bool {
	s.mu.Lock()
	var found bool
	for _, c := range s.chats {
		if c.ID == chatID {
			found = true
			break
		}
	}
	if found {
		s.current = chatID
	}
	hook := s.onChange
	s.mu.Unlock()

	if found {
		s.notify(hook)
	}
	return found
}

// AppendTurn atomically appends a user message and its assistant placeholder
// to the chat. On the chat's first turn, the title is derived from the user
// message. Unknown ids are a no-op.
func (s *Store) AppendTurn(chatID string, user, assistant *chat.Message) {
	s.mu.Lock()
	c := s.findLocked(chatID)
	if c == nil {
		s.mu.Unlock()
		return
	}
	if len(c.Messages) == 0 {
		c.Title = DeriveTitle(user.Content)
	}
	c.Messages = append(c.Messages, user, assistant)
	hook := s.onChange
	s.mu.Unlock()

	s.notify(hook)
}

// AppendMessageContent grows a message's content by appending text. The chat
// or message may have been deleted while a playback job was in flight, in
// which case the call is a silent no-op.
func (s *Store) AppendMessageContent(chatID, messageID, text string) {
	s.mu.Lock()
	c := s.findLocked(chatID)
	if c == nil {
		s.mu.Unlock()
		return
	}
	m := c.MessageByID(messageID)
	if m == nil {
		s.mu.Unlock()
		return
	}
	m.Content += text
	hook := s.onChange
	s.mu.Unlock()

	s.notify(hook)
}

// SetCategory assigns the chat to a category; an empty id clears it.
func (s *Store) SetCategory(chatID, categoryID string) bool {
	s.mu.Lock()
	c := s.findLocked(chatID)
	if c == nil {
		s.mu.Unlock()
		return false
	}
	c.CategoryID = categoryID
	hook := s.onChange
	s.mu.Unlock()

	s.notify(hook)
	return true
}

// Chat returns a copy of the chat with the given id.
func (s *Store) Chat(chatID string) (*chat.Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.findLocked(chatID); c != nil {
		return c.Clone(), true
	}
	return nil, false
}

// Chats returns a copy of the whole collection in store order.
func (s *Store) Chats() []*chat.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*chat.Chat, len(s.chats))
	for i, c := range s.chats {
		out[i] = c.Clone()
	}
	return out
}

// CurrentChatID returns the id of the current chat, or "" when none.
func (s *Store) CurrentChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentChat returns a copy of the current chat.
func (s *Store) CurrentChat() (*chat.Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return nil, false
	}
	if c := s.findLocked(s.current); c != nil {
		return c.Clone(), true
	}
	return nil, false
}

// Restore replaces the collection from a loaded snapshot. The head chat
// becomes current, matching the behavior on application start.
func (s *Store) Restore(chats []*chat.Chat) {
	s.mu.Lock()
	s.chats = make([]*chat.Chat, len(chats))
	for i, c := range chats {
		s.chats[i] = c.Clone()
	}
	if len(s.chats) > 0 {
		s.current = s.chats[0].ID
	} else {
		s.current = ""
	}
	s.mu.Unlock()
}

func (s *Store) findLocked(chatID string) *chat.Chat {
	for _, c := range s.chats {
		if c.ID == chatID {
			return c
		}
	}
	return nil
}

// DeriveTitle truncates a prompt to the first 30 runes, appending an
// ellipsis when it was longer.
func DeriveTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "…"
	}
	return prompt
}
