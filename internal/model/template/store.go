package template

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the mutable prompt template list.
type Store struct {
	mu       sync.RWMutex
	items    []Template
	onChange func()
}

// NewStore returns a Store preloaded with the supplied templates.
func NewStore(items []Template) *Store {
	return &Store{items: append([]Template(nil), items...)}
}

// OnChange registers a hook invoked after every mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// List returns a copy of all templates.
func (s *Store) List() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Template(nil), s.items...)
}

// Create adds a template and returns it with its assigned id.
func (s *Store) Create(title, content, category string) Template {
	if category == "" {
		category = "general"
	}
	item := Template{ID: uuid.NewString(), Title: title, Content: content, Category: category}
	s.mu.Lock()
	s.items = append(s.items, item)
	hook := s.onChange
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return item
}

// Update rewrites an existing template. Unknown ids are a no-op.
func (s *Store) Update(id, title, content, category string) bool {
	s.mu.Lock()
	var found bool
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Title = title
			s.items[i].Content = content
			s.items[i].Category = category
			found = true
			break
		}
	}
	hook := s.onChange
	s.mu.Unlock()
	if found && hook != nil {
		hook()
	}
	return found
}

// Delete removes a template. Unknown ids are a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	var found bool
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	hook := s.onChange
	s.mu.Unlock()
	if found && hook != nil {
		hook()
	}
	return found
}

// Replace swaps the entire list, used when restoring a snapshot.
func (s *Store) Replace(items []Template) {
	s.mu.Lock()
	s.items = append([]Template(nil), items...)
	s.mu.Unlock()
}
