package category

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the mutable category list. All operations are safe for concurrent
// use; mutations notify the registered hook.
type Store struct {
	mu       sync.RWMutex
	items    []Category
	onChange func()
}

// NewStore returns a Store preloaded with the supplied categories.
func NewStore(items []Category) *Store {
	return &Store{items: append([]Category(nil), items...)}
}

// OnChange registers a hook invoked after every mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// List returns a copy of all categories.
func (s *Store) List() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.items...)
}

// Create adds a category and returns it with its assigned id.
func (s *Store) Create(name, color string) Category {
	item := Category{ID: uuid.NewString(), Name: name, Color: color}
	s.mu.Lock()
	s.items = append(s.items, item)
	hook := s.onChange
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return item
}

// Update replaces the named fields of an existing category. Unknown ids are
// a no-op.
func (s *Store) Update(id, name, color string) bool {
	s.mu.Lock()
	var found bool
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			s.items[i].Color = color
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

// Delete removes a category. Unknown ids are a no-op.
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
func (s *Store) Replace(items []Category) {
	s.mu.Lock()
	s.items = append([]Category(nil), items...)
	s.mu.Unlock()
}
