package settings

import "sync"

// Appearance mirrors the client-side preferences persisted alongside chats.
type Appearance struct {
	Theme        string `json:"theme"`
	FontSize     string `json:"fontSize"`
	SoundEnabled bool   `json:"soundEnabled"`
	AutoSave     bool   `json:"autoSave"`
}

// Default returns the out-of-the-box appearance settings.
func Default() Appearance {
	return Appearance{
		Theme:        "dark",
		FontSize:     "medium",
		SoundEnabled: true,
		AutoSave:     true,
	}
}

// Store holds the appearance settings and notifies dependents on update so
// the autosave toggle takes effect immediately.
type Store struct {
	mu       sync.RWMutex
	current  Appearance
	onChange func(Appearance)
}

// NewStore returns a settings store with the given initial values.
func NewStore(initial Appearance) *Store {
	return &Store{current: initial}
}

// OnChange registers a hook invoked with the new settings after each update.
func (s *Store) OnChange(fn func(Appearance)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Get returns the current settings.
func (s *Store) Get() Appearance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the settings and notifies dependents.
func (s *Store) Update(next Appearance) {
	s.mu.Lock()
	s.current = next
	hook := s.onChange
	s.mu.Unlock()
	if hook != nil {
		hook(next)
	}
}
