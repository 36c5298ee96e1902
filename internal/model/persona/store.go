package persona

import "sync"

// Store holds the active personality profile plus the preset catalogue.
// Update notifies the registered hook so dependents (persistence, engine)
// can react without polling.
type Store struct {
	mu       sync.RWMutex
	profile  Profile
	presets  []Preset
	onChange func()
}

// NewStore returns a Store seeded with the built-in presets.
func NewStore(profile Profile) *Store {
	return &Store{profile: profile, presets: Seed()}
}

// OnChange registers a hook invoked after every profile update.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Profile returns the current personality profile.
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Update replaces the profile and notifies dependents.
func (s *Store) Update(profile Profile) {
	s.mu.Lock()
	s.profile = profile
	hook := s.onChange
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// Presets returns the preset catalogue.
func (s *Store) Presets() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Preset(nil), s.presets...)
}

// FindPreset looks up a preset by identifier.
func (s *Store) FindPreset(id string) (Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
