package storage

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Autosaver coalesces a burst of change notifications into one save per
// batch. Trigger is cheap to call from every store mutation; the snapshot
// function runs once the batch window has been quiet. When autosave is
// disabled, triggers are dropped entirely.
type Autosaver struct {
	mu       sync.Mutex
	interval time.Duration
	enabled  bool
	timer    *time.Timer
	save     func() error
}

// NewAutosaver returns an autosaver invoking save after each change batch.
func NewAutosaver(interval time.Duration, enabled bool, save func() error) *Autosaver {
	return &Autosaver{interval: interval, enabled: enabled, save: save}
}

// SetEnabled flips the autosave switch. Disabling cancels any pending save.
func (a *Autosaver) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	if !enabled && a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
}

// Trigger notes a change and (re)arms the batch timer.
func (a *Autosaver) Trigger() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, a.flush)
}

// Flush persists immediately, cancelling any pending batch. Used on
// shutdown so the last batch is not lost.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	enabled := a.enabled
	a.mu.Unlock()
	if enabled {
		a.runSave()
	}
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	a.timer = nil
	enabled := a.enabled
	a.mu.Unlock()
	if enabled {
		a.runSave()
	}
}

func (a *Autosaver) runSave() {
	if err := a.save(); err != nil {
		log.Error().Err(err).Msg("autosave failed")
	}
}
