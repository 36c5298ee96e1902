package conversation

import "sync"

// EventType tags engine notifications pushed to streaming clients.
type EventType string

const (
	// EventStart fires when a turn's placeholder has been appended.
	EventStart EventType = "start"
	// EventChunk fires for every playback chunk applied to the store.
	EventChunk EventType = "chunk"
	// EventDone fires when the last chunk of a turn has been applied.
	EventDone EventType = "done"
	// EventCancelled fires when the user stops generation mid-stream.
	EventCancelled EventType = "cancelled"
	// EventError fires when the generation call failed and the fixed error
	// text was written in place of a response.
	EventError EventType = "error"
)

// Event is one engine notification.
type Event struct {
	Type      EventType `json:"event"`
	ChatID    string    `json:"chatId,omitempty"`
	MessageID string    `json:"messageId,omitempty"`
	Content   string    `json:"content,omitempty"`
	Index     int       `json:"index,omitempty"`
}

// Broadcaster fans engine events out to streaming subscribers (SSE and
// WebSocket handlers). Slow subscribers drop events rather than block
// playback.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the client disconnects.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
