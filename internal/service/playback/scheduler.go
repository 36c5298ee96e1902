package playback

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// chunkDelayStep is the per-index spacing between chunk deliveries.
	chunkDelayStep = 15 * time.Millisecond
	// chunkDelayCap bounds the total reveal time regardless of length.
	chunkDelayCap = 500 * time.Millisecond
)

// Apply is the mutation a delivered chunk performs against the session
// store. It must tolerate the target chat or message no longer existing.
type Apply func(chatID, messageID, chunk string, index int)

// Delay returns the scheduled delivery offset for chunk i from job start:
// monotonically non-decreasing and capped.
func Delay(i int) time.Duration {
	d := time.Duration(i) * chunkDelayStep
	if d > chunkDelayCap {
		return chunkDelayCap
	}
	return d
}

// Scheduler turns a completed response into a cancellable sequence of timed
// chunk deliveries.
type Scheduler struct {
	clock Clock
}

// NewScheduler returns a scheduler driven by the given clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Job is one in-flight playback: the chunk sequence, a delivery cursor, and
// the pending timer handles. It is owned by the orchestrator and never
// stored alongside the chats.
type Job struct {
	chatID    string
	messageID string
	chunks    []string

	// applyMu serializes whole delivery passes. Once the delay cap is
	// reached, every remaining timer shares the same deadline and their
	// callbacks run in separate goroutines; without this lock two of them
	// could interleave appends and shuffle the chunk order.
	applyMu sync.Mutex

	mu        sync.Mutex
	cursor    int
	cancelled bool
	done      bool
	timers    []Timer
}

// Start normalizes the raw response, splits it into chunks, and schedules
// delivery of chunk i after Delay(i). onDone fires exactly once, when the
// last chunk has been applied; it never fires for a cancelled job. The
// returned job is already complete when the response holds no words.
func (s *Scheduler) Start(chatID, messageID, raw string, apply Apply, onDone func()) *Job {
	job := &Job{
		chatID:    chatID,
		messageID: messageID,
		chunks:    SplitChunks(Normalize(raw)),
	}

	if len(job.chunks) == 0 {
		job.done = true
		if onDone != nil {
			onDone()
		}
		return job
	}

	log.Debug().
		Str("chat", chatID).
		Str("message", messageID).
		Int("chunks", len(job.chunks)).
		Msg("playback scheduled")

	job.timers = make([]Timer, 0, len(job.chunks))
	for i := range job.chunks {
		index := i
		job.timers = append(job.timers, s.clock.AfterFunc(Delay(index), func() {
			job.deliver(index, apply, onDone)
		}))
	}
	return job
}

// deliver applies every not-yet-applied chunk up to and including index.
// Timers only guarantee a minimum delay, so a later-indexed timer may fire
// first; catching up here keeps the message growing strictly in chunk order
// while a stale timer for an already-applied index becomes a no-op. The
// cancelled flag is checked at delivery time, not only at scheduling time.
// applyMu is held across the whole pass so concurrent callbacks cannot
// interleave their apply loops.
func (j *Job) deliver(index int, apply Apply, onDone func()) {
	j.applyMu.Lock()
	defer j.applyMu.Unlock()

	j.mu.Lock()
	if j.cancelled || j.done || index < j.cursor {
		j.mu.Unlock()
		return
	}
	start := j.cursor
	j.cursor = index + 1
	finished := j.cursor == len(j.chunks)
	if finished {
		j.done = true
	}
	chunks := j.chunks[start:j.cursor]
	j.mu.Unlock()

	for k, chunk := range chunks {
		apply(j.chatID, j.messageID, chunk, start+k)
	}
	if finished && onDone != nil {
		onDone()
	}
}

// Cancel marks the job cancelled and stops every pending timer. Chunks that
// were already applied stay in place; no further chunk is ever applied, even
// if a stray timer fires. Reports whether the job was still running.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	if j.cancelled || j.done {
		j.mu.Unlock()
		return false
	}
	j.cancelled = true
	timers := j.timers
	j.timers = nil
	j.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	log.Debug().Str("chat", j.chatID).Str("message", j.messageID).Msg("playback cancelled")
	return true
}

// TargetChatID returns the chat the job mutates.
func (j *Job) TargetChatID() string { return j.chatID }

// TargetMessageID returns the message the job mutates.
func (j *Job) TargetMessageID() string { return j.messageID }

// ChunkCount returns the number of scheduled chunks.
func (j *Job) ChunkCount() int { return len(j.chunks) }

// Cursor returns the index of the next chunk to apply.
func (j *Job) Cursor() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cursor
}

// Done reports whether the last chunk has been applied.
func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

// Cancelled reports whether the job was stopped before completion.
func (j *Job) Cancelled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancelled
}
