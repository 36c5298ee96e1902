package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/model/chat"
	"github.com/ninakotova/lumina/internal/model/persona"
	"github.com/ninakotova/lumina/internal/service/ai"
	"github.com/ninakotova/lumina/internal/service/playback"
	"github.com/ninakotova/lumina/internal/service/session"
)

// ErrBusy is returned when Send is called while a turn is still playing
// back. Callers are expected to consult IsGenerating before sending.
var ErrBusy = errors.New("a turn is already in progress")

// generationFailedMessage replaces the assistant response when the
// generation call fails. The turn is finalized, not retried.
const generationFailedMessage = "Something went wrong. Please try again."

// Engine sequences one full conversation turn: append the user message and
// placeholder, call the generation collaborator, and play the response back
// into the session store. At most one turn is in flight process-wide.
type Engine struct {
	store       *session.Store
	generator   ai.Generator
	scheduler   *playback.Scheduler
	personality *persona.Store
	events      *Broadcaster

	mu            sync.Mutex
	job           *playback.Job
	generating    bool
	stopRequested bool
	pendingImages []chat.Image
}

// NewEngine wires the orchestrator.
func NewEngine(store *session.Store, generator ai.Generator, scheduler *playback.Scheduler, personality *persona.Store) *Engine {
	return &Engine{
		store:       store,
		generator:   generator,
		scheduler:   scheduler,
		personality: personality,
		events:      NewBroadcaster(),
	}
}

// Events exposes the engine's notification feed for streaming handlers.
func (e *Engine) Events() *Broadcaster {
	return e.events
}

// IsGenerating reports whether a turn (generation call or playback) is
// still in flight.
func (e *Engine) IsGenerating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generating
}

// NewChat creates a chat, makes it current, and clears the composer state,
// mirroring the "new chat" user intent.
func (e *Engine) NewChat() *chat.Chat {
	e.mu.Lock()
	e.pendingImages = nil
	e.mu.Unlock()
	return e.store.CreateChat()
}

// AttachImage adds an image to the composer for the next turn.
func (e *Engine) AttachImage(img chat.Image) {
	e.mu.Lock()
	e.pendingImages = append(e.pendingImages, img)
	e.mu.Unlock()
}

// PendingImages returns the composer's attached images.
func (e *Engine) PendingImages() []chat.Image {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]chat.Image(nil), e.pendingImages...)
}

// ClearAttachments drops the composer's attached images.
func (e *Engine) ClearAttachments() {
	e.mu.Lock()
	e.pendingImages = nil
	e.mu.Unlock()
}

// Send runs one full turn. An empty prompt with no attached images is a
// silent no-op. While a turn is in flight, further sends return ErrBusy.
// The composer state is cleared as soon as the turn is appended, before the
// generation call returns, so the input surface is immediately reusable.
func (e *Engine) Send(ctx context.Context, prompt string, images []chat.Image) error {
	e.mu.Lock()
	all := append(append([]chat.Image(nil), e.pendingImages...), images...)
	if strings.TrimSpace(prompt) == "" && len(all) == 0 {
		e.mu.Unlock()
		return nil
	}
	if e.generating {
		e.mu.Unlock()
		return ErrBusy
	}
	e.generating = true
	e.stopRequested = false
	e.job = nil
	e.pendingImages = nil
	e.mu.Unlock()

	chatID := e.store.CurrentChatID()
	if chatID == "" {
		chatID = e.store.CreateChat().ID
	}

	prior, _ := e.store.Chat(chatID)

	userMsg := session.NewUserMessage(prompt, all)
	placeholder := session.NewAssistantPlaceholder()
	e.store.AppendTurn(chatID, userMsg, placeholder)

	e.events.Publish(Event{Type: EventStart, ChatID: chatID, MessageID: placeholder.ID})

	contextText := buildContext(e.personality.Profile(), prior, prompt)

	response, err := e.generator.Generate(ctx, contextText, all)
	if err != nil {
		log.Warn().Err(err).Str("chat", chatID).Msg("generation failed")
		e.store.AppendMessageContent(chatID, placeholder.ID, generationFailedMessage)
		e.finishTurn()
		e.events.Publish(Event{
			Type:      EventError,
			ChatID:    chatID,
			MessageID: placeholder.ID,
			Content:   generationFailedMessage,
		})
		return nil
	}

	e.mu.Lock()
	if e.stopRequested {
		// Stop arrived while the generation call was in flight; the turn is
		// finalized with whatever content the placeholder holds.
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	job := e.scheduler.Start(chatID, placeholder.ID, response, e.applyChunk, func() {
		e.finishTurn()
		e.events.Publish(Event{Type: EventDone, ChatID: chatID, MessageID: placeholder.ID})
	})

	e.mu.Lock()
	if e.stopRequested {
		// Stop raced with job creation; its timers must not deliver.
		e.mu.Unlock()
		job.Cancel()
		return nil
	}
	if !job.Done() {
		e.job = job
	}
	e.mu.Unlock()
	return nil
}

// Stop cancels the active playback job, clears the generating flag
// immediately, and leaves already-applied chunks in place.
func (e *Engine) Stop() {
	e.mu.Lock()
	job := e.job
	e.job = nil
	wasGenerating := e.generating
	e.generating = false
	e.stopRequested = true
	e.mu.Unlock()

	if job != nil {
		job.Cancel()
	}
	if wasGenerating {
		e.events.Publish(Event{Type: EventCancelled})
	}
}

func (e *Engine) applyChunk(chatID, messageID, chunk string, index int) {
	e.store.AppendMessageContent(chatID, messageID, chunk)
	e.events.Publish(Event{
		Type:      EventChunk,
		ChatID:    chatID,
		MessageID: messageID,
		Content:   chunk,
		Index:     index,
	})
}

func (e *Engine) finishTurn() {
	e.mu.Lock()
	e.generating = false
	e.job = nil
	e.mu.Unlock()
}

// buildContext assembles the generation payload: the personality directive,
// then the serialized transcript of prior turns when the chat has history,
// then the new prompt.
func buildContext(profile persona.Profile, prior *chat.Chat, prompt string) string {
	var b strings.Builder
	b.WriteString(profile.Directive())
	b.WriteString("\n\n")

	if prior != nil && len(prior.Messages) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, m := range prior.Messages {
			switch m.Role {
			case chat.RoleUser:
				b.WriteString("User: ")
				b.WriteString(m.Content)
				b.WriteString("\n")
			case chat.RoleAssistant:
				if m.Content != "" {
					b.WriteString("Assistant: ")
					b.WriteString(m.Content)
					b.WriteString("\n")
				}
			}
		}
		b.WriteString("\nCurrent question: ")
		b.WriteString(prompt)
		return b.String()
	}

	b.WriteString(prompt)
	return b.String()
}
