package stream

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ninakotova/lumina/internal/service/conversation"
	"github.com/ninakotova/lumina/pkg/utils"
)

// heartbeatInterval keeps idle streaming connections alive.
const heartbeatInterval = 30 * time.Second

// Handler relays the engine's playback feed to clients, over Server-Sent
// Events or a WebSocket. Turns are started via POST /send; these endpoints
// only observe.
type Handler struct {
	events   *conversation.Broadcaster
	upgrader websocket.Upgrader
}

// New creates the stream handler.
func New(events *conversation.Broadcaster) *Handler {
	return &Handler{
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes mounts the streaming routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.handleSSE)
	r.Get("/watch", h.handleWebSocket)
}

func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)

	events, cancel := h.events.Subscribe()
	defer cancel()

	log.Debug().Msg("sse playback stream opened")
	utils.SendSSEChunk(w, flusher, map[string]string{"event": "connected"})

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("sse playback stream closed")
			return
		case <-heartbeat.C:
			utils.SendSSEChunk(w, flusher, map[string]string{"event": "heartbeat"})
		case ev, open := <-events:
			if !open {
				return
			}
			utils.SendSSEChunk(w, flusher, ev)
		}
	}
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.events.Subscribe()
	defer cancel()

	// Drain client frames so pings are answered and closure is noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug().Msg("websocket playback feed opened")
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			return
		case <-heartbeat.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case ev, open := <-events:
			if !open {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Msg("websocket playback feed closed")
				return
			}
		}
	}
}
