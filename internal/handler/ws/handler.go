// Package ws serves the live chat surface: one turn per inbound frame plus
// suggestion-prefill pushes from the bus.
package ws

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/legourmet/concierge/internal/bus"
	"github.com/legourmet/concierge/internal/model/convo"
	convoservice "github.com/legourmet/concierge/internal/service/convo"
	"github.com/legourmet/concierge/pkg/utils"
)

// Frame types on the wire.
const (
	frameMessage = "message"
	framePrefill = "prefill"
	frameError   = "error"
)

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outboundFrame struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Message *convo.Message `json:"message,omitempty"`
}

// Handler upgrades chat sessions to a websocket.
type Handler struct {
	sessions *convoservice.Manager
	sugBus   *bus.SuggestionBus
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(sessions *convoservice.Manager, sugBus *bus.SuggestionBus) *Handler {
	return &Handler{
		sessions: sessions,
		sugBus:   sugBus,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleSocket)
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.sessions.Store(sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	// Replies and prefill pushes share the connection; writes are
	// serialized through one mutex.
	var writeMu sync.Mutex
	send := func(frame outboundFrame) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(frame)
	}

	events, cancel := h.sugBus.Subscribe(sessionID)
	defer cancel()
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case evt := <-events:
				if err := send(outboundFrame{Type: framePrefill, Text: evt.Text}); err != nil {
					return
				}
			}
		}
	}()

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] session %s closed: %v", sessionID, err)
			}
			return
		}

		if frame.Type != frameMessage || strings.TrimSpace(frame.Text) == "" {
			if err := send(outboundFrame{Type: frameError, Text: "expected a non-empty message frame"}); err != nil {
				return
			}
			continue
		}

		botMsg, err := h.sessions.RunTurn(r.Context(), sessionID, strings.TrimSpace(frame.Text))
		if err != nil {
			text := "turn failed"
			if errors.Is(err, convoservice.ErrTurnInFlight) {
				text = "a turn is already being processed"
			}
			if err := send(outboundFrame{Type: frameError, Text: text}); err != nil {
				return
			}
			continue
		}

		if err := send(outboundFrame{Type: frameMessage, Message: &botMsg}); err != nil {
			return
		}
	}
}
