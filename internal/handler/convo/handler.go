package convo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/legourmet/concierge/internal/bus"
	"github.com/legourmet/concierge/internal/model/convo"
	convoservice "github.com/legourmet/concierge/internal/service/convo"
	"github.com/legourmet/concierge/internal/service/dialog"
	"github.com/legourmet/concierge/internal/service/notify"
	"github.com/legourmet/concierge/pkg/utils"
)

// Handler exposes the conversation over HTTP.
type Handler struct {
	sessions *convoservice.Manager
	mailer   *notify.Mailer
	sugBus   *bus.SuggestionBus
}

// New creates the conversation handler.
func New(sessions *convoservice.Manager, mailer *notify.Mailer, sugBus *bus.SuggestionBus) *Handler {
	return &Handler{
		sessions: sessions,
		mailer:   mailer,
		sugBus:   sugBus,
	}
}

// RegisterRoutes mounts the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/messages", h.handleTurn)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Get("/session/{sessionID}/state", h.handleState)
	r.Post("/session/{sessionID}/contact", h.handleContact)
	r.Post("/session/{sessionID}/suggest", h.handleSuggest)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.CreateSession(r.Context())
	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	botMsg, err := h.sessions.RunTurn(r.Context(), payload.SessionID, strings.TrimSpace(payload.Text))
	if err != nil {
		respondTurnError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, botMsg)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	store, err := h.sessions.Store(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, store.Messages())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	store, err := h.sessions.Store(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"step":           store.Step(),
		"draft":          store.Draft(),
		"weekendPending": store.WeekendPending(),
	})
}

// handleContact bridges the external contact form back into the dialogue:
// the validated details are merged into the draft, the notification email
// goes out, and the sentinel utterance makes the engine emit the
// completion summary and reset the flow.
func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	store, err := h.sessions.Store(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := store.Draft()
	notification := notify.Payload{
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.TrimSpace(payload.Email),
		Phone:   strings.TrimSpace(payload.Phone),
		Message: strings.TrimSpace(payload.Message),
		Reservation: notify.Reservation{
			Date:   draft.Date,
			Time:   draft.Time,
			People: draft.People,
		},
	}

	if err := notification.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "name, email and phone are required")
		return
	}

	if err := h.mailer.SendReservation(r.Context(), notification); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to send the reservation email")
		return
	}

	store.MergeDraft(convo.Draft{
		Name:    &notification.Name,
		Email:   &notification.Email,
		Phone:   &notification.Phone,
		Message: &notification.Message,
	})

	botMsg, err := h.sessions.RunTurn(r.Context(), sessionID, dialog.ContactValidatedSignal)
	if err != nil {
		respondTurnError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, botMsg)
}

// handleSuggest publishes a prefill suggestion for the session. The text
// only lands in the guest's input box; it is never submitted for them.
func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.sessions.Store(sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	h.sugBus.Publish(bus.SuggestionEvent{SessionID: sessionID, Text: payload.Text})
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func respondTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, convoservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, convoservice.ErrTurnInFlight):
		utils.RespondError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
