package notify

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/legourmet/concierge/internal/service/notify"
	"github.com/legourmet/concierge/pkg/utils"
)

// Handler exposes the raw notification endpoint for callers that collect
// the contact details themselves.
type Handler struct {
	mailer *notify.Mailer
}

// New creates the notification handler.
func New(mailer *notify.Mailer) *Handler {
	return &Handler{mailer: mailer}
}

// RegisterRoutes mounts the notification route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/send-reservation", h.handleSendReservation)
}

func (h *Handler) handleSendReservation(w http.ResponseWriter, r *http.Request) {
	var payload notify.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid request body"})
		return
	}

	if err := h.mailer.SendReservation(r.Context(), payload); err != nil {
		if errors.Is(err, notify.ErrMissingFields) {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "missing required fields"})
			return
		}
		utils.RespondJSON(w, http.StatusBadGateway, map[string]any{"ok": false, "error": "failed to send the reservation email"})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
