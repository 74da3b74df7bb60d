package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/legourmet/concierge/internal/bus"
	convoHandler "github.com/legourmet/concierge/internal/handler/convo"
	notifyHandler "github.com/legourmet/concierge/internal/handler/notify"
	wsHandler "github.com/legourmet/concierge/internal/handler/ws"
	convoService "github.com/legourmet/concierge/internal/service/convo"
	notifyService "github.com/legourmet/concierge/internal/service/notify"
)

// NewRouter wires HTTP routes to the core services.
func NewRouter(sessions *convoService.Manager, mailer *notifyService.Mailer, sugBus *bus.SuggestionBus) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	convo := convoHandler.New(sessions, mailer, sugBus)
	notify := notifyHandler.New(mailer)
	sockets := wsHandler.New(sessions, sugBus)

	r.Route("/api", func(api chi.Router) {
		convo.RegisterRoutes(api)
		notify.RegisterRoutes(api)
		sockets.RegisterRoutes(api)
	})

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}
