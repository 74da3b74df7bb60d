package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/legourmet/concierge/internal/bus"
	"github.com/legourmet/concierge/internal/config"
	"github.com/legourmet/concierge/internal/handler"
	convoservice "github.com/legourmet/concierge/internal/service/convo"
	"github.com/legourmet/concierge/internal/service/dialog"
	"github.com/legourmet/concierge/internal/service/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	engine := dialog.NewEngine()
	sessions := convoservice.NewManager(engine, cfg.Dialog.ThinkDelay)
	sugBus := bus.New()

	mailer := notify.NewMailer(cfg.Mail)
	if mailer.Enabled() {
		log.Printf("[mail] reservation notifications go to %s via %s", cfg.Mail.Recipient(), cfg.Mail.Host)
	} else {
		log.Println("[mail] SMTP not configured, reservation notifications will be logged and dropped")
	}

	router := handler.NewRouter(sessions, mailer, sugBus)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Le Gourmet concierge backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
