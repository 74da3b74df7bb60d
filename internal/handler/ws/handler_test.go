package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/legourmet/concierge/internal/bus"
	model "github.com/legourmet/concierge/internal/model/convo"
	convoservice "github.com/legourmet/concierge/internal/service/convo"
	"github.com/legourmet/concierge/internal/service/dialog"
)

func setupServer(t *testing.T) (*httptest.Server, *convoservice.Manager, *bus.SuggestionBus) {
	t.Helper()
	sessions := convoservice.NewManager(dialog.NewEngine(), 0)
	sugBus := bus.New()
	handler := New(sessions, sugBus)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sessions, sugBus
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestSocketTurn(t *testing.T) {
	srv, sessions, _ := setupServer(t)
	session := sessions.CreateSession(context.Background())
	conn := dial(t, srv, session.ID)

	if err := conn.WriteJSON(inboundFrame{Type: frameMessage, Text: "book a table"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != frameMessage || frame.Message == nil {
		t.Fatalf("unexpected frame: %+v", frame)
	}
	if frame.Message.Role != model.RoleBot || len(frame.Message.Suggestions) != 4 {
		t.Fatalf("unexpected bot message: %+v", frame.Message)
	}
}

func TestSocketPrefill(t *testing.T) {
	srv, sessions, sugBus := setupServer(t)
	session := sessions.CreateSession(context.Background())
	conn := dial(t, srv, session.ID)

	// Give the subscription goroutine a beat to come up.
	time.Sleep(50 * time.Millisecond)
	sugBus.Publish(bus.SuggestionEvent{SessionID: session.ID, Text: "Today"})

	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != framePrefill || frame.Text != "Today" {
		t.Fatalf("unexpected frame: %+v", frame)
	}
}

func TestSocketRejectsEmptyFrame(t *testing.T) {
	srv, sessions, _ := setupServer(t)
	session := sessions.CreateSession(context.Background())
	conn := dial(t, srv, session.ID)

	if err := conn.WriteJSON(inboundFrame{Type: frameMessage, Text: "  "}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != frameError {
		t.Fatalf("expected an error frame, got %+v", frame)
	}
}

func TestSocketUnknownSession(t *testing.T) {
	srv, _, _ := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected the upgrade to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", resp)
	}
}
