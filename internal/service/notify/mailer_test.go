package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/legourmet/concierge/internal/config"
)

func validPayload() Payload {
	date := "01-01-2030"
	hour := "19:00"
	people := 2
	return Payload{
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		Phone:       "0600000000",
		Message:     "window table please",
		Reservation: Reservation{Date: &date, Time: &hour, People: &people},
	}
}

func TestPayloadValidate(t *testing.T) {
	if err := validPayload().Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	for _, mutate := range []func(*Payload){
		func(p *Payload) { p.Name = "" },
		func(p *Payload) { p.Email = "  " },
		func(p *Payload) { p.Phone = "" },
	} {
		p := validPayload()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields, got %v", err)
		}
	}

	// The message is optional.
	p := validPayload()
	p.Message = ""
	if err := p.Validate(); err != nil {
		t.Fatalf("empty message rejected: %v", err)
	}
}

func TestSendReservationRejectsInvalid(t *testing.T) {
	m := NewMailer(config.MailConfig{Host: "smtp.example.com", Port: 587})
	p := validPayload()
	p.Email = ""

	if err := m.SendReservation(context.Background(), p); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestSendReservationWithoutSMTPDrops(t *testing.T) {
	m := NewMailer(config.MailConfig{})

	if err := m.SendReservation(context.Background(), validPayload()); err != nil {
		t.Fatalf("unconfigured mailer should drop silently, got %v", err)
	}
}

func TestRenderBody(t *testing.T) {
	body := renderBody(validPayload())
	for _, want := range []string{"Jane Doe", "jane@x.com", "0600000000", "01-01-2030", "19:00", "People: 2"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body should mention %q:\n%s", want, body)
		}
	}
}

func TestRenderBodyDefaults(t *testing.T) {
	p := validPayload()
	p.Message = ""
	p.Reservation = Reservation{}

	body := renderBody(p)
	if !strings.Contains(body, "(none)") {
		t.Fatalf("expected message placeholder:\n%s", body)
	}
	if strings.Count(body, "not provided") != 3 {
		t.Fatalf("expected three reservation placeholders:\n%s", body)
	}
}

func TestRenderBodyEscapesHTML(t *testing.T) {
	p := validPayload()
	p.Name = "<script>alert(1)</script>"

	if strings.Contains(renderBody(p), "<script>") {
		t.Fatal("user input must be escaped")
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	cfg := config.MailConfig{Host: "smtp.example.com", User: "bot@legourmet.example", To: "staff@legourmet.example"}
	msg := string(buildMessage(cfg, validPayload()))

	for _, want := range []string{
		"To: staff@legourmet.example\r\n",
		"Reply-To: jane@x.com\r\n",
		"Subject: New reservation request - Jane Doe\r\n",
		"Content-Type: text/html",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message should contain %q:\n%s", want, msg)
		}
	}
}
