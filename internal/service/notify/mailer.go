// Package notify delivers completed reservation requests to the restaurant
// mailbox over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/legourmet/concierge/internal/config"
)

// ErrMissingFields marks a payload without the required contact details.
var ErrMissingFields = errors.New("missing required fields")

// Reservation mirrors the draft fields echoed in the notification email.
type Reservation struct {
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	People *int    `json:"people,omitempty"`
}

// Payload is the reservation hand-off contract. Name, email and phone are
// required; the message is optional.
type Payload struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Message     string      `json:"message,omitempty"`
	Reservation Reservation `json:"reservation"`
}

// Validate checks the required contact fields.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Name) == "" ||
		strings.TrimSpace(p.Email) == "" ||
		strings.TrimSpace(p.Phone) == "" {
		return ErrMissingFields
	}
	return nil
}

// Mailer sends reservation summary emails.
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer returns a mailer for the given SMTP settings.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP credentials were configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendReservation validates the payload and emails the summary to the
// restaurant mailbox. Without SMTP configuration the notification is
// logged and dropped so local runs keep working.
func (m *Mailer) SendReservation(_ context.Context, p Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if !m.Enabled() {
		log.Printf("[mail] smtp not configured, dropping reservation notification for %s", p.Email)
		return nil
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	msg := buildMessage(m.cfg, p)

	if err := smtp.SendMail(addr, auth, m.cfg.From(), []string{m.cfg.Recipient()}, msg); err != nil {
		return fmt.Errorf("send reservation mail: %w", err)
	}

	log.Printf("[mail] reservation notification sent for %s", p.Email)
	return nil
}

// renderBody builds the HTML summary the staff receives.
func renderBody(p Payload) string {
	esc := html.EscapeString

	message := p.Message
	if message == "" {
		message = "(none)"
	}

	day := "not provided"
	if p.Reservation.Date != nil {
		day = *p.Reservation.Date
	}
	hour := "not provided"
	if p.Reservation.Time != nil {
		hour = *p.Reservation.Time
	}
	people := "not provided"
	if p.Reservation.People != nil {
		people = strconv.Itoa(*p.Reservation.People)
	}

	var b strings.Builder
	b.WriteString("<h2>New reservation request</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", esc(p.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", esc(p.Email))
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>\n", esc(p.Phone))
	fmt.Fprintf(&b, "<p><strong>Message:</strong><br/>%s</p>\n", esc(message))
	b.WriteString("<hr/>\n<p><strong>Reservation summary:</strong></p>\n")
	fmt.Fprintf(&b, "<p>Day: %s</p>\n", esc(day))
	fmt.Fprintf(&b, "<p>Time: %s</p>\n", esc(hour))
	fmt.Fprintf(&b, "<p>People: %s</p>\n", esc(people))
	return b.String()
}

func buildMessage(cfg config.MailConfig, p Payload) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"Le Gourmet\" <%s>\r\n", cfg.From())
	fmt.Fprintf(&b, "To: %s\r\n", cfg.Recipient())
	fmt.Fprintf(&b, "Reply-To: %s\r\n", p.Email)
	fmt.Fprintf(&b, "Subject: New reservation request - %s\r\n", p.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(renderBody(p))
	return []byte(b.String())
}
