package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Dialog DialogConfig
	Mail   MailConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	dialog, err := loadDialogConfig()
	if err != nil {
		return nil, err
	}

	mail, err := loadMailConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Dialog: dialog, Mail: mail}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "4000"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":4000" or "127.0.0.1:4000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// DialogConfig tunes the turn dispatcher.
type DialogConfig struct {
	// ThinkDelay is the pause between logging a user message and logging
	// the bot reply.
	ThinkDelay time.Duration
}

func loadDialogConfig() (DialogConfig, error) {
	delayMS := 1000
	if override, err := parseOptionalIntEnv("THINK_DELAY_MS"); err != nil {
		return DialogConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return DialogConfig{}, fmt.Errorf("THINK_DELAY_MS must not be negative, got %d", *override)
		}
		delayMS = *override
	}

	return DialogConfig{ThinkDelay: time.Duration(delayMS) * time.Millisecond}, nil
}

// MailConfig describes the SMTP channel for reservation notifications.
// An empty Host disables the mailer.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromAddr string
	To       string
}

// From is the sender address, falling back to the SMTP user.
func (c MailConfig) From() string {
	if c.FromAddr != "" {
		return c.FromAddr
	}
	return c.User
}

// Recipient is the restaurant mailbox, falling back to the SMTP user.
func (c MailConfig) Recipient() string {
	if c.To != "" {
		return c.To
	}
	return c.User
}

func loadMailConfig() (MailConfig, error) {
	port := 587
	if override, err := parseOptionalIntEnv("SMTP_PORT"); err != nil {
		return MailConfig{}, err
	} else if override != nil {
		port = *override
	}

	return MailConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     port,
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Pass:     os.Getenv("SMTP_PASS"),
		FromAddr: strings.TrimSpace(os.Getenv("SMTP_FROM")),
		To:       strings.TrimSpace(os.Getenv("RESERVATION_TO")),
	}, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
