package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SessionNotification is the confirmation sent to a student once a session
// has been booked.
type SessionNotification struct {
	To          string
	StudentName string
	CoachName   string
	StartAt     time.Time
	EndAt       time.Time
	MeetURL     string
	Title       *string
}

// Sender delivers session notifications. Delivery problems are reported
// through the returned error; implementations must not panic.
type Sender interface {
	SendSessionNotification(ctx context.Context, n SessionNotification) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Configured() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.From) != ""
}

// NewSender returns an SMTP sender when a relay is configured and a
// log-only sender otherwise.
func NewSender(cfg SMTPConfig, logger *slog.Logger) (Sender, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Configured() {
		logger.Warn("smtp is not configured, session notifications will only be logged")
		return NewLogSender(logger), nil
	}
	return NewSMTPSender(cfg, logger)
}

func subject(n SessionNotification) string {
	if n.Title != nil && strings.TrimSpace(*n.Title) != "" {
		return "Coaching session scheduled: " + strings.TrimSpace(*n.Title)
	}
	return "Coaching session scheduled"
}

func body(n SessionNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", n.StudentName)
	fmt.Fprintf(&b, "%s has scheduled an online coaching session with you.\n\n", n.CoachName)
	if n.Title != nil && strings.TrimSpace(*n.Title) != "" {
		fmt.Fprintf(&b, "Title: %s\n", strings.TrimSpace(*n.Title))
	}
	fmt.Fprintf(&b, "Start: %s\n", n.StartAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "End:   %s\n", n.EndAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Join:  %s\n", n.MeetURL)
	return b.String()
}
