package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const smtpTimeout = 10 * time.Second

// SMTPSender delivers notifications through an SMTP relay. A go-mail client
// holds a single connection, so every send dials its own client.
type SMTPSender struct {
	host    string
	options []gomail.Option
	from    string
	logger  *slog.Logger
}

func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) (*SMTPSender, error) {
	options := []gomail.Option{
		gomail.WithTimeout(smtpTimeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		options = append(options, gomail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	// Fail at startup on options go-mail rejects.
	if _, err := gomail.NewClient(cfg.Host, options...); err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPSender{host: cfg.Host, options: options, from: cfg.From, logger: logger}, nil
}

func (s *SMTPSender) SendSessionNotification(ctx context.Context, n SessionNotification) error {
	msg, err := buildMessage(s.from, n)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.host, s.options...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Error("send session notification", "to", n.To, "error", err)
		return fmt.Errorf("send session notification: %w", err)
	}

	s.logger.Info("session notification sent", "to", n.To)
	return nil
}

func buildMessage(from string, n SessionNotification) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", from, err)
	}
	if err := msg.To(n.To); err != nil {
		return nil, fmt.Errorf("set recipient %q: %w", n.To, err)
	}
	msg.Subject(subject(n))
	msg.SetBodyString(gomail.TypeTextPlain, body(n))
	return msg, nil
}
