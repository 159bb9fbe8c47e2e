package mail

import (
	"context"
	"log/slog"
)

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendSessionNotification(ctx context.Context, n SessionNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("session notification",
		"to", n.To,
		"subject", subject(n),
		"coach", n.CoachName,
		"start_at", n.StartAt,
		"end_at", n.EndAt,
		"meet_url", n.MeetURL,
	)
	return nil
}
