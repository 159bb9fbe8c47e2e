// Package meeting creates the video-meeting links attached to coaching
// sessions. Two variants exist: GoogleProvider creates a Calendar event with
// Meet conferencing, FallbackProvider synthesizes a Meet-style URL locally.
// Which one serves a process is decided once, by SelectKind, from the
// configuration alone.
package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	DefaultTimeZone = "Asia/Tokyo"
	DefaultDomain   = "https://meet.google.com"
	defaultSummary  = "Online Coaching Session"
)

var (
	ErrGoogleNotConfigured = errors.New("google meet integration is not configured")
	ErrNoMeetingURL        = errors.New("google calendar api did not return a meet url")
)

// Link is the joinable meeting produced for a session.
type Link struct {
	URL        string
	ExternalID string
}

type MeetingRequest struct {
	StartAt time.Time
	EndAt   time.Time
	Title   *string
}

type Provider interface {
	CreateMeeting(ctx context.Context, req MeetingRequest) (Link, error)
}

type Config struct {
	ServiceAccountEmail string
	ServiceAccountKey   string
	CalendarID          string
	ImpersonatedUser    string
	TimeZone            string
	FallbackDomain      string
}

type Kind string

const (
	KindGoogle   Kind = "google"
	KindFallback Kind = "fallback"
)

// SelectKind reports which provider the configuration supports. All three
// Google credentials must be present for the live provider.
func SelectKind(cfg Config) Kind {
	if normalize(cfg.ServiceAccountEmail) == "" ||
		normalize(cfg.ServiceAccountKey) == "" ||
		normalize(cfg.CalendarID) == "" {
		return KindFallback
	}
	return KindGoogle
}

// New builds the provider chosen by SelectKind.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Provider, Kind, error) {
	if logger == nil {
		logger = slog.Default()
	}

	kind := SelectKind(cfg)
	switch kind {
	case KindGoogle:
		provider, err := NewGoogleProvider(ctx, cfg, logger)
		if err != nil {
			return nil, kind, err
		}
		return provider, kind, nil
	case KindFallback:
		logger.Warn("google meet integration is not fully configured, using fallback meeting links")
		provider, err := NewFallbackProvider(cfg.FallbackDomain, logger)
		if err != nil {
			return nil, kind, err
		}
		return provider, kind, nil
	default:
		return nil, kind, fmt.Errorf("unknown meeting provider kind %q", kind)
	}
}

func normalize(value string) string {
	return strings.TrimSpace(value)
}
