package meeting

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"time"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz"

// FallbackProvider fabricates Meet-style links when no calendar integration
// is configured. The links are well-formed but not backed by a real meeting.
type FallbackProvider struct {
	domain string
	logger *slog.Logger
	now    func() time.Time
}

func NewFallbackProvider(domain string, logger *slog.Logger) (*FallbackProvider, error) {
	domain = strings.TrimRight(normalize(domain), "/")
	if domain == "" {
		domain = DefaultDomain
	}

	parsed, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("parse meet domain: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("meet domain %q must be an absolute url", domain)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FallbackProvider{
		domain: domain,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (p *FallbackProvider) CreateMeeting(_ context.Context, req MeetingRequest) (Link, error) {
	meetURL := p.domain + "/" + GenerateSlug()

	title := "Coaching Session"
	if req.Title != nil && normalize(*req.Title) != "" {
		title = *req.Title
	}
	p.logger.Info("generated fallback meet url", "url", meetURL, "title", title)

	return Link{
		URL:        meetURL,
		ExternalID: fmt.Sprintf("stub-%d", p.now().UnixMilli()),
	}, nil
}

// GenerateSlug returns three dash-separated groups of three lowercase letters.
func GenerateSlug() string {
	var b strings.Builder
	b.Grow(11)
	for group := 0; group < 3; group++ {
		if group > 0 {
			b.WriteByte('-')
		}
		for i := 0; i < 3; i++ {
			b.WriteByte(slugAlphabet[rand.Intn(len(slugAlphabet))])
		}
	}
	return b.String()
}
