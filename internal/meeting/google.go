package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const videoEntryPointType = "video"

// GoogleProvider creates Calendar events with Meet conferencing through a
// service account.
type GoogleProvider struct {
	service    *calendar.Service
	calendarID string
	timeZone   string
	logger     *slog.Logger
	requestID  func() string
}

// CalendarInfo describes the calendar the provider writes events to.
type CalendarInfo struct {
	ID       string
	Summary  string
	TimeZone string
}

// NewGoogleProvider authenticates with the service account in cfg. When the
// credentials are incomplete the provider is still returned, but every
// CreateMeeting call fails with ErrGoogleNotConfigured.
func NewGoogleProvider(ctx context.Context, cfg Config, logger *slog.Logger) (*GoogleProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if SelectKind(cfg) != KindGoogle {
		logger.Warn("google meet integration is not fully configured")
		return newGoogleProvider(nil, cfg, logger), nil
	}

	jwtConfig := &jwt.Config{
		Email:      normalize(cfg.ServiceAccountEmail),
		PrivateKey: []byte(strings.ReplaceAll(cfg.ServiceAccountKey, `\n`, "\n")),
		Scopes:     []string{calendar.CalendarScope},
		TokenURL:   google.JWTTokenURL,
		Subject:    normalize(cfg.ImpersonatedUser),
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return newGoogleProvider(service, cfg, logger), nil
}

func newGoogleProvider(service *calendar.Service, cfg Config, logger *slog.Logger) *GoogleProvider {
	timeZone := normalize(cfg.TimeZone)
	if timeZone == "" {
		timeZone = DefaultTimeZone
	}

	return &GoogleProvider{
		service:    service,
		calendarID: normalize(cfg.CalendarID),
		timeZone:   timeZone,
		logger:     logger,
		requestID:  uuid.NewString,
	}
}

func (p *GoogleProvider) CreateMeeting(ctx context.Context, req MeetingRequest) (Link, error) {
	if !p.ready() {
		return Link{}, ErrGoogleNotConfigured
	}

	summary := defaultSummary
	if req.Title != nil && normalize(*req.Title) != "" {
		summary = *req.Title
	}

	event := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: req.StartAt.UTC().Format(time.RFC3339),
			TimeZone: p.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndAt.UTC().Format(time.RFC3339),
			TimeZone: p.timeZone,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: p.requestID(),
			},
		},
	}

	created, err := p.service.Events.Insert(p.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		p.logAPIError("insert event", err)
		return Link{}, err
	}

	meetURL := extractMeetURL(created)
	if created.Id == "" || meetURL == "" {
		return Link{}, ErrNoMeetingURL
	}

	p.logger.Info("created google meet", "url", meetURL, "event_id", created.Id)

	return Link{URL: meetURL, ExternalID: created.Id}, nil
}

// Calendar fetches the configured calendar, confirming the service account
// can reach it.
func (p *GoogleProvider) Calendar(ctx context.Context) (*CalendarInfo, error) {
	if !p.ready() {
		return nil, ErrGoogleNotConfigured
	}

	cal, err := p.service.Calendars.Get(p.calendarID).Context(ctx).Do()
	if err != nil {
		p.logAPIError("get calendar", err)
		return nil, err
	}
	return &CalendarInfo{ID: cal.Id, Summary: cal.Summary, TimeZone: cal.TimeZone}, nil
}

// Subscribe adds the configured calendar to the service account's calendar
// list. Calendars shared with a service account do not show up there until
// this is done once.
func (p *GoogleProvider) Subscribe(ctx context.Context) (*CalendarInfo, error) {
	if !p.ready() {
		return nil, ErrGoogleNotConfigured
	}

	entry, err := p.service.CalendarList.Insert(&calendar.CalendarListEntry{Id: p.calendarID}).
		Context(ctx).
		Do()
	if err != nil {
		p.logAPIError("insert calendar list entry", err)
		return nil, err
	}
	return &CalendarInfo{ID: entry.Id, Summary: entry.Summary, TimeZone: entry.TimeZone}, nil
}

func (p *GoogleProvider) ready() bool {
	return p != nil && p.service != nil && p.calendarID != ""
}

func (p *GoogleProvider) logAPIError(op string, err error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		p.logger.Error("google calendar api error",
			"op", op,
			"status", apiErr.Code,
			"body", apiErr.Body,
		)
		return
	}
	p.logger.Error("google calendar request failed", "op", op, "error", err)
}

// extractMeetURL prefers the video entry point and falls back to the
// event's hangout link.
func extractMeetURL(event *calendar.Event) string {
	if event == nil {
		return ""
	}
	if event.ConferenceData != nil {
		for _, entry := range event.ConferenceData.EntryPoints {
			if entry != nil && entry.EntryPointType == videoEntryPointType && entry.Uri != "" {
				return entry.Uri
			}
		}
	}
	return event.HangoutLink
}
