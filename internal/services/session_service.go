package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/mail"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/repository"
)

const (
	unknownNotificationError = "notification failed without an error message"
	maxSessionTitleLength    = 200
)

// StudentOwnershipChecker resolves a student scoped to its coach.
type StudentOwnershipChecker interface {
	EnsureOwned(ctx context.Context, studentID uuid.UUID, coachID uuid.UUID) (*models.Student, error)
}

type SessionStore interface {
	Create(ctx context.Context, input repository.CreateSessionInput) (*models.Session, error)
	ListByCoach(ctx context.Context, coachID uuid.UUID) ([]models.Session, error)
}

// EmailLogStore appends notification attempts.
type EmailLogStore interface {
	Create(ctx context.Context, input repository.CreateEmailLogInput) error
}

// SessionService books coaching sessions. It keeps no state between calls;
// everything durable goes through the repositories.
type SessionService struct {
	students       StudentOwnershipChecker
	sessionRepo    SessionStore
	emailLogRepo   EmailLogStore
	meetings       meeting.Provider
	mailer         mail.Sender
	meetingTimeout time.Duration
	logger         *slog.Logger
}

func NewSessionService(
	students StudentOwnershipChecker,
	sessionRepo SessionStore,
	emailLogRepo EmailLogStore,
	meetings meeting.Provider,
	mailer mail.Sender,
	meetingTimeout time.Duration,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		students:       students,
		sessionRepo:    sessionRepo,
		emailLogRepo:   emailLogRepo,
		meetings:       meetings,
		mailer:         mailer,
		meetingTimeout: meetingTimeout,
		logger:         logger,
	}
}

type CreateSessionInput struct {
	StudentID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Title     *string
}

// NotificationOutcome is what became of the confirmation email.
type NotificationOutcome struct {
	Status       models.EmailStatus
	ErrorMessage string
}

// BookingResult pairs the persisted session with the outcome of the
// best-effort notification. A failed notification does not make the
// booking fail.
type BookingResult struct {
	Session *models.Session
	Email   NotificationOutcome
}

// CreateSession checks that the student belongs to the coach, creates the
// meeting link, persists the session and notifies the student. Ownership
// failures return ErrStudentNotFound; meeting and persistence failures
// return ErrServer and leave nothing behind. Notification failures are
// recorded in the email log and reported only through the result.
func (s *SessionService) CreateSession(
	ctx context.Context,
	coach *models.User,
	input CreateSessionInput,
) (*BookingResult, error) {
	if coach == nil || input.StudentID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if input.StartAt.IsZero() || !input.StartAt.Before(input.EndAt) {
		return nil, ErrInvalidInput
	}
	title := normalizeTitle(input.Title)
	if title != nil && utf8.RuneCountInString(*title) > maxSessionTitleLength {
		return nil, ErrInvalidInput
	}

	student, err := s.students.EnsureOwned(ctx, input.StudentID, coach.ID)
	if err != nil {
		return nil, err
	}

	link, err := s.createMeeting(ctx, meeting.MeetingRequest{
		StartAt: input.StartAt,
		EndAt:   input.EndAt,
		Title:   title,
	})
	if err != nil {
		s.logger.Error("create meeting link", "coach_id", coach.ID, "student_id", student.ID, "error", err)
		return nil, fmt.Errorf("%w: create meeting: %w", ErrServer, err)
	}

	var externalID *string
	if link.ExternalID != "" {
		externalID = &link.ExternalID
	}

	session, err := s.sessionRepo.Create(ctx, repository.CreateSessionInput{
		StudentID:  student.ID,
		CoachID:    coach.ID,
		StartAt:    input.StartAt.UTC(),
		EndAt:      input.EndAt.UTC(),
		Title:      title,
		MeetURL:    link.URL,
		ExternalID: externalID,
	})
	if err != nil {
		s.logger.Error("persist session", "coach_id", coach.ID, "student_id", student.ID, "error", err)
		return nil, fmt.Errorf("%w: persist session: %w", ErrServer, err)
	}
	session.Student = &models.StudentSummary{ID: student.ID, Name: student.Name, Email: student.Email}

	outcome := s.notify(ctx, coach, student, session)

	return &BookingResult{Session: session, Email: outcome}, nil
}

func (s *SessionService) ListSessions(ctx context.Context, coachID uuid.UUID) ([]models.Session, error) {
	return s.sessionRepo.ListByCoach(ctx, coachID)
}

func (s *SessionService) createMeeting(ctx context.Context, req meeting.MeetingRequest) (meeting.Link, error) {
	if s.meetingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.meetingTimeout)
		defer cancel()
	}
	return s.meetings.CreateMeeting(ctx, req)
}

// notify sends the confirmation and writes exactly one email log entry,
// whatever the send returned.
func (s *SessionService) notify(
	ctx context.Context,
	coach *models.User,
	student *models.Student,
	session *models.Session,
) NotificationOutcome {
	sendErr := s.mailer.SendSessionNotification(ctx, mail.SessionNotification{
		To:          student.Email,
		StudentName: student.Name,
		CoachName:   coach.Name,
		StartAt:     session.StartAt,
		EndAt:       session.EndAt,
		MeetURL:     session.MeetURL,
		Title:       session.Title,
	})

	outcome := NotificationOutcome{Status: models.EmailStatusSuccess}
	var errorMessage *string
	if sendErr != nil {
		message := sendErr.Error()
		if strings.TrimSpace(message) == "" {
			message = unknownNotificationError
		}
		outcome = NotificationOutcome{Status: models.EmailStatusFailed, ErrorMessage: message}
		errorMessage = &message
		s.logger.Warn("session notification failed", "session_id", session.ID, "to", student.Email, "error", message)
	}

	// The session is already committed, so the log entry must not be lost to
	// a caller that went away in the meantime.
	if err := s.emailLogRepo.Create(context.WithoutCancel(ctx), repository.CreateEmailLogInput{
		SessionID:    session.ID,
		ToEmail:      student.Email,
		Status:       outcome.Status,
		ErrorMessage: errorMessage,
	}); err != nil {
		s.logger.Error("record notification attempt", "session_id", session.ID, "status", outcome.Status, "error", err)
	}

	return outcome
}

func normalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
