package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/noguchitomoya/Google-meet/internal/mail"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

type failingSender struct{}

func (failingSender) SendSessionNotification(context.Context, mail.SessionNotification) error {
	return errors.New("mailbox unavailable")
}

func TestSessionServiceBookAndList(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := newIntegrationSessionService(t, pool, mail.NewLogSender(logger))

	coach := createTestCoach(t, ctx, pool)
	t.Cleanup(func() { cleanupTestCoaches(t, ctx, pool, coach.ID) })
	student := createTestStudent(t, ctx, pool, coach.ID)

	startAt := time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC)
	result, err := service.CreateSession(ctx, coach, CreateSessionInput{
		StudentID: student.ID,
		StartAt:   startAt,
		EndAt:     startAt.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if result.Session.Status != models.SessionStatusScheduled {
		t.Fatalf("expected scheduled session, got %q", result.Session.Status)
	}
	if result.Email.Status != models.EmailStatusSuccess {
		t.Fatalf("expected email success, got %+v", result.Email)
	}

	logs, err := repository.NewEmailLogRepository(pool).ListBySessionID(ctx, result.Session.ID)
	if err != nil {
		t.Fatalf("ListBySessionID: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != models.EmailStatusSuccess {
		t.Fatalf("expected one success log entry, got %+v", logs)
	}

	sessions, err := service.ListSessions(ctx, coach.ID)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != result.Session.ID {
		t.Fatalf("expected coach to see session %s, got %+v", result.Session.ID, sessions)
	}
	if sessions[0].Student == nil || sessions[0].Student.Email != student.Email {
		t.Fatalf("expected student summary in list, got %+v", sessions[0].Student)
	}
}

func TestSessionServiceRecordsFailedNotification(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationSessionService(t, pool, failingSender{})

	coach := createTestCoach(t, ctx, pool)
	t.Cleanup(func() { cleanupTestCoaches(t, ctx, pool, coach.ID) })
	student := createTestStudent(t, ctx, pool, coach.ID)

	startAt := time.Date(2030, 4, 1, 12, 0, 0, 0, time.UTC)
	result, err := service.CreateSession(ctx, coach, CreateSessionInput{
		StudentID: student.ID,
		StartAt:   startAt,
		EndAt:     startAt.Add(45 * time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if result.Email.Status != models.EmailStatusFailed {
		t.Fatalf("expected failed email status, got %+v", result.Email)
	}

	logs, err := repository.NewEmailLogRepository(pool).ListBySessionID(ctx, result.Session.ID)
	if err != nil {
		t.Fatalf("ListBySessionID: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != models.EmailStatusFailed {
		t.Fatalf("expected one failed log entry, got %+v", logs)
	}
	if logs[0].ErrorMessage == nil || *logs[0].ErrorMessage != "mailbox unavailable" {
		t.Fatalf("expected error message to be recorded, got %+v", logs[0].ErrorMessage)
	}
}

func TestSessionServiceRejectsForeignStudent(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := newIntegrationSessionService(t, pool, mail.NewLogSender(logger))

	owner := createTestCoach(t, ctx, pool)
	other := createTestCoach(t, ctx, pool)
	t.Cleanup(func() { cleanupTestCoaches(t, ctx, pool, owner.ID, other.ID) })
	student := createTestStudent(t, ctx, pool, owner.ID)

	startAt := time.Date(2030, 5, 10, 8, 0, 0, 0, time.UTC)
	_, err := service.CreateSession(ctx, other, CreateSessionInput{
		StudentID: student.ID,
		StartAt:   startAt,
		EndAt:     startAt.Add(time.Hour),
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}

	sessions, err := service.ListSessions(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions for other coach, got %+v", sessions)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationSessionService(t *testing.T, pool *pgxpool.Pool, sender mail.Sender) *SessionService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider, err := meeting.NewFallbackProvider(meeting.DefaultDomain, logger)
	if err != nil {
		t.Fatalf("NewFallbackProvider: %v", err)
	}

	return NewSessionService(
		NewStudentService(repository.NewStudentRepository(pool)),
		repository.NewSessionRepository(pool),
		repository.NewEmailLogRepository(pool),
		provider,
		sender,
		5*time.Second,
		logger,
	)
}

func createTestCoach(t *testing.T, ctx context.Context, pool *pgxpool.Pool) *models.User {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	suffix := time.Now().UnixNano()
	user := &models.User{
		EmployeeNumber: fmt.Sprintf("T%d", suffix),
		Name:           "Test Coach",
		Email:          fmt.Sprintf("session-test-coach-%d@example.com", suffix),
		Role:           models.RoleCoach,
		Status:         models.UserStatusActive,
		PasswordHash:   "test-hash",
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestStudent(t *testing.T, ctx context.Context, pool *pgxpool.Pool, coachID uuid.UUID) *models.Student {
	t.Helper()

	student, err := NewStudentService(repository.NewStudentRepository(pool)).Create(ctx, coachID, CreateStudentInput{
		Name:  "Test Student",
		Email: fmt.Sprintf("session-test-student-%d@example.com", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("Create student: %v", err)
	}
	return student
}

func cleanupTestCoaches(t *testing.T, ctx context.Context, pool *pgxpool.Pool, coachIDs ...uuid.UUID) {
	t.Helper()

	if len(coachIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, "DELETE FROM email_logs WHERE session_id IN (SELECT id FROM sessions WHERE coach_id = ANY($1))", coachIDs); err != nil {
		t.Fatalf("cleanup email logs: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM sessions WHERE coach_id = ANY($1)", coachIDs); err != nil {
		t.Fatalf("cleanup sessions: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM students WHERE created_by_user_id = ANY($1)", coachIDs); err != nil {
		t.Fatalf("cleanup students: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", coachIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
