package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/noguchitomoya/Google-meet/internal/models"
	"github.com/noguchitomoya/Google-meet/internal/repository"
)

const (
	maxStudentNameLength  = 120
	maxStudentEmailLength = 190
	maxStudentNoteLength  = 500

	uniqueViolationCode = "23505"
)

type studentStore interface {
	Create(ctx context.Context, input repository.CreateStudentInput) (*models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByCoachAndEmail(ctx context.Context, coachID uuid.UUID, email string) (*models.Student, error)
	SearchByCoach(ctx context.Context, coachID uuid.UUID, search string) ([]models.Student, error)
}

type StudentService struct {
	studentRepo studentStore
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

type CreateStudentInput struct {
	Name  string
	Email string
	Note  *string
}

func (s *StudentService) Search(ctx context.Context, coachID uuid.UUID, query string) ([]models.Student, error) {
	return s.studentRepo.SearchByCoach(ctx, coachID, query)
}

func (s *StudentService) Create(
	ctx context.Context,
	coachID uuid.UUID,
	input CreateStudentInput,
) (*models.Student, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > maxStudentNameLength {
		return nil, ErrInvalidInput
	}

	parsed, err := mail.ParseAddress(strings.TrimSpace(input.Email))
	if err != nil || len(parsed.Address) > maxStudentEmailLength {
		return nil, ErrInvalidInput
	}
	email := strings.ToLower(parsed.Address)

	var note *string
	if input.Note != nil {
		trimmed := strings.TrimSpace(*input.Note)
		if utf8.RuneCountInString(trimmed) > maxStudentNoteLength {
			return nil, ErrInvalidInput
		}
		if trimmed != "" {
			note = &trimmed
		}
	}

	existing, err := s.studentRepo.GetByCoachAndEmail(ctx, coachID, email)
	if err == nil && existing != nil {
		return nil, ErrConflict
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	student, err := s.studentRepo.Create(ctx, repository.CreateStudentInput{
		Name:            name,
		Email:           email,
		Note:            note,
		CreatedByUserID: coachID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrConflict
		}
		return nil, err
	}
	return student, nil
}

// EnsureOwned returns the student only when it belongs to coachID. Missing
// students and students of other coaches are indistinguishable to the
// caller.
func (s *StudentService) EnsureOwned(
	ctx context.Context,
	studentID uuid.UUID,
	coachID uuid.UUID,
) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if student.CreatedByUserID != coachID {
		return nil, ErrStudentNotFound
	}
	return student, nil
}
