package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/models"
)

type CreateSessionInput struct {
	StudentID  uuid.UUID
	CoachID    uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Title      *string
	MeetURL    string
	ExternalID *string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		INSERT INTO sessions (student_id, coach_id, start_at, end_at, title, status, meet_url, external_id)
		VALUES ($1, $2, $3, $4, $5, 'scheduled', $6, $7)
		RETURNING id, student_id, coach_id, start_at, end_at, title, status, meet_url, external_id, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.StudentID,
		input.CoachID,
		input.StartAt,
		input.EndAt,
		input.Title,
		input.MeetURL,
		input.ExternalID,
	).Scan(
		&session.ID,
		&session.StudentID,
		&session.CoachID,
		&session.StartAt,
		&session.EndAt,
		&session.Title,
		&session.Status,
		&session.MeetURL,
		&session.ExternalID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByCoach(ctx context.Context, coachID uuid.UUID) ([]models.Session, error) {
	query := `
		SELECT s.id, s.student_id, s.coach_id, s.start_at, s.end_at, s.title, s.status, s.meet_url,
		       s.external_id, s.created_at, s.updated_at, st.id, st.name, st.email
		FROM sessions s
		JOIN students st ON st.id = s.student_id
		WHERE s.coach_id = $1
		ORDER BY s.start_at ASC, s.id ASC
	`

	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		var student models.StudentSummary
		if err := rows.Scan(
			&session.ID,
			&session.StudentID,
			&session.CoachID,
			&session.StartAt,
			&session.EndAt,
			&session.Title,
			&session.Status,
			&session.MeetURL,
			&session.ExternalID,
			&session.CreatedAt,
			&session.UpdatedAt,
			&student.ID,
			&student.Name,
			&student.Email,
		); err != nil {
			return nil, err
		}
		session.Student = &student
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
