package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/noguchitomoya/Google-meet/internal/models"
)

type CreateEmailLogInput struct {
	SessionID    uuid.UUID
	ToEmail      string
	Status       models.EmailStatus
	ErrorMessage *string
}

// EmailLogRepository is append-only: rows are inserted and read, never
// updated.
type EmailLogRepository struct {
	db DBTX
}

func NewEmailLogRepository(db DBTX) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

func (r *EmailLogRepository) Create(ctx context.Context, input CreateEmailLogInput) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO email_logs (session_id, to_email, status, error_message) VALUES ($1, $2, $3, $4)`,
		input.SessionID,
		input.ToEmail,
		input.Status,
		input.ErrorMessage,
	)
	return err
}

func (r *EmailLogRepository) ListBySessionID(ctx context.Context, sessionID uuid.UUID) ([]models.EmailLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, to_email, status, error_message, created_at
		FROM email_logs
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.EmailLog, 0)
	for rows.Next() {
		var entry models.EmailLog
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.ToEmail,
			&entry.Status,
			&entry.ErrorMessage,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
