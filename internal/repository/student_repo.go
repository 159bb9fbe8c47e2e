package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/noguchitomoya/Google-meet/internal/models"
)

const studentColumns = `id, name, email, note, created_by_user_id, created_at, updated_at`

type CreateStudentInput struct {
	Name            string
	Email           string
	Note            *string
	CreatedByUserID uuid.UUID
}

type StudentRepository struct {
	db DBTX
}

func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, input CreateStudentInput) (*models.Student, error) {
	query := `
		INSERT INTO students (name, email, note, created_by_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + studentColumns
	return scanStudent(r.db.QueryRow(ctx, query, input.Name, input.Email, input.Note, input.CreatedByUserID))
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

func (r *StudentRepository) GetByCoachAndEmail(ctx context.Context, coachID uuid.UUID, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE created_by_user_id = $1 AND email = $2`
	return scanStudent(r.db.QueryRow(ctx, query, coachID, email))
}

// SearchByCoach lists a coach's students, optionally filtered by a
// case-insensitive match on name or email.
func (r *StudentRepository) SearchByCoach(ctx context.Context, coachID uuid.UUID, search string) ([]models.Student, error) {
	args := []any{coachID}
	query := `SELECT ` + studentColumns + ` FROM students WHERE created_by_user_id = $1`
	if search = strings.TrimSpace(search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		query += ` AND (name ILIKE $2 OR email ILIKE $2)`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Note,
		&student.CreatedByUserID,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
