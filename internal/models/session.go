package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

type EmailStatus string

const (
	EmailStatusSuccess EmailStatus = "success"
	EmailStatusFailed  EmailStatus = "failed"
)

type Session struct {
	ID         uuid.UUID       `json:"id"`
	StudentID  uuid.UUID       `json:"studentId"`
	CoachID    uuid.UUID       `json:"coachId"`
	StartAt    time.Time       `json:"startAt"`
	EndAt      time.Time       `json:"endAt"`
	Title      *string         `json:"title"`
	Status     SessionStatus   `json:"status"`
	MeetURL    string          `json:"meetUrl"`
	ExternalID *string         `json:"externalId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Student    *StudentSummary `json:"student,omitempty"`
}

// EmailLog is one append-only record of a session notification attempt.
type EmailLog struct {
	ID           uuid.UUID   `json:"id"`
	SessionID    uuid.UUID   `json:"sessionId"`
	ToEmail      string      `json:"toEmail"`
	Status       EmailStatus `json:"status"`
	ErrorMessage *string     `json:"errorMessage"`
	CreatedAt    time.Time   `json:"createdAt"`
}
