package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCoach = "coach"
	RoleAdmin = "admin"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	EmployeeNumber string    `json:"employeeNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
