package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleHR      Role = "hr"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleHR || r == RoleManager
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	IsActive     bool

	// PropertyIDs holds the manager's property assignments. Empty for HR.
	PropertyIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
