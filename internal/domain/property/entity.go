package property

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID       uuid.UUID
	Name     string
	Address  string
	City     string
	State    string
	ZipCode  string
	Phone    string
	IsActive bool

	ManagerIDs []uuid.UUID

	CreatedAt time.Time
}
