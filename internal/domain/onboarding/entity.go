package onboarding

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusExpired    SessionStatus = "expired"
)

// DefaultWindow is how long a new hire has to finish onboarding before the
// session expires.
const DefaultWindow = 14 * 24 * time.Hour

type Session struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	AccessToken string
	Status      SessionStatus
	CurrentStep StepID

	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (s Session) Expired(now time.Time) bool {
	if s.Status == StatusExpired {
		return true
	}
	return s.Status == StatusInProgress && now.After(s.ExpiresAt)
}

// CompletedStep is one persisted step submission.
type CompletedStep struct {
	SessionID   uuid.UUID
	StepID      StepID
	Payload     []byte
	CompletedAt time.Time
	CompletedBy string
}
