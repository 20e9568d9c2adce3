package dto

import (
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/usecase"
)

type SessionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	CurrentStep string     `json:"current_step"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Employee EmployeeSummary        `json:"employee"`
	Steps    []usecase.StepProgress `json:"steps"`
}

type EmployeeSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	JobTitle  string    `json:"job_title"`
	StartDate string    `json:"start_date"`
}

func NewSessionResponse(state usecase.SessionState) SessionResponse {
	return SessionResponse{
		ID:          state.Session.ID,
		Status:      string(state.Session.Status),
		CurrentStep: string(state.Session.CurrentStep),
		ExpiresAt:   state.Session.ExpiresAt,
		CompletedAt: state.Session.CompletedAt,
		Employee: EmployeeSummary{
			ID:        state.Employee.ID,
			FirstName: state.Employee.FirstName,
			LastName:  state.Employee.LastName,
			JobTitle:  state.Employee.Offer.JobTitle,
			StartDate: state.Employee.Offer.StartDate.Format("2006-01-02"),
		},
		Steps: state.Steps,
	}
}
