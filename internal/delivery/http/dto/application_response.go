package dto

import (
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
)

type ApplicationResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`

	Department string `json:"department"`
	Position   string `json:"position"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	State     string `json:"state"`

	EmploymentType   string `json:"employment_type"`
	DesiredStartDate string `json:"desired_start_date"`

	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               a.ID,
		PropertyID:       a.PropertyID,
		Department:       a.Department,
		Position:         a.Position,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		City:             a.City,
		State:            a.State,
		EmploymentType:   a.EmploymentType,
		DesiredStartDate: a.DesiredStartDate.Format("2006-01-02"),
		Status:           string(a.Status),
		RejectionReason:  a.RejectionReason,
		ReviewedAt:       a.ReviewedAt,
		SubmittedAt:      a.SubmittedAt,
	}
}

func NewApplicationListResponse(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
