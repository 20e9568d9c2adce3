package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID         uuid.UUID
	PropertyID uuid.UUID

	Department string
	Position   string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string

	WorkAuthorized   bool
	EmploymentType   string
	DesiredStartDate time.Time

	Status          Status
	RejectionReason *string
	ReviewedBy      *uuid.UUID
	ReviewedAt      *time.Time

	SubmittedAt time.Time
}
