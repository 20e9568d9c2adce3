package employee

import (
	"time"

	"github.com/google/uuid"
)

// JobOffer carries the terms entered by the reviewer at approval time.
// Every field is required, supervisor included.
type JobOffer struct {
	JobTitle         string
	StartDate        time.Time
	StartTime        string
	PayRate          float64
	PayFrequency     string
	BenefitsEligible bool
	Supervisor       string
}

type Employee struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	PropertyID    uuid.UUID

	FirstName string
	LastName  string
	Email     string

	Offer JobOffer

	CreatedAt time.Time
}
