package dto

import (
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/property"
)

type PropertyResponse struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	ZipCode    string      `json:"zip_code"`
	Phone      string      `json:"phone"`
	IsActive   bool        `json:"is_active"`
	ManagerIDs []uuid.UUID `json:"manager_ids,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewPropertyResponse(p property.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		City:       p.City,
		State:      p.State,
		ZipCode:    p.ZipCode,
		Phone:      p.Phone,
		IsActive:   p.IsActive,
		ManagerIDs: p.ManagerIDs,
		CreatedAt:  p.CreatedAt,
	}
}

// PublicPropertyResponse is the trimmed shape served to unauthenticated
// applicants.
type PublicPropertyResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	City    string    `json:"city"`
	State   string    `json:"state"`
}

func NewPublicPropertyResponse(p property.Property) PublicPropertyResponse {
	return PublicPropertyResponse{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
	}
}
