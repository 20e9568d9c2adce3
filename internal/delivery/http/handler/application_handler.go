package handler

import (
	"hotel-onboarding/internal/delivery/http/dto"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/pkg/response"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ApplicationHandler serves the public, unauthenticated intake surface.
type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type submitApplicationRequest struct {
	Department string `json:"department"`
	Position   string `json:"position"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`

	WorkAuthorized   bool   `json:"work_authorized"`
	EmploymentType   string `json:"employment_type"`
	DesiredStartDate string `json:"desired_start_date"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:property_id/info", h.PropertyInfo)
	r.Post("/:property_id/apply", h.Submit)
}

func (h *ApplicationHandler) PropertyInfo(c fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	p, err := h.uc.PropertyInfo(c.Context(), propertyID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPublicPropertyResponse(p))
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req submitApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.Submit(c.Context(), propertyID, usecase.SubmitApplicationInput{
		Department:       req.Department,
		Position:         req.Position,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		WorkAuthorized:   req.WorkAuthorized,
		EmploymentType:   req.EmploymentType,
		DesiredStartDate: req.DesiredStartDate,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"application_id": a.ID,
		"status":         string(a.Status),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
