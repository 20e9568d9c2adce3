package handler

import (
	"hotel-onboarding/internal/delivery/http/dto"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/pkg/response"
	"hotel-onboarding/internal/repository"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

type approveRequest struct {
	JobTitle         string  `json:"job_title"`
	StartDate        string  `json:"start_date"`
	StartTime        string  `json:"start_time"`
	PayRate          float64 `json:"pay_rate"`
	PayFrequency     string  `json:"pay_frequency"`
	BenefitsEligible bool    `json:"benefits_eligible"`
	Supervisor       string  `json:"supervisor"`
}

type rejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

type bulkRequest struct {
	IDs             []uuid.UUID `json:"ids"`
	RejectionReason string      `json:"rejection_reason,omitempty"`

	// Offer terms, only read by bulk approve.
	JobTitle         string  `json:"job_title,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
	StartTime        string  `json:"start_time,omitempty"`
	PayRate          float64 `json:"pay_rate,omitempty"`
	PayFrequency     string  `json:"pay_frequency,omitempty"`
	BenefitsEligible bool    `json:"benefits_eligible,omitempty"`
	Supervisor       string  `json:"supervisor,omitempty"`
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)

	// Bulk routes go first so "bulk" is never captured as an :id.
	r.Post("/bulk/approve", h.BulkApprove)
	r.Post("/bulk/reject", h.BulkReject)
	r.Post("/bulk/talent-pool", h.BulkTalentPool)
	r.Post("/bulk/reactivate", h.BulkReactivate)

	r.Get("/:id", h.Get)
	r.Post("/:id/approve", h.Approve)
	r.Post("/:id/reject", h.Reject)
	r.Post("/:id/talent-pool", h.TalentPool)
	r.Post("/:id/reactivate", h.Reactivate)
}

func (h *ReviewHandler) List(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	f := repository.ApplicationFilter{
		Status:     application.Status(c.Query("status")),
		Department: c.Query("department"),
		Search:     c.Query("search"),
		Limit:      fiber.Query[int](c, "limit"),
		Offset:     fiber.Query[int](c, "offset"),
	}

	apps, err := h.uc.List(c.Context(), actor, f)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationListResponse(apps))
}

func (h *ReviewHandler) Get(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	a, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ReviewHandler) Approve(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req approveRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.Approve(c.Context(), actor, id, usecase.JobOfferInput{
		JobTitle:         req.JobTitle,
		StartDate:        req.StartDate,
		StartTime:        req.StartTime,
		PayRate:          req.PayRate,
		PayFrequency:     req.PayFrequency,
		BenefitsEligible: req.BenefitsEligible,
		Supervisor:       req.Supervisor,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	data := map[string]any{
		"employee_id":    result.EmployeeID,
		"session_id":     result.SessionID,
		"onboarding_url": result.OnboardingURL,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ReviewHandler) Reject(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	var req rejectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Reject(c.Context(), actor, id, req.RejectionReason); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) TalentPool(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	if err := h.uc.MoveToTalentPool(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) Reactivate(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}

	if err := h.uc.Reactivate(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ReviewHandler) BulkApprove(c fiber.Ctx) error {
	actor, req, err := h.bindBulk(c)
	if err != nil {
		return err
	}
	results := h.uc.BulkApprove(c.Context(), actor, req.IDs, usecase.JobOfferInput{
		JobTitle:         req.JobTitle,
		StartDate:        req.StartDate,
		StartTime:        req.StartTime,
		PayRate:          req.PayRate,
		PayFrequency:     req.PayFrequency,
		BenefitsEligible: req.BenefitsEligible,
		Supervisor:       req.Supervisor,
	})
	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}

func (h *ReviewHandler) BulkReject(c fiber.Ctx) error {
	actor, req, err := h.bindBulk(c)
	if err != nil {
		return err
	}
	results := h.uc.BulkReject(c.Context(), actor, req.IDs, req.RejectionReason)
	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}

func (h *ReviewHandler) BulkTalentPool(c fiber.Ctx) error {
	actor, req, err := h.bindBulk(c)
	if err != nil {
		return err
	}
	results := h.uc.BulkTalentPool(c.Context(), actor, req.IDs)
	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}

func (h *ReviewHandler) BulkReactivate(c fiber.Ctx) error {
	actor, req, err := h.bindBulk(c)
	if err != nil {
		return err
	}
	results := h.uc.BulkReactivate(c.Context(), actor, req.IDs)
	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}

func (h *ReviewHandler) bindBulk(c fiber.Ctx) (usecase.Actor, bulkRequest, error) {
	actor, err := actorFromCtx(c)
	if err != nil {
		return usecase.Actor{}, bulkRequest{}, err
	}

	var req bulkRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.Actor{}, bulkRequest{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(req.IDs) == 0 {
		return usecase.Actor{}, bulkRequest{}, middleware.ValidationError(map[string]string{"ids": "required"})
	}
	return actor, req, nil
}
