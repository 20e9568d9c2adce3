package handler

import (
	"encoding/json"

	"hotel-onboarding/internal/delivery/http/dto"
	"hotel-onboarding/internal/delivery/http/middleware"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/pkg/jwt"
	"hotel-onboarding/internal/pkg/response"
	"hotel-onboarding/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// OnboardingHandler serves the token-addressed onboarding surface. The
// routes are unauthenticated by design: possession of the session token is
// the credential. A Bearer token, when present, only upgrades the caller to
// a reviewer actor for manager-only steps.
type OnboardingHandler struct {
	uc  usecase.OnboardingUsecase
	jwt jwt.Service
}

func NewOnboardingHandler(uc usecase.OnboardingUsecase, jwtSvc jwt.Service) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, jwt: jwtSvc}
}

func (h *OnboardingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:token", h.GetSession)
	r.Post("/:token/step/:step_id", h.SubmitStep)
	r.Get("/:token/packet", h.Packet)
}

func (h *OnboardingHandler) GetSession(c fiber.Ctx) error {
	state, err := h.uc.GetSession(c.Context(), c.Params("token"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(state))
}

func (h *OnboardingHandler) SubmitStep(c fiber.Ctx) error {
	var payload json.RawMessage
	if body := c.Body(); len(body) > 0 {
		if !json.Valid(body) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
		}
		payload = append(payload, body...)
	}

	state, err := h.uc.SubmitStep(
		c.Context(),
		c.Params("token"),
		onboarding.StepID(c.Params("step_id")),
		payload,
		h.optionalActor(c),
	)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(state))
}

func (h *OnboardingHandler) Packet(c fiber.Ctx) error {
	b, err := h.uc.Packet(c.Context(), c.Params("token"))
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="onboarding-packet.pdf"`)
	return c.Send(b)
}

// optionalActor resolves a reviewer from the Authorization header if one is
// present and valid. An absent or bad token is not an error here; the
// usecase rejects manager-only steps for a nil actor.
func (h *OnboardingHandler) optionalActor(c fiber.Ctx) *usecase.Actor {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		return nil
	}

	claims, err := h.jwt.ValidateToken(tok)
	if err != nil {
		return nil
	}
	if claims.TokenType != jwt.TokenTypeAccess || h.jwt.IsRefreshToken(claims) {
		return nil
	}

	return &usecase.Actor{
		UserID:      claims.UserID,
		Role:        claims.Role,
		PropertyIDs: claims.PropertyIDs,
	}
}
