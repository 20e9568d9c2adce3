package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/employee"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/infrastructure/mail"
	"hotel-onboarding/internal/repository"
	"hotel-onboarding/internal/ws"
)

type JobOfferInput struct {
	JobTitle         string
	StartDate        string // YYYY-MM-DD
	StartTime        string
	PayRate          float64
	PayFrequency     string
	BenefitsEligible bool
	Supervisor       string
}

type ApprovalResult struct {
	EmployeeID    uuid.UUID
	SessionID     uuid.UUID
	OnboardingURL string
}

// BulkResult reports one item of a bulk operation. Items are independent:
// a failed id never rolls back its siblings.
type BulkResult struct {
	ID    uuid.UUID `json:"id"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

type ReviewUsecase interface {
	List(ctx context.Context, actor Actor, f repository.ApplicationFilter) ([]application.Application, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)

	Approve(ctx context.Context, actor Actor, id uuid.UUID, offer JobOfferInput) (ApprovalResult, error)
	Reject(ctx context.Context, actor Actor, id uuid.UUID, reason string) error
	MoveToTalentPool(ctx context.Context, actor Actor, id uuid.UUID) error
	Reactivate(ctx context.Context, actor Actor, id uuid.UUID) error

	BulkApprove(ctx context.Context, actor Actor, ids []uuid.UUID, offer JobOfferInput) []BulkResult
	BulkReject(ctx context.Context, actor Actor, ids []uuid.UUID, reason string) []BulkResult
	BulkTalentPool(ctx context.Context, actor Actor, ids []uuid.UUID) []BulkResult
	BulkReactivate(ctx context.Context, actor Actor, ids []uuid.UUID) []BulkResult
}

type ReviewService struct {
	applications repository.ApplicationRepository
	approvals    repository.ApprovalStore
	properties   repository.PropertyRepository

	mailer          mail.Mailer
	frontendBaseURL string

	now func() time.Time
}

func NewReviewUsecase(
	applications repository.ApplicationRepository,
	approvals repository.ApprovalStore,
	properties repository.PropertyRepository,
	mailer mail.Mailer,
	frontendBaseURL string,
) *ReviewService {
	return &ReviewService{
		applications:    applications,
		approvals:       approvals,
		properties:      properties,
		mailer:          mailer,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		now:             time.Now,
	}
}

func (s *ReviewService) List(ctx context.Context, actor Actor, f repository.ApplicationFilter) ([]application.Application, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, NewValidationError(map[string]string{"status": "unknown status"})
	}
	apps, err := s.applications.List(ctx, actor.Scope(), f)
	if err != nil {
		return nil, ErrInternal
	}
	return apps, nil
}

func (s *ReviewService) Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	a, err := s.applications.GetByID(ctx, id, actor.Scope())
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// Approve transitions pending → approved and provisions the employee record
// plus onboarding session. The guarded status update inside the approval
// store is the serialization point: of two racing approvals only one row
// update succeeds, the loser gets a conflict and no second employee is ever
// created. The store commits the transition and both inserts in one
// transaction, so a failed insert leaves the application pending and
// approvable again.
func (s *ReviewService) Approve(ctx context.Context, actor Actor, id uuid.UUID, offer JobOfferInput) (ApprovalResult, error) {
	startDate, err := validateOffer(offer)
	if err != nil {
		return ApprovalResult{}, err
	}

	scope := actor.Scope()
	a, err := s.applications.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ApprovalResult{}, ErrNotFound
		}
		return ApprovalResult{}, ErrInternal
	}
	if a.Status != application.StatusPending {
		return ApprovalResult{}, ErrConflict
	}

	now := s.now().UTC()
	emp := employee.Employee{
		ID:            uuid.New(),
		ApplicationID: a.ID,
		PropertyID:    a.PropertyID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		Offer: employee.JobOffer{
			JobTitle:         strings.TrimSpace(offer.JobTitle),
			StartDate:        startDate,
			StartTime:        strings.TrimSpace(offer.StartTime),
			PayRate:          offer.PayRate,
			PayFrequency:     strings.TrimSpace(offer.PayFrequency),
			BenefitsEligible: offer.BenefitsEligible,
			Supervisor:       strings.TrimSpace(offer.Supervisor),
		},
		CreatedAt: now,
	}
	token, err := newAccessToken()
	if err != nil {
		return ApprovalResult{}, ErrInternal
	}
	sess := onboarding.Session{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		AccessToken: token,
		Status:      onboarding.StatusInProgress,
		CurrentStep: onboarding.StepPersonalInfo,
		ExpiresAt:   now.Add(onboarding.DefaultWindow),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.approvals.Approve(ctx, repository.Approval{
		ApplicationID: a.ID,
		Scope:         scope,
		ReviewerID:    actor.UserID,
		Employee:      emp,
		Session:       sess,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleStatus) || errors.Is(err, repository.ErrEmployeeExists) {
			return ApprovalResult{}, ErrConflict
		}
		return ApprovalResult{}, ErrInternal
	}

	url := s.frontendBaseURL + "/onboarding/" + token
	s.notifyApproval(ctx, a, emp, url)
	ws.NotifyApplicationEvent(ws.EventApplicationApproved, a.ID, a.PropertyID, string(application.StatusApproved))

	return ApprovalResult{EmployeeID: emp.ID, SessionID: sess.ID, OnboardingURL: url}, nil
}

func (s *ReviewService) Reject(ctx context.Context, actor Actor, id uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewValidationError(map[string]string{"rejection_reason": "required"})
	}

	a, err := s.transition(ctx, actor, id, application.StatusRejected, &reason)
	if err != nil {
		return err
	}

	s.notifyStatus(ctx, a, mail.RejectionBody)
	ws.NotifyApplicationEvent(ws.EventApplicationRejected, a.ID, a.PropertyID, string(application.StatusRejected))
	return nil
}

func (s *ReviewService) MoveToTalentPool(ctx context.Context, actor Actor, id uuid.UUID) error {
	a, err := s.transition(ctx, actor, id, application.StatusTalentPool, nil)
	if err != nil {
		return err
	}

	s.notifyStatus(ctx, a, mail.TalentPoolBody)
	return nil
}

func (s *ReviewService) Reactivate(ctx context.Context, actor Actor, id uuid.UUID) error {
	_, err := s.transition(ctx, actor, id, application.StatusPending, nil)
	return err
}

// transition performs the generic guarded status change for everything but
// approve (which also provisions records).
func (s *ReviewService) transition(ctx context.Context, actor Actor, id uuid.UUID, to application.Status, rejectionReason *string) (application.Application, error) {
	scope := actor.Scope()
	a, err := s.applications.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	if !a.Status.CanTransitionTo(to) {
		return application.Application{}, ErrConflict
	}

	reviewer := actor.UserID
	ok, err := s.applications.UpdateStatusFrom(ctx, id, a.Status, to, scope, &reviewer, rejectionReason)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if !ok {
		return application.Application{}, ErrConflict
	}

	a.Status = to
	a.RejectionReason = rejectionReason
	return a, nil
}

// BulkApprove applies the same offer terms to every id. Useful for seasonal
// batches hired into one position; each item still runs the full guarded
// approval independently.
func (s *ReviewService) BulkApprove(ctx context.Context, actor Actor, ids []uuid.UUID, offer JobOfferInput) []BulkResult {
	return s.bulk(ids, func(id uuid.UUID) error {
		_, err := s.Approve(ctx, actor, id, offer)
		return err
	})
}

func (s *ReviewService) BulkReject(ctx context.Context, actor Actor, ids []uuid.UUID, reason string) []BulkResult {
	return s.bulk(ids, func(id uuid.UUID) error {
		return s.Reject(ctx, actor, id, reason)
	})
}

func (s *ReviewService) BulkTalentPool(ctx context.Context, actor Actor, ids []uuid.UUID) []BulkResult {
	return s.bulk(ids, func(id uuid.UUID) error {
		return s.MoveToTalentPool(ctx, actor, id)
	})
}

func (s *ReviewService) BulkReactivate(ctx context.Context, actor Actor, ids []uuid.UUID) []BulkResult {
	return s.bulk(ids, func(id uuid.UUID) error {
		return s.Reactivate(ctx, actor, id)
	})
}

func (s *ReviewService) bulk(ids []uuid.UUID, op func(uuid.UUID) error) []BulkResult {
	out := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := op(id); err != nil {
			out = append(out, BulkResult{ID: id, Error: err.Error()})
			continue
		}
		out = append(out, BulkResult{ID: id, OK: true})
	}
	return out
}

func (s *ReviewService) notifyApproval(ctx context.Context, a application.Application, emp employee.Employee, onboardingURL string) {
	if s.mailer == nil {
		return
	}
	propertyName := s.propertyName(ctx, a.PropertyID)
	subject, body := mail.ApprovalBody(
		a.FirstName,
		propertyName,
		emp.Offer.JobTitle,
		emp.Offer.StartDate.Format("January 2, 2006"),
		onboardingURL,
	)
	s.mailer.Send(a.Email, subject, body)
}

func (s *ReviewService) notifyStatus(ctx context.Context, a application.Application, build func(firstName, propertyName string) (string, string)) {
	if s.mailer == nil {
		return
	}
	subject, body := build(a.FirstName, s.propertyName(ctx, a.PropertyID))
	s.mailer.Send(a.Email, subject, body)
}

func (s *ReviewService) propertyName(ctx context.Context, id uuid.UUID) string {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return "our property"
	}
	return p.Name
}

func validateOffer(offer JobOfferInput) (time.Time, error) {
	fields := map[string]string{}

	if strings.TrimSpace(offer.JobTitle) == "" {
		fields["job_title"] = "required"
	}
	if strings.TrimSpace(offer.StartTime) == "" {
		fields["start_time"] = "required"
	}
	if offer.PayRate <= 0 {
		fields["pay_rate"] = "must be greater than zero"
	}
	if strings.TrimSpace(offer.PayFrequency) == "" {
		fields["pay_frequency"] = "required"
	}
	if strings.TrimSpace(offer.Supervisor) == "" {
		fields["supervisor"] = "required"
	}

	var startDate time.Time
	raw := strings.TrimSpace(offer.StartDate)
	if raw == "" {
		fields["start_date"] = "required"
	} else {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields["start_date"] = "invalid date, expected YYYY-MM-DD"
		} else {
			startDate = parsed
		}
	}

	if len(fields) > 0 {
		return time.Time{}, NewValidationError(fields)
	}
	return startDate, nil
}

func newAccessToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
