package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotel-onboarding/internal/domain/employee"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/infrastructure/document"
	"hotel-onboarding/internal/repository"
)

var ErrSessionExpired = errors.New("session expired")

type StepProgress struct {
	ID          onboarding.StepID `json:"id"`
	Name        string            `json:"name"`
	ManagerOnly bool              `json:"manager_only"`
	Required    bool              `json:"required"`
	Completed   bool              `json:"completed"`
}

type SessionState struct {
	Session  onboarding.Session
	Steps    []StepProgress
	Employee employee.Employee
}

type OnboardingUsecase interface {
	GetSession(ctx context.Context, token string) (SessionState, error)

	// SubmitStep records one step submission. actor is nil for the
	// employee's token-addressed call; manager-only steps require a
	// reviewer actor with the complete_manager_steps capability.
	SubmitStep(ctx context.Context, token string, stepID onboarding.StepID, payload json.RawMessage, actor *Actor) (SessionState, error)

	Packet(ctx context.Context, token string) ([]byte, error)
}

type OnboardingService struct {
	sessions   repository.OnboardingRepository
	employees  repository.EmployeeRepository
	properties repository.PropertyRepository

	pdf document.Generator
	now func() time.Time
}

func NewOnboardingUsecase(
	sessions repository.OnboardingRepository,
	employees repository.EmployeeRepository,
	properties repository.PropertyRepository,
	pdf document.Generator,
) *OnboardingService {
	return &OnboardingService{
		sessions:   sessions,
		employees:  employees,
		properties: properties,
		pdf:        pdf,
		now:        time.Now,
	}
}

func (s *OnboardingService) GetSession(ctx context.Context, token string) (SessionState, error) {
	sess, completed, err := s.load(ctx, token)
	if err != nil {
		return SessionState{}, err
	}

	emp, err := s.employees.GetByID(ctx, sess.EmployeeID)
	if err != nil {
		return SessionState{}, ErrInternal
	}

	return SessionState{
		Session:  sess,
		Steps:    progress(completed),
		Employee: emp,
	}, nil
}

func (s *OnboardingService) SubmitStep(ctx context.Context, token string, stepID onboarding.StepID, payload json.RawMessage, actor *Actor) (SessionState, error) {
	step, known := onboarding.StepByID(stepID)
	if !known {
		return SessionState{}, NewValidationError(map[string]string{"step_id": "unknown step"})
	}
	if len(payload) == 0 {
		return SessionState{}, NewValidationError(map[string]string{"payload": "required"})
	}

	sess, completed, err := s.load(ctx, token)
	if err != nil {
		return SessionState{}, err
	}
	if sess.Status == onboarding.StatusCompleted {
		return SessionState{}, ErrConflict
	}

	// Role gate first: hiding the step in the UI is not enforcement.
	completedBy := "employee"
	if step.ManagerOnly {
		if actor == nil || !actor.Role.Can(user.CapCompleteManagerSteps) {
			return SessionState{}, ErrForbidden
		}
		completedBy = string(actor.Role) + ":" + actor.UserID.String()
	}

	if idx := onboarding.StepIndex(stepID); idx >= 0 {
		if err := checkOrder(idx, completed); err != nil {
			return SessionState{}, err
		}
	}

	now := s.now().UTC()
	if err := s.sessions.UpsertStep(ctx, onboarding.CompletedStep{
		SessionID:   sess.ID,
		StepID:      stepID,
		Payload:     payload,
		CompletedAt: now,
		CompletedBy: completedBy,
	}); err != nil {
		return SessionState{}, ErrInternal
	}

	completed[stepID] = struct{}{}

	sess.UpdatedAt = now
	sess.CurrentStep = nextStep(completed)
	if allRequiredDone(completed) {
		sess.Status = onboarding.StatusCompleted
		sess.CompletedAt = &now
	}
	if err := s.sessions.UpdateSession(ctx, sess); err != nil {
		return SessionState{}, ErrInternal
	}

	emp, err := s.employees.GetByID(ctx, sess.EmployeeID)
	if err != nil {
		return SessionState{}, ErrInternal
	}

	return SessionState{Session: sess, Steps: progress(completed), Employee: emp}, nil
}

func (s *OnboardingService) Packet(ctx context.Context, token string) ([]byte, error) {
	sess, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	emp, err := s.employees.GetByID(ctx, sess.EmployeeID)
	if err != nil {
		return nil, ErrInternal
	}

	steps, err := s.sessions.ListSteps(ctx, sess.ID)
	if err != nil {
		return nil, ErrInternal
	}

	propertyName := ""
	if p, err := s.properties.GetByID(ctx, emp.PropertyID); err == nil {
		propertyName = p.Name
	}

	data := document.PacketData{
		EmployeeName: emp.FirstName + " " + emp.LastName,
		PropertyName: propertyName,
		JobTitle:     emp.Offer.JobTitle,
		StartDate:    emp.Offer.StartDate,
		PayRate:      emp.Offer.PayRate,
		PayFrequency: emp.Offer.PayFrequency,
		Supervisor:   emp.Offer.Supervisor,
	}
	for _, st := range steps {
		def, ok := onboarding.StepByID(st.StepID)
		name := string(st.StepID)
		if ok {
			name = def.Name
		}
		data.Steps = append(data.Steps, document.PacketStep{
			Name:        name,
			CompletedAt: st.CompletedAt,
			CompletedBy: st.CompletedBy,
		})
	}

	b, err := s.pdf.OnboardingPacket(data)
	if err != nil {
		return nil, ErrInternal
	}
	return b, nil
}

func (s *OnboardingService) load(ctx context.Context, token string) (onboarding.Session, map[onboarding.StepID]struct{}, error) {
	sess, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return onboarding.Session{}, nil, ErrNotFound
		}
		return onboarding.Session{}, nil, ErrInternal
	}

	if sess.Expired(s.now().UTC()) {
		if sess.Status == onboarding.StatusInProgress {
			sess.Status = onboarding.StatusExpired
			sess.UpdatedAt = s.now().UTC()
			_ = s.sessions.UpdateSession(ctx, sess)
		}
		return onboarding.Session{}, nil, ErrSessionExpired
	}

	steps, err := s.sessions.ListSteps(ctx, sess.ID)
	if err != nil {
		return onboarding.Session{}, nil, ErrInternal
	}

	completed := make(map[onboarding.StepID]struct{}, len(steps))
	for _, st := range steps {
		completed[st.StepID] = struct{}{}
	}
	return sess, completed, nil
}

// checkOrder enforces the strict progression: every required step before
// idx must already be complete.
func checkOrder(idx int, completed map[onboarding.StepID]struct{}) error {
	steps := onboarding.Steps()
	for i := 0; i < idx; i++ {
		if !steps[i].Required {
			continue
		}
		if _, ok := completed[steps[i].ID]; !ok {
			return NewValidationError(map[string]string{
				"step_id": "step out of order, complete " + string(steps[i].ID) + " first",
			})
		}
	}
	return nil
}

func nextStep(completed map[onboarding.StepID]struct{}) onboarding.StepID {
	for _, s := range onboarding.Steps() {
		if _, ok := completed[s.ID]; !ok {
			return s.ID
		}
	}
	return onboarding.StepFinalReview
}

func allRequiredDone(completed map[onboarding.StepID]struct{}) bool {
	for _, s := range onboarding.RequiredSteps() {
		if _, ok := completed[s.ID]; !ok {
			return false
		}
	}
	return true
}

func progress(completed map[onboarding.StepID]struct{}) []StepProgress {
	steps := onboarding.Steps()
	out := make([]StepProgress, 0, len(steps))
	for _, s := range steps {
		_, done := completed[s.ID]
		out = append(out, StepProgress{
			ID:          s.ID,
			Name:        s.Name,
			ManagerOnly: s.ManagerOnly,
			Required:    s.Required,
			Completed:   done,
		})
	}
	return out
}
