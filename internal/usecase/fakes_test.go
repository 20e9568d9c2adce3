package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/employee"
	"hotel-onboarding/internal/domain/onboarding"
	"hotel-onboarding/internal/domain/property"
	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/repository"
)

type stubApplicationRepo struct {
	apps map[uuid.UUID]application.Application

	createErr error
	updateErr error

	// denyUpdate simulates losing the guarded update race: the row looks
	// fine on read but zero rows change on write.
	denyUpdate bool
}

func newStubApplicationRepo(apps ...application.Application) *stubApplicationRepo {
	r := &stubApplicationRepo{apps: map[uuid.UUID]application.Application{}}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *stubApplicationRepo) Create(_ context.Context, a application.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.apps[a.ID] = a
	return nil
}

func (r *stubApplicationRepo) GetByID(_ context.Context, id uuid.UUID, scope repository.Scope) (application.Application, error) {
	a, ok := r.apps[id]
	if !ok || !scope.Allows(a.PropertyID) {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (r *stubApplicationRepo) List(_ context.Context, scope repository.Scope, f repository.ApplicationFilter) ([]application.Application, error) {
	out := []application.Application{}
	for _, a := range r.apps {
		if !scope.Allows(a.PropertyID) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from, to application.Status, scope repository.Scope, reviewedBy *uuid.UUID, rejectionReason *string) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	if r.denyUpdate {
		return false, nil
	}
	a, ok := r.apps[id]
	if !ok || !scope.Allows(a.PropertyID) || a.Status != from {
		return false, nil
	}
	a.Status = to
	a.ReviewedBy = reviewedBy
	a.RejectionReason = rejectionReason
	r.apps[id] = a
	return true, nil
}

type stubApprovalStore struct {
	apps *stubApplicationRepo

	employees map[uuid.UUID]employee.Employee
	sessions  map[uuid.UUID]onboarding.Session

	// failures makes the next n calls fail wholesale, the way a rolled-back
	// transaction does: nothing is written and the application keeps its
	// status.
	failures int

	// stale simulates losing the guarded update race inside the transaction.
	stale bool
}

func newStubApprovalStore(apps *stubApplicationRepo) *stubApprovalStore {
	return &stubApprovalStore{
		apps:      apps,
		employees: map[uuid.UUID]employee.Employee{},
		sessions:  map[uuid.UUID]onboarding.Session{},
	}
}

func (s *stubApprovalStore) Approve(_ context.Context, p repository.Approval) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("insert failed")
	}
	if s.stale {
		return repository.ErrStaleStatus
	}

	a, ok := s.apps.apps[p.ApplicationID]
	if !ok || !p.Scope.Allows(a.PropertyID) || a.Status != application.StatusPending {
		return repository.ErrStaleStatus
	}

	reviewer := p.ReviewerID
	a.Status = application.StatusApproved
	a.ReviewedBy = &reviewer
	s.apps.apps[p.ApplicationID] = a

	s.employees[p.Employee.ID] = p.Employee
	s.sessions[p.Session.ID] = p.Session
	return nil
}

type stubEmployeeRepo struct {
	employees map[uuid.UUID]employee.Employee
	createErr error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: map[uuid.UUID]employee.Employee{}}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e employee.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, repository.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) GetByApplicationID(_ context.Context, applicationID uuid.UUID) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ApplicationID == applicationID {
			return e, nil
		}
	}
	return employee.Employee{}, repository.ErrEmployeeNotFound
}

type stubSessionRepo struct {
	sessions map[uuid.UUID]onboarding.Session
	steps    map[uuid.UUID][]onboarding.CompletedStep

	createErr error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{
		sessions: map[uuid.UUID]onboarding.Session{},
		steps:    map[uuid.UUID][]onboarding.CompletedStep{},
	}
}

func (r *stubSessionRepo) CreateSession(_ context.Context, s onboarding.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) GetSessionByToken(_ context.Context, token string) (onboarding.Session, error) {
	for _, s := range r.sessions {
		if s.AccessToken == token {
			return s, nil
		}
	}
	return onboarding.Session{}, repository.ErrSessionNotFound
}

func (r *stubSessionRepo) UpdateSession(_ context.Context, s onboarding.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) UpsertStep(_ context.Context, step onboarding.CompletedStep) error {
	existing := r.steps[step.SessionID]
	for i, st := range existing {
		if st.StepID == step.StepID {
			existing[i] = step
			return nil
		}
	}
	r.steps[step.SessionID] = append(existing, step)
	return nil
}

func (r *stubSessionRepo) ListSteps(_ context.Context, sessionID uuid.UUID) ([]onboarding.CompletedStep, error) {
	return r.steps[sessionID], nil
}

func (r *stubSessionRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range r.sessions {
		if s.Status == onboarding.StatusInProgress && now.After(s.ExpiresAt) {
			s.Status = onboarding.StatusExpired
			r.sessions[id] = s
			n++
		}
	}
	return n, nil
}

type stubPropertyRepo struct {
	props map[uuid.UUID]property.Property
}

func newStubPropertyRepo(props ...property.Property) *stubPropertyRepo {
	r := &stubPropertyRepo{props: map[uuid.UUID]property.Property{}}
	for _, p := range props {
		r.props[p.ID] = p
	}
	return r
}

func (r *stubPropertyRepo) Create(_ context.Context, p property.Property) error {
	r.props[p.ID] = p
	return nil
}

func (r *stubPropertyRepo) GetByID(_ context.Context, id uuid.UUID) (property.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return property.Property{}, repository.ErrPropertyNotFound
	}
	return p, nil
}

func (r *stubPropertyRepo) GetActiveByID(_ context.Context, id uuid.UUID) (property.Property, error) {
	p, ok := r.props[id]
	if !ok || !p.IsActive {
		return property.Property{}, repository.ErrPropertyNotFound
	}
	return p, nil
}

func (r *stubPropertyRepo) List(_ context.Context) ([]property.Property, error) {
	out := []property.Property{}
	for _, p := range r.props {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p property.Property) error {
	if _, ok := r.props[p.ID]; !ok {
		return repository.ErrPropertyNotFound
	}
	r.props[p.ID] = p
	return nil
}

func (r *stubPropertyRepo) AssignManager(context.Context, uuid.UUID, uuid.UUID) error   { return nil }
func (r *stubPropertyRepo) UnassignManager(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (r *stubPropertyRepo) ManagerPropertyIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type stubUserRepo struct {
	users map[uuid.UUID]user.User
}

func newStubUserRepo(users ...user.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	out := []user.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type capturingMailer struct {
	sent []sentMail
}

func (m *capturingMailer) Send(to, subject, body string) {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
}
