package repository

import (
	"context"
	"errors"
	"time"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/application"
	"hotel-onboarding/internal/domain/employee"
	"hotel-onboarding/internal/domain/onboarding"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStaleStatus means the guarded transition matched zero rows: the
// application moved out of pending (or out of scope) between read and write.
var ErrStaleStatus = errors.New("application is no longer pending")

// Approval carries everything an approved application provisions.
type Approval struct {
	ApplicationID uuid.UUID
	Scope         Scope
	ReviewerID    uuid.UUID

	Employee employee.Employee
	Session  onboarding.Session
}

// ApprovalStore commits the pending → approved transition together with the
// employee record and onboarding session it provisions. All three land in one
// transaction, so a failed insert rolls the transition back and the
// application stays approvable.
type ApprovalStore interface {
	Approve(ctx context.Context, p Approval) error
}

type PostgresApprovalStore struct {
	db database.DB
}

func NewPostgresApprovalStore(db database.DB) *PostgresApprovalStore {
	return &PostgresApprovalStore{db: db}
}

func (s *PostgresApprovalStore) Approve(ctx context.Context, p Approval) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE job_applications
		 SET status = $1, rejection_reason = NULL, reviewed_by = $2, reviewed_at = $3
		 WHERE id = $4 AND status = $5 AND ($6::uuid[] IS NULL OR property_id = ANY($6))`,
		application.StatusApproved, p.ReviewerID, time.Now().UTC(),
		p.ApplicationID, application.StatusPending, p.Scope.idsOrNil(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleStatus
	}

	e := p.Employee
	_, err = tx.Exec(ctx,
		`INSERT INTO employees (`+employeeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.ApplicationID, e.PropertyID, e.FirstName, e.LastName, e.Email,
		e.Offer.JobTitle, e.Offer.StartDate, e.Offer.StartTime, e.Offer.PayRate,
		e.Offer.PayFrequency, e.Offer.BenefitsEligible, e.Offer.Supervisor, e.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmployeeExists
		}
		return err
	}

	sess := p.Session
	_, err = tx.Exec(ctx,
		`INSERT INTO onboarding_sessions (`+sessionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sess.ID, sess.EmployeeID, sess.AccessToken, sess.Status, sess.CurrentStep,
		sess.ExpiresAt, sess.CreatedAt, sess.UpdatedAt, sess.CompletedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
