package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/onboarding"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSessionNotFound = errors.New("onboarding session not found")

type OnboardingRepository interface {
	CreateSession(ctx context.Context, s onboarding.Session) error
	GetSessionByToken(ctx context.Context, token string) (onboarding.Session, error)
	UpdateSession(ctx context.Context, s onboarding.Session) error

	UpsertStep(ctx context.Context, step onboarding.CompletedStep) error
	ListSteps(ctx context.Context, sessionID uuid.UUID) ([]onboarding.CompletedStep, error)

	// ExpireOverdue marks every in_progress session past its deadline as
	// expired and reports how many rows changed. Safe to re-run.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type PostgresOnboardingRepository struct {
	db database.DB
}

func NewPostgresOnboardingRepository(db database.DB) *PostgresOnboardingRepository {
	return &PostgresOnboardingRepository{db: db}
}

const sessionColumns = `id, employee_id, access_token, status, current_step, expires_at, created_at, updated_at, completed_at`

func (r *PostgresOnboardingRepository) CreateSession(ctx context.Context, s onboarding.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO onboarding_sessions (`+sessionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.EmployeeID, s.AccessToken, s.Status, s.CurrentStep,
		s.ExpiresAt, s.CreatedAt, s.UpdatedAt, s.CompletedAt,
	)
	return err
}

func (r *PostgresOnboardingRepository) GetSessionByToken(ctx context.Context, token string) (onboarding.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM onboarding_sessions WHERE access_token = $1`, token)

	var s onboarding.Session
	err := row.Scan(&s.ID, &s.EmployeeID, &s.AccessToken, &s.Status, &s.CurrentStep,
		&s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return onboarding.Session{}, ErrSessionNotFound
		}
		return onboarding.Session{}, err
	}
	return s, nil
}

func (r *PostgresOnboardingRepository) UpdateSession(ctx context.Context, s onboarding.Session) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE onboarding_sessions
		 SET status = $1, current_step = $2, updated_at = $3, completed_at = $4
		 WHERE id = $5`,
		s.Status, s.CurrentStep, s.UpdatedAt, s.CompletedAt, s.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *PostgresOnboardingRepository) UpsertStep(ctx context.Context, step onboarding.CompletedStep) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO onboarding_steps (session_id, step_id, payload, completed_at, completed_by)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, step_id)
		 DO UPDATE SET payload = EXCLUDED.payload, completed_at = EXCLUDED.completed_at, completed_by = EXCLUDED.completed_by`,
		step.SessionID, step.StepID, step.Payload, step.CompletedAt, step.CompletedBy,
	)
	return err
}

func (r *PostgresOnboardingRepository) ListSteps(ctx context.Context, sessionID uuid.UUID) ([]onboarding.CompletedStep, error) {
	rows, err := r.db.Query(ctx,
		`SELECT session_id, step_id, payload, completed_at, completed_by
		 FROM onboarding_steps
		 WHERE session_id = $1
		 ORDER BY completed_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.CompletedStep, 0)
	for rows.Next() {
		var s onboarding.CompletedStep
		if err := rows.Scan(&s.SessionID, &s.StepID, &s.Payload, &s.CompletedAt, &s.CompletedBy); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOnboardingRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE onboarding_sessions
		 SET status = $1, updated_at = $2
		 WHERE status = $3 AND expires_at < $2`,
		onboarding.StatusExpired, now.UTC(), onboarding.StatusInProgress,
	)
}
