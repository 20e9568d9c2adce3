package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-onboarding/internal/domain/user"
	"hotel-onboarding/internal/infrastructure/mail"
	"hotel-onboarding/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	expireSchedule  = "@hourly"
	summarySchedule = "0 8 * * *"
)

// Scheduler runs the recurring background work: expiring overdue
// onboarding sessions and mailing HR the daily pending summary.
type Scheduler struct {
	sessions  repository.OnboardingRepository
	dashboard repository.DashboardRepository
	users     user.Repository
	mailer    mail.Mailer
	logger    zerolog.Logger

	cron *cron.Cron
}

func NewScheduler(
	sessions repository.OnboardingRepository,
	dashboard repository.DashboardRepository,
	users user.Repository,
	mailer mail.Mailer,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		sessions:  sessions,
		dashboard: dashboard,
		users:     users,
		mailer:    mailer,
		logger:    logger,
		cron:      cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(expireSchedule, s.expireSessions); err != nil {
		return fmt.Errorf("schedule expire job: %w", err)
	}
	if _, err := s.cron.AddFunc(summarySchedule, s.dailySummary); err != nil {
		return fmt.Errorf("schedule summary job: %w", err)
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) expireSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.sessions.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error().Err(err).Msg("expire overdue sessions")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("expired", n).Msg("onboarding sessions expired")
	}
}

func (s *Scheduler) dailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pending, err := s.dashboard.PendingByProperty(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("pending summary query")
		return
	}

	total := 0
	for _, p := range pending {
		total += p.Pending
	}
	if total == 0 {
		return
	}

	recipients, err := s.users.ListByRole(ctx, user.RoleHR)
	if err != nil {
		s.logger.Error().Err(err).Msg("list summary recipients")
		return
	}

	subject, body := summaryBody(pending, total)
	for _, r := range recipients {
		if !r.IsActive {
			continue
		}
		s.mailer.Send(r.Email, subject, body)
	}
}

func summaryBody(pending []repository.PropertyPending, total int) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d applications waiting for review.\n\n", total)
	for _, p := range pending {
		if p.Pending == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d pending\n", p.PropertyName, p.Pending)
	}
	b.WriteString("\nSign in to review them.\n")
	return fmt.Sprintf("Daily summary: %d pending applications", total), b.String()
}
