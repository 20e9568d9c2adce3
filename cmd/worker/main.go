package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotel-onboarding/internal/app"
	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/infrastructure/persistence/postgres"
	"hotel-onboarding/internal/jobs"
	"hotel-onboarding/internal/pkg/logger"
	"hotel-onboarding/internal/repository"

	"github.com/joho/godotenv"
)

// The worker runs the cron schedule out of process so a restarting API
// server never skips a tick.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl := logger.New(cfg.App.AppName+"-worker", cfg.App.Environment)

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	userRepo, err := postgres.NewUserRepository(container.DB)
	if err != nil {
		log.Fatalf("failed to init user repository: %v", err)
	}
	defer func() {
		_ = userRepo.Close()
	}()

	scheduler := jobs.NewScheduler(
		repository.NewPostgresOnboardingRepository(container.DB),
		repository.NewPostgresDashboardRepository(container.DB),
		userRepo,
		container.Mailer,
		zl,
	)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	zl.Info().Msg("worker started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	scheduler.Stop()
	zl.Info().Msg("worker stopped")
}
