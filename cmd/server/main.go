package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-onboarding/internal/app"
	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/database/migration"
	"hotel-onboarding/internal/database/seeder"
	"hotel-onboarding/internal/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "migrations directory")
	seed := flag.Bool("seed", false, "run the default seeders after migrating")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl := logger.New(cfg.App.AppName, cfg.App.Environment)

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	r := migration.Runner{Dir: *migrationsDir}
	if err := r.Run(migCtx, container.DB.SQLDB()); err != nil {
		migCancel()
		log.Fatalf("migration failed: %v", err)
	}
	migCancel()

	if *seed {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
		sr := seeder.Runner{Seeders: seeder.Defaults()}
		if err := sr.Run(seedCtx, container.DB); err != nil {
			seedCancel()
			log.Fatalf("seeding failed: %v", err)
		}
		seedCancel()
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg, container)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
