package app

import (
	"context"
	"time"

	"hotel-onboarding/internal/config"
	"hotel-onboarding/internal/database"
	dbpostgres "hotel-onboarding/internal/database/postgres"
	"hotel-onboarding/internal/infrastructure/cache"
	"hotel-onboarding/internal/infrastructure/mail"
	"hotel-onboarding/internal/ws"

	"github.com/rs/zerolog"
)

type Container struct {
	Config config.Config
	Logger zerolog.Logger

	DB     database.DB
	Redis  *cache.Redis
	Mailer mail.Mailer
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger zerolog.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, logger),
		Mailer: mail.NewSMTPMailer(cfg.SMTP, logger),
		Hub:    hub,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
