package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goia/careers-os/internal/config"
	"github.com/goia/careers-os/internal/database"
	"github.com/goia/careers-os/internal/dispatcher"
	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/mailer"
	"github.com/goia/careers-os/internal/mailtmpl"
	"github.com/goia/careers-os/internal/migrator"
	"github.com/goia/careers-os/internal/nats"
	"github.com/goia/careers-os/internal/publisher"
	"github.com/goia/careers-os/internal/repository"
	"github.com/goia/careers-os/internal/web"
	"github.com/goia/careers-os/internal/web/handlers"
	"github.com/goia/careers-os/migrations"
)

func main() {
	// .env is optional, real deployments use the environment
	_ = godotenv.Load()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting careers service")

	// 3. Setup context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// 4. Connect to database
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 5. Run migrations
	mig, err := migrator.NewWithFS(migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}
	if err := mig.Up(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// 6. Connect to NATS
	nc, err := nats.New(ctx, cfg.NatsURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to nats, publishing disabled")
	} else {
		defer nc.Close()
	}

	var pub *publisher.NATSPublisher
	if nc != nil {
		if err := nc.EnsureStream(ctx, "CAREERS", []string{"careers.>"}); err != nil {
			log.Warn().Err(err).Msg("failed to ensure careers stream")
		}
		pub = publisher.NewNATSPublisher(nc)
	}

	// 7. Initialize repositories
	jobsRepo := repository.NewJobsRepository(db.Pool)
	applicationsRepo := repository.NewApplicationsRepository(db.Pool, log)
	templatesRepo := repository.NewTemplatesRepository(db.Pool, log)
	notificationsRepo := repository.NewNotificationsRepository(db.Pool)
	subscribersRepo := repository.NewSubscribersRepository(db.GORM)
	statsRepo := repository.NewStatsRepository(db.Pool)

	// 8. Initialize email dispatcher
	var sender mailer.Sender
	if rs := mailer.NewResendSender(cfg.ResendAPIKey); rs != nil {
		sender = rs
	} else {
		log.Warn().Msg("RESEND_API_KEY not set, outcome emails disabled")
	}

	var dispatcherEvents dispatcher.EventPublisher
	if pub != nil {
		dispatcherEvents = pub
	}

	resolver := mailtmpl.NewResolver(templatesRepo)
	svc := dispatcher.NewService(
		applicationsRepo,
		notificationsRepo,
		resolver,
		sender,
		dispatcherEvents,
		cfg.EmailFrom,
		dispatcher.RetryPolicy{
			MaxRetries: cfg.SendMaxRetries,
			BaseDelay:  time.Duration(cfg.SendRetryDelayMS) * time.Millisecond,
		},
	)

	// 9. Initialize WebSocket hub
	hub := web.NewHub()
	go hub.Run()

	// 10. Initialize web handlers
	var handlerEvents handlers.EventPublisher
	if pub != nil {
		handlerEvents = pub
	}

	h := &web.Handlers{
		Applications:  handlers.NewApplicationsHandler(applicationsRepo, hub, handlerEvents),
		Jobs:          handlers.NewJobsHandler(jobsRepo),
		Templates:     handlers.NewTemplatesHandler(templatesRepo),
		Emails:        handlers.NewEmailsHandler(svc, hub),
		Notifications: handlers.NewNotificationsHandler(notificationsRepo),
		Subscribe:     handlers.NewSubscribeHandler(subscribersRepo),
		Stats:         handlers.NewStatsHandler(statsRepo),
	}

	// 11. Initialize and start server
	webCfg := &web.Config{
		Port:          cfg.HTTPPort,
		AllowedOrigin: cfg.AllowedOrigin,
		SubmitRPS:     cfg.SubmitRPS,
		SubmitBurst:   cfg.SubmitBurst,
	}
	server := web.NewServer(webCfg, h, hub)

	log.Info().Int("port", cfg.HTTPPort).Msg("starting web server")
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// 12. Wait for shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
