// Command server runs the clinic booking API.
//
//	@title			Clinic Booking API
//	@version		1.0
//	@description	Public appointment booking with a session-protected admin listing.
//	@BasePath		/
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						sid
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

	"github.com/vertex-clinic/booking-api/internal/api"
	"github.com/vertex-clinic/booking-api/internal/api/cookie"
	"github.com/vertex-clinic/booking-api/internal/api/handler"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
	"github.com/vertex-clinic/booking-api/internal/core/service"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/config"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/db/mongo"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/db/redis"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/mail"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/queue"
	"github.com/vertex-clinic/booking-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Pretty: true})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "clinic-booking-api",
	})

	// database
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	appointments := mongo.NewAppointmentRepository(db)
	if err := appointments.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not create appointment indexes")
	}

	// sessions
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// notifications
	var (
		notifications ports.NotificationQueue
		dispatcher    *queue.Dispatcher
	)
	if cfg.MailEnabled() {
		notifier := mail.NewNotifier(mail.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.User,
			Password: cfg.Mail.Password,
			To:       cfg.Mail.To,
		})
		if err := notifier.Verify(ctx); err != nil {
			log.Error().Err(err).Msg("smtp check failed, alerts may not be delivered")
		} else {
			log.Info().Str("host", cfg.Mail.Host).Msg("smtp ready")
		}

		dispatcher = queue.NewDispatcher(cfg.Mail.Workers, notifier, log)
		dispatcher.Start(ctx)
		notifications = dispatcher
	} else {
		log.Warn().Msg("EMAIL_USER/EMAIL_PASS not set, admin alerts disabled")
	}

	// services
	authService, err := service.NewAuthService(
		redis.NewSessionStore(rdb),
		cfg.Admin.Username,
		cfg.Admin.Password,
		cfg.Session.TTL,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("auth service")
	}

	e := api.NewRouter(api.Dependencies{
		Appointments: service.NewAppointmentService(appointments, notifications, log),
		Auth:         authService,
		Cookies: cookie.NewCodec(cookie.Options{
			Secret: cfg.Session.Secret,
			TTL:    cfg.Session.TTL,
			Secure: cfg.IsProduction(),
		}),
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": mongo.Ping(db),
			"redis":   redis.Ping(rdb),
		},
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("pending alerts dropped")
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
