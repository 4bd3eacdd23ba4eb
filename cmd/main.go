package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epicesports/tournament-platform/config"
	"github.com/epicesports/tournament-platform/db"
	"github.com/epicesports/tournament-platform/handlers"
	"github.com/epicesports/tournament-platform/live"
	"github.com/epicesports/tournament-platform/middleware"
	"github.com/epicesports/tournament-platform/payment"
	"github.com/epicesports/tournament-platform/repositories"
	api "github.com/epicesports/tournament-platform/routes"
	"github.com/epicesports/tournament-platform/services"
	"github.com/epicesports/tournament-platform/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("fallback_mode", cfg.FallbackMode))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Объектное хранилище опционально: без него баннеры просто недоступны.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("object storage not configured, banner uploads disabled")
	}

	gateway, err := payment.NewRazorpayGateway(payment.RazorpayConfig{
		KeyID:         cfg.RazorpayKeyID,
		KeySecret:     cfg.RazorpayKeySecret,
		WebhookSecret: cfg.RazorpayWebhookSecret,
	})
	if err != nil {
		logger.Error("failed to initialize payment gateway", slog.Any("error", err))
		os.Exit(1)
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	committer := repositories.NewPostgresRegistrationCommitter(dbConn, teamRepo, participantRepo, tournamentRepo)

	demo := services.NewDemoDataProvider(time.Now().UTC())
	fallbackMode := services.FallbackMode(cfg.FallbackMode)

	authService := services.NewAuthService(userRepo, services.AdminCredentials{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, uploader, demo, fallbackMode, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo)
	participantService := services.NewParticipantService(participantRepo)
	resultService := services.NewResultService(resultRepo, tournamentRepo)
	paymentService := services.NewPaymentService(tournamentRepo, committer, gateway, wsHub, logger)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(bootstrapCtx); err != nil {
		logger.Warn("admin bootstrap failed, environment fallback login remains available", slog.Any("error", err))
	}
	cancelBootstrap()

	auth := middleware.NewAuth(cfg.JWTSecretKey)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	teamHandler := handlers.NewTeamHandler(teamService)
	participantHandler := handlers.NewParticipantHandler(participantService)
	resultHandler := handlers.NewResultHandler(resultService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		authHandler,
		tournamentHandler,
		paymentHandler,
		teamHandler,
		participantHandler,
		resultHandler,
		webSocketHandler,
		cfg.AllowedOrigins,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Планировщик автоматического перевода статусов турниров по датам.
	g.Go(func() error {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament status scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.AutoUpdateTournamentStatusesByDates(gCtx); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if err := tournamentService.AutoUpdateTournamentStatusesByDates(gCtx); err != nil {
					logger.Error("scheduler: periodic run failed", slog.Any("error", err))
				}
			}
		}
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}
