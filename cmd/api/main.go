package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-network-backend/config"
	v1 "talent-network-backend/internal/delivery/http/v1"
	"talent-network-backend/internal/domain"
	"talent-network-backend/internal/realtime"
	"talent-network-backend/internal/repository/postgres"
	"talent-network-backend/internal/usecase"
	"talent-network-backend/pkg/auth"
	"talent-network-backend/pkg/database"
	"talent-network-backend/pkg/logger"
	"talent-network-backend/pkg/redis"
	"talent-network-backend/pkg/validation"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting talent network backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional: realtime projection and shared rate limits)
	var channel domain.RealtimeChannel = realtime.NoopChannel{}
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, realtime projection disabled", "error", err)
	} else {
		channel = realtime.NewRedisChannel(redis.Client(), cfg.RealtimeKeyPrefix)
		defer redis.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	preferenceRepo := postgres.NewPreferenceRepository(dbPool)
	friendRepo := postgres.NewFriendRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate)
	preferenceUC := usecase.NewPreferenceUsecase(preferenceRepo, validate, cfg.MaxPreferencesPerHR, cfg.DefaultMinAge)
	matchUC := usecase.NewMatchUsecase(candidateRepo, preferenceUC, validate, cfg.MatchResultLimit)
	friendUC := usecase.NewFriendUsecase(friendRepo, userRepo, channel, cfg.RealtimeTimeout)
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis": func(ctx context.Context) error {
			if redis.Client() == nil {
				return nil // optional dependency
			}
			return redis.HealthCheck(ctx)
		},
	})

	// 7. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		CandidateUC:  candidateUC,
		PreferenceUC: preferenceUC,
		MatchUC:      matchUC,
		FriendUC:     friendUC,
		HealthUC:     healthUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
