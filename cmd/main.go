package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Davidayo16/HOD-app/internal/config"
	"github.com/Davidayo16/HOD-app/internal/db"
	"github.com/Davidayo16/HOD-app/internal/middleware"
	"github.com/Davidayo16/HOD-app/internal/model"
	"github.com/Davidayo16/HOD-app/internal/repository"
	"github.com/Davidayo16/HOD-app/internal/routes"
	"github.com/Davidayo16/HOD-app/internal/schedule"
	"github.com/Davidayo16/HOD-app/internal/service"
)

func main() {
	// 1. Env vars, with optional .env for local runs.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.HTTP.Environment != "production" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// 2. Database.
	gormDB, err := db.NewGormDB(cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init db")
	}

	// 3. Migrations.
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	// 4. Repositories.
	apptRepo := repository.NewGormAppointmentRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Services.
	identitySvc := service.NewIdentityService(
		userRepo,
		[]byte(cfg.JWT.Secret),
		time.Duration(cfg.JWT.TokenTTL)*time.Minute,
	)
	appointmentSvc := service.NewAppointmentService(
		apptRepo,
		userRepo,
		eventRepo,
		schedule.PermissivePolicy,
	)

	// 6. HTTP server.
	if cfg.HTTP.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger(logger), gin.Recovery())
	routes.SetupRoutes(router, identitySvc, appointmentSvc)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	logger.Info().Str("port", cfg.HTTP.Port).Msg("server listening")

	// 7. Serve in a goroutine.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http serve")
		}
	}()

	// 8. Graceful shutdown on signal.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
