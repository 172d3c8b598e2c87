package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/config"
	"github.com/yukikurage/club-projects-api/internal/constants"
	"github.com/yukikurage/club-projects-api/internal/database"
	"github.com/yukikurage/club-projects-api/internal/handlers"
	"github.com/yukikurage/club-projects-api/internal/middleware"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"github.com/yukikurage/club-projects-api/internal/services"
	"github.com/yukikurage/club-projects-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogger(cfg)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	db := database.GetDB()

	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session store")
	}

	sender, err := notify.NewSender(cfg.EmailProvider, cfg.ResendAPIKey, cfg.EmailFrom)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure email delivery")
	}
	notifier := notify.NewAsyncNotifier(sender, notify.DefaultTimeout)

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(memberRepo, tokens, notifier)
	projectService := services.NewProjectService(projectRepo, memberRepo, notifier)
	moderationService := services.NewModerationService(projectRepo, notifier)
	memberService := services.NewMemberService(memberRepo, projectRepo, achievementRepo)
	achievementService := services.NewAchievementService(achievementRepo, memberRepo)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURLs,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Projects: handlers.NewProjectHandler(projectService, storage.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes)),
		Members:  handlers.NewMemberHandler(memberService),
		Admin:    handlers.NewAdminHandler(moderationService, achievementService),
	}, middleware.NewAuthenticator(memberRepo, tokens))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server stopped")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error shutting down the server")
	}
	notifier.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("Server gracefully shut down")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.GinMode != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// sessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTTTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.RedisHost == "" {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(options)
		return store, nil
	}

	store, err := redisStore.NewStore(
		10,
		"tcp",
		cfg.RedisHost+":"+cfg.RedisPort,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, err
	}
	store.Options(options)
	return store, nil
}
