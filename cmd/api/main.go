package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"persona-quiz/internal/config"
	"persona-quiz/internal/db"
	apihttp "persona-quiz/internal/http"
	"persona-quiz/internal/repository"
	"persona-quiz/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	resultRepo := repository.NewPgResultRepository(pool)

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
		sessionStore service.QuizSessionStore
		redisClient  *redis.Client
	)
	sessionTTL := time.Duration(cfg.QuizSessionTTLMinutes) * time.Minute
	loginWindow := time.Duration(cfg.LoginRateWindowMinutes) * time.Minute
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			sessionStore = service.NewRedisQuizSessionStore(redisClient, sessionTTL)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewLoginRateLimiter(loginWindow, cfg.LoginRateMax)
	}
	if sessionStore == nil {
		sessionStore = service.NewMemoryQuizSessionStore(sessionTTL)
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	scorer := service.NewPersonalityScorer(service.DefaultQuestions())
	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	resultSvc := service.NewResultService(resultRepo, scorer, logger, cfg.HistoryDefaultLimit)
	quizSvc := service.NewQuizService(sessionStore, scorer, resultSvc, logger)

	router := apihttp.NewRouter(
		logger,
		jwtSvc,
		func(ctx context.Context) error { return db.Ping(ctx, pool) },
		apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		apihttp.NewQuizHandler(logger, scorer, quizSvc),
		apihttp.NewResultHandler(logger, resultSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
