package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	_ "github.com/bloomcare/bloom-practice-engine/docs"
	"github.com/bloomcare/bloom-practice-engine/internal/adapters/cache"
	adapterHTTP "github.com/bloomcare/bloom-practice-engine/internal/adapters/handler/http"
	"github.com/bloomcare/bloom-practice-engine/internal/adapters/repository"
	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/bloomcare/bloom-practice-engine/internal/core/services"
	"github.com/bloomcare/bloom-practice-engine/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title Bloom Practice Engine API
// @version 1.0
// @description Practice-management dashboard aggregation service for allied-health practitioners.
// @BasePath /api/v1
func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dbUser := getEnv("DB_USER", "bloom_user")
	dbPass := getEnv("DB_PASSWORD", "secret")
	dbName := getEnv("DB_NAME", "bloom_db")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	practitionerRepo := repository.NewPostgresPractitionerRepository(db.DB)
	var sessionRepo domain.SessionRepository = repository.NewPostgresSessionRepository(db)
	if rdb != nil {
		sessionRepo = repository.NewCachedSessionRepository(sessionRepo, rdb)
	}
	statsRepo := repository.NewPostgresStatsRepository(db)
	syncRepo := repository.NewPostgresSyncRepository(db)

	recorder := workers.NewSyncRecorder(syncRepo)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	recorder.Start(workerCtx)

	authService := services.NewAuthService(practitionerRepo)
	tokenService := services.NewTokenService(jwtSecret, "bloom-practice-engine", 24*time.Hour, practitionerRepo)
	sessionService := services.NewSessionService(sessionRepo, recorder)
	dashboardService := services.NewDashboardService(practitionerRepo, sessionRepo, statsRepo, syncRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		DashboardHandler: adapterHTTP.NewDashboardHandler(dashboardService),
		SessionHandler:   adapterHTTP.NewSessionHandler(sessionService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Bloom Practice Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	stopWorker()

	log.Println("Server stopped gracefully.")
}
