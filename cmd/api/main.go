package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/salon-ops/internal/config"
	"github.com/Dan9191/salon-ops/internal/handler"
	"github.com/Dan9191/salon-ops/internal/middleware"
	"github.com/Dan9191/salon-ops/internal/repository"
	"github.com/Dan9191/salon-ops/internal/scheduler"
	"github.com/Dan9191/salon-ops/internal/service"
	"github.com/Dan9191/salon-ops/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Migrate(startupCtx); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	svc, err := service.NewService(repo, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	// Public routes
	h.RegisterPublic(r)
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(svc, logger))
	h.RegisterProtected(authRouter)

	// CORS wraps the router so preflight requests bypass method matching
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORSAllowCredentials(),
		MaxAge:           300,
	})

	// Budget watch
	sched := scheduler.New(logger)
	if cfg.AlertsEnabled() {
		job := scheduler.NewBudgetWatchJob(svc, email.NewSender(cfg, logger), logger)
		if err := sched.AddJob(cfg.BudgetAlertSchedule, job); err != nil {
			logger.Fatalf("Invalid BUDGET_ALERT_SCHEDULE %q: %v", cfg.BudgetAlertSchedule, err)
		}
		if cfg.BudgetCheckOnStart {
			go func() {
				if err := sched.RunNow(job); err != nil {
					logger.Errorf("Startup budget check failed: %v", err)
				}
			}()
		}
	} else {
		logger.Info("Budget alerts disabled: SMTP_HOST or ALERT_RECIPIENTS not set")
	}
	sched.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	sched.Stop()
}
