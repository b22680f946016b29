package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/saldoapp/saldo-service/internal/config"
	"github.com/saldoapp/saldo-service/internal/handler"
	"github.com/saldoapp/saldo-service/internal/middleware"
	"github.com/saldoapp/saldo-service/internal/notify"
	"github.com/saldoapp/saldo-service/internal/repository"
	"github.com/saldoapp/saldo-service/internal/scheduler"
	"github.com/saldoapp/saldo-service/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/recurring", h.ListRecurring).Methods("GET")
	authRouter.HandleFunc("/recurring", h.CreateRecurring).Methods("POST")
	authRouter.HandleFunc("/recurring/{id}", h.UpdateRecurring).Methods("PUT")
	authRouter.HandleFunc("/recurring/{id}", h.DeleteRecurring).Methods("DELETE")
	authRouter.HandleFunc("/projection", h.Projection).Methods("GET")
	authRouter.HandleFunc("/projection/target", h.TargetProjection).Methods("GET")
	authRouter.HandleFunc("/simulate", h.Simulate).Methods("POST")
	authRouter.HandleFunc("/stats", h.Stats).Methods("GET")
	authRouter.HandleFunc("/reconciliation", h.Reconciliation).Methods("GET")
	authRouter.HandleFunc("/reconciliation/backfill", h.Backfill).Methods("POST")
	authRouter.HandleFunc("/settings", h.GetSettings).Methods("GET")
	authRouter.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	authRouter.HandleFunc("/backup", h.Backup).Methods("GET")

	// Scheduled negative-balance alerts
	if cfg.AlertsEnabled {
		sender := notify.NewSender(cfg, logger)
		sched := scheduler.NewScheduler(svc, repo, sender, logger, cfg)
		if err := sched.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
