package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/wanderbliss/fairshare/internal/auth"
	"github.com/wanderbliss/fairshare/internal/config"
	"github.com/wanderbliss/fairshare/internal/database"
	"github.com/wanderbliss/fairshare/internal/expense"
	"github.com/wanderbliss/fairshare/internal/notification"
	"github.com/wanderbliss/fairshare/internal/planner"
	"github.com/wanderbliss/fairshare/internal/settlement"
	"github.com/wanderbliss/fairshare/internal/trip"
	"github.com/wanderbliss/fairshare/internal/user"
	"github.com/wanderbliss/fairshare/pkg/logging"
	"github.com/wanderbliss/fairshare/pkg/metrics"
	mw "github.com/wanderbliss/fairshare/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// Notification feature (other features publish into it)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Trip feature
	tripRepo := trip.NewRepository(db)
	tripService := trip.NewService(tripRepo, notificationService)
	tripHandler := trip.NewHandler(tripService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, tripService, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, expenseRepo, tripService, notificationService)
	settlementHandler := settlement.NewHandler(settlementService)

	// Planner feature
	plannerRepo := planner.NewRepository(db)
	plannerService := planner.NewService(plannerRepo, tripService)
	plannerHandler := planner.NewHandler(plannerService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(jwtManager))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/trips", tripHandler.Routes())
			r.Route("/trips/{tripID}", func(r chi.Router) {
				r.Get("/summary", settlementHandler.Summary)
				r.Mount("/expenses", expenseHandler.Routes())
				r.Mount("/settlements", settlementHandler.Routes())
				r.Mount("/planner", plannerHandler.Routes())
			})
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
