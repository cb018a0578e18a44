package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskQuestAPI/handlers"
	"taskQuestAPI/internal/notification"
	"taskQuestAPI/middleware"
	"taskQuestAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	taskService         *services.TaskService
	pointsService       *services.PointsService
	streakService       *services.StreakService
	dailyTaskService    *services.DailyTaskService
	redemptionService   *services.RedemptionService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
		fcmService = nil
	} else {
		log.Println("FCM Push Provider initialized successfully")
	}

	notificationService = services.NewNotificationService(dbPool, fcmService)
	userService = services.NewUserService(dbPool)
	taskService = services.NewTaskService(dbPool)
	pointsService = services.NewPointsService(dbPool)
	streakService = services.NewStreakService(dbPool)
	dailyTaskService = services.NewDailyTaskService(dbPool, pointsService, streakService, notificationService)
	redemptionService = services.NewRedemptionService(dbPool, pointsService, notificationService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService, notificationService)
	taskHandler := handlers.NewTaskHandler(taskService, userService)
	dailyTaskHandler := handlers.NewDailyTaskHandler(dailyTaskService, userService)
	pointsHandler := handlers.NewPointsHandler(pointsService, userService)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "taskQuest-api"}`))
	}).Methods("GET")

	standardRouter.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/balance", userHandler.GetBalance).Methods("GET")
	protected.HandleFunc("/user/children", userHandler.GetChildren).Methods("GET")
	protected.HandleFunc("/user/register-device", userHandler.RegisterDevice).Methods("POST")

	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks", taskHandler.ListTasks).Methods("GET")
	protected.HandleFunc("/tasks/{id}", taskHandler.GetTask).Methods("GET")
	protected.HandleFunc("/tasks/{id}", taskHandler.UpdateTask).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods("DELETE")

	protected.HandleFunc("/daily-tasks", dailyTaskHandler.CreateDailyTask).Methods("POST")
	protected.HandleFunc("/daily-tasks", dailyTaskHandler.ListDailyTasks).Methods("GET")
	protected.HandleFunc("/daily-tasks/pending-approval", dailyTaskHandler.GetPendingApprovals).Methods("GET")
	protected.HandleFunc("/daily-tasks/stats", dailyTaskHandler.GetStats).Methods("GET")
	protected.HandleFunc("/daily-tasks/{id}", dailyTaskHandler.UpdateDailyTask).Methods("PATCH")
	protected.HandleFunc("/daily-tasks/{id}", dailyTaskHandler.DeleteDailyTask).Methods("DELETE")
	protected.HandleFunc("/daily-tasks/{id}/approve", dailyTaskHandler.DecideDailyTask).Methods("POST")

	protected.HandleFunc("/points-history", pointsHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/points/summary", pointsHandler.GetDaySummary).Methods("GET")
	protected.HandleFunc("/points-rules", pointsHandler.CreateRule).Methods("POST")
	protected.HandleFunc("/points-rules", pointsHandler.ListRules).Methods("GET")
	protected.HandleFunc("/points-rules/{id}", pointsHandler.UpdateRule).Methods("PUT")

	protected.HandleFunc("/redemptions", redemptionHandler.CreateRedemption).Methods("POST")
	protected.HandleFunc("/redemptions", redemptionHandler.ListRedemptions).Methods("GET")
	protected.HandleFunc("/redemptions/{id}/process", redemptionHandler.ProcessRedemption).Methods("POST")

	protected.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkNotificationRead).Methods("POST")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
