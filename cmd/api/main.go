package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"task-tracker/internal/config"
	"task-tracker/internal/handlers"
	"task-tracker/internal/middleware"
	"task-tracker/internal/repository"
	"task-tracker/internal/services"
	"task-tracker/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && os.Getenv("ENV") != "docker" {
		log.Println("No .env file, using environment variables")
	}

	cfg := config.Load()
	utils.DebugEnabled = cfg.Debug

	client, err := connectMongo(cfg)
	if err != nil {
		log.Fatalf("Unable to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	db := client.Database(cfg.DBName)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		cancel()
		log.Fatalf("Unable to create indexes: %v", err)
	}
	cancel()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpiration)
	taskService := services.NewTaskService(taskRepo)

	authHandler := handlers.NewAuthHandler(authService, userRepo)
	taskHandler := handlers.NewTaskHandler(taskService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := router.New()

	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetContentType("text/plain")
		ctx.SetBodyString("Task Tracker API is running")
	})
	r.GET("/health", healthHandler(client))

	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", authMiddleware.RequireAuth(authHandler.Me))

	r.GET("/api/tasks", authMiddleware.RequireAuth(taskHandler.GetTasks))
	r.POST("/api/tasks", authMiddleware.RequireAuth(taskHandler.CreateTask))
	r.GET("/api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.GetTaskByID))
	r.PUT("/api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.UpdateTask))
	r.DELETE("/api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.DeleteTask))

	handler := middleware.RequestLogger(middleware.CORS(cfg.AllowedOrigins, r.Handler))

	server := &fasthttp.Server{
		Name:    "task-tracker",
		Handler: handler,
	}

	go func() {
		utils.LogInfo("Server", "Listening on %s", cfg.Addr)
		if err := server.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	utils.LogInfo("Server", "Shutting down...")
	if err := server.Shutdown(); err != nil {
		utils.LogError("Server", "Forced shutdown", err)
	}
	utils.LogSuccess("Server", "Server stopped")
}

// connectMongo dials the database with an explicit timeout and verifies the
// connection with a ping, failing fast instead of hanging at startup.
func connectMongo(cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	utils.LogSuccess("Mongo", "Connected to MongoDB")
	return client, nil
}

func healthHandler(client *mongo.Client) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		mongoState := "connected"
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			mongoState = "disconnected"
		}

		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"status":  "ok",
			"message": "Server is healthy",
			"mongo":   mongoState,
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}
