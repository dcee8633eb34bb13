package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/volunteerhub/volunteerhub-backend/api/routes"
	"github.com/volunteerhub/volunteerhub-backend/internal/config"
	"github.com/volunteerhub/volunteerhub-backend/internal/handlers"
	mongorepo "github.com/volunteerhub/volunteerhub-backend/internal/repositories/mongodb"
	"github.com/volunteerhub/volunteerhub-backend/internal/services"
	"github.com/volunteerhub/volunteerhub-backend/pkg/jwt"
	"github.com/volunteerhub/volunteerhub-backend/pkg/logger"
	"github.com/volunteerhub/volunteerhub-backend/pkg/mongodb"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zlog.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := mongorepo.NewUserRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)
	eventRepo := mongorepo.NewEventRepository(db)
	assignmentRepo := mongorepo.NewAssignmentRepository(db)
	historyRepo := mongorepo.NewHistoryRepository(db)
	notificationRepo := mongorepo.NewNotificationRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	for name, ensure := range map[string]func(context.Context) error{
		"users":       userRepo.EnsureIndexes,
		"profiles":    profileRepo.EnsureIndexes,
		"assignments": assignmentRepo.EnsureIndexes,
		"history":     historyRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			zlog.Fatal("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	authService := services.NewAuthService(userRepo, profileRepo, tokens, zlog)
	profileService := services.NewProfileService(profileRepo)
	eventService := services.NewEventService(eventRepo)
	matchingService := services.NewMatchingService(profileRepo, eventRepo)
	historyService := services.NewHistoryService(historyRepo, eventRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, eventRepo, userRepo, historyService, zlog)
	notificationService := services.NewNotificationService(notificationRepo)

	deps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService, zlog),
		ProfileHandler:      handlers.NewProfileHandler(profileService, zlog),
		EventHandler:        handlers.NewEventHandler(eventService, zlog),
		AssignmentHandler:   handlers.NewAssignmentHandler(assignmentService, matchingService, zlog),
		HistoryHandler:      handlers.NewHistoryHandler(historyService, zlog),
		NotificationHandler: handlers.NewNotificationHandler(notificationService, zlog),
	}

	router := routes.SetupRouter(cfg, tokens, zlog, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
