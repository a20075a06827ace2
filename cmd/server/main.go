package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ayurcare/internal/cache"
	"ayurcare/internal/config"
	"ayurcare/internal/logger"
	"ayurcare/internal/repository"
	"ayurcare/internal/service"
	"ayurcare/internal/transport/rest"
	"ayurcare/internal/transport/ws"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping Redis")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	mealPlanRepo := repository.NewMealPlanRepo(db)

	// Initialize caches
	assessmentCache := cache.NewAssessmentCache(rdb)
	planCache := cache.NewPlanCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, log)
	assessmentSvc := service.NewAssessmentService(userRepo, assessmentRepo, assessmentCache, log)
	planSvc := service.NewPlanService(userRepo, appointmentRepo, mealPlanRepo, planCache, log)
	appointmentSvc := service.NewAppointmentService(userRepo, appointmentRepo, planSvc, log)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)
	planSvc.SetBroadcaster(wsHub)
	appointmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		AssessmentService:  assessmentSvc,
		PlanService:        planSvc,
		AppointmentService: appointmentSvc,
		WSHub:              wsHub,
		Logger:             log,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
