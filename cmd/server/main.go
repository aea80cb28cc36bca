package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unbolt-api/config"
	"unbolt-api/internal/api"
	"unbolt-api/internal/broker"
	"unbolt-api/internal/redisclient"
	"unbolt-api/internal/service"
	"unbolt-api/internal/store"
	"unbolt-api/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting unbolt api",
		zap.String("env", cfg.Server.Env),
		zap.String("base_url", cfg.Server.BaseURL))

	tp, err := util.InitTracer("unbolt-api", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	var publisher broker.Publisher = broker.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicBookingEvents)
		logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}
	eventPublisher := broker.NewEventPublisher(publisher)
	defer eventPublisher.Close()

	var idempotency service.IdempotencyStore
	if cfg.Redis.Addr != "" {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, idempotency keys disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			idempotency = redisClient
			logger.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	st := store.NewStore()
	quoteService := service.NewQuoteService(st.Quotes, eventPublisher)
	bookingService := service.NewBookingService(st.Bookings, eventPublisher, idempotency, service.BookingConfig{
		BaseURL:        cfg.Server.BaseURL,
		IdempotencyTTL: cfg.Business.IdempotencyTTL,
	})

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(quoteService, bookingService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
