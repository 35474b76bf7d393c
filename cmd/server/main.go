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

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/adapter/httpapi"
	"github.com/renthome/renter-service/internal/adapter/messaging/nats"
	"github.com/renthome/renter-service/internal/adapter/repository/cache"
	"github.com/renthome/renter-service/internal/adapter/repository/mongodb"
	"github.com/renthome/renter-service/internal/config"
	"github.com/renthome/renter-service/internal/mailer"
	"github.com/renthome/renter-service/internal/platform/auth"
	"github.com/renthome/renter-service/internal/platform/logger"
	"github.com/renthome/renter-service/internal/platform/tracer"
	"github.com/renthome/renter-service/internal/renting/usecase"
)

func main() {
	_ = godotenv.Load()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.Init(ctx, cfg.OTLPEndpoint)
		if err != nil {
			zapLogger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				zapLogger.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	listingRepo := mongodb.NewListingRepository(db, zapLogger)
	renterRepo := mongodb.NewRenterRepository(db, zapLogger)
	authSvc := auth.NewService(cfg.JWTSecret, auth.DefaultTokenTTL)

	deps := httpapi.HandlerDeps{
		Ingestion: usecase.NewIngestionUsecase(listingRepo, renterRepo, zapLogger),
		Retrieval: usecase.NewRetrievalUsecase(listingRepo, renterRepo, zapLogger),
		Renters:   usecase.NewRenterUsecase(renterRepo, authSvc, zapLogger),
	}

	// The cache, publisher and mailer are best-effort channels. A failure to
	// reach any of them degrades the service rather than preventing startup.
	if cfg.RedisAddress != "" {
		listingCache, err := cache.NewListingCache(cfg.RedisAddress)
		if err != nil {
			zapLogger.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		} else {
			deps.Cache = listingCache
			defer listingCache.Close()
		}
	}
	if cfg.NATSURL != "" {
		publisher, err := nats.NewPublisher(cfg.NATSURL)
		if err != nil {
			zapLogger.Warn("NATS unavailable, event publishing disabled", zap.Error(err))
		} else {
			deps.Publisher = publisher
			defer publisher.Close()
		}
	}
	if cfg.SMTPEmail != "" {
		deps.Mailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	handler := httpapi.NewHandler(deps, zapLogger)
	router := httpapi.NewRouter(handler, authSvc, zapLogger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: otelhttp.NewHandler(router, "renter-service"),
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
