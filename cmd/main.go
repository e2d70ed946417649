package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shop-admin/internal/cache"
	"shop-admin/internal/config"
	"shop-admin/internal/db"
	"shop-admin/internal/kafka"
	"shop-admin/internal/logger"
	"shop-admin/internal/repository/mongodb"
	"shop-admin/internal/server"
	"shop-admin/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zapLogger := logger.New()
	defer func() { _ = zapLogger.Sync() }()

	cfg := config.New()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := database.Close(closeCtx); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, zapLogger)
	defer func() {
		if err := redisCache.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}()
	if err := redisCache.Ping(ctx); err != nil {
		// cache invalidation is best-effort, so a dead cache is not fatal
		log.Printf("WARN: redis unreachable at startup: %v", err)
	}

	orderRepo := mongodb.NewOrderRepo(database)
	userRepo := mongodb.NewUserRepo(database)
	productRepo := mongodb.NewProductRepo(database)
	notificationRepo := mongodb.NewNotificationRepo(database)
	shopStatusRepo := mongodb.NewShopStatusRepo(database)

	hub := server.NewHub(zapLogger)

	orderService := service.NewOrderService(orderRepo, userRepo, productRepo, zapLogger)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, zapLogger)
	shopStatusService := service.NewShopStatusService(shopStatusRepo, redisCache, hub, zapLogger)

	producer := kafka.NewWriterProducer(cfg.KafkaBrokers)
	auditManager := server.NewAuditManager(producer, cfg.AuditTopic, 2, 5, 500*time.Millisecond)

	srv := server.New(orderService, notificationService, shopStatusService, hub, auditManager, zapLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	log.Printf("Server started on port %s", cfg.HTTPPort)
	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server gracefully stopped")
}
