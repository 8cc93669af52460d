package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"coilworks/internal/access"
	"coilworks/internal/cart"
	"coilworks/internal/company"
	"coilworks/internal/config"
	"coilworks/internal/customer"
	"coilworks/internal/enquiry"
	"coilworks/internal/infrastructure/logger"
	"coilworks/internal/infrastructure/mysql"
	"coilworks/internal/infrastructure/redis"
	"coilworks/internal/order"
	"coilworks/internal/product"
	"coilworks/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.NewConnection(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if err := mysql.Migrate(ctx, db); err != nil {
		zapLogger.Fatal("migrating schema", zap.Error(err))
	}

	var redisClient *goredis.Client
	if rc, err := redis.NewClient(ctx, cfg.Redis); err != nil {
		zapLogger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	verifier, err := access.NewTokenVerifier(cfg.Auth)
	if err != nil {
		zapLogger.Fatal("configuring token verifier", zap.Error(err))
	}

	products := product.NewModule(db, redisClient, cfg.Catalog.CacheTTL, zapLogger)
	customers := customer.NewModule(db, zapLogger)
	orders := order.NewModule(db, products.Service, customers.Service, cfg.Workflow, zapLogger)

	router := server.NewRouter(server.Handlers{
		Products:  products.Controller,
		Cart:      cart.NewModule(db, products.Service, zapLogger),
		Enquiries: enquiry.NewModule(db, products.Service, customers.Service, cfg.Workflow, zapLogger),
		Orders:    orders.Records,
		Health:    orders.Health,
		Customers: customers.Controller,
		Settings:  company.NewModule(db, cfg.Storefront, zapLogger),
	}, verifier, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
