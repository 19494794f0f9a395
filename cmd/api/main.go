package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bakery-shop/internal/client"
	"bakery-shop/internal/config"
	"bakery-shop/internal/repository"
	"bakery-shop/internal/server"
	"bakery-shop/internal/service"
	"bakery-shop/internal/token"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var (
		userRepo  repository.UserRepository
		orderRepo repository.OrderRepository
	)
	switch cfg.Storage.Backend {
	case "memory":
		store := repository.NewMemoryStore()
		userRepo = store.Users()
		orderRepo = store.Orders()
		logger.Warn("using in-memory storage, all data is lost on restart")
	default:
		db, err := client.InitSqliteClient(cfg.Storage.DatabasePath)
		if err != nil {
			logger.Fatal("database initialization failed", zap.Error(err))
		}
		userRepo = repository.NewUserRepository(db)
		orderRepo = repository.NewOrderRepository(db)
	}

	tokens := token.NewCodec(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.AdminContacts)
	orderService := service.NewOrderService(userRepo, orderRepo)

	srv := server.NewServer(authService, orderService, tokens, cfg.HTTP.StaticDir, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
