package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/config"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/logger"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/server"
	"github.com/Rohityadav8366/service-provider-platform/internal/gateway"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// the gateway shares the signing secret with the user service; it only
	// ever verifies, never issues
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    time.Duration(cfg.JWT.TTLMin) * time.Minute,
	}

	r, err := gateway.NewEngine(log, jwter, cfg.Gateway.Routes)
	if err != nil {
		log.Fatal("gateway routes", zap.Error(err))
	}

	addr := server.Addr(cfg.Gateway.HTTP.Host, cfg.Gateway.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.Gateway.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.Gateway.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.Gateway.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("gateway starting", zap.String("addr", addr), zap.Int("routes", len(cfg.Gateway.Routes)))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("gateway start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("gateway stopped gracefully")
}
