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
	"gorm.io/gorm"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/cache"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/config"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/database"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/logger"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/server"
	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
	"github.com/Rohityadav8366/service-provider-platform/internal/mailer"
	"github.com/Rohityadav8366/service-provider-platform/internal/repo"
	"github.com/Rohityadav8366/service-provider-platform/internal/service"
	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/handler"
	"github.com/Rohityadav8366/service-provider-platform/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.CustomerProfile{}, &domain.ProviderProfile{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// signing secret and TTL are fixed for the process lifetime
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    time.Duration(cfg.JWT.TTLMin) * time.Minute,
	}

	var c *cache.Cache
	if cfg.Redis.Enable {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	var mail mailer.Sender = mailer.Noop{}
	if cfg.SMTP.Enable {
		mail = mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username,
			cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.VerifyBaseURL)
		log.Info("smtp mailer enabled", zap.String("host", cfg.SMTP.Host))
	}

	users := repo.NewUserRepo(db)
	svc := service.NewUserService(users, jwter, c, mail, log)
	userH := handler.NewUserHandler(svc)

	r := router.NewAPIEngine(log, userH)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	log.Info("user service starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user service start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user service stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
