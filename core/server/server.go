package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"wedding-invitations/core/config"
	"wedding-invitations/core/database"
	"wedding-invitations/core/logger"
	"wedding-invitations/core/middleware"
	emailService "wedding-invitations/modules/email/service"
	"wedding-invitations/modules/email/worker"
	"wedding-invitations/modules/invitation"
	"wedding-invitations/modules/invitation/cache"
)

// Run starts the invitations API together with the email worker and blocks
// until the process is signalled to stop.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mw := middleware.New()
	e.Use(echomw.Recover())
	e.Use(mw.RequestLogger())

	api := e.Group("/api/v1")
	invitationSvc := invitation.Init(api, db, emailService.NewEnqueuer(asynqClient), cache.NewCodeCache(rdb))

	mailer := emailService.NewSMTPMailer(cfg.Email)
	emailWorker := worker.NewServer(cfg.Redis)
	go func() {
		if err := emailWorker.Run(worker.NewHandler(invitationSvc, mailer).Mux()); err != nil {
			logger.Error("email worker stopped", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	emailWorker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
