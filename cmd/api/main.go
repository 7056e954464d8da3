// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/infrastructure/database/postgres"
	"github.com/tochayanroy/ecomapp-backend/internal/infrastructure/database/redis"
	httpserver "github.com/tochayanroy/ecomapp-backend/internal/interfaces/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	setupLogging(cfg)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer postgres.Close(db)

	if err := postgres.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}
	if err := postgres.SeedInitialData(db, cfg); err != nil {
		logrus.WithError(err).Fatal("failed to seed initial data")
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()

	server, err := httpserver.NewServer(cfg, db, redisClient)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build server")
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
			"env":  cfg.App.Environment,
		}).Info("starting server")

		if err := server.Start(); err != nil {
			logrus.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}

	logrus.Info("server stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
