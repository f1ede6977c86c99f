package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kittyguard/harmreport/internal/chatlog"
	"github.com/kittyguard/harmreport/internal/config"
	"github.com/kittyguard/harmreport/internal/db"
	"github.com/kittyguard/harmreport/internal/httpapi"
	"github.com/kittyguard/harmreport/internal/store/rabbitmq"
	"github.com/kittyguard/harmreport/internal/store/redisstore"
)

func newLogger() *zap.Logger {
	if os.Getenv("LOG_DEV") != "" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

func main() {
	log := newLogger()
	defer log.Sync()

	cfg := config.Load()
	if cfg.APIKey == "" {
		log.Fatal("X_API_KEY is not set")
	}

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	var triggers chatlog.TriggerStore
	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rds.Ping(pingCtx); err != nil {
		// the service still runs; counts fall back to the database
		log.Warn("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	} else {
		triggers = rds
	}
	cancel()

	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Fatal("rabbit", zap.Error(err))
	}
	defer pub.Close()

	repo := chatlog.NewRepo(gdb)
	svc := chatlog.NewService(repo, triggers, pub, cfg.HarmfulThreshold, log)

	r := httpapi.NewRouter(svc, cfg.APIKey, log)

	log.Info("server listening",
		zap.String("addr", cfg.ListenAddr),
		zap.Int("threshold", cfg.HarmfulThreshold))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
