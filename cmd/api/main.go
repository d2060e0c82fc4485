package main

import (
	"context"
	"log/slog"
	"os"

	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/safra-cheia/budget-backend/config"
	"github.com/safra-cheia/budget-backend/internal/audit"
	"github.com/safra-cheia/budget-backend/internal/auth"
	"github.com/safra-cheia/budget-backend/internal/bootstrap"
	projrepo "github.com/safra-cheia/budget-backend/internal/projects/repository"
	"github.com/safra-cheia/budget-backend/internal/storage"
)

const serviceName = "budget-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := newLogger(cfg.App.LogLevel)
	slog.SetDefault(log)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis open failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	var authClient *firebaseauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Error("firebase init failed", "err", err)
			os.Exit(1)
		}
	} else {
		log.Warn("no firebase credentials configured, using X-User-Id header auth")
	}

	auditor := audit.NewSpentAuditor(projrepo.NewRepo(db), log)
	if err := auditor.Start(); err != nil {
		log.Error("spent audit scheduling failed", "err", err)
		os.Exit(1)
	}
	defer auditor.Stop()

	bootstrap.SetGinMode(cfg.App.Environment)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Cfg:         cfg,
		DB:          db,
		Redis:       rdb,
		AuthClient:  authClient,
		Log:         log,
	})

	log.Info("listening", "port", cfg.Server.Port, "env", cfg.App.Environment)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
