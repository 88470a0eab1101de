package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/LapkoMarian/cartridges-bot/internal/bot"
	"github.com/LapkoMarian/cartridges-bot/internal/config"
	"github.com/LapkoMarian/cartridges-bot/internal/dialog"
	"github.com/LapkoMarian/cartridges-bot/internal/infra/db"
	httpx "github.com/LapkoMarian/cartridges-bot/internal/infra/http"
	"github.com/LapkoMarian/cartridges-bot/internal/infra/logger"
	"github.com/LapkoMarian/cartridges-bot/internal/mirror"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
	"github.com/LapkoMarian/cartridges-bot/internal/storage/postgres"
	sqlitestore "github.com/LapkoMarian/cartridges-bot/internal/storage/sqlite"
	"github.com/LapkoMarian/cartridges-bot/internal/tracker"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/example.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc := time.Local
	if cfg.App.Timezone != "" {
		l, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			log.Warn("unknown timezone, using local", "tz", cfg.App.Timezone)
		} else {
			loc = l
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	switch cfg.Storage.Driver {
	case "postgres":
		if err := runMigrations(cfg.Storage.DSN); err != nil {
			log.Error("migrations failed", "err", err)
			return
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Storage.DSN)
		if err != nil {
			log.Error("db connect failed", "err", err)
			return
		}
		store = postgres.New(pool)
	default:
		s, err := sqlitestore.Open(cfg.Storage.Path)
		if err != nil {
			log.Error("sqlite open failed", "err", err)
			return
		}
		store = s
	}
	defer func() { _ = store.Close() }()
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	// Дзеркало best-effort: невдала ініціалізація не зупиняє бота.
	var up mirror.Uploader
	switch cfg.Mirror.Driver {
	case "s3":
		s3up, err := mirror.NewS3Uploader(ctx, mirror.S3Config{
			Bucket:    cfg.Mirror.S3.Bucket,
			Key:       cfg.Mirror.S3.Key,
			Region:    cfg.Mirror.S3.Region,
			Endpoint:  cfg.Mirror.S3.Endpoint,
			PathStyle: cfg.Mirror.S3.PathStyle,
		})
		if err != nil {
			log.Error("mirror init failed, mirroring disabled", "err", err)
		} else {
			up = s3up
		}
	case "fs":
		up = mirror.NewFSUploader(cfg.Mirror.Path)
	}
	sync := mirror.New(store, up, log)
	// Дзеркало повністю відновлюване з бази — публікуємо і на старті.
	sync.Trigger()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}

	states := dialog.NewManager()
	trk := tracker.New(store, states, sync, loc, log)
	b := bot.New(api, log, store, states, trk, cfg.Telegram.AdminChatID)

	go func() {
		if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
			stop()
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
