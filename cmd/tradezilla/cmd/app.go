package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/config"
	"github.com/rustyeddy/tradezilla/internal/coach"
	"github.com/rustyeddy/tradezilla/internal/logger"
	"github.com/rustyeddy/tradezilla/internal/service"
	"github.com/rustyeddy/tradezilla/internal/store"
	"github.com/rustyeddy/tradezilla/notify"
)

// app is what a journal command needs once config is loaded.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	kv      store.KV
	journal *service.Journal
	loc     *time.Location
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	loc, err := cfg.Profile.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	kv, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	j := service.NewJournal(store.NewRepository(kv, log), log)
	if err := j.Load(ctx); err != nil {
		kv.Close()
		return nil, err
	}
	log.Debug("journal opened", zap.String("driver", cfg.Store.Driver), zap.Int("trades", len(j.Trades())))

	return &app{cfg: cfg, log: log, kv: kv, journal: j, loc: loc}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.log.Warn("close store", zap.Error(err))
	}
	_ = a.log.Sync()
}

func (a *app) now() time.Time {
	return time.Now().In(a.loc)
}

func (a *app) notifyOptions() notify.Options {
	return notify.Options{LossAlert: a.cfg.Notify.LossAlert}
}

func (a *app) coach() (*coach.Coach, error) {
	return coach.New(a.cfg.AI, a.log)
}
