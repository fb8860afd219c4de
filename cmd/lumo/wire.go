package main

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/auth"
	"pcsoft.com/lumo/internal/config"
	"pcsoft.com/lumo/internal/core"
	"pcsoft.com/lumo/internal/session"
	"pcsoft.com/lumo/internal/store"
)

// app holds the services shared by every command.
type app struct {
	kv      store.KeyValueStore
	auth    *auth.Service
	chats   *store.ChatStore
	chat    *core.Orchestrator
	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	kv, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}
	a.kv = kv

	tracker := session.NewTracker(kv)
	a.auth = auth.NewService(kv, tracker, auth.ServiceConfig{
		Secret:     cfg.JWTSecret,
		LoginDelay: cfg.LoginDelay,
	})
	a.chats = store.NewChatStore(kv)

	var fallback core.FallbackWriter = core.TemplateFallback{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := core.NewGeminiFallback(ctx, cfg.GeminiAPIKey)
		if err != nil {
			a.Close()
			return nil, errors.WithMessage(err, "couldn't create gemini fallback")
		}
		a.closers = append(a.closers, gemini.Close)
		fallback = gemini
		log.Info("answering uncurated questions with Gemini")
	}

	simulator := core.NewSimulator(core.WithPace(cfg.StreamPace), core.WithFallback(fallback))
	a.chat = core.NewOrchestrator(a.chats, a.auth, simulator)
	if a.auth.CurrentUser() != nil {
		a.chat.Load()
	}
	return a, nil
}

func (a *app) openStore(cfg *config.Config) (store.KeyValueStore, error) {
	logger := log.WithField("storage", cfg.Storage)
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Info("using in-memory storage, nothing will persist")
		return store.NewMemoryStore(), nil
	case config.StorageSQLite:
		s, err := store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't open sqlite store %s", cfg.DatabaseURL)
		}
		a.closers = append(a.closers, func() { closeQuietly("sqlite", s.Close) })
		logger.WithField("dsn", cfg.DatabaseURL).Info("using sqlite storage")
		return s, nil
	case config.StorageRedis:
		s, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't connect to redis")
		}
		a.closers = append(a.closers, func() { closeQuietly("redis", s.Close) })
		logger.Info("using redis storage")
		return s, nil
	}
	return nil, errors.Errorf("unknown storage backend %q", cfg.Storage)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// requireUser returns the signed-in user, or an error asking to sign in.
func (a *app) requireUser() (*store.User, error) {
	user := a.auth.CurrentUser()
	if user == nil {
		return nil, errors.New("not signed in, pass --email and --password")
	}
	return user, nil
}

func closeQuietly(name string, fn func() error) {
	if err := fn(); err != nil {
		log.WithError(err).WithField("storage", name).Warn("error closing storage")
	}
}
