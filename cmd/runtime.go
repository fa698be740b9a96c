package cmd

import (
	"fmt"
	"log/slog"

	"github.com/anmolrajas/portfolio/internal/app"
	"github.com/anmolrajas/portfolio/internal/chat"
	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/content"
	"github.com/anmolrajas/portfolio/internal/logger"
	"github.com/anmolrajas/portfolio/internal/storage"
	"github.com/anmolrajas/portfolio/internal/theme"
)

// runtime owns the collaborators built from the config
type runtime struct {
	cfg        *config.Config
	portfolio  *content.Portfolio
	store      storage.KV
	outbox     *storage.SQLite // Set when submissions are queued locally
	ownsOutbox bool            // The outbox is a private in-memory database
	responder  chat.Responder
	dispatcher contact.Dispatcher

	log *slog.Logger
}

// newRuntime opens storage and builds the chat responder and contact
// transport named by cfg
func newRuntime(cfg *config.Config) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: logger.WithComponent("cmd")}

	rt.portfolio = content.Default()
	if cfg.Content != "" {
		p, err := content.Load(cfg.Content)
		if err != nil {
			return nil, fmt.Errorf("error loading portfolio: %w", err)
		}
		rt.portfolio = p
	}
	if cfg.Contact.OwnerEmail != "" {
		rt.portfolio.Owner.Email = cfg.Contact.OwnerEmail
	}

	rt.store = storage.OpenOrMemory(cfg.Storage.Backend, cfg.Storage.Path)

	if cfg.Chat.Responder == config.ResponderOpenAI {
		rt.responder = chat.NewOpenAI(chat.OpenAIOptions{
			APIKey:       cfg.Chat.APIKey,
			BaseURL:      cfg.Chat.BaseURL,
			Model:        cfg.Chat.Model,
			SystemPrompt: cfg.Chat.SystemPrompt,
		})
	}

	switch cfg.Contact.Transport {
	case config.TransportHTTP:
		rt.dispatcher = contact.NewHTTPDispatcher(cfg.Contact.Endpoint, cfg.Contact.Timeout)
	default:
		outbox, err := rt.openOutbox()
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.dispatcher = contact.OutboxDispatcher{Store: outbox}
	}

	rt.log.Info("runtime ready",
		"storage", cfg.Storage.Backend,
		"responder", cfg.Chat.Responder,
		"transport", cfg.Contact.Transport,
	)
	return rt, nil
}

// openOutbox reuses the SQLite preference store. Other backends get a
// private in-memory database, so queued messages last only for this run.
func (rt *runtime) openOutbox() (*storage.SQLite, error) {
	if db, ok := rt.store.(*storage.SQLite); ok {
		rt.outbox = db
		return db, nil
	}
	db, err := storage.OpenSQLiteMemory()
	if err != nil {
		return nil, fmt.Errorf("error opening outbox: %w", err)
	}
	rt.log.Warn("outbox is not persistent with this storage backend", "backend", rt.cfg.Storage.Backend)
	rt.outbox = db
	rt.ownsOutbox = true
	return db, nil
}

// Options returns the app options for this runtime
func (rt *runtime) Options() app.Options {
	return app.Options{
		Config:     rt.cfg,
		Portfolio:  rt.portfolio,
		Theme:      theme.NewStore(rt.store),
		Responder:  rt.responder,
		Dispatcher: rt.dispatcher,
	}
}

// Close releases storage
func (rt *runtime) Close() {
	if rt.ownsOutbox && rt.outbox != nil {
		if err := rt.outbox.Close(); err != nil {
			rt.log.Warn("failed to close outbox", "error", err)
		}
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("failed to close storage", "error", err)
		}
	}
}
