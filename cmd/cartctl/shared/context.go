// Package shared holds the context passed to all cartctl commands and the
// plumbing they have in common.
package shared

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/internal/orders"
	"github.com/angelmondragon/foodcart/internal/storage"
	"github.com/angelmondragon/foodcart/internal/store"
	"github.com/angelmondragon/foodcart/pkg/config"
	"github.com/angelmondragon/foodcart/pkg/env"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

// EnvSession names the session used when --session is not given.
const EnvSession = "FOODCART_SESSION"

// DefaultSession is the session of a bare cartctl invocation.
const DefaultSession = "cli"

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Session selects the page session whose records are read and written.
	Session string
	// MenuPath overrides FOODCART_MENU_PATH.
	MenuPath string

	// Backend, when set, is used instead of the configured storage driver.
	Backend storage.Backend
}

// SessionOrDefault resolves --session, then FOODCART_SESSION, then "cli".
func (c *Context) SessionOrDefault() string {
	if c.Session != "" {
		return c.Session
	}
	return env.Get(EnvSession, DefaultSession)
}

// Env is an opened session ready for one command.
type Env struct {
	Config  *config.Config
	Logger  *logger.Logger
	Session *store.Session

	backend storage.Backend
	owned   bool
}

// Open loads configuration, connects the backend and loads the session.
func (c *Context) Open(ctx context.Context) (*Env, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logg := logger.New(logger.Options{
		ServiceName: "cartctl",
		Level:       logger.ParseLevel(env.Get("FOODCART_CLI_LOG_LEVEL", "warn")),
		Output:      os.Stderr,
	})

	backend, owned := c.Backend, false
	if backend == nil {
		switched, err := cfg.PreferPersistentStorage()
		if err != nil {
			return nil, err
		}
		if switched {
			logg.Info(logg.WithField(ctx, "dsn", cfg.DB.DSN), "memory storage does not outlive cartctl; using sqlite")
		}
		backend, err = storage.Open(ctx, cfg, logg)
		if err != nil {
			return nil, err
		}
		owned = true
	}

	ids, err := orders.NewIDGenerator(cfg.Orders.IDFormat)
	if err != nil {
		closeOwned(backend, owned)
		return nil, err
	}
	registry, err := store.NewRegistry(store.RegistryParams{
		Backend: backend,
		Orders: orders.NewBuilder(orders.BuilderParams{
			IDs:        ids,
			Location:   cfg.Orders.Location(),
			DateLayout: cfg.Orders.DateLayout,
		}),
		NoticeTTL: cfg.Notice.TTL,
		Logger:    logg,
	})
	if err != nil {
		closeOwned(backend, owned)
		return nil, err
	}

	sess, err := registry.Open(ctx, c.SessionOrDefault())
	if err != nil {
		closeOwned(backend, owned)
		return nil, fmt.Errorf("open session %q: %w", c.SessionOrDefault(), err)
	}
	return &Env{Config: cfg, Logger: logg, Session: sess, backend: backend, owned: owned}, nil
}

// Close releases the backend when Open connected it.
func (e *Env) Close() error {
	if !e.owned {
		return nil
	}
	return e.backend.Close()
}

// Store is shorthand for the session's store.
func (e *Env) Store() *store.Store {
	return e.Session.Store
}

// LoadMenu reads the menu from --menu or the configured path.
func (c *Context) LoadMenu() (catalog.Menu, error) {
	path := c.MenuPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return catalog.Menu{}, err
		}
		path = cfg.Catalog.MenuPath
	}
	return catalog.LoadMenu(path)
}

func closeOwned(backend storage.Backend, owned bool) {
	if owned {
		_ = backend.Close()
	}
}
