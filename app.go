package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gigurra/subtrack/internal"
	"github.com/gigurra/subtrack/internal/localstore"
	"github.com/gigurra/subtrack/internal/pgstore"
)

// stdout is where command output goes; tests replace it
var stdout io.Writer = os.Stdout

// GlobalParams are shared by every subcommand
type GlobalParams struct {
	Config   string `descr:"Path to config file (default ~/.subtrack/config.yaml)" optional:"true"`
	DataDir  string `descr:"Directory for local data and the session file" optional:"true"`
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	LogLevel string `descr:"Log level (debug, info, warn, error)" optional:"true"`
}

// App wires config, logging, session and persistence for one command invocation
type App struct {
	cfg      *internal.Config
	log      *zap.Logger
	output   string
	sessions *internal.SessionManager
	blobs    *localstore.FileBlobStore
	prefs    *internal.Preferences
	store    *internal.Store
	pool     *pgxpool.Pool
}

func openApp(ctx context.Context, g GlobalParams) (*App, error) {
	configPath := g.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if g.DataDir != "" {
		cfg.DataDir = g.DataDir
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	log, err := internal.NewLogger(cfg.GetLogLevel())
	if err != nil {
		return nil, err
	}

	dataDir := cfg.GetDataDir()
	sessions, err := internal.NewSessionManager(dataDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		output:   g.Output,
		sessions: sessions,
		blobs:    localstore.NewFileBlobStore(dataDir),
	}
	a.prefs = internal.NewPreferences(a.blobs)
	a.store = internal.NewStore(a.selectBackend, internal.WithLogger(log))
	sessions.OnChange(a.store.SessionChanged)

	if err := a.store.Open(ctx, sessions.Current()); err != nil {
		return nil, err
	}
	log.Debug("app opened",
		zap.String("data_dir", dataDir),
		zap.String("backend", a.store.BackendName()),
		zap.Stringer("state", a.store.State()))
	return a, nil
}

// selectBackend picks the local backend for anonymous use and postgres for a
// signed-in user. Signed in without a database url there is no backend.
func (a *App) selectBackend(ctx context.Context, s *internal.Session) (internal.Backend, error) {
	if s == nil {
		return localstore.NewBackend(a.blobs), nil
	}
	url := a.cfg.GetDatabaseURL()
	if url == "" {
		a.log.Warn("signed in but no database_url configured", zap.String("email", s.Email))
		return nil, nil
	}
	pool, err := a.connect(ctx, url)
	if err != nil {
		return nil, err
	}
	return pgstore.NewBackend(pool, s.ID), nil
}

func (a *App) connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}
	pool, err := pgstore.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pgstore.Migrate(ctx, pool, a.log); err != nil {
		pool.Close()
		return nil, err
	}
	a.pool = pool
	return pool, nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.log.Sync()
}

// requireBackend fails commands that need to read or write subscriptions
func (a *App) requireBackend() error {
	if a.store.State() == internal.StateEmpty {
		return fmt.Errorf("%w: sign out or set database_url in %s", internal.ErrNoBackend, internal.DefaultConfigPath())
	}
	return nil
}

func (a *App) displayCurrency() internal.Currency {
	code, err := a.prefs.DisplayCurrency(a.cfg.GetDisplayCurrency())
	if err != nil {
		a.log.Warn("reading display currency failed", zap.Error(err))
		code = a.cfg.GetDisplayCurrency()
	}
	return internal.GetCurrency(code)
}

func (a *App) jsonOutput() bool {
	return a.output == "json"
}

// withApp opens the app for the duration of run
func withApp(g GlobalParams, run func(ctx context.Context, a *App) error) error {
	ctx := context.Background()
	a, err := openApp(ctx, g)
	if err != nil {
		return err
	}
	defer a.Close()
	return run(ctx, a)
}
