package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/clients/sheetsclient"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/services"
	"github.com/kmdeguzman/worship-scheduler/pkg/postgres"
	"github.com/kmdeguzman/worship-scheduler/pkg/roster"
)

// AppContext holds the application dependencies shared across all commands.
// The sheets client and archive database are built on first use, so a
// file-roster run never triggers the OAuth flow and a run without an archive
// never dials Postgres.
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Env    string

	sheetsClient *sheetsclient.Client
	database     *postgres.DB
}

// RosterSource returns the loader for the configured roster source.
func (a *AppContext) RosterSource() (services.RosterSource, error) {
	if a.Cfg.Source == config.SourceSheets {
		client, err := a.sheets()
		if err != nil {
			return nil, err
		}
		return sheetsSource{client: client, cfg: a.Cfg}, nil
	}
	return fileSource{path: a.Cfg.RosterPath}, nil
}

// Archive returns the store for saving runs, or nil when no postgresUrl is
// configured.
func (a *AppContext) Archive() (services.ArchiveStore, error) {
	db, err := a.Database()
	if err != nil || db == nil {
		return nil, err
	}
	return db, nil
}

// History returns the store for reading archived runs, or nil when no
// postgresUrl is configured.
func (a *AppContext) History() (services.RunHistoryStore, error) {
	db, err := a.Database()
	if err != nil || db == nil {
		return nil, err
	}
	return db, nil
}

// Database connects to the archive database on first use and applies any
// pending migrations.
func (a *AppContext) Database() (*postgres.DB, error) {
	if a.database != nil {
		return a.database, nil
	}
	if a.Cfg.PostgresURL == "" {
		return nil, nil
	}

	a.Logger.Info("Connecting to archive database")
	db, err := postgres.NewDB(a.Ctx, a.Cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(a.Ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.Logger.Debug("Archive database ready")

	a.database = db
	return db, nil
}

// Close releases the database pool if one was opened.
func (a *AppContext) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

// sheets builds the sheets client once, running the OAuth flow if no cached
// token is usable.
func (a *AppContext) sheets() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.Logger.Debug("Sheets client initialized successfully")

	a.sheetsClient = client
	return client, nil
}

// fileSource adapts the JSON roster loader to the services interface.
type fileSource struct {
	path string
}

func (s fileSource) LoadRoster() (*roster.Roster, error) {
	return roster.LoadRoster(s.path)
}

// sheetsSource adapts the sheets client to the services interface.
type sheetsSource struct {
	client *sheetsclient.Client
	cfg    *config.Config
}

func (s sheetsSource) LoadRoster() (*roster.Roster, error) {
	return s.client.ListRoster(s.cfg)
}
