// Package cmd implements the sportbook subcommands. Each command builds
// the application container once, resolves the current identity and
// talks to the backend through the service layer.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/booking"
	"github.com/sportbook-io/sportbook-cli/internal/catalog"
	"github.com/sportbook-io/sportbook-cli/internal/company"
	"github.com/sportbook-io/sportbook-cli/internal/config"
	"github.com/sportbook-io/sportbook-cli/internal/identity"
	"github.com/sportbook-io/sportbook-cli/internal/logging"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/rewards"
	"github.com/sportbook-io/sportbook-cli/internal/store"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Verbose mirrors the root --verbose flag.
var Verbose bool

// App holds the wired services for one command invocation.
type App struct {
	Config       config.Config
	Log          *zap.Logger
	API          *api.Client
	Reservations *store.ReservationStore
	Identity     *identity.Service
	Catalog      *catalog.Service
	Booking      *booking.Service
	Rewards      *rewards.Service
	Company      *company.Service
}

// newApp builds the container: config, logger, backend client, local
// state and the services on top of them.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logging.New(cfg.LogFile(), Verbose)

	client := api.New(cfg.APIBaseURL, log, api.WithTimeout(cfg.Timeout()))

	kv, err := store.OpenFileKV(cfg.StateFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}

	reservations := store.NewReservationStore(kv, client, log)

	return &App{
		Config:       cfg,
		Log:          log,
		API:          client,
		Reservations: reservations,
		Identity:     identity.New(kv, client, reservations, log),
		Catalog:      catalog.New(client, log),
		Booking:      booking.New(client, reservations, log),
		Rewards:      rewards.New(client, log),
		Company:      company.New(client, log),
	}, nil
}

// Close flushes the diagnostic log.
func (a *App) Close() {
	_ = a.Log.Sync()
}

// Viewer resolves the current identity, failing the command when the
// local state is unreadable.
func (a *App) Viewer() (model.User, error) {
	viewer, err := a.Identity.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return viewer, nil
}

// RequireLogin resolves the identity and rejects anonymous viewers.
func (a *App) RequireLogin() (model.Authenticated, error) {
	viewer, err := a.Viewer()
	if err != nil {
		return model.Authenticated{}, err
	}
	authed, ok := viewer.(model.Authenticated)
	if !ok {
		return model.Authenticated{}, fmt.Errorf("you must be logged in; run: sportbook login")
	}
	return authed, nil
}

func commandContext() context.Context {
	return context.Background()
}

// writeStructured renders v as JSON or YAML on stdout.
func writeStructured(format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s (want table, json or yaml)", format)
	}
}
