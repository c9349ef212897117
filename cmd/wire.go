package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	configtoml "github.com/bnema/alignment-console/internal/adapters/config/toml"
	"github.com/bnema/alignment-console/internal/adapters/diag"
	"github.com/bnema/alignment-console/internal/adapters/eventloop"
	"github.com/bnema/alignment-console/internal/adapters/ids"
	"github.com/bnema/alignment-console/internal/adapters/mothership"
	"github.com/bnema/alignment-console/internal/application"
	"github.com/bnema/alignment-console/internal/ports"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configPath string
	baseURL    string
	verbose    bool
}

type app struct {
	store     *configtoml.Store
	config    configtoml.Config
	client    mothership.Client
	logger    *slog.Logger
	logCloser io.Closer
	ids       ports.IDGenerator
	clock     ports.Clock
}

func wireApp(opts *rootOptions) (*app, error) {
	cfg := viper.New()
	store, err := configtoml.NewStore(cfg, opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("wire config store: %w", err)
	}
	if opts.baseURL != "" {
		cfg.Set(configtoml.BaseURLKey, opts.baseURL)
	}

	config, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := diag.Open(diag.Options{
		Path:    config.Diagnostics.Path,
		Level:   config.Diagnostics.Level,
		Verbose: opts.verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("wire diagnostics: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		store:  store,
		config: config,
		client: mothership.Client{
			API:            mothership.DefaultAPI(config.BaseURL),
			HTTPClient:     http.DefaultClient,
			RequestTimeout: config.RequestTimeout,
		},
		logger:    logger,
		logCloser: closer,
		ids:       ids.NewULIDGenerator(clock),
		clock:     clock,
	}, nil
}

func (a *app) Close() error {
	return a.logCloser.Close()
}

func (a *app) settings() application.Settings {
	settings := application.DefaultSettings()
	settings.PollInterval = a.config.PollInterval
	settings.TypewriterDelay = a.config.TypewriterDelay
	return settings
}

// newSession wires a session onto a fresh production loop.
func (a *app) newSession() (*application.Session, *eventloop.Loop, error) {
	loop := eventloop.New()
	seed := uint64(time.Now().UnixNano())

	session, err := application.NewSession(application.SessionDeps{
		Scheduler: loop,
		Client:    a.client,
		Clock:     a.clock,
		IDs:       a.ids,
		Rand:      rand.New(rand.NewPCG(seed, seed>>1)),
		Logger:    a.logger,
		Settings:  a.settings(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wire session: %w", err)
	}
	return session, loop, nil
}
