// Package app provides the application context and dependency wiring
// for the ratesync CLI. It centralizes configuration loading, logger
// construction, and the shared content client so every command runs
// against the same dependencies.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/openbenefits/ratesync/internal/content"
)

// App represents the ratesync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Content client (lazy-initialized, singleton)
	mu     sync.Mutex
	client *content.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the shared content client, creating it on first use
// from the configured API base URL and timeout.
func (a *App) Client() *content.Client {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client == nil {
		a.client = content.NewClient(
			content.WithBaseURL(a.config.ContentAPIURL),
			content.WithTimeout(a.config.FetchTimeout),
		)
	}
	return a.client
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom content client (useful for testing).
func WithClient(client *content.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
