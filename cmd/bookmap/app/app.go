// Package app provides the application context and dependency management
// for the bookmap CLI. It centralizes configuration, logging and the
// lazily created bookmap client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/internal/appcontext"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/logging"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the bookmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Extra client options, mainly for tests
	clientOpts []bookmap.Option

	// Bookmap client (lazy-initialized, singleton)
	mu      sync.RWMutex
	bookmap bookmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
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

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Bookmap returns the client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
// The client never fetches on construction; commands decide what to load.
func (a *App) Bookmap() (bookmap.Client, error) {
	a.mu.RLock()
	if a.bookmap != nil {
		bm := a.bookmap
		a.mu.RUnlock()
		return bm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.bookmap != nil {
		return a.bookmap, nil
	}

	ctx := logging.WithLogger(context.Background(), a.logger)
	bm, err := bookmap.New(ctx, a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "bookmap", "", err)
	}

	a.bookmap = bm
	return bm, nil
}

// Shutdown stops in-flight fetches and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	bm := a.bookmap
	a.bookmap = nil
	a.mu.Unlock()

	if bm == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- bm.Close() }()

	select {
	case err := <-done:
		if err != nil {
			a.logger.Error().Err(err).Msg("Failed to close bookmap client during shutdown")
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []bookmap.Option {
	opts := []bookmap.Option{
		bookmap.WithLogger(a.logger),
		bookmap.WithDeferredStart(),
		bookmap.WithStoreConfig(a.config.StoreConfig()),
		bookmap.WithUserAgent("bookmap/"+a.version),
		bookmap.WithRateLimit(a.config.RateLimit, a.config.RateBurst),
	}

	if a.config.BaseURL != "" {
		opts = append(opts, bookmap.WithBaseURL(a.config.BaseURL))
	}
	if a.config.HTTPTimeout > 0 {
		opts = append(opts, bookmap.WithHTTPTimeout(a.config.HTTPTimeout))
	}

	return append(opts, a.clientOpts...)
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

// WithBookmap sets a custom client (useful for testing).
func WithBookmap(bm bookmap.Client) Option {
	return func(a *App) error {
		a.bookmap = bm
		return nil
	}
}

// WithClientOptions appends options used when the client is created.
func WithClientOptions(opts ...bookmap.Option) Option {
	return func(a *App) error {
		a.clientOpts = append(a.clientOpts, opts...)
		return nil
	}
}
