// Package appcontext provides the shared application context interface
// used by all commands, so commands depend on an interface rather than
// the concrete App.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap"
)

// Interface defines what commands need from the application.
// The App struct from cmd/bookmap/app implements it.
type Interface interface {
	// Bookmap returns the shared client, creating it lazily on first use.
	Bookmap() (bookmap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
