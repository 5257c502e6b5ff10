package browse

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/pkg/constants"
)

type options struct {
	logger      *zerolog.Logger
	pageSize    int
	deferStart  bool
	lowerSearch bool
	onChange    []func(ViewState)
}

func defaults() *options {
	return &options{
		pageSize:    constants.ServerPageSize,
		lowerSearch: true,
	}
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the controller's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPageSize sets the server's nominal page size used for page counts.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithDeferredStart stops New from issuing the first fetch; call Start.
func WithDeferredStart() Option {
	return func(o *options) {
		o.deferStart = true
	}
}

// WithCaseSensitiveSearch keeps the committed search text's case.
// By default it is lower-cased.
func WithCaseSensitiveSearch() Option {
	return func(o *options) {
		o.lowerSearch = false
	}
}

// WithOnChange registers fn before the first fetch so it observes the
// initial Loading transition.
func WithOnChange(fn func(ViewState)) Option {
	return func(o *options) {
		if fn != nil {
			o.onChange = append(o.onChange, fn)
		}
	}
}
