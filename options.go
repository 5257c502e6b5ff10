package bookmap

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/internal/transport"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
	"github.com/agentstation/bookmap/pkg/logging"
)

// options holds the configuration for a Client.
type options struct {
	baseURL       string
	transportOpts []transport.Option
	catalog       catalog.Catalog
	store         kv.Store
	storeConfig   kv.Config
	logger        *zerolog.Logger
	pageSize      int
	deferStart    bool
	caseSensitive bool
}

func defaults() *options {
	return &options{
		storeConfig: kv.Config{Backend: kv.BackendMemory},
		logger:      logging.Default(),
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithBaseURL points the remote catalog client at another Gutendex
// deployment.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return &errors.ValidationError{
				Field:   "baseURL",
				Message: "cannot be empty",
			}
		}
		o.baseURL = url
		return nil
	}
}

// WithHTTPTimeout bounds each request to the remote catalog.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return &errors.ValidationError{
				Field:   "httpTimeout",
				Value:   d,
				Message: "must be positive",
			}
		}
		o.transportOpts = append(o.transportOpts, transport.WithTimeout(d))
		return nil
	}
}

// WithRateLimit spaces requests to the remote catalog to perSecond with the
// given burst. A zero limit disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) error {
		if perSecond < 0 || burst < 0 {
			return &errors.ValidationError{
				Field:   "rateLimit",
				Value:   perSecond,
				Message: "cannot be negative",
			}
		}
		o.transportOpts = append(o.transportOpts, transport.WithRateLimit(perSecond, burst))
		return nil
	}
}

// WithUserAgent sets the User-Agent sent to the remote catalog.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		if ua == "" {
			return &errors.ValidationError{
				Field:   "userAgent",
				Message: "cannot be empty",
			}
		}
		o.transportOpts = append(o.transportOpts, transport.WithUserAgent(ua))
		return nil
	}
}

// WithHTTPClient sends catalog requests through hc's transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return &errors.ValidationError{
				Field:   "httpClient",
				Message: "cannot be nil",
			}
		}
		o.transportOpts = append(o.transportOpts, transport.WithHTTPClient(hc))
		return nil
	}
}

// WithCatalog replaces the remote catalog client, typically with a
// catalog.Memory in tests.
func WithCatalog(cat catalog.Catalog) Option {
	return func(o *options) error {
		if cat == nil {
			return &errors.ValidationError{
				Field:   "catalog",
				Message: "cannot be nil",
			}
		}
		o.catalog = cat
		return nil
	}
}

// WithStore uses an existing store. The Client does not close it.
func WithStore(store kv.Store) Option {
	return func(o *options) error {
		if store == nil {
			return &errors.ValidationError{
				Field:   "store",
				Message: "cannot be nil",
			}
		}
		o.store = store
		return nil
	}
}

// WithStoreConfig opens the store described by cfg. The Client closes it.
func WithStoreConfig(cfg kv.Config) Option {
	return func(o *options) error {
		o.storeConfig = cfg
		return nil
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithPageSize overrides the nominal server page size used when the
// observed page length cannot be used.
func WithPageSize(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "pageSize",
				Value:   n,
				Message: "must be positive",
			}
		}
		o.pageSize = n
		return nil
	}
}

// WithDeferredStart stops New from requesting the first page.
// The first action or Refresh starts browsing.
func WithDeferredStart() Option {
	return func(o *options) error {
		o.deferStart = true
		return nil
	}
}

// WithCaseSensitiveSearch keeps the committed search term's case.
func WithCaseSensitiveSearch() Option {
	return func(o *options) error {
		o.caseSensitive = true
		return nil
	}
}
