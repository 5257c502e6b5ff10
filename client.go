// Package bookmap is the entry point for browsing a public-domain book
// catalog with a persisted search, genre filter and wishlist.
//
// A Client wires together the remote catalog client, the durable key/value
// store, the query controller and the wishlist:
//
//	bm, err := bookmap.New(ctx, bookmap.WithStoreConfig(kv.Config{
//	    Backend: kv.BackendFile,
//	    Path:    "bookmap.json",
//	}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bm.Close()
//
//	bm.OnViewChange(func(v browse.ViewState) {
//	    fmt.Println(v.Status, len(v.Books))
//	})
//
//	bm.SetSearchTerm("dickens")
//	_ = bm.CommitSearch(ctx)
//	bm.Wait()
//
//	for _, b := range bm.View().Books {
//	    fmt.Println(b.ID, b.Title)
//	}
package bookmap

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/internal/gutendex"
	"github.com/agentstation/bookmap/pkg/browse"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
	"github.com/agentstation/bookmap/pkg/wishlist"
)

// Client browses the catalog and manages the wishlist.
type Client interface {

	// Browser drives the search, genre and page state
	Browser

	// Wishlist manages favorited books
	Wishlist

	// Books looks up single books
	Books

	// Hooks provides access to event callback registration
	Hooks

	// Close stops in-flight fetches and releases the store
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	logger  *zerolog.Logger

	catalog    catalog.Catalog
	store      kv.Store
	ownsStore  bool
	controller *browse.Controller
	wishlist   *wishlist.Store
	hooks      *hooks
}

// New creates a Client. The persisted search term and genre are restored
// from the store and, unless WithDeferredStart is given, the first page is
// requested before New returns.
func New(ctx context.Context, opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		logger:  o.logger,
		hooks:   newHooks(),
	}

	// catalog
	c.catalog = o.catalog
	if c.catalog == nil {
		gopts := []gutendex.Option{gutendex.WithLogger(o.logger)}
		if o.baseURL != "" {
			gopts = append(gopts, gutendex.WithBaseURL(o.baseURL))
		}
		if len(o.transportOpts) > 0 {
			gopts = append(gopts, gutendex.WithTransportOptions(o.transportOpts...))
		}
		c.catalog = gutendex.New(gopts...)
	}

	// store
	c.store = o.store
	if c.store == nil {
		if c.store, err = kv.Open(ctx, o.storeConfig); err != nil {
			return nil, errors.WrapResource("open", "store", string(o.storeConfig.Backend), err)
		}
		c.ownsStore = true
	}

	c.wishlist = wishlist.New(c.store, wishlist.WithLogger(o.logger))

	bopts := []browse.Option{
		browse.WithLogger(o.logger),
		browse.WithOnChange(c.hooks.triggerViewChange),
	}
	if o.pageSize > 0 {
		bopts = append(bopts, browse.WithPageSize(o.pageSize))
	}
	if o.deferStart {
		bopts = append(bopts, browse.WithDeferredStart())
	}
	if o.caseSensitive {
		bopts = append(bopts, browse.WithCaseSensitiveSearch())
	}

	if c.controller, err = browse.New(ctx, c.catalog, c.store, bopts...); err != nil {
		if c.ownsStore {
			_ = c.store.Close()
		}
		return nil, errors.WrapResource("create", "controller", "", err)
	}

	c.logger.Debug().
		Str("store", string(o.storeConfig.Backend)).
		Bool("deferred", o.deferStart).
		Msg("Bookmap client ready")

	return c, nil
}
