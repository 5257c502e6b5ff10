// Package browse implements the catalog query controller: the state machine
// that owns the search term, genre and page, issues catalog fetches and
// publishes the resulting view.
//
// Every fetch is tagged with the query that produced it and a sequence
// number. A response is applied only if both still match the controller's
// latest request, so a slow early response can never overwrite the result
// of a later one. In-flight fetches are never cancelled or queued; a new
// action simply starts another fetch.
package browse

import (
	"context"
	"strings"
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/genres"
	"github.com/agentstation/bookmap/pkg/kv"
	"github.com/agentstation/bookmap/pkg/logging"
	"github.com/agentstation/bookmap/pkg/pagination"
)

// Controller coordinates query state with the remote catalog.
// All methods are safe for concurrent use and none of them block on the
// network.
type Controller struct {
	catalog  catalog.Reader
	store    kv.Store
	logger   *zerolog.Logger
	pageSize int
	lower    bool

	// ctx is the base context of every fetch. Only Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	query      catalog.Query
	draft      string
	status     Status
	items      []books.Book
	genres     []genres.Entry
	count      int
	totalPages int
	known      bool // totalPages came from a successful load
	err        error
	loadedAt   utc.Time
	seq        uint64
	version    uint64
	started    bool
	closed     bool

	// want is the page asked for before a page-1 fetch (wantSeq) that
	// learns the totals of a search and genre.
	want    int
	wantSeq uint64

	hooksMu   sync.RWMutex
	hooks     []func(ViewState)
	deliverMu sync.Mutex
	delivered uint64
}

// New creates a controller reading from cat and persisting to store.
// The search term and genre are restored from store; the page always
// starts at 1. Unless WithDeferredStart is given, the first fetch starts
// before New returns.
func New(ctx context.Context, cat catalog.Reader, store kv.Store, opts ...Option) (*Controller, error) {
	if cat == nil {
		return nil, errors.NewValidationError("catalog", nil, "catalog is required")
	}
	if store == nil {
		return nil, errors.NewValidationError("store", nil, "store is required")
	}

	o := defaults()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.FromContext(ctx)
	}

	search, _, err := store.Get(ctx, constants.KeySearch)
	if err != nil {
		return nil, errors.WrapResource("load", "search", constants.KeySearch, err)
	}
	genre, _, err := store.Get(ctx, constants.KeyGenre)
	if err != nil {
		return nil, errors.WrapResource("load", "genre", constants.KeyGenre, err)
	}

	base, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := &Controller{
		catalog:    cat,
		store:      store,
		logger:     o.logger,
		pageSize:   o.pageSize,
		lower:      o.lowerSearch,
		ctx:        base,
		cancel:     cancel,
		query:      catalog.Query{SearchTerm: search, Genre: genre, Page: 1},
		draft:      search,
		totalPages: 1,
		hooks:      append([]func(ViewState){}, o.onChange...),
	}

	c.logger.Debug().
		Str("search", search).
		Str("genre", genre).
		Msg("Restored browse state")

	if !o.deferStart {
		c.Start()
	}
	return c, nil
}

// Start issues the first fetch. It is a no-op after the first call.
func (c *Controller) Start() {
	if !c.lockOpen() {
		return
	}
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()
	c.publish(view)
	fetch()
}

// OnChange registers fn to receive a snapshot after every visible state
// change. Callbacks run outside the controller lock, in order, and must not
// call back into the controller synchronously.
func (c *Controller) OnChange(fn func(ViewState)) {
	if fn == nil {
		return
	}
	c.hooksMu.Lock()
	c.hooks = append(c.hooks, fn)
	c.hooksMu.Unlock()
}

// View returns a snapshot of the current state.
func (c *Controller) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Query returns the current query.
func (c *Controller) Query() catalog.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetSearchTerm updates the search text being typed. It does not fetch.
func (c *Controller) SetSearchTerm(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

// CommitSearch makes the typed search text the query's search term,
// resets to page 1, persists it and fetches. The fetch is issued even if
// persisting fails; the storage error is returned.
func (c *Controller) CommitSearch(ctx context.Context) error {
	if !c.lockOpen() {
		return nil
	}
	term := c.normalizeSearch(c.draft)
	c.draft = term
	c.query.SearchTerm = term
	c.query.Page = 1
	c.forgetTotalsLocked()
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()

	c.publish(view)
	fetch()
	return c.persist(ctx, constants.KeySearch, term)
}

// SetGenre selects a genre by its normalized key (empty for all), resets
// to page 1, persists it and fetches.
func (c *Controller) SetGenre(ctx context.Context, normalized string) error {
	if !c.lockOpen() {
		return nil
	}
	c.query.Genre = normalized
	c.query.Page = 1
	c.forgetTotalsLocked()
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()

	c.publish(view)
	fetch()
	return c.persist(ctx, constants.KeyGenre, normalized)
}

// Navigate replaces the whole query at once, persists the search term and
// genre and issues a single fetch. The search term is normalised as in
// CommitSearch. If search and genre are unchanged the page is clamped to the
// known range; otherwise only pages below 1 are corrected before the fetch
// and the page is clamped once the new totals arrive.
func (c *Controller) Navigate(ctx context.Context, q catalog.Query) error {
	if !c.lockOpen() {
		return nil
	}
	term := c.normalizeSearch(q.SearchTerm)
	page := max(q.Page, 1)
	if term != c.query.SearchTerm || q.Genre != c.query.Genre {
		c.forgetTotalsLocked()
	} else if c.known {
		page = pagination.Clamp(page, c.totalPages)
	}
	c.draft = term
	c.query = catalog.Query{SearchTerm: term, Genre: q.Genre, Page: page}
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()

	c.publish(view)
	fetch()
	return errors.Join(
		c.persist(ctx, constants.KeySearch, term),
		c.persist(ctx, constants.KeyGenre, q.Genre),
	)
}

// GoToPage moves to page n, clamped to the known page range, and fetches
// it. Search and genre are unchanged. It returns the page requested.
// While the totals of the current search and genre are still unknown only
// the lower bound applies; the page is clamped when they arrive.
func (c *Controller) GoToPage(n int) int {
	if !c.lockOpen() {
		return c.Query().Page
	}
	if c.known {
		n = pagination.Clamp(n, c.totalPages)
	} else {
		n = max(n, 1)
	}
	c.query.Page = n
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()

	c.publish(view)
	fetch()
	return n
}

// NextPage moves one page forward if there is one.
func (c *Controller) NextPage() int {
	return c.GoToPage(c.Query().Page + 1)
}

// PrevPage moves one page back if there is one.
func (c *Controller) PrevPage() int {
	return c.GoToPage(c.Query().Page - 1)
}

// Refresh re-issues the current query, e.g. to retry after a failure.
func (c *Controller) Refresh() {
	if !c.lockOpen() {
		return
	}
	c.started = true
	view, fetch := c.beginLocked()
	c.mu.Unlock()
	c.publish(view)
	fetch()
}

// Wait blocks until every fetch issued so far has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to finish. Actions
// issued after Close do nothing.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
	return nil
}

// beginLocked moves to Loading and prepares a fetch for the current query.
// Callers hold c.mu, publish the returned view after unlocking and then
// call fetch, so observers always see Loading before its outcome.
func (c *Controller) beginLocked() (view ViewState, fetch func()) {
	c.seq++
	seq, q := c.seq, c.query

	c.status = StatusLoading
	c.items = nil
	c.err = nil

	c.logger.Debug().
		Uint64("seq", seq).
		Str("search", q.SearchTerm).
		Str("genre", q.Genre).
		Int("page", q.Page).
		Msg("Fetching catalog page")

	c.wg.Add(1)
	fetch = func() {
		go func() {
			defer c.wg.Done()
			res, err := c.catalog.FetchPage(c.ctx, q)
			c.resolve(seq, q, res, err)
		}()
	}

	return c.snapshotLocked(), fetch
}

// resolve applies a completed fetch if it is still the latest request.
func (c *Controller) resolve(seq uint64, q catalog.Query, res catalog.PageResult, err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq || q != c.query {
		c.mu.Unlock()
		c.logger.Trace().
			Uint64("seq", seq).
			Int("page", q.Page).
			Msg("Discarded stale catalog response")
		return
	}

	if err != nil {
		if q.Page > 1 && !c.known && errors.IsNotFound(err) {
			c.logger.Debug().
				Int("page", q.Page).
				Msg("Page past the end, fetching page 1 for totals")
			c.want, c.wantSeq = q.Page, c.seq+1
			c.refetchLocked(1)
			return
		}
		c.status = StatusFailed
		c.err = err
		c.items = nil
		c.logger.Debug().Err(err).Uint64("seq", seq).Msg("Catalog fetch failed")
	} else {
		c.count = res.Count
		c.totalPages = pagination.TotalPages(res.Count, len(res.Items), c.pageSize)
		c.known = true

		target := q.Page
		if c.want > 0 && seq == c.wantSeq {
			target = pagination.Clamp(c.want, c.totalPages)
			c.want = 0
		} else if q.Page > c.totalPages {
			target = c.totalPages
		}
		if target != q.Page {
			c.logger.Debug().
				Int("page", target).
				Int("total_pages", c.totalPages).
				Msg("Moving to last page in range")
			c.refetchLocked(target)
			return
		}

		c.status = StatusLoaded
		c.items = books.CloneAll(res.Items)
		if c.items == nil {
			c.items = []books.Book{}
		}
		c.genres = genres.Derive(res.Items)
		c.loadedAt = utc.Now()
		c.logger.Debug().
			Uint64("seq", seq).
			Int("count", res.Count).
			Int("total_pages", c.totalPages).
			Msg("Catalog page loaded")
	}
	view := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(view)
}

// refetchLocked moves the query to page and fetches it. It is called with
// c.mu held from resolve and releases it.
func (c *Controller) refetchLocked(page int) {
	c.query.Page = page
	view, fetch := c.beginLocked()
	c.mu.Unlock()
	c.publish(view)
	fetch()
}

// lockOpen acquires c.mu and reports whether the controller is still open.
// The lock is released again when it returns false.
func (c *Controller) lockOpen() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	return true
}

// forgetTotalsLocked drops the page count of the previous search and genre.
func (c *Controller) forgetTotalsLocked() {
	c.known = false
	c.totalPages = 1
	c.count = 0
}

func (c *Controller) snapshotLocked() ViewState {
	c.version++
	v := ViewState{
		Status:      c.status,
		Books:       books.CloneAll(c.items),
		Genres:      append([]genres.Entry{}, c.genres...),
		SearchTerm:  c.query.SearchTerm,
		DraftSearch: c.draft,
		Genre:       c.query.Genre,
		CurrentPage: c.query.Page,
		TotalPages:  c.totalPages,
		Count:       c.count,
		Err:         c.err,
		LoadedAt:    c.loadedAt,
		version:     c.version,
	}
	if v.Books == nil {
		v.Books = []books.Book{}
	}
	if c.err != nil {
		v.ErrorMessage = c.err.Error()
	}
	return v
}

// publish delivers view to the hooks unless a newer snapshot was already
// delivered.
func (c *Controller) publish(view ViewState) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	if view.version <= c.delivered {
		return
	}
	c.delivered = view.version

	c.hooksMu.RLock()
	hooks := append([]func(ViewState){}, c.hooks...)
	c.hooksMu.RUnlock()

	for _, fn := range hooks {
		fn(view)
	}
}

func (c *Controller) normalizeSearch(text string) string {
	text = strings.TrimSpace(text)
	if c.lower {
		text = strings.ToLower(text)
	}
	return text
}

func (c *Controller) persist(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, key, value); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to persist browse state")
		return errors.WrapResource("save", key, "", err)
	}
	return nil
}
