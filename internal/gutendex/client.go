// Package gutendex implements catalog.Catalog against the Gutendex API
// (https://gutendex.com), a JSON view of Project Gutenberg.
package gutendex

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/internal/transport"
	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/logging"
)

// Client talks to a Gutendex server. It is safe for concurrent use.
type Client struct {
	http   *transport.Client
	logger *zerolog.Logger
}

var _ catalog.Catalog = (*Client)(nil)

// options collects the settings applied by Option.
type options struct {
	baseURL   string
	transport []transport.Option
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another Gutendex deployment.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithLogger sets the logger for request and decode logs.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransportOptions passes options through to the HTTP layer.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transport = append(o.transport, opts...)
	}
}

// New creates a Gutendex client.
func New(opts ...Option) *Client {
	o := &options{
		baseURL: constants.DefaultBaseURL,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	topts := append([]transport.Option{transport.WithLogger(o.logger)}, o.transport...)
	return &Client{
		http:   transport.New(o.baseURL, topts...),
		logger: o.logger,
	}
}

// FetchPage implements catalog.Reader. page is always sent; search and
// topic only when non-empty. A page past the end ("Invalid page.", 404)
// is reported as a NotFoundError.
func (c *Client) FetchPage(ctx context.Context, q catalog.Query) (catalog.PageResult, error) {
	page := max(q.Page, 1)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if q.SearchTerm != "" {
		params.Set("search", q.SearchTerm)
	}
	if q.Genre != "" {
		params.Set("topic", q.Genre)
	}
	res, err := c.list(ctx, params)
	var netErr *errors.NetworkError
	if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
		return catalog.PageResult{}, errors.NewNotFoundError("page", strconv.Itoa(page))
	}
	return res, err
}

// FetchByIDs implements catalog.Reader. An empty id list returns an empty
// result without a request.
func (c *Client) FetchByIDs(ctx context.Context, ids []int) (catalog.PageResult, error) {
	if len(ids) == 0 {
		return catalog.PageResult{Items: []books.Book{}}, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	params := url.Values{}
	params.Set("ids", strings.Join(parts, ","))
	return c.list(ctx, params)
}

// FetchOne implements catalog.Catalog.
func (c *Client) FetchOne(ctx context.Context, id int) (books.Book, error) {
	resp, err := c.http.Get(ctx, constants.BooksPath+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return books.Book{}, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return books.Book{}, errors.NewNotFoundError("book", strconv.Itoa(id))
	}

	var raw bookResponse
	if err := transport.Decode(resp, &raw); err != nil {
		return books.Book{}, err
	}
	if raw.isNotFound() {
		return books.Book{}, errors.NewNotFoundError("book", strconv.Itoa(id))
	}
	if raw.ID == nil {
		return books.Book{}, errors.NewParseError("json", resp.URL, "book has no id", nil)
	}
	return raw.toBook(), nil
}

func (c *Client) list(ctx context.Context, params url.Values) (catalog.PageResult, error) {
	resp, err := c.http.Get(ctx, constants.BooksPath, params)
	if err != nil {
		return catalog.PageResult{}, err
	}

	var raw listResponse
	if err := transport.Decode(resp, &raw); err != nil {
		return catalog.PageResult{}, err
	}
	if raw.Count == nil || raw.Results == nil {
		return catalog.PageResult{}, errors.NewParseError("json", resp.URL, "missing count or results", nil)
	}

	items := make([]books.Book, 0, len(*raw.Results))
	for _, r := range *raw.Results {
		if r.ID == nil {
			return catalog.PageResult{}, errors.NewParseError("json", resp.URL, "book has no id", nil)
		}
		items = append(items, r.toBook())
	}

	c.logger.Trace().
		Str("url", resp.URL).
		Int("count", *raw.Count).
		Int("items", len(items)).
		Msg("Decoded catalog page")

	return catalog.PageResult{Count: *raw.Count, Items: items}, nil
}
