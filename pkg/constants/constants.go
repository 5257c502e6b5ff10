// Package constants provides shared constants used throughout bookmap.
// This includes the remote catalog defaults, storage keys, timeouts,
// limits and file permissions.
package constants

import "time"

// Remote catalog constants
const (
	// DefaultBaseURL is the public Gutendex API.
	DefaultBaseURL = "https://gutendex.com"

	// BooksPath is the Gutendex books endpoint.
	BooksPath = "/books"

	// ServerPageSize is the fixed number of books Gutendex returns per page.
	ServerPageSize = 32

	// MaxIDsPerRequest bounds the ids sent in one ?ids= lookup.
	MaxIDsPerRequest = 32

	// UserAgent identifies bookmap to the remote catalog.
	UserAgent = "bookmap"

	// RequestIDHeader carries the per-request id.
	RequestIDHeader = "X-Request-ID"
)

// Pagination constants
const (
	// DefaultWindowSize is the number of page buttons shown around the current page.
	DefaultWindowSize = 5
)

// Durable storage keys
const (
	// KeySearch holds the last committed search text.
	KeySearch = "search"

	// KeyGenre holds the last selected genre, empty means no filter.
	KeyGenre = "genre"

	// KeyFavorites holds the JSON array of favorited book ids.
	KeyFavorites = "favorites"
)

// Timeout constants
const (
	// DefaultHTTPTimeout bounds a single HTTP round trip at the transport.
	// The browse controller itself never times out a fetch.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultStoreTimeout is the dial and I/O timeout for networked stores.
	DefaultStoreTimeout = 5 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup on exit.
	ShutdownTimeout = 5 * time.Second
)

// Rate limit constants for the politeness limiter.
const (
	// DefaultRateLimit is the sustained request rate per second.
	DefaultRateLimit = 5

	// DefaultRateBurst is the request burst size.
	DefaultRateBurst = 10
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Placeholder and fallback values used when a book lacks data.
const (
	// PlaceholderCoverURL is shown when a book has no image/jpeg format.
	PlaceholderCoverURL = "https://via.placeholder.com/150"

	// UnknownAuthor is shown for books without authors.
	UnknownAuthor = "Unknown Author"

	// UnknownGenre is shown for books without subjects.
	UnknownGenre = "Unknown Genre"
)
