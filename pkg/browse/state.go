package browse

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/genres"
	"github.com/agentstation/bookmap/pkg/pagination"
)

// Status is the controller's state machine tag.
type Status int

// Controller states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ViewState is a read-only snapshot of the controller for presentation.
// Snapshots never share memory with the controller.
type ViewState struct {
	Status       Status         `json:"status" yaml:"status"`
	Books        []books.Book   `json:"books" yaml:"books"`                                   // Empty unless Loaded
	Genres       []genres.Entry `json:"genres" yaml:"genres"`                                 // From the last loaded page
	SearchTerm   string         `json:"search,omitempty" yaml:"search,omitempty"`             // Committed search
	DraftSearch  string         `json:"draft_search,omitempty" yaml:"draft_search,omitempty"` // Text typed but not committed
	Genre        string         `json:"genre,omitempty" yaml:"genre,omitempty"`               // Normalized genre, empty for all
	CurrentPage  int            `json:"current_page" yaml:"current_page"`
	TotalPages   int            `json:"total_pages" yaml:"total_pages"`
	Count        int            `json:"count" yaml:"count"`                                   // Matching books on the server
	Err          error          `json:"-" yaml:"-"`
	ErrorMessage string         `json:"error,omitempty" yaml:"error,omitempty"`
	LoadedAt     utc.Time       `json:"loaded_at,omitempty" yaml:"loaded_at,omitempty"`

	version uint64
}

// Query returns the query the snapshot describes.
func (v ViewState) Query() catalog.Query {
	return catalog.Query{SearchTerm: v.SearchTerm, Genre: v.Genre, Page: v.CurrentPage}
}

// Empty reports a successful load that matched no books.
func (v ViewState) Empty() bool {
	return v.Status == StatusLoaded && len(v.Books) == 0
}

// Window returns the page buttons for the snapshot.
func (v ViewState) Window() []pagination.Item {
	total := max(v.TotalPages, 1)
	return pagination.Window(pagination.Clamp(v.CurrentPage, total), total, constants.DefaultWindowSize)
}
