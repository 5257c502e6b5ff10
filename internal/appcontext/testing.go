package appcontext

import (
	"context"
	"testing"

	"github.com/agentstation/bookmap"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/kv"
	"github.com/agentstation/bookmap/pkg/logging"
)

// NewTestMock returns a Mock whose client reads from cat and persists to
// store. The client does not fetch until a command asks it to and is
// closed when the test ends.
func NewTestMock(t testing.TB, cat catalog.Catalog, store kv.Store) *Mock {
	t.Helper()
	bm, err := bookmap.New(context.Background(),
		bookmap.WithCatalog(cat),
		bookmap.WithStore(store),
		bookmap.WithLogger(logging.NewNopLogger()),
		bookmap.WithDeferredStart(),
	)
	if err != nil {
		t.Fatalf("bookmap.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = bm.Close() })

	return &Mock{
		BookmapFunc: func() (bookmap.Client, error) { return bm, nil },
	}
}
