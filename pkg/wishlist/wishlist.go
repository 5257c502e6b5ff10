// Package wishlist keeps the user's favorited book ids in durable storage.
//
// The list is stored as a JSON array under a single key and every mutation
// is a full read-modify-write of that key. The wishlist keeps no copy of its
// own; how soon another process's writes become visible depends on the
// kv backend (redis and sqlite read through, the file backend reads its file
// once when opened).
package wishlist

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookmap/pkg/books"
	"github.com/agentstation/bookmap/pkg/catalog"
	"github.com/agentstation/bookmap/pkg/constants"
	"github.com/agentstation/bookmap/pkg/errors"
	"github.com/agentstation/bookmap/pkg/kv"
	"github.com/agentstation/bookmap/pkg/logging"
)

// Store is a persisted set of book ids.
type Store struct {
	kv     kv.Store
	key    string
	logger *zerolog.Logger

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the set under key instead of "favorites".
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a wishlist over store.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		key:    constants.KeyFavorites,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add puts id in the wishlist and reports whether it was missing before.
// Adding an id twice stores it once.
func (s *Store) Add(ctx context.Context, id int) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := set[id]; ok {
		return false, nil
	}
	set[id] = struct{}{}
	if err := s.save(ctx, set); err != nil {
		return false, err
	}
	return true, nil
}

// Remove takes id out of the wishlist and reports whether it was present.
// Removing a missing id is a no-op.
func (s *Store) Remove(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := set[id]; !ok {
		return false, nil
	}
	delete(set, id)
	if err := s.save(ctx, set); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports whether id is in the wishlist.
func (s *Store) Contains(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := set[id]
	return ok, nil
}

// List returns the wishlist ids in ascending order.
func (s *Store) List(ctx context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return sorted(set), nil
}

// Toggle removes id if present and adds it otherwise. It returns whether
// id is in the wishlist afterwards.
func (s *Store) Toggle(ctx context.Context, id int) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, had := set[id]
	if had {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
	if err := s.save(ctx, set); err != nil {
		return had, err
	}

	s.logger.Debug().Int("book_id", id).Bool("favorite", !had).Msg("Toggled favorite")
	return !had, nil
}

// Favorites materialises the wishlist through cat. An empty wishlist returns
// errors.ErrEmptyWishlist without touching cat. Ids are looked up in
// batches of at most 32.
func (s *Store) Favorites(ctx context.Context, cat catalog.Reader) ([]books.Book, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.ErrEmptyWishlist
	}

	out := make([]books.Book, 0, len(ids))
	for start := 0; start < len(ids); start += constants.MaxIDsPerRequest {
		end := min(start+constants.MaxIDsPerRequest, len(ids))
		res, err := cat.FetchByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, res.Items...)
	}
	return out, nil
}

func (s *Store) load(ctx context.Context) (map[int]struct{}, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, errors.WrapResource("load", "wishlist", s.key, err)
	}
	set := make(map[int]struct{})
	if !ok || raw == "" {
		return set, nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, errors.WrapParse("json", s.key, err)
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *Store) save(ctx context.Context, set map[int]struct{}) error {
	data, err := json.Marshal(sorted(set))
	if err != nil {
		return errors.WrapParse("json", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return errors.WrapResource("save", "wishlist", s.key, err)
	}
	return nil
}

func sorted(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func validateID(id int) error {
	if id <= 0 {
		return errors.NewValidationError("id", id, "book id must be positive, got "+strconv.Itoa(id))
	}
	return nil
}
