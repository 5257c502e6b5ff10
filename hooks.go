package bookmap

import (
	"sync"

	"github.com/agentstation/bookmap/pkg/browse"
)

// Hook function types for client events
type (
	// ViewChangeHook is called after every visible change of the browse view
	ViewChangeHook func(view browse.ViewState)

	// FavoriteToggledHook is called after a book is toggled in the wishlist
	FavoriteToggledHook func(id int, favorite bool)
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hooks registers event callbacks.
type Hooks interface {
	// OnViewChange registers a callback for browse view changes
	OnViewChange(ViewChangeHook)

	// OnFavoriteToggled registers a callback for wishlist toggles
	OnFavoriteToggled(FavoriteToggledHook)
}

// hooks manages event callbacks
type hooks struct {
	mu                sync.RWMutex
	onViewChange      []ViewChangeHook
	onFavoriteToggled []FavoriteToggledHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnViewChange registers a callback for browse view changes.
func (c *client) OnViewChange(fn ViewChangeHook) {
	if fn == nil {
		return
	}
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onViewChange = append(c.hooks.onViewChange, fn)
}

// OnFavoriteToggled registers a callback for wishlist toggles.
func (c *client) OnFavoriteToggled(fn FavoriteToggledHook) {
	if fn == nil {
		return
	}
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFavoriteToggled = append(c.hooks.onFavoriteToggled, fn)
}

func (h *hooks) triggerViewChange(view browse.ViewState) {
	h.mu.RLock()
	fns := append([]ViewChangeHook{}, h.onViewChange...)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(view)
	}
}

func (h *hooks) triggerFavoriteToggled(id int, favorite bool) {
	h.mu.RLock()
	fns := append([]FavoriteToggledHook{}, h.onFavoriteToggled...)
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(id, favorite)
	}
}
