// Package pagination computes page counts and the compressed list of page
// buttons shown for a paginated result.
package pagination

import (
	"strconv"

	"github.com/agentstation/bookmap/pkg/constants"
)

// Item is one entry in a page window: either a page number or an ellipsis
// standing for the pages skipped between two numbers.
type Item struct {
	Page     int  `json:"page,omitempty" yaml:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty" yaml:"ellipsis,omitempty"`
}

// String renders the item as it appears on a page button.
func (i Item) String() string {
	if i.Ellipsis {
		return "..."
	}
	return strconv.Itoa(i.Page)
}

// TotalPages returns ceil(count / max(observed, nominal)), never less than 1.
// observed is the number of items the server actually returned for the
// current page and nominal is its fixed page size; a non-positive nominal
// size falls back to the server default.
func TotalPages(count, observed, nominal int) int {
	if nominal <= 0 {
		nominal = constants.ServerPageSize
	}
	size := max(observed, nominal)
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Window returns the page buttons to show for current out of total pages.
// The first and last pages are always present so either end is one click
// away; gaps wider than one page collapse into an ellipsis.
//
// current must already be within [1, total]; use Clamp first.
func Window(current, total, size int) []Item {
	if total < 1 {
		total = 1
	}
	if size < 1 {
		size = constants.DefaultWindowSize
	}
	half := size / 2

	start := max(1, current-half)
	end := min(total, current+half)
	if current <= half {
		start = 1
		end = min(total, size)
	} else if current+half >= total {
		start = max(1, total-size+1)
		end = total
	}

	items := make([]Item, 0, end-start+5)
	if start > 1 {
		items = append(items, Item{Page: 1})
		if start > 2 {
			items = append(items, Item{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		items = append(items, Item{Page: p})
	}
	if end < total {
		if end < total-1 {
			items = append(items, Item{Ellipsis: true})
		}
		items = append(items, Item{Page: total})
	}
	return items
}

// Clamp bounds page to [1, total].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	return min(max(page, 1), total)
}

// Pages returns just the page numbers of a window, dropping ellipses.
func Pages(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if !it.Ellipsis {
			out = append(out, it.Page)
		}
	}
	return out
}

