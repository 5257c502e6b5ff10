// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents a failed operation.
	Error = "✗"

	// Info represents informational messages.
	Info = "i"

	// Favorite marks a book in the wishlist.
	Favorite = "★"

	// NotFavorite marks a book outside the wishlist.
	NotFavorite = "☆"

	// Previous and Next frame the page window.
	Previous = "‹"
	Next     = "›"
)
