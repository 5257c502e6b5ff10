package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/bookmap/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "book", ID: "84"}
		assert.Equal(t, "book with ID 84 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
		assert.False(t, errors.Is(err, pkgerrors.ErrNetwork))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("detail view: %w", pkgerrors.NewNotFoundError("book", "1"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestNetworkError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := pkgerrors.NewNetworkError("GET", "https://gutendex.com/books", 503, "Service Unavailable")
		assert.Equal(t, "GET https://gutendex.com/books: status 503: Service Unavailable", err.Error())
		assert.True(t, pkgerrors.IsNetwork(err))
		assert.False(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped transport failure", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapNetwork("GET", "http://localhost/books", base)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNetwork(err))
		assert.ErrorIs(t, err, base)

		var netErr *pkgerrors.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Zero(t, netErr.StatusCode)
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapNetwork("GET", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("json", "favorites", "unexpected end of JSON input", nil)
	assert.Equal(t, "json parse error in favorites: unexpected end of JSON input", err.Error())
	assert.True(t, pkgerrors.IsParse(err))

	noSource := &pkgerrors.ParseError{Format: "json", Message: "bad"}
	assert.Equal(t, "json parse error: bad", noSource.Error())

	base := errors.New("invalid character")
	wrapped := pkgerrors.WrapParse("json", "https://gutendex.com/books/1", base)
	assert.ErrorIs(t, wrapped, base)
	assert.ErrorIs(t, wrapped, pkgerrors.ErrParse)
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("id", -3, "must be positive")
	assert.Equal(t, "validation failed for field id: must be positive", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	noField := &pkgerrors.ValidationError{Message: "empty"}
	assert.Equal(t, "validation failed: empty", noField.Error())
}

func TestEmptyWishlist(t *testing.T) {
	err := fmt.Errorf("wishlist view: %w", pkgerrors.ErrEmptyWishlist)
	assert.True(t, pkgerrors.IsEmptyWishlist(err))
	assert.False(t, pkgerrors.IsNetwork(err))
}

func TestIOAndResourceErrors(t *testing.T) {
	ioErr := pkgerrors.WrapIO("read", "/tmp/state.json", fs.ErrPermission)
	assert.Contains(t, ioErr.Error(), "/tmp/state.json")
	assert.ErrorIs(t, ioErr, fs.ErrPermission)

	resErr := pkgerrors.WrapResource("create", "store", "redis", ioErr)
	assert.Equal(t, "failed to create store redis: "+ioErr.Error(), resErr.Error())
	assert.ErrorIs(t, resErr, fs.ErrPermission)

	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("create", "x", "", nil))
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown backend")
	err := pkgerrors.NewConfigError("store", "backend \"mongo\" is not supported", base)
	assert.Equal(t, "configuration error in store: backend \"mongo\" is not supported", err.Error())
	assert.ErrorIs(t, err, base)
}
