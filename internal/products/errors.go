package products

import (

	"github.com/go-faster/errors"
)

// Store operations fail with one of these; the underlying cause stays
// reachable through errors.Is/As.
var (
	ErrFetch  = errors.New("failed to fetch")
	ErrAdd    = errors.New("failed to add product")
	ErrUpdate = errors.New("failed to update product")
	ErrDelete = errors.New("failed to delete product")

	ErrInvalidPrice = errors.New("invalid price")
)

// Remote API failures.
var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrBadStatus   = errors.New("catalog: bad status")
	ErrUnavailable = errors.New("catalog: unavailable")
)

const fetchProductsMessage = "failed to fetch products"

func opError(kind, cause error) error {
	return errors.Errorf("%w: %w", kind, cause)
}
