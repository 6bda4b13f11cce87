package repository

import (
	"context"
	"errors"

	"toy-marketplace-api/internal/model"
)

// ErrNotFound is returned by GetByID when no document matches the identifier.
// Zero-match updates and deletes are NOT errors; they report a count of zero.
var ErrNotFound = errors.New("listing not found")

// ErrInvalidID is returned when an identifier is not a well-formed store
// identifier (24-character hex ObjectID).
var ErrInvalidID = errors.New("invalid listing identifier")

// ListingRepository defines the store operations the service needs. Each call
// is a single round trip to the store; calls are independently atomic at the
// store level and non-transactional across calls.
type ListingRepository interface {
	// ListAll returns every listing in insertion order.
	ListAll(ctx context.Context) ([]model.Listing, error)

	// ListBySeller returns listings whose sellerEmail equals email exactly
	// (case-sensitive).
	ListBySeller(ctx context.Context, email string) ([]model.Listing, error)

	// ListLimited returns the first limit listings in store-default order.
	ListLimited(ctx context.Context, limit int64) ([]model.Listing, error)

	// ListSortedByPrice returns all listings ordered by price.
	ListSortedByPrice(ctx context.Context, ascending bool) ([]model.Listing, error)

	// GetByID returns the listing matching id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (model.Listing, error)

	// Insert persists doc verbatim and returns the store-assigned identifier.
	Insert(ctx context.Context, doc model.Listing) (string, error)

	// ReplaceFields overwrites the seven business fields on the matching
	// document and returns the matched count (zero when id matches nothing).
	ReplaceFields(ctx context.Context, id string, patch model.ListingPatch) (int64, error)

	// Delete removes the matching document and returns the deleted count
	// (zero when id matches nothing).
	Delete(ctx context.Context, id string) (int64, error)

	// Ping verifies store connectivity.
	Ping(ctx context.Context) error

	// Stats returns operational statistics about the collection.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close releases the store connection.
	Close() error
}
