package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"toy-marketplace-api/internal/model"
	"toy-marketplace-api/internal/repository"
	"toy-marketplace-api/pkg/apierror"
)

// DefaultStoreTimeout bounds a store round trip when no timeout is
// configured.
const DefaultStoreTimeout = 10 * time.Second

// ListingService owns the listing repository and applies the policy the
// repository does not: per-call timeouts, minimal shape validation, and
// mapping store failures to API errors.
type ListingService struct {
	repo    repository.ListingRepository
	timeout time.Duration
}

// NewListingService creates a new listing service.
// Returns nil if repo is nil (required dependency).
func NewListingService(repo repository.ListingRepository, timeout time.Duration) *ListingService {
	if repo == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &ListingService{repo: repo, timeout: timeout}
}

// ListToys returns all listings, filtered by seller when email is non-empty.
// An empty email means "no filter": the full collection comes back, the
// behavior existing clients of this surface rely on.
func (s *ListingService) ListToys(ctx context.Context, email string) ([]model.Listing, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var (
		listings []model.Listing
		err      error
	)
	if email == "" {
		listings, err = s.repo.ListAll(ctx)
	} else {
		listings, err = s.repo.ListBySeller(ctx, email)
	}
	return listings, s.translate("list toys", err)
}

// ListLimited returns the first limit listings in store-default order.
func (s *ListingService) ListLimited(ctx context.Context, limit int64) ([]model.Listing, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	listings, err := s.repo.ListLimited(ctx, limit)
	return listings, s.translate("list limited", err)
}

// ListSortedByPrice returns all listings sorted by price. The sort contract
// is two-state: "asc" sorts ascending, any other direction (including empty)
// sorts descending.
func (s *ListingService) ListSortedByPrice(ctx context.Context, direction string) ([]model.Listing, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	listings, err := s.repo.ListSortedByPrice(ctx, direction == "asc")
	return listings, s.translate("list sorted", err)
}

// GetToy returns a single listing by identifier.
func (s *ListingService) GetToy(ctx context.Context, id string) (model.Listing, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	listing, err := s.repo.GetByID(ctx, id)
	return listing, s.translate("get toy", err)
}

// AddToy validates the document shape and persists it verbatim, returning
// the store-assigned identifier.
func (s *ListingService) AddToy(ctx context.Context, doc model.Listing) (string, error) {
	if err := validateListing(doc); err != nil {
		return "", err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	id, err := s.repo.Insert(ctx, doc)
	return id, s.translate("add toy", err)
}

// UpdateToy overwrites the seven business fields on the matching listing and
// returns the matched count. A zero match is success-with-zero-effect.
func (s *ListingService) UpdateToy(ctx context.Context, id string, patch model.ListingPatch) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	matched, err := s.repo.ReplaceFields(ctx, id, patch)
	return matched, s.translate("update toy", err)
}

// DeleteToy removes the matching listing and returns the deleted count. A
// zero match is success-with-zero-effect.
func (s *ListingService) DeleteToy(ctx context.Context, id string) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, id)
	return deleted, s.translate("delete toy", err)
}

// Ping verifies store connectivity.
func (s *ListingService) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.Ping(ctx)
}

// Stats returns operational statistics from the store.
func (s *ListingService) Stats(ctx context.Context) (map[string]interface{}, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.repo.Stats(ctx)
}

// bound attaches the per-call store deadline. A hung store call fails the
// request with a timeout instead of hanging it indefinitely.
func (s *ListingService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// translate maps repository failures to API errors. Store internals are
// logged with operation context and never leaked to clients.
func (s *ListingService) translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInvalidID):
		return apierror.BadRequest("invalid toy id")
	case errors.Is(err, repository.ErrNotFound):
		return apierror.NotFound("Toy not found")
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("[ListingService] %s: store call timed out", op)
		return apierror.Timeout("")
	default:
		log.Printf("[ListingService] %s: %v", op, err)
		return apierror.InternalError("Internal server error")
	}
}

// validateListing applies the minimal shape checks on an insert body: the
// document must be a JSON object without a caller-supplied identifier, and
// known fields, when present, must carry the expected JSON kind. Fields stay
// optional; absent fields are persisted as missing, not defaulted.
func validateListing(doc model.Listing) error {
	if doc == nil {
		return apierror.BadRequest("request body must be a JSON object")
	}
	if _, ok := doc[model.FieldID]; ok {
		return apierror.BadRequest("_id is assigned by the store and cannot be supplied")
	}
	for _, field := range model.NumericFields() {
		if v, ok := doc[field]; ok && !model.IsNumber(v) {
			return apierror.BadRequest(fmt.Sprintf("%s must be a number", field))
		}
	}
	for _, field := range model.TextFields() {
		if v, ok := doc[field]; ok {
			if _, isString := v.(string); !isString {
				return apierror.BadRequest(fmt.Sprintf("%s must be a string", field))
			}
		}
	}
	return nil
}
