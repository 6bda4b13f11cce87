package repository

import (
	"context"
	"sort"
	"sync"

	"toy-marketplace-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryListingRepository implements ListingRepository with an in-process
// map, for tests and local development without a store. Documents are kept in
// insertion order and copied on the way in and out so callers never alias
// repository state.
type MemoryListingRepository struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]model.Listing
}

// NewMemoryListingRepository creates an empty in-memory repository.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{
		docs: make(map[string]model.Listing),
	}
}

// ListAll returns every listing in insertion order.
func (r *MemoryListingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

// ListBySeller returns listings whose sellerEmail matches exactly.
func (r *MemoryListingRepository) ListBySeller(ctx context.Context, email string) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := []model.Listing{}
	for _, id := range r.order {
		doc := r.docs[id]
		if doc.SellerEmail() == email {
			listings = append(listings, copyListing(id, doc))
		}
	}
	return listings, nil
}

// ListLimited returns the first limit listings in insertion order.
func (r *MemoryListingRepository) ListLimited(ctx context.Context, limit int64) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.snapshot()
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

// ListSortedByPrice returns all listings ordered by price. Documents without
// a numeric price sort lowest, matching the store's ordering of missing
// fields.
func (r *MemoryListingRepository) ListSortedByPrice(ctx context.Context, ascending bool) ([]model.Listing, error) {
	r.mu.RLock()
	all := r.snapshot()
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		pi, iok := all[i].Price()
		pj, jok := all[j].Price()
		if ascending {
			if !iok {
				return jok
			}
			if !jok {
				return false
			}
			return pi < pj
		}
		if !jok {
			return iok
		}
		if !iok {
			return false
		}
		return pi > pj
	})
	return all, nil
}

// GetByID returns the listing matching id, or ErrNotFound.
func (r *MemoryListingRepository) GetByID(ctx context.Context, id string) (model.Listing, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyListing(id, doc), nil
}

// Insert persists doc verbatim and returns the assigned identifier.
func (r *MemoryListingRepository) Insert(ctx context.Context, doc model.Listing) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID().Hex()
	stored := make(model.Listing, len(doc))
	for k, v := range doc {
		stored[k] = v
	}
	r.docs[id] = stored
	r.order = append(r.order, id)
	return id, nil
}

// ReplaceFields overwrites the seven business fields on the matching
// document. A zero matched count is not an error.
func (r *MemoryListingRepository) ReplaceFields(ctx context.Context, id string, patch model.ListingPatch) (int64, error) {
	if _, err := parseObjectID(id); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return 0, nil
	}
	doc[model.FieldTitle] = patch.Title
	doc[model.FieldCategory] = patch.Category
	doc[model.FieldPrice] = patch.Price
	doc[model.FieldRating] = patch.Rating
	doc[model.FieldQuantity] = patch.Quantity
	doc[model.FieldDescription] = patch.Description
	doc[model.FieldPicture] = patch.Picture
	return 1, nil
}

// Delete removes the matching document. A zero deleted count is not an error.
func (r *MemoryListingRepository) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := parseObjectID(id); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return 0, nil
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Ping always succeeds for the in-memory backend.
func (r *MemoryListingRepository) Ping(ctx context.Context) error {
	return nil
}

// Stats returns statistics about the in-memory collection.
func (r *MemoryListingRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return map[string]interface{}{
		"status":         "connected",
		"total_listings": int64(len(r.order)),
	}, nil
}

// Close is a no-op for the in-memory backend.
func (r *MemoryListingRepository) Close() error {
	return nil
}

func (r *MemoryListingRepository) snapshot() []model.Listing {
	all := make([]model.Listing, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, copyListing(id, r.docs[id]))
	}
	return all
}

func copyListing(id string, doc model.Listing) model.Listing {
	out := make(model.Listing, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out[model.FieldID] = id
	return out
}

// Ensure MemoryListingRepository implements ListingRepository
var _ ListingRepository = (*MemoryListingRepository)(nil)
