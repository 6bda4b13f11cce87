package repository

import (
	"context"
	"testing"

	"toy-marketplace-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func carListing(price float64, seller string) model.Listing {
	return model.Listing{
		"title":       "Car",
		"category":    "Vehicles",
		"price":       price,
		"rating":      4.0,
		"quantity":    2.0,
		"description": "d",
		"picture":     "http://x/y.png",
		"sellerEmail": seller,
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	doc := carListing(10, "a@b.com")
	doc["customField"] = "survives"

	id, err := repo.Insert(ctx, doc)
	require.NoError(t, err)
	require.Len(t, id, 24, "identifier should be a hex ObjectID")

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got[model.FieldID])
	for k, v := range doc {
		assert.Equal(t, v, got[k], "field %s should round-trip", k)
	}
}

func TestGetByIDMalformed(t *testing.T) {
	repo := NewMemoryListingRepository()

	_, err := repo.GetByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGetByIDAbsent(t *testing.T) {
	repo := NewMemoryListingRepository()

	_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDeleteZeroEffect(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()
	absent := primitive.NewObjectID().Hex()

	matched, err := repo.ReplaceFields(ctx, absent, model.ListingPatch{Title: "x"})
	require.NoError(t, err, "zero-match update is not an error")
	assert.Equal(t, int64(0), matched)

	deleted, err := repo.Delete(ctx, absent)
	require.NoError(t, err, "zero-match delete is not an error")
	assert.Equal(t, int64(0), deleted)
}

func TestReplaceFieldsLeavesSellerEmail(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	id, err := repo.Insert(ctx, carListing(10, "a@b.com"))
	require.NoError(t, err)

	matched, err := repo.ReplaceFields(ctx, id, model.ListingPatch{
		Title:       "Car2",
		Category:    "Vehicles",
		Price:       15,
		Rating:      4,
		Quantity:    2,
		Description: "d2",
		Picture:     "http://x/y.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Car2", got["title"])
	assert.Equal(t, 15.0, got["price"])
	assert.Equal(t, "d2", got["description"])
	assert.Equal(t, "a@b.com", got["sellerEmail"], "patch must not touch sellerEmail")
}

func TestDeleteRemovesListing(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	id, err := repo.Insert(ctx, carListing(10, "a@b.com"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAllInsertionOrder(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Insert(ctx, carListing(float64(i), "a@b.com"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, listing := range all {
		assert.Equal(t, ids[i], listing[model.FieldID])
	}
}

func TestListBySellerExactMatch(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	_, err := repo.Insert(ctx, carListing(10, "a@b.com"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, carListing(20, "A@B.com"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, carListing(30, "a@b.com"))
	require.NoError(t, err)

	got, err := repo.ListBySeller(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, got, 2, "filter must be case-sensitive")
	for _, listing := range got {
		assert.Equal(t, "a@b.com", listing.SellerEmail())
	}
}

func TestListLimited(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, carListing(float64(i), "a@b.com"))
		require.NoError(t, err)
	}

	got, err := repo.ListLimited(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.ListLimited(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, 5, "limit beyond the collection size returns everything")

	got, err = repo.ListLimited(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestListSortedByPrice(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	for _, price := range []float64{30, 10, 20} {
		_, err := repo.Insert(ctx, carListing(price, "a@b.com"))
		require.NoError(t, err)
	}

	asc, err := repo.ListSortedByPrice(ctx, true)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	for i := 1; i < len(asc); i++ {
		prev, _ := asc[i-1].Price()
		cur, _ := asc[i].Price()
		assert.LessOrEqual(t, prev, cur, "ascending sort must be non-decreasing")
	}

	desc, err := repo.ListSortedByPrice(ctx, false)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	for i := 1; i < len(desc); i++ {
		prev, _ := desc[i-1].Price()
		cur, _ := desc[i].Price()
		assert.GreaterOrEqual(t, prev, cur, "descending sort must be non-increasing")
	}
}

func TestReadsDoNotAliasStoredState(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	id, err := repo.Insert(ctx, carListing(10, "a@b.com"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got["title"] = "mutated"

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Car", again["title"])
}
