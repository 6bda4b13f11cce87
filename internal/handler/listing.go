package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"toy-marketplace-api/internal/model"
	"toy-marketplace-api/internal/service"
	"toy-marketplace-api/pkg/apierror"
	"toy-marketplace-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// ListingHandler handles listing-related HTTP requests.
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// ListToys handles GET /toys. An email query filters by seller; without it
// the full collection comes back.
func (h *ListingHandler) ListToys(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	listings, err := h.listingService.ListToys(r.Context(), email)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, listings)
}

// ListLimited handles POST /toyslimit. The method is POST for what is
// semantically a read; existing clients depend on it, so the surface is
// preserved as-is. The limit query is parsed strictly: non-numeric or
// negative values are rejected instead of coerced to "no bound".
func (h *ListingHandler) ListLimited(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("limit")

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		response.Error(w, apierror.BadRequest("limit must be a non-negative integer"))
		return
	}

	listings, err := h.listingService.ListLimited(r.Context(), limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, listings)
}

// ListSorted handles GET /sort. sort=asc orders by ascending price; any
// other value, including none, orders descending.
func (h *ListingHandler) ListSorted(w http.ResponseWriter, r *http.Request) {
	direction := r.URL.Query().Get("sort")

	listings, err := h.listingService.ListSortedByPrice(r.Context(), direction)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, listings)
}

// GetToy handles GET /toys/{id}.
func (h *ListingHandler) GetToy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.listingService.GetToy(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, listing)
}

// AddToy handles POST /toys. The body is persisted verbatim after minimal
// shape checks; the response echoes the store-assigned identifier.
func (h *ListingHandler) AddToy(w http.ResponseWriter, r *http.Request) {
	var doc model.Listing
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}
	defer r.Body.Close()

	id, err := h.listingService.AddToy(r.Context(), doc)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// UpdateToy handles PATCH /toys/{id}: overwrites the seven business fields,
// leaving sellerEmail and the identifier untouched. A zero matched count is
// reported as success, not an error.
func (h *ListingHandler) UpdateToy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch model.ListingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}
	defer r.Body.Close()

	matched, err := h.listingService.UpdateToy(r.Context(), id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"acknowledged":  true,
		"matchedCount":  matched,
		"modifiedCount": matched,
	})
}

// DeleteToy handles DELETE /toys/{id}. A zero deleted count is reported as
// success, not an error.
func (h *ListingHandler) DeleteToy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.listingService.DeleteToy(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"acknowledged": true,
		"deletedCount": deleted,
	})
}
