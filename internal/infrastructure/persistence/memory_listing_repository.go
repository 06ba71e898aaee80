package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
)

// MemoryListingRepository is an in-memory catalog.ListingRepository for
// tests and local development. Listings round-trip through their
// document form so it behaves like the real repository.
type MemoryListingRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID][]byte
}

// NewMemoryListingRepository creates an empty in-memory repository.
func NewMemoryListingRepository() *MemoryListingRepository {
	return &MemoryListingRepository{docs: make(map[uuid.UUID][]byte)}
}

// FindByID finds a listing by its ID
func (r *MemoryListingRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return catalog.ListingFromDocument(doc)
}

// FindByCategory finds all listings in a category
func (r *MemoryListingRepository) FindByCategory(ctx context.Context, category string) ([]*catalog.Listing, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, l := range all {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out, nil
}

// FindAll returns every stored listing, newest first
func (r *MemoryListingRepository) FindAll(_ context.Context) ([]*catalog.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listings := make([]*catalog.Listing, 0, len(r.docs))
	for _, doc := range r.docs {
		l, err := catalog.ListingFromDocument(doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].UpdatedAt.After(listings[j].UpdatedAt)
	})
	return listings, nil
}

// Save creates or updates a listing
func (r *MemoryListingRepository) Save(_ context.Context, listing *catalog.Listing) error {
	doc, err := listing.ToDocument()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[listing.ID] = doc
	return nil
}

// Delete deletes a listing
func (r *MemoryListingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// Count counts all stored listings
func (r *MemoryListingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

// Ensure MemoryListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*MemoryListingRepository)(nil)
