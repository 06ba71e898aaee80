package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ListingRepository provides access to stored listings.
type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindByCategory(ctx context.Context, category string) ([]*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
