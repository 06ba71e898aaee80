package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
)

// ListingModel is the storage shape of a listing. The listing aggregate
// is stored as one JSON document; category and name are lifted into
// columns for querying.
type ListingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:140;not null"`
	Category  string    `gorm:"size:64;index"`
	Body      []byte    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for GORM
func (ListingModel) TableName() string { return "listings" }

// GormListingRepository implements catalog.ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	var model ListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return catalog.ListingFromDocument(model.Body)
}

// FindByCategory finds all listings in a category, newest first
func (r *GormListingRepository) FindByCategory(ctx context.Context, category string) ([]*catalog.Listing, error) {
	var models []ListingModel
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return unmarshalModels(models)
}

// FindAll returns every stored listing, newest first
func (r *GormListingRepository) FindAll(ctx context.Context) ([]*catalog.Listing, error) {
	var models []ListingModel
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return unmarshalModels(models)
}

// Save creates or updates a listing
func (r *GormListingRepository) Save(ctx context.Context, listing *catalog.Listing) error {
	body, err := listing.ToDocument()
	if err != nil {
		return err
	}
	model := ListingModel{
		ID:        listing.ID,
		Name:      listing.Name,
		Category:  listing.Category,
		Body:      body,
		CreatedAt: listing.CreatedAt,
		UpdatedAt: listing.UpdatedAt,
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a listing
func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all stored listings
func (r *GormListingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func unmarshalModels(models []ListingModel) ([]*catalog.Listing, error) {
	listings := make([]*catalog.Listing, 0, len(models))
	for _, m := range models {
		l, err := catalog.ListingFromDocument(m.Body)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Ensure GormListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*GormListingRepository)(nil)
