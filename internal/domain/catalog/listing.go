package catalog

import (
	"encoding/json"
	"strings"

	"github.com/erp/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// MaxListingNameLength bounds listing titles.
	MaxListingNameLength = 140
	// MaxListingImages bounds the number of photos per listing.
	MaxListingImages = 5
)

// ImageRef points at one stored listing photo. Order within the listing
// is carried by SortOrder, not by the image itself.
type ImageRef struct {
	Key          string `json:"key"`
	ThumbnailKey string `json:"thumbnailKey"`
	Name         string `json:"name"`
	SortOrder    int    `json:"sortOrder"`
}

// BulkTier is one quantity break in a listing's wholesale price ladder.
type BulkTier struct {
	MinQuantity int64           `json:"minQuantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Listing is a seller's storefront listing aggregate: descriptive fields,
// ordered photos, sellable variations and optional bulk pricing.
type Listing struct {
	shared.BaseEntity
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Subcategory string         `json:"subcategory"`
	Brand       string         `json:"brand"`
	Images      []ImageRef     `json:"images"`
	Variations  []VariationRow `json:"variations"`
	BulkPricing []BulkTier     `json:"bulkPricing,omitempty"`
	Published   bool           `json:"published"`
}

// NewListing creates a listing with a generated ID and validated name.
func NewListing(name, category string) (*Listing, error) {
	if err := validateListingName(name); err != nil {
		return nil, err
	}
	return &Listing{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Category:   category,
	}, nil
}

func validateListingName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("EMPTY_LISTING_NAME",
			"Listing name is required", "Please enter a name for the listing.")
	}
	if len(name) > MaxListingNameLength {
		return shared.NewValidationError("LISTING_NAME_TOO_LONG",
			"Listing name is too long", "Please use a shorter name.")
	}
	return nil
}

// Rename changes the listing name after validation.
func (l *Listing) Rename(name string) error {
	if err := validateListingName(name); err != nil {
		return err
	}
	l.Name = strings.TrimSpace(name)
	l.Touch()
	return nil
}

// SetImages replaces the listing's photo set, renumbering sort order to
// match slice position.
func (l *Listing) SetImages(refs []ImageRef) error {
	if len(refs) > MaxListingImages {
		return shared.NewValidationError("TOO_MANY_IMAGES",
			"Too many images for one listing", "A listing can have at most 5 images.")
	}
	imgs := make([]ImageRef, len(refs))
	copy(imgs, refs)
	for i := range imgs {
		imgs[i].SortOrder = i
	}
	l.Images = imgs
	l.Touch()
	return nil
}

// SetVariations replaces the listing's variation rows. Variation names
// must be unique within the listing.
func (l *Listing) SetVariations(rows []VariationRow) error {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return shared.NewValidationError("EMPTY_VARIATION_NAME",
				"Variation name is required", "Please name every variation.")
		}
		if _, dup := seen[name]; dup {
			return shared.NewValidationError("DUPLICATE_VARIATION",
				"Duplicate variation name: "+name, "Variation names must be unique.")
		}
		seen[name] = struct{}{}
	}
	l.Variations = CloneRows(rows)
	l.Touch()
	return nil
}

// Variation returns the row with the given name, or nil.
func (l *Listing) Variation(name string) *VariationRow {
	for i := range l.Variations {
		if l.Variations[i].Name == name {
			return &l.Variations[i]
		}
	}
	return nil
}

// ToDocument serializes the listing for document storage.
func (l *Listing) ToDocument() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, shared.NewPersistenceError("MARSHAL_FAILED",
			"Saving the listing failed", "Please try again.")
	}
	return data, nil
}

// ListingFromDocument deserializes a stored listing document.
func ListingFromDocument(data []byte) (*Listing, error) {
	var l Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, shared.NewPersistenceError("UNMARSHAL_FAILED",
			"Loading the listing failed", "Please refresh and try again.")
	}
	return &l, nil
}
