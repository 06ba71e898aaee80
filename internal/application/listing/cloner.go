package listing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/catalog"
)

// Template captures the reusable skeleton of a listing: category
// placement, brand and variation structure, without stock or images.
type Template struct {
	Name           string             `json:"name"`
	Category       string             `json:"category"`
	Subcategory    string             `json:"subcategory"`
	Brand          string             `json:"brand"`
	VariationNames []string           `json:"variationNames"`
	BulkPricing    []catalog.BulkTier `json:"bulkPricing,omitempty"`
}

// CloneListing duplicates a stored listing as a new draft. The copy
// keeps the category placement, description and variation structure
// but starts with no images, zero stock and a "(Copy)" name, so a
// seller can relist similar goods without re-entering everything.
func (s *Service) CloneListing(ctx context.Context, sourceID uuid.UUID) (*catalog.Listing, error) {
	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	clone, err := catalog.NewListing(copyName(source.Name), source.Category)
	if err != nil {
		return nil, err
	}
	clone.Description = source.Description
	clone.Subcategory = source.Subcategory
	clone.Brand = source.Brand
	clone.BulkPricing = append([]catalog.BulkTier(nil), source.BulkPricing...)

	rows := make([]catalog.VariationRow, len(source.Variations))
	for i, v := range source.Variations {
		rows[i] = catalog.VariationRow{Name: v.Name, Price: v.Price, Retail: v.Retail}
	}
	if len(rows) > 0 {
		if err := clone.SetVariations(rows); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, clone); err != nil {
		return nil, err
	}
	s.logger.Info("listing cloned",
		zap.String("source_id", sourceID.String()),
		zap.String("clone_id", clone.ID.String()))
	return clone, nil
}

// copyName appends a copy marker, keeping the result within the name
// length limit.
func copyName(name string) string {
	const marker = " (Copy)"
	if len(name)+len(marker) > catalog.MaxListingNameLength {
		name = strings.TrimSpace(name[:catalog.MaxListingNameLength-len(marker)])
	}
	return name + marker
}

// ExtractTemplate builds a reusable template from a stored listing.
func (s *Service) ExtractTemplate(ctx context.Context, sourceID uuid.UUID) (*Template, error) {
	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(source.Variations))
	for i, v := range source.Variations {
		names[i] = v.Name
	}
	return &Template{
		Name:           source.Name,
		Category:       source.Category,
		Subcategory:    source.Subcategory,
		Brand:          source.Brand,
		VariationNames: names,
		BulkPricing:    append([]catalog.BulkTier(nil), source.BulkPricing...),
	}, nil
}

// NewFromTemplate creates and stores a fresh draft from a template.
func (s *Service) NewFromTemplate(ctx context.Context, tpl *Template, name string) (*catalog.Listing, error) {
	if name == "" {
		name = tpl.Name
	}
	draft, err := catalog.NewListing(name, tpl.Category)
	if err != nil {
		return nil, err
	}
	draft.Subcategory = tpl.Subcategory
	draft.Brand = tpl.Brand
	draft.BulkPricing = append([]catalog.BulkTier(nil), tpl.BulkPricing...)

	if len(tpl.VariationNames) > 0 {
		rows := make([]catalog.VariationRow, len(tpl.VariationNames))
		for i, n := range tpl.VariationNames {
			rows[i] = catalog.VariationRow{Name: n}
		}
		if err := draft.SetVariations(rows); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}
