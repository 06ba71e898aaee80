package listing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
)

func TestCloneListing(t *testing.T) {
	ctx := context.Background()

	t.Run("clone keeps structure, resets stock and images", func(t *testing.T) {
		svc, repo, _ := fixture(t)
		source := draftListing(t)
		source.Brand = "Northwind"
		source.Subcategory = "totes"
		source.BulkPricing = []catalog.BulkTier{{MinQuantity: 50, UnitPrice: decimal.NewFromFloat(6.00)}}
		require.NoError(t, svc.SaveListing(ctx, source, sessionImages()))

		clone, err := svc.CloneListing(ctx, source.ID)
		require.NoError(t, err)

		assert.NotEqual(t, source.ID, clone.ID)
		assert.Equal(t, "Canvas Tote (Copy)", clone.Name)
		assert.Equal(t, "bags", clone.Category)
		assert.Equal(t, "totes", clone.Subcategory)
		assert.Equal(t, "Northwind", clone.Brand)
		assert.Empty(t, clone.Images)
		require.Len(t, clone.Variations, 2)
		assert.Equal(t, "Natural", clone.Variations[0].Name)
		assert.Equal(t, int64(0), clone.Variations[0].Stock)
		assert.Equal(t, "6.8", clone.Variations[0].Price.String())
		require.Len(t, clone.BulkPricing, 1)

		// clone is persisted
		stored, err := repo.FindByID(ctx, clone.ID)
		require.NoError(t, err)
		assert.Equal(t, clone.Name, stored.Name)
	})

	t.Run("long names stay within the limit", func(t *testing.T) {
		svc, repo, _ := fixture(t)
		long := strings.Repeat("x", catalog.MaxListingNameLength)
		source, err := catalog.NewListing(long, "bags")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, source))

		clone, err := svc.CloneListing(ctx, source.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(clone.Name), catalog.MaxListingNameLength)
		assert.True(t, strings.HasSuffix(clone.Name, " (Copy)"))
	})

	t.Run("unknown source", func(t *testing.T) {
		svc, _, _ := fixture(t)
		_, err := svc.CloneListing(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := fixture(t)
	source := draftListing(t)
	source.Brand = "Northwind"
	require.NoError(t, svc.SaveListing(ctx, source, nil))

	tpl, err := svc.ExtractTemplate(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, "Canvas Tote", tpl.Name)
	assert.Equal(t, []string{"Natural", "Black"}, tpl.VariationNames)

	draft, err := svc.NewFromTemplate(ctx, tpl, "Linen Tote")
	require.NoError(t, err)
	assert.Equal(t, "Linen Tote", draft.Name)
	assert.Equal(t, "bags", draft.Category)
	assert.Equal(t, "Northwind", draft.Brand)
	require.Len(t, draft.Variations, 2)
	assert.True(t, draft.Variations[0].Price.IsZero())

	t.Run("empty name falls back to template name", func(t *testing.T) {
		draft, err := svc.NewFromTemplate(ctx, tpl, "")
		require.NoError(t, err)
		assert.Equal(t, "Canvas Tote", draft.Name)
	})
}
