package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
)

func newListing(t *testing.T, name, category string) *catalog.Listing {
	t.Helper()
	l, err := catalog.NewListing(name, category)
	require.NoError(t, err)
	require.NoError(t, l.SetVariations([]catalog.VariationRow{
		{Name: "Default", Stock: 5, Price: decimal.NewFromFloat(2.50)},
	}))
	return l
}

func TestMemoryListingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryListingRepository()

	t.Run("save and find by id", func(t *testing.T) {
		l := newListing(t, "Ceramic Mug", "home")
		require.NoError(t, repo.Save(ctx, l))

		got, err := repo.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ceramic Mug", got.Name)
		require.Len(t, got.Variations, 1)
		assert.Equal(t, "2.5", got.Variations[0].Price.String())
	})

	t.Run("find by id returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save again updates", func(t *testing.T) {
		l := newListing(t, "Tea Pot", "home")
		require.NoError(t, repo.Save(ctx, l))
		require.NoError(t, l.Rename("Tea Pot Deluxe"))
		require.NoError(t, repo.Save(ctx, l))

		got, err := repo.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tea Pot Deluxe", got.Name)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(2))
	})

	t.Run("find by category", func(t *testing.T) {
		repo := NewMemoryListingRepository()
		require.NoError(t, repo.Save(ctx, newListing(t, "Mug", "home")))
		require.NoError(t, repo.Save(ctx, newListing(t, "Shirt", "apparel")))

		home, err := repo.FindByCategory(ctx, "home")
		require.NoError(t, err)
		require.Len(t, home, 1)
		assert.Equal(t, "Mug", home[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		repo := NewMemoryListingRepository()
		l := newListing(t, "Mug", "home")
		require.NoError(t, repo.Save(ctx, l))
		require.NoError(t, repo.Delete(ctx, l.ID))
		_, err := repo.FindByID(ctx, l.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, l.ID), shared.ErrNotFound)
	})

	t.Run("stored listing is isolated from later mutation", func(t *testing.T) {
		repo := NewMemoryListingRepository()
		l := newListing(t, "Mug", "home")
		require.NoError(t, repo.Save(ctx, l))
		l.Variations[0].Stock = 999

		got, err := repo.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Variations[0].Stock)
	})
}
