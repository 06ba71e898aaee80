package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	t.Run("valid listing", func(t *testing.T) {
		l, err := NewListing("Cotton T-Shirt", "apparel")
		require.NoError(t, err)
		assert.Equal(t, "Cotton T-Shirt", l.Name)
		assert.Equal(t, "apparel", l.Category)
		assert.NotEqual(t, "", l.ID.String())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewListing("   ", "apparel")
		assert.Error(t, err)
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		long := make([]byte, MaxListingNameLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := NewListing(string(long), "apparel")
		assert.Error(t, err)
	})
}

func TestListingSetImages(t *testing.T) {
	l, err := NewListing("Mug", "home")
	require.NoError(t, err)

	t.Run("renumbers sort order", func(t *testing.T) {
		err := l.SetImages([]ImageRef{
			{Key: "b.jpg", SortOrder: 7},
			{Key: "a.jpg", SortOrder: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, l.Images[0].SortOrder)
		assert.Equal(t, 1, l.Images[1].SortOrder)
		assert.Equal(t, "b.jpg", l.Images[0].Key)
	})

	t.Run("rejects more than five", func(t *testing.T) {
		refs := make([]ImageRef, MaxListingImages+1)
		assert.Error(t, l.SetImages(refs))
	})
}

func TestListingSetVariations(t *testing.T) {
	l, err := NewListing("Mug", "home")
	require.NoError(t, err)

	t.Run("stores a copy", func(t *testing.T) {
		rows := []VariationRow{{Name: "Small", Stock: 3}}
		require.NoError(t, l.SetVariations(rows))
		rows[0].Stock = 99
		assert.Equal(t, int64(3), l.Variations[0].Stock)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		err := l.SetVariations([]VariationRow{{Name: "A"}, {Name: "A"}})
		assert.Error(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := l.SetVariations([]VariationRow{{Name: "  "}})
		assert.Error(t, err)
	})
}

func TestListingDocumentRoundTrip(t *testing.T) {
	l, err := NewListing("Desk Lamp", "home")
	require.NoError(t, err)
	require.NoError(t, l.SetVariations([]VariationRow{
		{Name: "Black", Stock: 12, Price: decimal.NewFromFloat(14.50)},
	}))
	l.BulkPricing = []BulkTier{{MinQuantity: 10, UnitPrice: decimal.NewFromFloat(12.00)}}

	data, err := l.ToDocument()
	require.NoError(t, err)

	got, err := ListingFromDocument(data)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, "Desk Lamp", got.Name)
	require.Len(t, got.Variations, 1)
	assert.Equal(t, "14.5", got.Variations[0].Price.String())
	require.Len(t, got.BulkPricing, 1)
	assert.Equal(t, int64(10), got.BulkPricing[0].MinQuantity)
}

func TestListingFromDocumentInvalid(t *testing.T) {
	_, err := ListingFromDocument([]byte("{not json"))
	assert.Error(t, err)
}
