package quickedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/storefront/internal/domain/catalog"
)

func TestGridPaste(t *testing.T) {
	t.Run("block fills rows and columns", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColStock, "5\t1.50\t3.00\n6\t1.60\t3.20\n")
		require.NoError(t, err)
		assert.Equal(t, 6, res.Applied)
		assert.Equal(t, 0, res.Skipped)

		assert.Equal(t, "5", cellString(t, g, 0, catalog.ColStock))
		assert.Equal(t, "1.5", cellString(t, g, 0, catalog.ColPrice))
		assert.Equal(t, "3", cellString(t, g, 0, catalog.ColRetail))
		assert.Equal(t, "6", cellString(t, g, 1, catalog.ColStock))
		assert.Equal(t, 6, g.PendingCount())
	})

	t.Run("whole paste undoes as one action", func(t *testing.T) {
		g := NewGrid(testRows())
		_, err := g.Paste(0, catalog.ColStock, "5\t1.50\n6\t1.60")
		require.NoError(t, err)

		require.True(t, g.Undo())
		assert.Equal(t, "10", cellString(t, g, 0, catalog.ColStock))
		assert.Equal(t, "4", cellString(t, g, 0, catalog.ColPrice))
		assert.Equal(t, "20", cellString(t, g, 1, catalog.ColStock))
		assert.Equal(t, 0, g.PendingCount())
		assert.False(t, g.CanUndo())

		require.True(t, g.Redo())
		assert.Equal(t, "5", cellString(t, g, 0, catalog.ColStock))
		assert.Equal(t, 4, g.PendingCount())
	})

	t.Run("overflow past last row is skipped", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(2, catalog.ColStock, "7\n8\n9")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied)
		assert.Equal(t, 2, res.Skipped)
		assert.Equal(t, "7", cellString(t, g, 2, catalog.ColStock))
	})

	t.Run("overflow past last column is skipped", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColRetail, "2.00\t99\t98")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied)
		assert.Equal(t, 2, res.Skipped)
	})

	t.Run("invalid cells coerce to zero", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColStock, "oops\t-3.50")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Applied)
		assert.Equal(t, "0", cellString(t, g, 0, catalog.ColStock))
		assert.Equal(t, "0", cellString(t, g, 0, catalog.ColPrice))
	})

	t.Run("values equal to current are not recorded", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColStock, "10\t4.00")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Applied)
		assert.False(t, g.CanUndo())
	})

	t.Run("anchor on name column rejected", func(t *testing.T) {
		g := NewGrid(testRows())
		_, err := g.Paste(0, catalog.ColName, "5")
		assert.Error(t, err)
	})

	t.Run("empty clipboard is a no-op", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColStock, "")
		require.NoError(t, err)
		assert.Equal(t, PasteResult{}, res)
	})

	t.Run("windows line endings handled", func(t *testing.T) {
		g := NewGrid(testRows())
		res, err := g.Paste(0, catalog.ColStock, "5\r\n6\r\n")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Applied)
		assert.Equal(t, "6", cellString(t, g, 1, catalog.ColStock))
	})
}
