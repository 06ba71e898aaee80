package quickedit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/storefront/internal/domain/catalog"
)

// PasteResult summarizes one paste: how many cells were written and how
// many clipboard cells were skipped because they landed outside the
// grid or on a read-only column.
type PasteResult struct {
	Applied int
	Skipped int
}

// Paste writes a block of tab-separated clipboard text into the grid,
// anchored at the given cell. Cells falling on the name column or
// outside the grid are skipped. The whole paste is recorded as one
// action, so a single undo reverses all of it.
func (g *Grid) Paste(startRow int, startCol catalog.Column, clipboard string) (PasteResult, error) {
	if err := g.checkCell(startRow, startCol); err != nil {
		return PasteResult{}, err
	}

	var result PasteResult
	var edits []CellEdit

	for r, line := range parseClipboard(clipboard) {
		row := startRow + r
		for c, raw := range line {
			col := startCol + catalog.Column(c)
			if row >= len(g.rows) || col >= catalog.ColumnCount || !col.Editable() {
				result.Skipped++
				continue
			}

			var next decimal.Decimal
			if col == catalog.ColStock {
				next = decimal.NewFromInt(catalog.CoerceStock(raw))
			} else {
				next = catalog.CoercePrice(raw)
			}

			current := g.rows[row].Value(col)
			if current.Equal(next) {
				continue
			}
			edits = append(edits, CellEdit{Row: row, Col: col, Old: current, New: next})
			result.Applied++
		}
	}

	if len(edits) > 0 {
		g.apply(edits)
		g.pushHistory(historyEntry{edits: edits})
	}
	return result, nil
}

// parseClipboard splits clipboard text into rows of cells. A single
// trailing newline, as most spreadsheets append, is not a row.
func parseClipboard(clipboard string) [][]string {
	clipboard = strings.TrimSuffix(strings.ReplaceAll(clipboard, "\r\n", "\n"), "\n")
	if clipboard == "" {
		return nil
	}
	lines := strings.Split(clipboard, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Split(line, "\t")
	}
	return out
}
