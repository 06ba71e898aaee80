package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column identifies one editable field of a variation row.
type Column int

const (
	ColName Column = iota
	ColStock
	ColPrice
	ColRetail
)

// ColumnCount is the number of grid columns per variation row.
const ColumnCount = 4

// String returns the column's display name.
func (c Column) String() string {
	switch c {
	case ColName:
		return "name"
	case ColStock:
		return "stock"
	case ColPrice:
		return "price"
	case ColRetail:
		return "retail"
	default:
		return "unknown"
	}
}

// Editable reports whether the column accepts user edits. Variation names
// identify rows and are read-only in the grid.
func (c Column) Editable() bool {
	return c == ColStock || c == ColPrice || c == ColRetail
}

// VariationRow is one sellable variation of a listing: its identifying
// name plus the three numeric fields the bulk editor operates on.
type VariationRow struct {
	Name   string          `json:"name"`
	Stock  int64           `json:"stock"`
	Price  decimal.Decimal `json:"price"`
	Retail decimal.Decimal `json:"retail"`
}

// CoerceStock parses raw user input into a stock count. Invalid, empty,
// and negative input all coerce to zero.
func CoerceStock(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CoercePrice parses raw user input into a monetary amount. Invalid,
// empty, and negative input all coerce to zero.
func CoercePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Value returns the row's value for a column as a decimal. Stock counts
// are widened so every grid cell shares one value type.
func (r *VariationRow) Value(col Column) decimal.Decimal {
	switch col {
	case ColStock:
		return decimal.NewFromInt(r.Stock)
	case ColPrice:
		return r.Price
	case ColRetail:
		return r.Retail
	default:
		return decimal.Zero
	}
}

// SetValue writes a decimal value into the row's column. Stock values are
// truncated to whole units; negative values clamp to zero. Writes to
// non-editable columns are ignored.
func (r *VariationRow) SetValue(col Column, v decimal.Decimal) {
	if v.IsNegative() {
		v = decimal.Zero
	}
	switch col {
	case ColStock:
		r.Stock = v.IntPart()
	case ColPrice:
		r.Price = v
	case ColRetail:
		r.Retail = v
	}
}

// CloneRows deep-copies a slice of variation rows.
func CloneRows(rows []VariationRow) []VariationRow {
	if rows == nil {
		return nil
	}
	out := make([]VariationRow, len(rows))
	copy(out, rows)
	return out
}
