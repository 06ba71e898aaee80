package quickedit

import "github.com/erp/storefront/internal/domain/catalog"

// Key is a navigation keystroke in the grid.
type Key int

const (
	KeyTab Key = iota
	KeyShiftTab
	KeyEnter
	KeyShiftEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Caret describes where the text cursor sits inside the active cell.
// Left and Right arrows only leave a cell from its matching edge.
type Caret int

const (
	CaretMiddle Caret = iota
	CaretStart
	CaretEnd
)

// Position is one editable cell address.
type Position struct {
	Row int
	Col catalog.Column
}

// editableCols in left-to-right grid order.
var editableCols = []catalog.Column{catalog.ColStock, catalog.ColPrice, catalog.ColRetail}

func colIndex(col catalog.Column) int {
	for i, c := range editableCols {
		if c == col {
			return i
		}
	}
	return -1
}

// Navigate resolves a keystroke into the next cell position. Tab walks
// editable cells left to right and wraps to the next row; Enter moves
// down the column; arrows move one cell, with Left and Right requiring
// the caret at the cell edge. Returns ok=false when the keystroke does
// not leave the current cell, such as at the grid boundary.
func Navigate(pos Position, key Key, caret Caret, rowCount int) (Position, bool) {
	ci := colIndex(pos.Col)
	if ci < 0 || pos.Row < 0 || pos.Row >= rowCount {
		return pos, false
	}

	switch key {
	case KeyTab:
		if ci+1 < len(editableCols) {
			return Position{Row: pos.Row, Col: editableCols[ci+1]}, true
		}
		if pos.Row+1 < rowCount {
			return Position{Row: pos.Row + 1, Col: editableCols[0]}, true
		}
	case KeyShiftTab:
		if ci > 0 {
			return Position{Row: pos.Row, Col: editableCols[ci-1]}, true
		}
		if pos.Row > 0 {
			return Position{Row: pos.Row - 1, Col: editableCols[len(editableCols)-1]}, true
		}
	case KeyEnter, KeyDown:
		if pos.Row+1 < rowCount {
			return Position{Row: pos.Row + 1, Col: pos.Col}, true
		}
	case KeyShiftEnter, KeyUp:
		if pos.Row > 0 {
			return Position{Row: pos.Row - 1, Col: pos.Col}, true
		}
	case KeyLeft:
		if caret == CaretStart && ci > 0 {
			return Position{Row: pos.Row, Col: editableCols[ci-1]}, true
		}
	case KeyRight:
		if caret == CaretEnd && ci+1 < len(editableCols) {
			return Position{Row: pos.Row, Col: editableCols[ci+1]}, true
		}
	}
	return pos, false
}
