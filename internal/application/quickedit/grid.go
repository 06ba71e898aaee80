package quickedit

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
)

// DefaultMaxUndo bounds the undo history.
const DefaultMaxUndo = 50

// DefaultAutoSaveDelay is how long the grid stays idle before an
// auto-save would fire. Auto-save is not wired yet; see the TODO on
// SaveAllChanges.
const DefaultAutoSaveDelay = 2 * time.Second

// HighlightDuration is how long a saved row stays visually marked.
const HighlightDuration = 3 * time.Second

// cellKey addresses one cell for pending-change bookkeeping.
type cellKey struct {
	Row int
	Col catalog.Column
}

// CellEdit is one cell mutation with both sides recorded, so history can
// replay it in either direction.
type CellEdit struct {
	Row int
	Col catalog.Column
	Old decimal.Decimal
	New decimal.Decimal
}

// historyEntry groups the edits of one user action. A single keystroke
// commit holds one edit; a paste holds every cell it touched, so undo
// reverses the whole paste at once.
type historyEntry struct {
	edits []CellEdit
}

// PendingChange is one unsaved difference from the loaded data.
type PendingChange struct {
	Row int
	Col catalog.Column
	Old decimal.Decimal
	New decimal.Decimal
}

// SaveFunc persists the grid's rows. The changes list names every cell
// that differs from the loaded baseline, keyed by row and column, so
// implementations can write field-level updates instead of whole rows.
// Implemented by the listing service.
type SaveFunc func(ctx context.Context, changes []PendingChange, rows []catalog.VariationRow) error

// Grid is the bulk-edit model over a listing's variation rows: cell
// commits with input coercion, pending-change tracking against the
// loaded baseline, bounded undo/redo and batch save. Not safe for
// concurrent use.
type Grid struct {
	rows     []catalog.VariationRow
	baseline []catalog.VariationRow
	pending  map[cellKey]PendingChange
	undo     []historyEntry
	redo     []historyEntry
	maxUndo  int
	logger   *zap.Logger
}

// GridOption configures a Grid.
type GridOption func(*Grid)

// WithMaxUndo overrides the undo history bound.
func WithMaxUndo(n int) GridOption {
	return func(g *Grid) {
		if n > 0 {
			g.maxUndo = n
		}
	}
}

// WithGridLogger sets the logger.
func WithGridLogger(logger *zap.Logger) GridOption {
	return func(g *Grid) {
		g.logger = logger
	}
}

// NewGrid creates a grid loaded with the given rows.
func NewGrid(rows []catalog.VariationRow, opts ...GridOption) *Grid {
	g := &Grid{
		maxUndo: DefaultMaxUndo,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.SetData(rows)
	return g
}

// SetData replaces the grid contents and resets all edit state: pending
// changes, undo and redo all start over from the new baseline.
func (g *Grid) SetData(rows []catalog.VariationRow) {
	g.rows = catalog.CloneRows(rows)
	g.baseline = catalog.CloneRows(rows)
	g.pending = make(map[cellKey]PendingChange)
	g.undo = nil
	g.redo = nil
}

// Rows returns a copy of the current rows.
func (g *Grid) Rows() []catalog.VariationRow {
	return catalog.CloneRows(g.rows)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// Cell returns the current value of one cell.
func (g *Grid) Cell(row int, col catalog.Column) (decimal.Decimal, error) {
	if err := g.checkCell(row, col); err != nil {
		return decimal.Zero, err
	}
	return g.rows[row].Value(col), nil
}

func (g *Grid) checkCell(row int, col catalog.Column) error {
	if row < 0 || row >= len(g.rows) {
		return shared.NewValidationError("ROW_OUT_OF_RANGE",
			"Row does not exist", "Please refresh and try again.")
	}
	if !col.Editable() {
		return shared.NewValidationError("COLUMN_READ_ONLY",
			"This column cannot be edited", "Only stock, price and retail price are editable.")
	}
	return nil
}

// CommitCell coerces raw input and writes it into one cell. Invalid and
// negative input becomes zero. Committing the value a cell already
// holds is a no-op and records no history.
func (g *Grid) CommitCell(row int, col catalog.Column, raw string) error {
	if err := g.checkCell(row, col); err != nil {
		return err
	}

	var next decimal.Decimal
	if col == catalog.ColStock {
		next = decimal.NewFromInt(catalog.CoerceStock(raw))
	} else {
		next = catalog.CoercePrice(raw)
	}

	current := g.rows[row].Value(col)
	if current.Equal(next) {
		return nil
	}

	edit := CellEdit{Row: row, Col: col, Old: current, New: next}
	g.apply([]CellEdit{edit})
	g.pushHistory(historyEntry{edits: []CellEdit{edit}})
	return nil
}

// apply writes edits into rows and reconciles pending changes against
// the baseline. A cell edited back to its loaded value is no longer
// pending.
func (g *Grid) apply(edits []CellEdit) {
	for _, e := range edits {
		g.rows[e.Row].SetValue(e.Col, e.New)

		key := cellKey{Row: e.Row, Col: e.Col}
		base := g.baseline[e.Row].Value(e.Col)
		if base.Equal(e.New) {
			delete(g.pending, key)
		} else {
			g.pending[key] = PendingChange{Row: e.Row, Col: e.Col, Old: base, New: e.New}
		}
	}
}

// pushHistory records a completed action and invalidates redo. The undo
// stack is bounded; the oldest entry falls off first.
func (g *Grid) pushHistory(entry historyEntry) {
	g.undo = append(g.undo, entry)
	if len(g.undo) > g.maxUndo {
		g.undo = g.undo[len(g.undo)-g.maxUndo:]
	}
	g.redo = nil
}

// Undo reverses the most recent action. Returns false when there is
// nothing to undo.
func (g *Grid) Undo() bool {
	if len(g.undo) == 0 {
		return false
	}
	entry := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]

	reversed := make([]CellEdit, len(entry.edits))
	for i, e := range entry.edits {
		reversed[i] = CellEdit{Row: e.Row, Col: e.Col, Old: e.New, New: e.Old}
	}
	g.apply(reversed)
	g.redo = append(g.redo, entry)
	return true
}

// Redo re-applies the most recently undone action. Returns false when
// there is nothing to redo.
func (g *Grid) Redo() bool {
	if len(g.redo) == 0 {
		return false
	}
	entry := g.redo[len(g.redo)-1]
	g.redo = g.redo[:len(g.redo)-1]

	g.apply(entry.edits)
	g.undo = append(g.undo, entry)
	if len(g.undo) > g.maxUndo {
		g.undo = g.undo[len(g.undo)-g.maxUndo:]
	}
	return true
}

// CanUndo reports whether an undo is available.
func (g *Grid) CanUndo() bool { return len(g.undo) > 0 }

// CanRedo reports whether a redo is available.
func (g *Grid) CanRedo() bool { return len(g.redo) > 0 }

// HasPendingChanges reports whether any cell differs from the baseline.
func (g *Grid) HasPendingChanges() bool { return len(g.pending) > 0 }

// PendingCount returns the number of cells that differ from the baseline.
func (g *Grid) PendingCount() int { return len(g.pending) }

// PendingChanges returns the unsaved differences in row-then-column order.
func (g *Grid) PendingChanges() []PendingChange {
	out := make([]PendingChange, 0, len(g.pending))
	for _, pc := range g.pending {
		out = append(out, pc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// SaveAllChanges persists the current rows through the save function.
// On success the saved state becomes the new baseline and all edit
// history is cleared. On failure pending changes survive so the user
// can retry.
//
// TODO: drive this from an idle timer using DefaultAutoSaveDelay once
// the grid gets a change listener.
func (g *Grid) SaveAllChanges(ctx context.Context, save SaveFunc) error {
	if save == nil {
		return shared.NewValidationError("NO_SAVE_TARGET",
			"Nowhere to save changes", "Please report this problem.")
	}
	if len(g.pending) == 0 {
		return nil
	}

	changes := g.PendingChanges()
	snapshot := catalog.CloneRows(g.rows)
	if err := save(ctx, changes, snapshot); err != nil {
		g.logger.Warn("grid save failed", zap.Int("pending", len(g.pending)), zap.Error(err))
		if shared.KindOf(err) != shared.KindUnknown {
			return err
		}
		return shared.ErrPersistenceFailed
	}

	g.baseline = snapshot
	g.pending = make(map[cellKey]PendingChange)
	g.undo = nil
	g.redo = nil
	return nil
}

// DiscardChanges restores every cell to the baseline and clears all
// edit history.
func (g *Grid) DiscardChanges() {
	g.rows = catalog.CloneRows(g.baseline)
	g.pending = make(map[cellKey]PendingChange)
	g.undo = nil
	g.redo = nil
}
