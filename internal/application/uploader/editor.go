package uploader

import (
	"image"

	"github.com/erp/storefront/internal/domain/shared"
)

// Editor applies crop and rotate operations to one session image. It is
// closed until Open is called; edits accumulate on a working copy and
// only reach the session on Commit. Cancel or Commit closes it again.
type Editor struct {
	session *Session
	index   int
	working []byte
	dirty   bool
	open    bool
}

// NewEditor creates a closed editor bound to a session.
func NewEditor(session *Session) *Editor {
	return &Editor{session: session, index: -1}
}

// Open loads the image at the given position into the editor. Opening
// while already open is rejected; the current edit must be committed or
// cancelled first.
func (e *Editor) Open(index int) error {
	if e.open {
		return shared.NewValidationError("EDITOR_BUSY",
			"Another image is already being edited", "Please finish or cancel the current edit first.")
	}
	a, err := e.session.asset(index)
	if err != nil {
		return err
	}
	e.working = make([]byte, len(a.Renditions.Full))
	copy(e.working, a.Renditions.Full)
	e.index = index
	e.dirty = false
	e.open = true
	return nil
}

// IsOpen reports whether an image is loaded for editing.
func (e *Editor) IsOpen() bool { return e.open }

// Working returns the current working copy for display.
func (e *Editor) Working() ([]byte, error) {
	if !e.open {
		return nil, errEditorClosed()
	}
	out := make([]byte, len(e.working))
	copy(out, e.working)
	return out, nil
}

// RotateLeft turns the working copy a quarter turn counter-clockwise.
func (e *Editor) RotateLeft() error { return e.rotate(-1) }

// RotateRight turns the working copy a quarter turn clockwise.
func (e *Editor) RotateRight() error { return e.rotate(1) }

func (e *Editor) rotate(quarterTurns int) error {
	if !e.open {
		return errEditorClosed()
	}
	rotated, err := e.session.processor.Rotate(e.working, quarterTurns)
	if err != nil {
		return err
	}
	e.working = rotated
	e.dirty = true
	return nil
}

// Crop cuts the given rectangle out of the working copy.
func (e *Editor) Crop(rect image.Rectangle) error {
	if !e.open {
		return errEditorClosed()
	}
	cropped, err := e.session.processor.Crop(e.working, rect)
	if err != nil {
		return err
	}
	e.working = cropped
	e.dirty = true
	return nil
}

// Commit regenerates the image's renditions from the working copy,
// applies them to the session and closes the editor. Committing without
// any edit just closes.
func (e *Editor) Commit() error {
	if !e.open {
		return errEditorClosed()
	}
	if !e.dirty {
		e.close()
		return nil
	}
	a, err := e.session.asset(e.index)
	if err != nil {
		return err
	}
	renditions, err := e.session.processor.GenerateRenditions(e.working)
	if err != nil {
		return err
	}
	if err := a.ApplyEdit(renditions); err != nil {
		return err
	}
	e.close()
	e.session.emitChange()
	return nil
}

// Cancel discards the working copy and closes the editor.
func (e *Editor) Cancel() {
	e.close()
}

func (e *Editor) close() {
	e.working = nil
	e.index = -1
	e.dirty = false
	e.open = false
}

func errEditorClosed() error {
	return shared.NewValidationError("EDITOR_CLOSED",
		"No image is open for editing", "Please open an image first.")
}
