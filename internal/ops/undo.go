package ops

import (
	"database/sql"
)

// UndoInput contains parameters for the Undo operation.
type UndoInput struct {
	ID   string
	Name string
}

// UndoOutput contains the result of the Undo operation.
type UndoOutput struct {
	Undone   bool         `json:"undone"`
	Category CategoryView `json:"category"`
}

// Undo restores a category's most recent prior text and reconciles the
// selection from it. An empty undo stack is a silent no-op. Repeated calls
// walk further back; there is no redo.
func Undo(database *sql.DB, input UndoInput) (*UndoOutput, error) {
	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	idx, err := st.resolve(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	cat := &st.Categories[idx]
	out := st.Outputs[cat.ID]
	undone := out.Undo()
	st.reconcileAt(idx)

	if undone {
		if err := saveState(database, st); err != nil {
			return nil, err
		}
	}

	return &UndoOutput{Undone: undone, Category: viewOf(cat, out)}, nil
}
