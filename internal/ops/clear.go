package ops

import (
	"database/sql"

	"github.com/hollyoak/loom/internal/config"
)

// ClearInput contains parameters for the Clear operation.
type ClearInput struct {
	ID   string
	Name string
}

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Category CategoryView `json:"category"`
}

// Clear empties a category's text. The prior value is pushed onto the
// undo stack unconditionally, even when already empty: an explicit clear
// is always undoable.
func Clear(database *sql.DB, cfg *config.Config, input ClearInput) (*ClearOutput, error) {
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
	out.Clear(cfg.UndoDepth)
	st.reconcileAt(idx)

	if err := saveState(database, st); err != nil {
		return nil, err
	}

	return &ClearOutput{Category: viewOf(cat, out)}, nil
}
