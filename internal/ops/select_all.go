package ops

import (
	"database/sql"

	"github.com/hollyoak/loom/internal/config"
)

// SelectAllInput contains parameters for the SelectAll operation.
type SelectAllInput struct {
	ID   string
	Name string
	All  bool // true selects every option, false deselects every option
}

// SelectAllOutput contains the result of the SelectAll operation.
type SelectAllOutput struct {
	Changed  bool         `json:"changed"`
	Category CategoryView `json:"category"`
}

// SelectAll adds every option token in list order, or removes every option
// token leaving custom text untouched. The batch pushes at most one undo
// entry, and only when the net text differs from before.
func SelectAll(database *sql.DB, cfg *config.Config, input SelectAllInput) (*SelectAllOutput, error) {
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
	changed := out.SetAllOrNone(cat.Options, input.All, cfg.UndoDepth)
	st.reconcileAt(idx)

	if changed {
		if err := saveState(database, st); err != nil {
			return nil, err
		}
	}

	return &SelectAllOutput{Changed: changed, Category: viewOf(cat, out)}, nil
}
