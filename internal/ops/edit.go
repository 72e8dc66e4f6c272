package ops

import (
	"database/sql"

	"github.com/hollyoak/loom/internal/config"
)

// EditInput contains parameters for the Edit operation.
type EditInput struct {
	ID   string
	Name string
	Text string // the new free text, replacing the category text wholesale
}

// EditOutput contains the result of the Edit operation.
type EditOutput struct {
	Changed  bool         `json:"changed"`
	Category CategoryView `json:"category"`
}

// Edit replaces a category's free text with a direct user edit and
// reconciles the selection from the new text. Consecutive notifications
// carrying the same text are deduplicated against the last observed value
// so keystrokes that change nothing never pollute the undo stack.
func Edit(database *sql.DB, cfg *config.Config, input EditInput) (*EditOutput, error) {
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
	changed := out.SetText(input.Text, cfg.UndoDepth)
	st.reconcileAt(idx)

	if err := saveState(database, st); err != nil {
		return nil, err
	}

	return &EditOutput{Changed: changed, Category: viewOf(cat, out)}, nil
}
