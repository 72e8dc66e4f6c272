package ops

import (
	"database/sql"
	"fmt"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/errors"
)

// ToggleInput contains parameters for the Toggle operation.
type ToggleInput struct {
	ID      string // category id (or use Name)
	Name    string // category name
	Index   int    // option index within the category
	Checked bool   // desired state for the option
}

// ToggleOutput contains the result of the Toggle operation.
type ToggleOutput struct {
	Changed  bool         `json:"changed"`
	Category CategoryView `json:"category"`
}

// Toggle applies a single checkbox toggle to a category: it adds or
// removes the addressed option's token in the category text, reconciles
// the selection, and persists the whole state. Toggles that leave the text
// unchanged push nothing onto the undo stack.
func Toggle(database *sql.DB, cfg *config.Config, input ToggleInput) (*ToggleOutput, error) {
	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	idx, err := st.resolve(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	cat := &st.Categories[idx]
	if input.Index < 0 || input.Index >= len(cat.Options) {
		return nil, errors.NewInvalidRequest(
			fmt.Sprintf("option index %d out of range (category has %d options)", input.Index, len(cat.Options)))
	}

	out := st.Outputs[cat.ID]
	changed := out.SetToken(cat.Options[input.Index], input.Checked, cfg.UndoDepth)
	st.reconcileAt(idx)

	if changed {
		if err := saveState(database, st); err != nil {
			return nil, err
		}
	}

	return &ToggleOutput{Changed: changed, Category: viewOf(cat, out)}, nil
}
