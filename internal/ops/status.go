package ops

import (
	"database/sql"
)

// StatusOutput contains the result of the Status operation.
type StatusOutput struct {
	Version    int            `json:"version"`
	Categories []CategoryView `json:"categories"`
}

// Status returns the full composer state as seen by UI layers: every
// category with its options, derived selection, text, dirty flag, and
// undo depth.
func Status(database *sql.DB) (*StatusOutput, error) {
	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(st.Categories))
	for i := range st.Categories {
		cat := &st.Categories[i]
		views = append(views, viewOf(cat, st.Outputs[cat.ID]))
	}

	return &StatusOutput{Version: st.Version, Categories: views}, nil
}
