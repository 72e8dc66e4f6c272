package ops

import (
	"database/sql"
	"strings"

	"github.com/hollyoak/loom/internal/prompt"
)

// SummaryOutput contains the result of the Summary operation.
type SummaryOutput struct {
	Summary        string `json:"summary"`
	Parts          int    `json:"parts"`
	SummaryChars   int    `json:"summary_chars"`
	TokensEstimate int    `json:"tokens_estimate"`
}

// Summary aggregates all non-empty category texts, in category order,
// into one string joined by blank lines. It is recomputed from scratch on
// every call; there is no incremental diffing to drift.
func Summary(database *sql.DB) (*SummaryOutput, error) {
	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	text := prompt.BuildSummary(st.Categories, st.Outputs)

	parts := 0
	for _, cat := range st.Categories {
		if out := st.Outputs[cat.ID]; out != nil && strings.TrimSpace(out.Text) != "" {
			parts++
		}
	}

	return &SummaryOutput{
		Summary:        text,
		Parts:          parts,
		SummaryChars:   prompt.CountChars(text),
		TokensEstimate: prompt.EstimateTokens(text),
	}, nil
}
