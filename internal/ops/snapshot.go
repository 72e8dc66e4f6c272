package ops

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// SnapshotInput contains parameters for the SnapshotSave operation.
// Day and At default to the current local day and time when zero; tests
// supply fixed values to simulate day rollover deterministically.
type SnapshotInput struct {
	Day string
	At  time.Time
}

// SnapshotOutput contains the result of the SnapshotSave operation.
type SnapshotOutput struct {
	Entry prompt.HistoryEntry `json:"entry"`
}

// SnapshotSave appends a timestamped copy of the current summary to the
// day's history log, most recent first in listing order. Saving an empty
// summary is rejected with EMPTY_SUMMARY so the caller can tell the user
// there is nothing to save.
func SnapshotSave(database *sql.DB, input SnapshotInput) (*SnapshotOutput, error) {
	at := input.At
	if at.IsZero() {
		at = time.Now()
	}
	day := input.Day
	if day == "" {
		day = prompt.DayKey(at)
	}

	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(prompt.BuildSummary(st.Categories, st.Outputs))
	if text == "" {
		return nil, errors.NewEmptySummary()
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	entry := prompt.HistoryEntry{
		ID:        id,
		Day:       day,
		Clock:     prompt.ClockStamp(at),
		Text:      text,
		CreatedAt: at.Unix(),
	}
	if err := db.InsertHistory(database, &entry); err != nil {
		return nil, err
	}

	return &SnapshotOutput{Entry: entry}, nil
}
