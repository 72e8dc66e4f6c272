package ops

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/prompt"
)

// PurgeStaleInput contains parameters for the PurgeStale operation.
type PurgeStaleInput struct {
	Day string // the day to keep; defaults to the current local day
}

// PurgeStaleOutput contains the result of the PurgeStale operation.
type PurgeStaleOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// PurgeStale removes history entries partitioned under any day other than
// the given one. Run once at process start; history is a same-day scratch
// log, not an archive.
func PurgeStale(database *sql.DB, input PurgeStaleInput) (*PurgeStaleOutput, error) {
	day := input.Day
	if day == "" {
		day = prompt.DayKey(time.Now())
	}

	count, err := db.PurgeOtherDays(database, day)
	if err != nil {
		return nil, err
	}

	return &PurgeStaleOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, day),
	}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, day string) string {
	if count == 0 {
		return "No stale history entries to purge"
	}
	entryWord := "entry"
	if count > 1 {
		entryWord = "entries"
	}
	return fmt.Sprintf("Purged %d stale history %s (kept day %s)", count, entryWord, day)
}
