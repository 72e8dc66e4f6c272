package ops

import (
	"database/sql"
	"time"

	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/prompt"
)

// HistoryListInput contains parameters for the HistoryList operation.
type HistoryListInput struct {
	Day string // defaults to the current local day
}

// HistoryListOutput contains the result of the HistoryList operation.
type HistoryListOutput struct {
	Day     string                `json:"day"`
	Entries []prompt.HistoryEntry `json:"entries"`
}

// HistoryList returns one day's snapshots, most recent first.
func HistoryList(database *sql.DB, input HistoryListInput) (*HistoryListOutput, error) {
	day := input.Day
	if day == "" {
		day = prompt.DayKey(time.Now())
	}

	entries, err := db.ListHistory(database, day, true)
	if err != nil {
		return nil, err
	}
	return &HistoryListOutput{Day: day, Entries: entries}, nil
}

// HistoryGetInput contains parameters for the HistoryGet operation.
type HistoryGetInput struct {
	ID string
}

// HistoryGetOutput contains the result of the HistoryGet operation.
type HistoryGetOutput struct {
	Entry prompt.HistoryEntry `json:"entry"`
}

// HistoryGet fetches one snapshot by id, for copying a past summary.
func HistoryGet(database *sql.DB, input HistoryGetInput) (*HistoryGetOutput, error) {
	entry, err := db.GetHistoryByID(database, input.ID)
	if err != nil {
		return nil, err
	}
	return &HistoryGetOutput{Entry: *entry}, nil
}

// HistoryDeleteInput contains parameters for the HistoryDelete operation.
type HistoryDeleteInput struct {
	ID string
}

// HistoryDeleteOutput contains the result of the HistoryDelete operation.
type HistoryDeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// HistoryDelete removes one snapshot by id. A missing id is a silent
// no-op: Deleted reports false and no error is returned.
func HistoryDelete(database *sql.DB, input HistoryDeleteInput) (*HistoryDeleteOutput, error) {
	deleted, err := db.DeleteHistory(database, input.ID)
	if err != nil {
		return nil, err
	}
	return &HistoryDeleteOutput{Deleted: deleted}, nil
}

// HistoryClearInput contains parameters for the HistoryClear operation.
type HistoryClearInput struct {
	Day string // defaults to the current local day
}

// HistoryClearOutput contains the result of the HistoryClear operation.
type HistoryClearOutput struct {
	Cleared int `json:"cleared"`
}

// HistoryClear empties one day's log.
func HistoryClear(database *sql.DB, input HistoryClearInput) (*HistoryClearOutput, error) {
	day := input.Day
	if day == "" {
		day = prompt.DayKey(time.Now())
	}

	cleared, err := db.ClearHistory(database, day)
	if err != nil {
		return nil, err
	}
	return &HistoryClearOutput{Cleared: cleared}, nil
}
