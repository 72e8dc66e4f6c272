package ops

import (
	"testing"
	"time"

	"github.com/hollyoak/loom/internal/errors"
)

func TestHistoryList_DefaultsToToday(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := Edit(database, cfg, EditInput{ID: "subject", Text: "mixed-use block"}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if _, err := SnapshotSave(database, SnapshotInput{}); err != nil {
		t.Fatalf("SnapshotSave failed: %v", err)
	}

	list, err := HistoryList(database, HistoryListInput{})
	if err != nil {
		t.Fatalf("HistoryList failed: %v", err)
	}
	if len(list.Entries) != 1 {
		t.Fatalf("expected 1 entry for today, got %d", len(list.Entries))
	}
	if list.Day == "" {
		t.Error("expected day echoed in output")
	}
}

func TestHistoryGet_NotFound(t *testing.T) {
	database, _ := testSetup(t)

	_, err := HistoryGet(database, HistoryGetInput{ID: "01MISSING"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestHistoryDelete(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := Edit(database, cfg, EditInput{ID: "subject", Text: "transit hub"}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	saved, err := SnapshotSave(database, SnapshotInput{})
	if err != nil {
		t.Fatalf("SnapshotSave failed: %v", err)
	}

	output, err := HistoryDelete(database, HistoryDeleteInput{ID: saved.Entry.ID})
	if err != nil {
		t.Fatalf("HistoryDelete failed: %v", err)
	}
	if !output.Deleted {
		t.Error("expected deleted=true")
	}

	// Deleting a missing entry is a silent no-op
	output, err = HistoryDelete(database, HistoryDeleteInput{ID: saved.Entry.ID})
	if err != nil {
		t.Fatalf("HistoryDelete failed: %v", err)
	}
	if output.Deleted {
		t.Error("expected deleted=false for missing entry")
	}
}

func TestHistoryClear(t *testing.T) {
	database, cfg := testSetup(t)

	at := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)
	if _, err := Edit(database, cfg, EditInput{ID: "subject", Text: "take one"}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if _, err := SnapshotSave(database, SnapshotInput{At: at}); err != nil {
		t.Fatalf("SnapshotSave failed: %v", err)
	}
	if _, err := SnapshotSave(database, SnapshotInput{At: at.Add(time.Minute)}); err != nil {
		t.Fatalf("SnapshotSave failed: %v", err)
	}

	output, err := HistoryClear(database, HistoryClearInput{Day: "2026-03-07"})
	if err != nil {
		t.Fatalf("HistoryClear failed: %v", err)
	}
	if output.Cleared != 2 {
		t.Errorf("expected 2 cleared, got %d", output.Cleared)
	}

	list, err := HistoryList(database, HistoryListInput{Day: "2026-03-07"})
	if err != nil {
		t.Fatalf("HistoryList failed: %v", err)
	}
	if len(list.Entries) != 0 {
		t.Errorf("expected day emptied, got %d entries", len(list.Entries))
	}

	// Clearing an already-empty day reports zero
	output, err = HistoryClear(database, HistoryClearInput{Day: "2026-03-07"})
	if err != nil {
		t.Fatalf("HistoryClear failed: %v", err)
	}
	if output.Cleared != 0 {
		t.Errorf("expected 0 cleared, got %d", output.Cleared)
	}
}
