package ops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/db"
)

// TestFullWorkflow exercises a complete composition session:
// seed → toggle → edit → select-all → summary → save → list → export setup →
// undo → clear → history delete → reset.
func TestFullWorkflow(t *testing.T) {
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()

	// 1. First start seeds the defaults
	seeded, err := Init(context.Background(), database, cfg)
	require.NoError(t, err)
	require.True(t, seeded.Seeded)
	require.Equal(t, 6, seeded.Categories)

	// 2. Check a couple of boxes
	toggled, err := Toggle(database, cfg, ToggleInput{ID: "subject", Index: 1, Checked: true})
	require.NoError(t, err)
	require.True(t, toggled.Changed)
	require.Equal(t, "civic library", toggled.Category.Text)

	_, err = Toggle(database, cfg, ToggleInput{ID: "style", Index: 0, Checked: true})
	require.NoError(t, err)

	// 3. Edit adds custom text around a token
	edited, err := Edit(database, cfg, EditInput{ID: "style", Text: "brutalist, rough charcoal render"})
	require.NoError(t, err)
	require.Equal(t, []int{0}, edited.Category.Selected)

	// 4. Select every lighting option in one step
	all, err := SelectAll(database, cfg, SelectAllInput{ID: "lighting", All: true})
	require.NoError(t, err)
	require.Len(t, all.Category.Selected, 4)

	// 5. The summary aggregates non-empty categories in order
	summary, err := Summary(database)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Parts)
	require.Contains(t, summary.Summary, "civic library\n\nbrutalist, rough charcoal render\n\n")

	// 6. Save a snapshot
	at := time.Date(2026, 3, 7, 11, 0, 0, 0, time.Local)
	saved, err := SnapshotSave(database, SnapshotInput{At: at})
	require.NoError(t, err)
	require.Equal(t, summary.Summary, saved.Entry.Text)
	require.Equal(t, "2026-03-07", saved.Entry.Day)

	// 7. The snapshot lists for its day
	list, err := HistoryList(database, HistoryListInput{Day: "2026-03-07"})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	require.Equal(t, saved.Entry.ID, list.Entries[0].ID)

	// 8. Undo walks the lighting category back to empty
	undone, err := Undo(database, UndoInput{ID: "lighting"})
	require.NoError(t, err)
	require.True(t, undone.Undone)
	require.Empty(t, undone.Category.Text)

	// 9. Clear the style text; the saved snapshot is unaffected
	_, err = Clear(database, cfg, ClearInput{ID: "style"})
	require.NoError(t, err)
	got, err := HistoryGet(database, HistoryGetInput{ID: saved.Entry.ID})
	require.NoError(t, err)
	require.Equal(t, saved.Entry.Text, got.Entry.Text)

	// 10. Delete the snapshot
	deleted, err := HistoryDelete(database, HistoryDeleteInput{ID: saved.Entry.ID})
	require.NoError(t, err)
	require.True(t, deleted.Deleted)

	// 11. Reset restores a pristine default tree
	reset, err := Reset(context.Background(), database, cfg)
	require.NoError(t, err)
	require.True(t, reset.Seeded)

	status, err := Status(database)
	require.NoError(t, err)
	require.Len(t, status.Categories, 6)
	for _, cat := range status.Categories {
		require.Empty(t, cat.Text)
		require.False(t, cat.Dirty)
	}
}
