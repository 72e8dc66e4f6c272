package prompt

import (
	"fmt"
	"strings"
	"time"
)

// HistoryEntry is one timestamped summary snapshot. Entries are immutable
// after creation and live in a day-partitioned log.
type HistoryEntry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string `json:"id"`

	// Day is the local calendar day partition key, YYYY-MM-DD
	Day string `json:"day"`

	// Clock is the local save time, HH:MM:SS
	Clock string `json:"time"`

	// Text is the full summary at save time
	Text string `json:"text"`

	// CreatedAt is the Unix timestamp when the entry was saved
	CreatedAt int64 `json:"created_at"`
}

// DayKey formats t's local calendar day as a partition key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClockStamp formats t's local time of day for display.
func ClockStamp(t time.Time) string {
	return t.Format("15:04:05")
}

// RenderExport renders a day's entries, oldest-first, as a plain text
// block: a header line with the date, then for each entry a separator line
// with its time, its full text, and a blank line.
func RenderExport(day string, entries []HistoryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Prompt history for %s\n\n", day)
	for _, e := range entries {
		fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", e.Clock, e.Text)
	}
	return sb.String()
}

// RenderExportMarkdown renders the same export as markdown, one section
// per entry, for HTML conversion.
func RenderExportMarkdown(day string, entries []HistoryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Prompt history for %s\n", day)
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", e.Clock, e.Text)
	}
	return sb.String()
}
