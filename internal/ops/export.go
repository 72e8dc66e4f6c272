package ops

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// Export formats.
const (
	ExportFormatText = "text"
	ExportFormatHTML = "html"
)

// ExportHistoryInput contains parameters for the ExportHistory operation.
type ExportHistoryInput struct {
	Path   string // optional, default: ~/.loom/exports/history-<day>.<ext>
	Day    string // defaults to the current local day
	Format string // "text" (default) or "html"
}

// ExportHistoryOutput contains the result of the ExportHistory operation.
type ExportHistoryOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHistory writes one day's snapshots, oldest-first, to a file:
// a date header, then each entry's time and full text. The text format is
// handed to external file-delivery as-is; the html format runs a markdown
// rendering through goldmark.
func ExportHistory(ctx context.Context, database *sql.DB, cfg *config.Config, input ExportHistoryInput) (*ExportHistoryOutput, error) {
	now := time.Now()

	day := input.Day
	if day == "" {
		day = prompt.DayKey(now)
	}

	format := input.Format
	if format == "" {
		format = ExportFormatText
	}
	if format != ExportFormatText && format != ExportFormatHTML {
		return nil, errors.NewInvalidRequest("format must be one of: text, html")
	}
	ext := ".txt"
	if format == ExportFormatHTML {
		ext = ".html"
	}

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(day, ext)
		if err != nil {
			return nil, err
		}
	}

	// Validate all paths, including defaults, before touching the disk.
	if err := ValidateExportPath(exportPath, ext, cfg); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelled("export")
	default:
	}

	entries, err := db.ListHistory(database, day, false)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch format {
	case ExportFormatText:
		content = []byte(prompt.RenderExport(day, entries))
	case ExportFormatHTML:
		var buf bytes.Buffer
		md := prompt.RenderExportMarkdown(day, entries)
		if err := goldmark.Convert([]byte(md), &buf); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("render html: %w", err))
		}
		content = buf.Bytes()
	}

	if err := writeFileAtomic(exportPath, content); err != nil {
		return nil, err
	}

	return &ExportHistoryOutput{
		Path:       exportPath,
		Count:      len(entries),
		ExportedAt: now.Unix(),
	}, nil
}

// writeFileAtomic writes to a temp file in the destination directory and
// renames it into place, so a failed export preserves any existing file.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(content); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}
	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	success = true
	return nil
}

// defaultExportPath builds ~/.loom/exports/history-<day><ext>.
func defaultExportPath(day, ext string) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(exportsDir, "history-"+SanitizeForFilename(day)+ext), nil
}
