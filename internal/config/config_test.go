package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestDefaultConfig verifies baseline values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UndoDepth != 120 {
		t.Errorf("expected undo depth 120, got %d", cfg.UndoDepth)
	}
	if cfg.AllowUnsafePaths {
		t.Error("expected unsafe paths disabled by default")
	}
	if cfg.DefaultsURL != "" {
		t.Errorf("expected empty defaults url, got %q", cfg.DefaultsURL)
	}
}

// TestLoadMissingFile verifies defaults when config.json is absent.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoDepth != 120 {
		t.Errorf("expected default undo depth, got %d", cfg.UndoDepth)
	}
}

// TestLoadFile verifies file values overlay the defaults.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"undo_depth": 10,
		"allowed_paths": ["/tmp/exports"],
		"disabled_tools": ["composer_reset"]
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UndoDepth != 10 {
		t.Errorf("expected undo depth 10, got %d", cfg.UndoDepth)
	}
	if !reflect.DeepEqual(cfg.AllowedPaths, []string{"/tmp/exports"}) {
		t.Errorf("unexpected allowed paths: %v", cfg.AllowedPaths)
	}
	if !reflect.DeepEqual(cfg.DisabledTools, []string{"composer_reset"}) {
		t.Errorf("unexpected disabled tools: %v", cfg.DisabledTools)
	}
}

// TestLoadInvalidJSON verifies malformed files surface an error.
func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

// TestMerge tests scalar, boolean, and slice merge semantics.
func TestMerge(t *testing.T) {
	base := &Config{
		UndoDepth:     120,
		AllowedPaths:  []string{"/a", "/b"},
		DisabledTools: []string{"composer_reset"},
	}
	overlay := &Config{
		UndoDepth:        40,
		AllowUnsafePaths: true,
		AllowedPaths:     []string{"/b", "/c", " "},
	}

	result := Merge(base, overlay)

	if result.UndoDepth != 40 {
		t.Errorf("expected overlay undo depth, got %d", result.UndoDepth)
	}
	if !result.AllowUnsafePaths {
		t.Error("expected overlay bool to win")
	}
	if !reflect.DeepEqual(result.AllowedPaths, []string{"/a", "/b", "/c"}) {
		t.Errorf("unexpected merged paths: %v", result.AllowedPaths)
	}
	if !reflect.DeepEqual(result.DisabledTools, []string{"composer_reset"}) {
		t.Errorf("unexpected disabled tools: %v", result.DisabledTools)
	}

	// Zero-valued overlay keeps base scalars
	result = Merge(base, &Config{})
	if result.UndoDepth != 120 {
		t.Errorf("expected base undo depth, got %d", result.UndoDepth)
	}
}
