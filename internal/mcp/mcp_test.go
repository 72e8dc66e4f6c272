package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/ops"
)

// testSetup creates a temporary seeded database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true // Allow temp dirs in tests

	if _, err := ops.Init(context.Background(), database, cfg); err != nil {
		t.Fatalf("failed to seed db: %v", err)
	}
	return database, cfg
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultJSON unmarshals the text payload of a tool result into v.
func resultJSON(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	text := result.Content[0].(mcp.TextContent).Text
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to parse result: %v\nPayload: %s", err, text)
	}
}

func TestToolRegistryComplete(t *testing.T) {
	expected := []string{
		"composer_status", "composer_toggle", "composer_select_all",
		"composer_edit", "composer_clear", "composer_undo",
		"composer_summary", "composer_reset",
		"category_add", "category_delete", "category_rename", "category_set_options",
		"history_save", "history_list", "history_get", "history_delete",
		"history_clear", "history_export", "history_purge",
	}

	if len(toolRegistry) != len(expected) {
		t.Errorf("expected %d registered tools, got %d", len(expected), len(toolRegistry))
	}
	for _, name := range expected {
		if _, ok := toolRegistry[name]; !ok {
			t.Errorf("tool %s missing from registry", name)
		}
	}

	names := AllToolNames()
	if len(names) != len(expected) {
		t.Errorf("AllToolNames returned %d names, want %d", len(names), len(expected))
	}
}

func TestGetTypeForTool(t *testing.T) {
	tests := []struct {
		tool     string
		expected string
	}{
		{"composer_toggle", "composer"},
		{"category_add", "category"},
		{"history_save", "history"},
		{"unknown_tool", ""},
	}
	for _, tt := range tests {
		if got := GetTypeForTool(tt.tool); got != tt.expected {
			t.Errorf("GetTypeForTool(%s) = %q, want %q", tt.tool, got, tt.expected)
		}
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"composer_reset", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("expected only the unknown name back, got %v", unknown)
	}
	if unknown := ValidateDisabledTools(nil); len(unknown) != 0 {
		t.Errorf("expected no unknowns for empty list, got %v", unknown)
	}
}

func TestNewServer(t *testing.T) {
	database, cfg := testSetup(t)

	if srv := NewServer(database, cfg, "test"); srv == nil {
		t.Fatal("expected server")
	}

	// Disabled tools are skipped without error
	cfg.DisabledTools = []string{"composer_reset", "history_purge"}
	if srv := NewServer(database, cfg, "test"); srv == nil {
		t.Fatal("expected server with disabled tools")
	}
}

func TestHandleStatus(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleStatus(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleStatus failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}

	var output ops.StatusOutput
	resultJSON(t, result, &output)
	if len(output.Categories) != 6 {
		t.Errorf("expected 6 categories, got %d", len(output.Categories))
	}
}

func TestHandleToggle(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleToggle(context.Background(), makeRequest(map[string]any{
		"id":      "style",
		"index":   0,
		"checked": true,
	}))
	if err != nil {
		t.Fatalf("HandleToggle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}

	var output ops.ToggleOutput
	resultJSON(t, result, &output)
	if !output.Changed || output.Category.Text != "brutalist" {
		t.Errorf("unexpected toggle output: %+v", output)
	}
}

func TestHandleToggle_ErrorPayload(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleToggle(context.Background(), makeRequest(map[string]any{
		"id":      "missing",
		"index":   0,
		"checked": true,
	}))
	if err != nil {
		t.Fatalf("HandleToggle failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	resultJSON(t, result, &payload)
	if payload.Error.Code != "NOT_FOUND" || payload.Error.Status != 404 {
		t.Errorf("unexpected error payload: %+v", payload.Error)
	}
}

func TestHandleEditAndSummary(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleEdit(context.Background(), makeRequest(map[string]any{
		"id":   "subject",
		"text": "waterfront pavilion",
	}))
	if err != nil {
		t.Fatalf("HandleEdit failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}

	result, err = h.HandleSummary(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleSummary failed: %v", err)
	}
	var output ops.SummaryOutput
	resultJSON(t, result, &output)
	if output.Summary != "waterfront pavilion" || output.Parts != 1 {
		t.Errorf("unexpected summary: %+v", output)
	}
}

func TestHandleSelectAllAndUndo(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleSelectAll(context.Background(), makeRequest(map[string]any{
		"id":  "camera",
		"all": true,
	}))
	if err != nil {
		t.Fatalf("HandleSelectAll failed: %v", err)
	}
	var selOut ops.SelectAllOutput
	resultJSON(t, result, &selOut)
	if len(selOut.Category.Selected) != 4 {
		t.Errorf("expected all options selected, got %v", selOut.Category.Selected)
	}

	result, err = h.HandleUndo(context.Background(), makeRequest(map[string]any{"id": "camera"}))
	if err != nil {
		t.Fatalf("HandleUndo failed: %v", err)
	}
	var undoOut ops.UndoOutput
	resultJSON(t, result, &undoOut)
	if !undoOut.Undone || undoOut.Category.Text != "" {
		t.Errorf("unexpected undo output: %+v", undoOut)
	}
}

func TestHandleHistoryLifecycle(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	if _, err := h.HandleEdit(context.Background(), makeRequest(map[string]any{
		"id":   "subject",
		"text": "civic library",
	})); err != nil {
		t.Fatalf("HandleEdit failed: %v", err)
	}

	result, err := h.HandleHistorySave(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleHistorySave failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}
	var saved ops.SnapshotOutput
	resultJSON(t, result, &saved)

	result, err = h.HandleHistoryList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleHistoryList failed: %v", err)
	}
	var list ops.HistoryListOutput
	resultJSON(t, result, &list)
	if len(list.Entries) != 1 || list.Entries[0].ID != saved.Entry.ID {
		t.Errorf("unexpected list: %+v", list)
	}

	result, err = h.HandleHistoryGet(context.Background(), makeRequest(map[string]any{"id": saved.Entry.ID}))
	if err != nil {
		t.Fatalf("HandleHistoryGet failed: %v", err)
	}
	var got ops.HistoryGetOutput
	resultJSON(t, result, &got)
	if got.Entry.Text != "civic library" {
		t.Errorf("unexpected entry: %+v", got.Entry)
	}

	result, err = h.HandleHistoryDelete(context.Background(), makeRequest(map[string]any{"id": saved.Entry.ID}))
	if err != nil {
		t.Fatalf("HandleHistoryDelete failed: %v", err)
	}
	var deleted ops.HistoryDeleteOutput
	resultJSON(t, result, &deleted)
	if !deleted.Deleted {
		t.Error("expected deleted=true")
	}
}

func TestHandleHistorySave_EmptySummary(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleHistorySave(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleHistorySave failed: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for empty summary")
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	resultJSON(t, result, &payload)
	if payload.Error.Code != "EMPTY_SUMMARY" {
		t.Errorf("expected EMPTY_SUMMARY, got %s", payload.Error.Code)
	}
}

func TestHandleCategoryAdd(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleCategoryAdd(context.Background(), makeRequest(map[string]any{
		"name":    "Mood",
		"options": []any{"serene", "dramatic"},
	}))
	if err != nil {
		t.Fatalf("HandleCategoryAdd failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got %v", result.Content)
	}

	var output ops.CategoryAddOutput
	resultJSON(t, result, &output)
	if output.Category.Name != "Mood" || len(output.Category.Options) != 2 {
		t.Errorf("unexpected category: %+v", output.Category)
	}
}

func TestHandleReset(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	if _, err := h.HandleEdit(context.Background(), makeRequest(map[string]any{
		"id":   "subject",
		"text": "draft",
	})); err != nil {
		t.Fatalf("HandleEdit failed: %v", err)
	}

	result, err := h.HandleReset(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleReset failed: %v", err)
	}
	var output ops.ResetOutput
	resultJSON(t, result, &output)
	if !output.Seeded || output.Categories != 6 {
		t.Errorf("unexpected reset output: %+v", output)
	}
}
