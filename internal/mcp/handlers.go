package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// ToggleRequest represents the arguments for composer_toggle.
type ToggleRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Index   int    `json:"index"`
	Checked bool   `json:"checked"`
}

// SelectAllRequest represents the arguments for composer_select_all.
type SelectAllRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	All  bool   `json:"all"`
}

// EditRequest represents the arguments for composer_edit.
type EditRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// AddressRequest represents id-or-name arguments (clear, undo, delete).
type AddressRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// CategoryAddRequest represents the arguments for category_add.
type CategoryAddRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

// CategoryRenameRequest represents the arguments for category_rename.
type CategoryRenameRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	NewName string `json:"new_name"`
}

// CategorySetOptionsRequest represents the arguments for category_set_options.
type CategorySetOptionsRequest struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Options []string `json:"options"`
}

// DayRequest represents day-scoped arguments (list, clear, purge).
type DayRequest struct {
	Day string `json:"day,omitempty"`
}

// HistoryIDRequest represents the arguments for history_get and history_delete.
type HistoryIDRequest struct {
	ID string `json:"id"`
}

// HistoryExportRequest represents the arguments for history_export.
type HistoryExportRequest struct {
	Path   string `json:"path,omitempty"`
	Day    string `json:"day,omitempty"`
	Format string `json:"format,omitempty"`
}

// Handler implementations

// HandleStatus handles the composer_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Status(h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleToggle handles the composer_toggle tool call.
func (h *Handlers) HandleToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ToggleRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Toggle(h.db, h.cfg, ops.ToggleInput{
		ID:      input.ID,
		Name:    input.Name,
		Index:   input.Index,
		Checked: input.Checked,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSelectAll handles the composer_select_all tool call.
func (h *Handlers) HandleSelectAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SelectAllRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SelectAll(h.db, h.cfg, ops.SelectAllInput{
		ID:   input.ID,
		Name: input.Name,
		All:  input.All,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleEdit handles the composer_edit tool call.
func (h *Handlers) HandleEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EditRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Edit(h.db, h.cfg, ops.EditInput{
		ID:   input.ID,
		Name: input.Name,
		Text: input.Text,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleClear handles the composer_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Clear(h.db, h.cfg, ops.ClearInput{ID: input.ID, Name: input.Name})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUndo handles the composer_undo tool call.
func (h *Handlers) HandleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Undo(h.db, ops.UndoInput{ID: input.ID, Name: input.Name})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSummary handles the composer_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Summary(h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReset handles the composer_reset tool call.
func (h *Handlers) HandleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Reset(ctx, h.db, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCategoryAdd handles the category_add tool call.
func (h *Handlers) HandleCategoryAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CategoryAdd(h.db, h.cfg, ops.CategoryAddInput{
		Name:    input.Name,
		Options: input.Options,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCategoryDelete handles the category_delete tool call.
func (h *Handlers) HandleCategoryDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CategoryDelete(h.db, ops.CategoryDeleteInput{ID: input.ID, Name: input.Name})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCategoryRename handles the category_rename tool call.
func (h *Handlers) HandleCategoryRename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategoryRenameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CategoryRename(h.db, ops.CategoryRenameInput{
		ID:      input.ID,
		Name:    input.Name,
		NewName: input.NewName,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCategorySetOptions handles the category_set_options tool call.
func (h *Handlers) HandleCategorySetOptions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CategorySetOptionsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CategorySetOptions(h.db, ops.CategorySetOptionsInput{
		ID:      input.ID,
		Name:    input.Name,
		Options: input.Options,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistorySave handles the history_save tool call.
func (h *Handlers) HandleHistorySave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.SnapshotSave(h.db, ops.SnapshotInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryList handles the history_list tool call.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.HistoryList(h.db, ops.HistoryListInput{Day: input.Day})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryGet handles the history_get tool call.
func (h *Handlers) HandleHistoryGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.HistoryGet(h.db, ops.HistoryGetInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryDelete handles the history_delete tool call.
func (h *Handlers) HandleHistoryDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryIDRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.HistoryDelete(h.db, ops.HistoryDeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryClear handles the history_clear tool call.
func (h *Handlers) HandleHistoryClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.HistoryClear(h.db, ops.HistoryClearInput{Day: input.Day})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryExport handles the history_export tool call.
func (h *Handlers) HandleHistoryExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ExportHistory(ctx, h.db, h.cfg, ops.ExportHistoryInput{
		Path:   input.Path,
		Day:    input.Day,
		Format: input.Format,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistoryPurge handles the history_purge tool call.
func (h *Handlers) HandleHistoryPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.PurgeStale(h.db, ops.PurgeStaleInput{Day: input.Day})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lErr, ok := err.(*errors.LoomError); ok {
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": lErr.Message,
			"status":  lErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			errorObj["details"] = lErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
