package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Categories are addressed by id OR name, never both.

var statusToolDef = mcp.NewTool("composer_status",
	mcp.WithDescription("Get the full composer state: every category with its options, derived selection, free text, dirty flag, and undo depth."),
)

var toggleToolDef = mcp.NewTool("composer_toggle",
	mcp.WithDescription("Toggle one option checkbox in a category. Adds or removes the option's token in the category free text and reconciles the selection."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Option index within the category")),
	mcp.WithBoolean("checked", mcp.Required(), mcp.Description("Desired state for the option")),
)

var selectAllToolDef = mcp.NewTool("composer_select_all",
	mcp.WithDescription("Select or deselect every option in a category in one step. Custom text is left untouched on deselect."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
	mcp.WithBoolean("all", mcp.Required(), mcp.Description("true selects every option, false deselects every option")),
)

var editToolDef = mcp.NewTool("composer_edit",
	mcp.WithDescription("Replace a category's free text wholesale, as a direct user edit. The selection is reconciled from the new text."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
	mcp.WithString("text", mcp.Description("The new free text")),
)

var clearToolDef = mcp.NewTool("composer_clear",
	mcp.WithDescription("Empty a category's free text. Always undoable."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
)

var undoToolDef = mcp.NewTool("composer_undo",
	mcp.WithDescription("Restore a category's most recent prior text. Silent no-op when nothing is undoable."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
)

var summaryToolDef = mcp.NewTool("composer_summary",
	mcp.WithDescription("Aggregate all non-empty category texts into one summary string, in category order, joined by blank lines."),
)

var resetToolDef = mcp.NewTool("composer_reset",
	mcp.WithDescription("Replace the whole category tree with the default definitions and fresh empty outputs."),
)

var categoryAddToolDef = mcp.NewTool("category_add",
	mcp.WithDescription("Add a new category with an ordered option list and an empty output."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Category display name")),
	mcp.WithArray("options", mcp.Description("Ordered option strings"), mcp.Items(map[string]any{"type": "string"})),
)

var categoryDeleteToolDef = mcp.NewTool("category_delete",
	mcp.WithDescription("Delete a category and its output atomically. Missing category is a silent no-op."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
)

var categoryRenameToolDef = mcp.NewTool("category_rename",
	mcp.WithDescription("Rename a category. The id and the category's text and history are unaffected."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
	mcp.WithString("new_name", mcp.Required(), mcp.Description("New display name")),
)

var categorySetOptionsToolDef = mcp.NewTool("category_set_options",
	mcp.WithDescription("Replace a category's option list wholesale and re-reconcile its existing text. Text is never rewritten."),
	mcp.WithString("id", mcp.Description("Category id (use id or name, not both)")),
	mcp.WithString("name", mcp.Description("Category name")),
	mcp.WithArray("options", mcp.Required(), mcp.Description("Ordered option strings"), mcp.Items(map[string]any{"type": "string"})),
)

var historySaveToolDef = mcp.NewTool("history_save",
	mcp.WithDescription("Snapshot the current summary into the day's history log. Rejected when the summary is empty."),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List the current day's snapshots, most recent first."),
	mcp.WithString("day", mcp.Description("Day key YYYY-MM-DD (defaults to today)")),
)

var historyGetToolDef = mcp.NewTool("history_get",
	mcp.WithDescription("Fetch one snapshot by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("History entry id")),
)

var historyDeleteToolDef = mcp.NewTool("history_delete",
	mcp.WithDescription("Delete one snapshot by id. Missing id is a silent no-op."),
	mcp.WithString("id", mcp.Required(), mcp.Description("History entry id")),
)

var historyClearToolDef = mcp.NewTool("history_clear",
	mcp.WithDescription("Empty the current day's history log."),
	mcp.WithString("day", mcp.Description("Day key YYYY-MM-DD (defaults to today)")),
)

var historyExportToolDef = mcp.NewTool("history_export",
	mcp.WithDescription("Write the day's snapshots, oldest first, to a text or HTML file."),
	mcp.WithString("path", mcp.Description("Destination path (default: ~/.loom/exports/history-<day>.txt)")),
	mcp.WithString("day", mcp.Description("Day key YYYY-MM-DD (defaults to today)")),
	mcp.WithString("format", mcp.Description("Export format: text|html")),
)

var historyPurgeToolDef = mcp.NewTool("history_purge",
	mcp.WithDescription("Remove history entries from any day other than today."),
	mcp.WithString("day", mcp.Description("Day key to keep, YYYY-MM-DD (defaults to today)")),
)
