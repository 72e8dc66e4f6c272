package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "loom",
		Usage:   "Local prompt composition store",
		Version: Version,
		// Repeated --option values may themselves contain commas
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			statusCmd(db),
			toggleCmd(db, cfg),
			selectCmd(db, cfg),
			editCmd(db, cfg),
			clearCmd(db, cfg),
			undoCmd(db),
			summaryCmd(db),
			copyCmd(db),
			saveCmd(db),
			historyCmd(db),
			exportCmd(db, cfg),
			purgeCmd(db),
			categoryCmd(db, cfg),
			resetCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addressOf reads the category address from the positional id argument
// or the --name flag.
func addressOf(c *cli.Context) (id, name string) {
	if c.NArg() > 0 {
		return c.Args().First(), ""
	}
	return "", c.String("name")
}

// nameFlag is shared by every command that addresses a category.
func nameFlag() cli.Flag {
	return &cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Category name (alternative to positional id)"}
}

// statusCmd creates the status command.
func statusCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show all categories with options, selections, and texts",
		Action: func(c *cli.Context) error {
			output, err := ops.Status(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// toggleCmd creates the toggle command.
func toggleCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Toggle one option checkbox in a category",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			nameFlag(),
			&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Value: -1, Usage: "Option index within the category (0-based)"},
			&cli.BoolFlag{Name: "on", Usage: "Check the option"},
			&cli.BoolFlag{Name: "off", Usage: "Uncheck the option"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("on") == c.Bool("off") {
				return outputError(errors.NewInvalidRequest("exactly one of --on or --off is required"))
			}
			if c.Int("index") < 0 {
				return outputError(errors.NewInvalidRequest("--index is required"))
			}

			id, name := addressOf(c)
			output, err := ops.Toggle(db, cfg, ops.ToggleInput{
				ID:      id,
				Name:    name,
				Index:   c.Int("index"),
				Checked: c.Bool("on"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// selectCmd creates the select command.
func selectCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Select or deselect every option in a category",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			nameFlag(),
			&cli.BoolFlag{Name: "all", Usage: "Select every option"},
			&cli.BoolFlag{Name: "none", Usage: "Deselect every option (custom text is kept)"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("all") == c.Bool("none") {
				return outputError(errors.NewInvalidRequest("exactly one of --all or --none is required"))
			}

			id, name := addressOf(c)
			output, err := ops.SelectAll(db, cfg, ops.SelectAllInput{
				ID:   id,
				Name: name,
				All:  c.Bool("all"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// editCmd creates the edit command.
func editCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a category's free text (reads the text from stdin)",
		ArgsUsage: "[id]",
		Flags:     []cli.Flag{nameFlag()},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			id, name := addressOf(c)
			output, err := ops.Edit(db, cfg, ops.EditInput{ID: id, Name: name, Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Empty a category's text (undoable)",
		ArgsUsage: "[id]",
		Flags:     []cli.Flag{nameFlag()},
		Action: func(c *cli.Context) error {
			id, name := addressOf(c)
			output, err := ops.Clear(db, cfg, ops.ClearInput{ID: id, Name: name})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// undoCmd creates the undo command.
func undoCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "undo",
		Usage:     "Restore a category's previous text",
		ArgsUsage: "[id]",
		Flags:     []cli.Flag{nameFlag()},
		Action: func(c *cli.Context) error {
			id, name := addressOf(c)
			output, err := ops.Undo(db, ops.UndoInput{ID: id, Name: name})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Show the aggregated summary of all category texts",
		Action: func(c *cli.Context) error {
			output, err := ops.Summary(db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// copyCmd creates the copy command.
func copyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "Copy the current summary (or a history entry) to the clipboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "entry", Aliases: []string{"e"}, Usage: "History entry id to copy instead of the live summary"},
		},
		Action: func(c *cli.Context) error {
			var text string
			if entryID := c.String("entry"); entryID != "" {
				output, err := ops.HistoryGet(db, ops.HistoryGetInput{ID: entryID})
				if err != nil {
					return outputError(err)
				}
				text = output.Entry.Text
			} else {
				output, err := ops.Summary(db)
				if err != nil {
					return outputError(err)
				}
				if strings.TrimSpace(output.Summary) == "" {
					return outputError(errors.NewEmptySummary())
				}
				text = output.Summary
			}

			if err := clipboard.WriteAll(text); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"copied": true, "chars": len([]rune(text))})
		},
	}
}

// saveCmd creates the save command.
func saveCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save the current summary as a history snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "day", Aliases: []string{"d"}, Usage: "Day partition (YYYY-MM-DD, defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.SnapshotSave(db, ops.SnapshotInput{Day: c.String("day")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command with its subcommands.
func historyCmd(db *sql.DB) *cli.Command {
	dayFlag := &cli.StringFlag{Name: "day", Aliases: []string{"d"}, Usage: "Day partition (YYYY-MM-DD, defaults to today)"}
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect and manage saved snapshots",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one day's snapshots, most recent first",
				Flags: []cli.Flag{dayFlag},
				Action: func(c *cli.Context) error {
					output, err := ops.HistoryList(db, ops.HistoryListInput{Day: c.String("day")})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one snapshot by id",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("entry id is required"))
					}
					output, err := ops.HistoryGet(db, ops.HistoryGetInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete one snapshot by id",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("entry id is required"))
					}
					output, err := ops.HistoryDelete(db, ops.HistoryDeleteInput{ID: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "clear",
				Usage: "Delete all of one day's snapshots",
				Flags: []cli.Flag{dayFlag},
				Action: func(c *cli.Context) error {
					output, err := ops.HistoryClear(db, ops.HistoryClearInput{Day: c.String("day")})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export one day's snapshots to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Destination file (defaults to ~/.loom/exports/)"},
			&cli.StringFlag{Name: "day", Aliases: []string{"d"}, Usage: "Day partition (YYYY-MM-DD, defaults to today)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: ops.ExportFormatText, Usage: "Export format: text|html"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ExportHistory(context.Background(), db, cfg, ops.ExportHistoryInput{
				Path:   c.String("path"),
				Day:    c.String("day"),
				Format: c.String("format"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Remove snapshots from days other than today",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keep", Usage: "Day to keep (YYYY-MM-DD, defaults to today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.PurgeStale(db, ops.PurgeStaleInput{Day: c.String("keep")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// categoryCmd creates the category command with its subcommands.
func categoryCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "category",
		Usage: "Manage categories",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Category name"},
					&cli.StringFlag{Name: "options", Aliases: []string{"o"}, Usage: "Comma-separated option labels"},
					&cli.StringSliceFlag{Name: "option", Usage: "One option label, repeatable; use for labels that contain commas"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.CategoryAdd(db, cfg, ops.CategoryAddInput{
						Name:    c.String("name"),
						Options: collectOptions(c),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a category and its text",
				ArgsUsage: "[id]",
				Flags:     []cli.Flag{nameFlag()},
				Action: func(c *cli.Context) error {
					id, name := addressOf(c)
					output, err := ops.CategoryDelete(db, ops.CategoryDeleteInput{ID: id, Name: name})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rename",
				Usage:     "Rename a category (id stays stable)",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					nameFlag(),
					&cli.StringFlag{Name: "new-name", Required: true, Usage: "New category name"},
				},
				Action: func(c *cli.Context) error {
					id, name := addressOf(c)
					output, err := ops.CategoryRename(db, ops.CategoryRenameInput{
						ID:      id,
						Name:    name,
						NewName: c.String("new-name"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "set-options",
				Usage:     "Replace a category's option list",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					nameFlag(),
					&cli.StringFlag{Name: "options", Aliases: []string{"o"}, Usage: "Comma-separated option labels"},
					&cli.StringSliceFlag{Name: "option", Usage: "One option label, repeatable; use for labels that contain commas"},
				},
				Action: func(c *cli.Context) error {
					if !c.IsSet("options") && !c.IsSet("option") {
						return outputError(errors.NewInvalidRequest("provide --options or at least one --option"))
					}
					id, name := addressOf(c)
					output, err := ops.CategorySetOptions(db, ops.CategorySetOptionsInput{
						ID:      id,
						Name:    name,
						Options: collectOptions(c),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Replace all categories with the default set (texts are discarded)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return outputError(errors.NewInvalidRequest("reset discards all texts; re-run with --yes to confirm"))
			}
			output, err := ops.Reset(context.Background(), db, cfg)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if loomErr, ok := err.(*errors.LoomError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", loomErr.Code, loomErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// collectOptions gathers option labels from the repeatable --option flag
// and the comma-separated --options flag, in that order.
func collectOptions(c *cli.Context) []string {
	options := append([]string{}, c.StringSlice("option")...)
	return append(options, parseOptions(c.String("options"))...)
}

// parseOptions splits a comma-separated string into option labels.
func parseOptions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		o := strings.TrimSpace(p)
		if o != "" {
			options = append(options, o)
		}
	}
	return options
}
