package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// MaxOptionsPerCategory bounds a category's option list.
const MaxOptionsPerCategory = 100

// Address represents a validated category address.
type Address struct {
	ByID bool
	ID   string
	Name string // normalized for name-mode
}

// ValidateAddress validates addressing parameters and returns a normalized Address.
// Rules:
// - Must specify exactly one addressing mode: id OR name
// - If both provided, AMBIGUOUS_ADDRESSING
// - If neither provided, INVALID_REQUEST
func ValidateAddress(id, name string) (*Address, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)

	hasID := id != ""
	hasName := name != ""

	if hasID && hasName {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && !hasName {
		return nil, errors.NewInvalidRequest("must specify either id or name")
	}

	if hasID {
		return &Address{ByID: true, ID: id}, nil
	}

	nameNorm := prompt.Normalize(name)
	if nameNorm == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}
	return &Address{Name: nameNorm}, nil
}

// CategoryView is the per-category state exposed to UI layers: everything
// needed to render checkboxes, the editable text, and the undo affordance
// without recomputing anything.
type CategoryView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Options   []string `json:"options"`
	Selected  []int    `json:"selected"`
	Text      string   `json:"text"`
	Dirty     bool     `json:"dirty"`
	UndoDepth int      `json:"undo_depth"`
}

// viewOf builds the UI-facing view of one category and its output.
func viewOf(cat *prompt.Category, out *prompt.Output) CategoryView {
	return CategoryView{
		ID:        cat.ID,
		Name:      cat.Name,
		Options:   cat.Options,
		Selected:  cat.Selected,
		Text:      out.Text,
		Dirty:     out.Dirty,
		UndoDepth: len(out.UndoStack),
	}
}

// validateOptions rejects option lists loom cannot match reliably: blank
// options and options containing newlines (the token separator grammar is
// comma-based and single-line).
func validateOptions(options []string) error {
	if len(options) > MaxOptionsPerCategory {
		return errors.NewInvalidRequest("too many options")
	}
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return errors.NewInvalidRequest("options must not be blank")
		}
		if strings.ContainsAny(opt, "\n\r") {
			return errors.NewInvalidRequest("options must not contain newlines")
		}
		for j := 0; j < i; j++ {
			if options[j] == opt {
				return errors.NewInvalidRequest("options must be unique within a category")
			}
		}
	}
	return nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
