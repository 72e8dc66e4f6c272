package ops

import (
	"database/sql"
	"strings"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// CategoryAddInput contains parameters for the CategoryAdd operation.
type CategoryAddInput struct {
	Name    string
	Options []string
}

// CategoryAddOutput contains the result of the CategoryAdd operation.
type CategoryAddOutput struct {
	Category CategoryView `json:"category"`
}

// CategoryAdd appends a new category with an empty output. Category and
// output are created together; a name colliding with an existing category
// (after normalization) is rejected.
func CategoryAdd(database *sql.DB, cfg *config.Config, input CategoryAddInput) (*CategoryAddOutput, error) {
	name := strings.TrimSpace(input.Name)
	if prompt.Normalize(name) == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	norm := prompt.Normalize(name)
	for i := range st.Categories {
		if prompt.Normalize(st.Categories[i].Name) == norm {
			return nil, errors.NewNameAlreadyExists(name)
		}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	cat := prompt.Category{
		ID:       id,
		Name:     name,
		Options:  input.Options,
		Selected: []int{},
	}
	st.Categories = append(st.Categories, cat)
	st.Outputs[id] = &prompt.Output{}

	if err := saveState(database, st); err != nil {
		return nil, err
	}

	return &CategoryAddOutput{Category: viewOf(&st.Categories[len(st.Categories)-1], st.Outputs[id])}, nil
}

// CategoryDeleteInput contains parameters for the CategoryDelete operation.
type CategoryDeleteInput struct {
	ID   string
	Name string
}

// CategoryDeleteOutput contains the result of the CategoryDelete operation.
type CategoryDeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// CategoryDelete removes a category and its output atomically. A category
// that does not exist is a silent no-op: Deleted reports false.
func CategoryDelete(database *sql.DB, input CategoryDeleteInput) (*CategoryDeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	idx := st.find(addr)
	if idx < 0 {
		return &CategoryDeleteOutput{Deleted: false}, nil
	}

	delete(st.Outputs, st.Categories[idx].ID)
	st.Categories = append(st.Categories[:idx], st.Categories[idx+1:]...)

	if err := saveState(database, st); err != nil {
		return nil, err
	}
	return &CategoryDeleteOutput{Deleted: true}, nil
}

// CategoryRenameInput contains parameters for the CategoryRename operation.
type CategoryRenameInput struct {
	ID      string
	Name    string
	NewName string
}

// CategoryRenameOutput contains the result of the CategoryRename operation.
type CategoryRenameOutput struct {
	Category CategoryView `json:"category"`
}

// CategoryRename changes a category's display label. The id is stable
// across renames, so the output record and history are unaffected.
func CategoryRename(database *sql.DB, input CategoryRenameInput) (*CategoryRenameOutput, error) {
	newName := strings.TrimSpace(input.NewName)
	if prompt.Normalize(newName) == "" {
		return nil, errors.NewInvalidRequest("new name must not be empty")
	}

	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	idx, err := st.resolve(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	norm := prompt.Normalize(newName)
	for i := range st.Categories {
		if i != idx && prompt.Normalize(st.Categories[i].Name) == norm {
			return nil, errors.NewNameAlreadyExists(newName)
		}
	}

	st.Categories[idx].Name = newName

	if err := saveState(database, st); err != nil {
		return nil, err
	}
	return &CategoryRenameOutput{Category: viewOf(&st.Categories[idx], st.Outputs[st.Categories[idx].ID])}, nil
}

// CategorySetOptionsInput contains parameters for the CategorySetOptions operation.
type CategorySetOptionsInput struct {
	ID      string
	Name    string
	Options []string
}

// CategorySetOptionsOutput contains the result of the CategorySetOptions operation.
type CategorySetOptionsOutput struct {
	Category CategoryView `json:"category"`
}

// CategorySetOptions replaces a category's option list wholesale and
// re-reconciles the existing free text against it. Text is never
// rewritten: tokens whose option no longer exists simply become unmatched
// custom text and drop out of the selection.
func CategorySetOptions(database *sql.DB, input CategorySetOptionsInput) (*CategorySetOptionsOutput, error) {
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	st, err := loadState(database)
	if err != nil {
		return nil, err
	}

	idx, err := st.resolve(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	st.Categories[idx].Options = input.Options
	st.reconcileAt(idx)

	if err := saveState(database, st); err != nil {
		return nil, err
	}
	return &CategorySetOptionsOutput{Category: viewOf(&st.Categories[idx], st.Outputs[st.Categories[idx].ID])}, nil
}
