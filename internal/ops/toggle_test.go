package ops

import (
	"testing"

	"github.com/hollyoak/loom/internal/errors"
)

func TestToggle_On(t *testing.T) {
	database, cfg := testSetup(t)

	output, err := Toggle(database, cfg, ToggleInput{ID: "style", Index: 0, Checked: true})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !output.Changed {
		t.Error("expected changed=true")
	}
	if output.Category.Text != "brutalist" {
		t.Errorf("expected text %q, got %q", "brutalist", output.Category.Text)
	}
	if len(output.Category.Selected) != 1 || output.Category.Selected[0] != 0 {
		t.Errorf("expected selected=[0], got %v", output.Category.Selected)
	}
	if !output.Category.Dirty {
		t.Error("expected dirty after toggle")
	}

	// Persisted: a fresh load sees the same state
	status, err := Status(database)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Categories[1].Text != "brutalist" {
		t.Errorf("expected persisted text, got %q", status.Categories[1].Text)
	}
}

func TestToggle_OnTwiceIsNoOp(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := Toggle(database, cfg, ToggleInput{ID: "style", Index: 0, Checked: true}); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	output, err := Toggle(database, cfg, ToggleInput{ID: "style", Index: 0, Checked: true})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if output.Changed {
		t.Error("expected changed=false for repeated toggle-on")
	}
	if output.Category.UndoDepth != 1 {
		t.Errorf("expected no extra undo entry, got depth %d", output.Category.UndoDepth)
	}
}

func TestToggle_Off(t *testing.T) {
	database, cfg := testSetup(t)

	if _, err := Toggle(database, cfg, ToggleInput{ID: "lighting", Index: 0, Checked: true}); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := Toggle(database, cfg, ToggleInput{ID: "lighting", Index: 1, Checked: true}); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	output, err := Toggle(database, cfg, ToggleInput{ID: "lighting", Index: 0, Checked: false})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !output.Changed {
		t.Error("expected changed=true")
	}
	if output.Category.Text != "overcast diffuse light" {
		t.Errorf("unexpected text: %q", output.Category.Text)
	}
	if len(output.Category.Selected) != 1 || output.Category.Selected[0] != 1 {
		t.Errorf("expected selected=[1], got %v", output.Category.Selected)
	}
}

func TestToggle_OffAbsentIsNoOp(t *testing.T) {
	database, cfg := testSetup(t)

	output, err := Toggle(database, cfg, ToggleInput{ID: "style", Index: 2, Checked: false})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if output.Changed {
		t.Error("expected changed=false for unchecking an absent token")
	}
	if output.Category.UndoDepth != 0 {
		t.Errorf("expected empty undo stack, got depth %d", output.Category.UndoDepth)
	}
}

func TestToggle_CommaOption(t *testing.T) {
	database, cfg := testSetup(t)

	// massing option 0 is "massing, proportions, scale"
	if _, err := Toggle(database, cfg, ToggleInput{ID: "massing", Index: 0, Checked: true}); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	output, err := Toggle(database, cfg, ToggleInput{ID: "massing", Index: 1, Checked: true})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if output.Category.Text != "massing, proportions, scale, stepped terraces" {
		t.Errorf("unexpected text: %q", output.Category.Text)
	}
	if len(output.Category.Selected) != 2 {
		t.Errorf("expected 2 selected, got %v", output.Category.Selected)
	}

	// Removing the comma option removes the whole token
	output, err = Toggle(database, cfg, ToggleInput{ID: "massing", Index: 0, Checked: false})
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if output.Category.Text != "stepped terraces" {
		t.Errorf("unexpected text after removal: %q", output.Category.Text)
	}
}

func TestToggle_ByName(t *testing.T) {
	database, cfg := testSetup(t)

	output, err := Toggle(database, cfg, ToggleInput{Name: "  STYLE ", Index: 1, Checked: true})
	if err != nil {
		t.Fatalf("Toggle by name failed: %v", err)
	}
	if output.Category.ID != "style" {
		t.Errorf("expected style category, got %s", output.Category.ID)
	}
}

func TestToggle_Errors(t *testing.T) {
	database, cfg := testSetup(t)

	_, err := Toggle(database, cfg, ToggleInput{ID: "style", Name: "Style", Index: 0, Checked: true})
	if !errors.Is(err, errors.ErrAmbiguousAddressing) {
		t.Errorf("expected AMBIGUOUS_ADDRESSING, got %v", err)
	}

	_, err = Toggle(database, cfg, ToggleInput{Index: 0, Checked: true})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got %v", err)
	}

	_, err = Toggle(database, cfg, ToggleInput{ID: "nope", Index: 0, Checked: true})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	_, err = Toggle(database, cfg, ToggleInput{ID: "style", Index: 99, Checked: true})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST for out-of-range index, got %v", err)
	}

	_, err = Toggle(database, cfg, ToggleInput{ID: "style", Index: -1, Checked: true})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST for negative index, got %v", err)
	}
}
