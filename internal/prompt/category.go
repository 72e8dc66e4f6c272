package prompt

// DefaultUndoDepth bounds the per-category undo stack when no explicit
// depth is configured. Oldest entries are discarded on overflow.
const DefaultUndoDepth = 120

// Category is one selectable group of prompt options. Selected is always
// derived from the category's free text via Reconcile; it is persisted
// only so UI layers can render without recomputing, and is recomputed on
// every load and after every text change.
type Category struct {
	// ID uniquely identifies the category, stable across renames
	ID string `json:"id"`

	// Name is the display label
	Name string `json:"name"`

	// Options is the ordered option list; order is display and join order
	Options []string `json:"options"`

	// Selected holds the indices of options currently present as tokens
	// in the category's free text
	Selected []int `json:"selected"`
}

// Output is the per-category free-text record. Text is the authoritative
// representation of the category's contribution to the summary.
type Output struct {
	// Text is the free-form category text
	Text string `json:"text"`

	// Dirty is true once the user has interacted with the category
	Dirty bool `json:"dirty"`

	// UndoStack holds prior text values, most-recent-last
	UndoStack []string `json:"undo_stack,omitempty"`

	// LastObserved is the text value an edit-driven undo entry would be
	// pushed for on the next change; used to skip no-op edit notifications
	LastObserved string `json:"last_observed"`
}

// Reconcile derives the selection set for a category's option list from
// its free text by testing every option as a whole token. The result fully
// replaces any prior selection. Reconcile is a pure function; calling it
// twice on the same inputs yields the same set.
func Reconcile(options []string, text string) []int {
	selected := make([]int, 0, len(options))
	for i, opt := range options {
		if HasToken(text, opt) {
			selected = append(selected, i)
		}
	}
	return selected
}

// pushUndo appends prev to the undo stack, discarding the oldest entries
// beyond depth.
func (o *Output) pushUndo(prev string, depth int) {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	o.UndoStack = append(o.UndoStack, prev)
	if len(o.UndoStack) > depth {
		o.UndoStack = append([]string(nil), o.UndoStack[len(o.UndoStack)-depth:]...)
	}
}

// SetToken applies a single checkbox toggle: it adds or removes the option
// token and reports whether the text changed. Unchanged text (double
// toggles, already-satisfied states) pushes nothing onto the undo stack.
func (o *Output) SetToken(option string, on bool, depth int) bool {
	var next string
	if on {
		next = AddToken(o.Text, option)
	} else {
		next = RemoveToken(o.Text, option)
	}
	if next == o.Text {
		return false
	}
	o.pushUndo(o.Text, depth)
	o.Text = next
	o.LastObserved = next
	o.Dirty = true
	return true
}

// SetAllOrNone adds every option token in list order, or removes every
// option token leaving non-option custom text untouched. The whole batch
// pushes a single undo entry, and only when the net result differs.
func (o *Output) SetAllOrNone(options []string, selectAll bool, depth int) bool {
	next := o.Text
	for _, opt := range options {
		if selectAll {
			next = AddToken(next, opt)
		} else {
			next = RemoveToken(next, opt)
		}
	}
	if next == o.Text {
		return false
	}
	o.pushUndo(o.Text, depth)
	o.Text = next
	o.LastObserved = next
	o.Dirty = true
	return true
}

// SetText replaces the text wholesale (a direct user edit). The previous
// LastObserved value is pushed onto the undo stack only when it differs
// from the new text, deduplicating consecutive no-op notifications.
func (o *Output) SetText(newText string, depth int) bool {
	changed := o.LastObserved != newText
	if changed {
		o.pushUndo(o.LastObserved, depth)
	}
	o.Text = newText
	o.LastObserved = newText
	o.Dirty = true
	return changed
}

// Clear empties the text. The current value is pushed unconditionally,
// even when already empty: an explicit clear is always undoable.
func (o *Output) Clear(depth int) {
	o.pushUndo(o.Text, depth)
	o.Text = ""
	o.LastObserved = ""
	o.Dirty = true
}

// Undo pops the most recent undo entry into Text and LastObserved.
// An empty stack is a silent no-op; Undo reports whether it restored
// anything. Repeated calls walk further back; there is no redo.
func (o *Output) Undo() bool {
	if len(o.UndoStack) == 0 {
		return false
	}
	last := o.UndoStack[len(o.UndoStack)-1]
	o.UndoStack = o.UndoStack[:len(o.UndoStack)-1]
	o.Text = last
	o.LastObserved = last
	return true
}
