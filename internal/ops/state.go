package ops

import (
	"database/sql"
	"encoding/json"

	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// Document keys for the two persisted state documents.
const (
	docCategories = "categories"
	docOutputs    = "outputs"
)

// state is the whole in-memory tree: the ordered categories plus the
// per-category output map. Every mutating operation loads it, applies one
// change through the prompt core, reconciles, and persists the whole tree
// before returning, so each user action is an atomic whole-state
// transition.
type state struct {
	Version    int
	Categories []prompt.Category
	Outputs    map[string]*prompt.Output
}

// categoriesDoc is the persisted shape of the category/selection tree.
type categoriesDoc struct {
	Version    int               `json:"version"`
	Categories []prompt.Category `json:"categories"`
}

// outputsDoc is the persisted shape of the per-category output map.
type outputsDoc struct {
	Outputs map[string]*prompt.Output `json:"outputs"`
}

// loadState reads both state documents. A missing or malformed document is
// treated as absent, never fatal: corruption must not crash startup.
func loadState(database *sql.DB) (*state, error) {
	st := &state{Outputs: make(map[string]*prompt.Output)}

	if body, ok, err := db.GetDocument(database, docCategories); err != nil {
		return nil, err
	} else if ok {
		var doc categoriesDoc
		if json.Unmarshal([]byte(body), &doc) == nil {
			st.Version = doc.Version
			st.Categories = doc.Categories
		}
	}

	if body, ok, err := db.GetDocument(database, docOutputs); err != nil {
		return nil, err
	} else if ok {
		var doc outputsDoc
		if json.Unmarshal([]byte(body), &doc) == nil && doc.Outputs != nil {
			st.Outputs = doc.Outputs
		}
	}

	st.repair()
	return st, nil
}

// saveState persists both documents.
func saveState(database *sql.DB, st *state) error {
	catBody, err := json.Marshal(categoriesDoc{Version: st.Version, Categories: st.Categories})
	if err != nil {
		return errors.NewInternal(err)
	}
	outBody, err := json.Marshal(outputsDoc{Outputs: st.Outputs})
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := db.PutDocument(database, docCategories, string(catBody)); err != nil {
		return err
	}
	return db.PutDocument(database, docOutputs, string(outBody))
}

// repair enforces the category/output pairing invariant and recomputes
// every selection from its text: a category without an output gets an
// empty one, outputs without a category are dropped, and Selected is
// rederived so the two representations never diverge across a restart.
func (s *state) repair() {
	if s.Outputs == nil {
		s.Outputs = make(map[string]*prompt.Output)
	}
	live := make(map[string]bool, len(s.Categories))
	for i := range s.Categories {
		cat := &s.Categories[i]
		live[cat.ID] = true
		out := s.Outputs[cat.ID]
		if out == nil {
			out = &prompt.Output{}
			s.Outputs[cat.ID] = out
		}
		cat.Selected = prompt.Reconcile(cat.Options, out.Text)
	}
	for id := range s.Outputs {
		if !live[id] {
			delete(s.Outputs, id)
		}
	}
}

// find locates a category by validated address. Returns the index or -1.
func (s *state) find(addr *Address) int {
	for i := range s.Categories {
		if addr.ByID {
			if s.Categories[i].ID == addr.ID {
				return i
			}
		} else if prompt.Normalize(s.Categories[i].Name) == addr.Name {
			return i
		}
	}
	return -1
}

// resolve validates the id/name pair and locates the category, returning
// NOT_FOUND when absent.
func (s *state) resolve(id, name string) (int, error) {
	addr, err := ValidateAddress(id, name)
	if err != nil {
		return -1, err
	}
	idx := s.find(addr)
	if idx < 0 {
		identifier := addr.ID
		if !addr.ByID {
			identifier = addr.Name
		}
		return -1, errors.NewNotFound(identifier)
	}
	return idx, nil
}

// reconcileAt recomputes one category's selection from its current text.
// Called after every text change; the result fully replaces the prior set.
func (s *state) reconcileAt(idx int) {
	cat := &s.Categories[idx]
	cat.Selected = prompt.Reconcile(cat.Options, s.Outputs[cat.ID].Text)
}
