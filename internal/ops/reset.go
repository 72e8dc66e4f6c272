package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/hollyoak/loom/internal/config"
	"github.com/hollyoak/loom/internal/db"
	"github.com/hollyoak/loom/internal/defaults"
	"github.com/hollyoak/loom/internal/errors"
	"github.com/hollyoak/loom/internal/prompt"
)

// resetMu serializes resets: loading default definitions is the one
// suspension point in the system, and a second reset arriving while one
// is in flight is rejected rather than raced.
var resetMu sync.Mutex

// ResetOutput contains the result of the Reset operation.
type ResetOutput struct {
	Version    int  `json:"version"`
	Categories int  `json:"categories"`
	Seeded     bool `json:"seeded"`
}

// Reset replaces the whole category tree with the default definitions and
// fresh empty outputs. If loading the defaults fails, the prior state is
// left untouched.
func Reset(ctx context.Context, database *sql.DB, cfg *config.Config) (*ResetOutput, error) {
	if !resetMu.TryLock() {
		return nil, errors.NewResetInProgress()
	}
	defer resetMu.Unlock()

	return applyDefaults(ctx, database, cfg)
}

// Init seeds the state from defaults when no usable categories document
// has been persisted. A document that fails to parse counts as absent, so
// a corrupted store reseeds instead of starting with an empty tree.
// Called once at startup.
func Init(ctx context.Context, database *sql.DB, cfg *config.Config) (*ResetOutput, error) {
	if !resetMu.TryLock() {
		return nil, errors.NewResetInProgress()
	}
	defer resetMu.Unlock()

	if body, ok, err := db.GetDocument(database, docCategories); err != nil {
		return nil, err
	} else if ok {
		var doc categoriesDoc
		if json.Unmarshal([]byte(body), &doc) == nil {
			st, err := loadState(database)
			if err != nil {
				return nil, err
			}
			return &ResetOutput{Version: st.Version, Categories: len(st.Categories), Seeded: false}, nil
		}
	}

	return applyDefaults(ctx, database, cfg)
}

func applyDefaults(ctx context.Context, database *sql.DB, cfg *config.Config) (*ResetOutput, error) {
	set, err := defaults.Load(ctx, cfg.DefaultsURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCancelled("reset")
		}
		return nil, errors.NewDefaultsUnavailable(err)
	}

	st := &state{
		Version:    set.Version,
		Categories: make([]prompt.Category, 0, len(set.Categories)),
		Outputs:    make(map[string]*prompt.Output, len(set.Categories)),
	}
	for _, def := range set.Categories {
		st.Categories = append(st.Categories, prompt.Category{
			ID:       def.ID,
			Name:     def.Name,
			Options:  def.Options,
			Selected: []int{},
		})
		st.Outputs[def.ID] = &prompt.Output{}
	}

	if err := saveState(database, st); err != nil {
		return nil, err
	}

	return &ResetOutput{Version: st.Version, Categories: len(st.Categories), Seeded: true}, nil
}
