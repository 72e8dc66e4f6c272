package defaults

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

//go:embed categories.json
var seed []byte

// maxDocumentBytes caps the size of a fetched defaults document.
const maxDocumentBytes = 1 << 20

// CategoryDef is one default category definition, opaque seed data for
// the composer state.
type CategoryDef struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Set is a versioned collection of default category definitions.
type Set struct {
	Version    int           `json:"version"`
	Categories []CategoryDef `json:"categories"`
}

// Load returns the default category definitions. When url is empty the
// embedded seed is parsed; otherwise the document is fetched from url with
// the given context. Any failure is returned to the caller rather than
// falling back silently, so a reset never half-applies.
func Load(ctx context.Context, url string) (*Set, error) {
	if url == "" {
		return parse(seed)
	}
	return fetch(ctx, url)
}

func fetch(ctx context.Context, url string) (*Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build defaults request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch defaults: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch defaults: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse defaults: %w", err)
	}
	if len(set.Categories) == 0 {
		return nil, fmt.Errorf("parse defaults: no categories defined")
	}
	for i, def := range set.Categories {
		if def.ID == "" || def.Name == "" {
			return nil, fmt.Errorf("parse defaults: categories[%d] missing id or name", i)
		}
	}
	return &set, nil
}
