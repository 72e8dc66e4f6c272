package prompt

import "strings"

// BuildSummary concatenates the trimmed, non-empty category texts in
// category order, joined by a blank line. It is a pure projection of the
// current outputs; categories with empty text contribute nothing, with no
// stray blank-line padding.
func BuildSummary(categories []Category, outputs map[string]*Output) string {
	parts := make([]string, 0, len(categories))
	for _, cat := range categories {
		out := outputs[cat.ID]
		if out == nil {
			continue
		}
		text := strings.TrimSpace(out.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}
