package prompt

import (
	"regexp"
	"strings"
)

// Separator is the canonical token separator in category free text.
const Separator = ", "

var (
	// doubledSeps matches two or more commas separated only by whitespace.
	doubledSeps = regexp.MustCompile(`,[ \t]*(,[ \t]*)+`)

	// sepSpacing matches a comma with arbitrary surrounding spaces/tabs.
	sepSpacing = regexp.MustCompile(`[ \t]*,[ \t]*`)

	// spaceRuns matches runs of two or more spaces/tabs. Newlines are left
	// alone so custom free text keeps its line structure.
	spaceRuns = regexp.MustCompile(`[ \t]{2,}`)
)

// tokenPattern builds a pattern that matches option as a whole
// separator-delimited token: preceded by start-of-text or a comma plus
// optional whitespace, followed by optional whitespace then a comma or
// end-of-text. The option itself is quoted, so punctuation (including
// commas) inside an option is matched literally rather than treated as
// a delimiter.
func tokenPattern(option string) *regexp.Regexp {
	return regexp.MustCompile(`(^|,\s*)` + regexp.QuoteMeta(option) + `\s*(,|$)`)
}

// HasToken reports whether option appears in text as a whole token.
// This is not a substring check: "glassy" does not match inside
// "neo-futurist, glassy tower" unless it is comma-delimited on its own.
// Matching is case-sensitive and exact.
func HasToken(text, option string) bool {
	if option == "" {
		return false
	}
	return tokenPattern(option).MatchString(text)
}

// AddToken appends option to text as a new token. If the option is already
// present as a token the text is returned unchanged, so AddToken is
// idempotent. Any trailing separator on the existing text is stripped
// before joining.
func AddToken(text, option string) string {
	if option == "" || HasToken(text, option) {
		return text
	}
	base := strings.TrimSpace(text)
	for strings.HasSuffix(base, ",") {
		base = strings.TrimSpace(strings.TrimSuffix(base, ","))
	}
	if base == "" {
		return option
	}
	return base + Separator + option
}

// RemoveToken removes the first occurrence of option appearing as a whole
// token, consuming one adjacent separator, then normalizes the remainder:
// doubled separators collapse to a single canonical ", ", stray leading and
// trailing separators are stripped, and runs of spaces collapse. Text
// without the token is returned unchanged, so RemoveToken is idempotent.
// Only the first occurrence is removed: a hand-edited "a, a" still
// contains the token afterwards, and a second unchecking removes it.
func RemoveToken(text, option string) string {
	if option == "" {
		return text
	}
	loc := tokenPattern(option).FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}

	lead := text[loc[2]:loc[3]]  // "" at start-of-text, else ",<ws>"
	trail := text[loc[4]:loc[5]] // "," before a following token, "" at end

	var next string
	if lead != "" && trail == "," {
		// Interior token: the match consumed both the preceding and the
		// following separator, so put one back between the neighbors.
		next = text[:loc[0]] + "," + text[loc[1]:]
	} else {
		next = text[:loc[0]] + text[loc[1]:]
	}
	return normalizeSeparators(next)
}

// normalizeSeparators canonicalizes separator punctuation after a removal.
func normalizeSeparators(s string) string {
	s = doubledSeps.ReplaceAllString(s, ",")
	s = sepSpacing.ReplaceAllString(s, Separator)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ",")
	s = strings.TrimSuffix(s, ",")
	return strings.TrimSpace(s)
}
