// Package strings provides string set helpers for request input.
package strings

import (
	"slices"
	"strings"
)

// NormalizeSet trims every value, drops blanks and duplicates, and returns the
// rest sorted so downstream cross products are deterministic.
//
// Example:
//
//	NormalizeSet([]string{" sfdr ", "lksg", "sfdr", ""})
//	// Returns: []string{"lksg", "sfdr"}
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
