// Package style holds the local, deterministic styling content used when the
// upstream model is unavailable: keyword-driven advice and suggestion images.
package style

import "strings"

// Rule maps a set of keywords to a result. A rule matches when the lowercased
// input contains any of its keywords.
type Rule[T any] struct {
	Keywords []string
	Result   T
}

// Matches reports whether the rule applies to the already lowercased text.
func (r Rule[T]) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Table is an ordered rule list with a default. The first matching rule wins.
type Table[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Lookup returns the result of the first rule matching text, or the default.
func (t Table[T]) Lookup(text string) T {
	lower := strings.ToLower(text)
	for _, r := range t.Rules {
		if r.Matches(lower) {
			return r.Result
		}
	}
	return t.Default
}
