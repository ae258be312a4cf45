package kernel

import "maps"

// Preferences maps a notification or email category to whether the owner accepts it.
// A category that is absent is treated as disabled.
type Preferences struct {
	categories map[string]bool
}

// NewPreferences copies the given map so later changes by the caller are not observed.
func NewPreferences(categories map[string]bool) Preferences {
	return Preferences{categories: maps.Clone(categories)}
}

// Enabled reports whether category is explicitly set to true.
func (p Preferences) Enabled(category string) bool {
	return p.categories[category]
}

// With returns a copy of p with category set to enabled.
func (p Preferences) With(category string, enabled bool) Preferences {
	next := maps.Clone(p.categories)
	if next == nil {
		next = make(map[string]bool, 1)
	}
	next[category] = enabled
	return Preferences{categories: next}
}

// Map returns a copy of the underlying mapping, for persistence.
func (p Preferences) Map() map[string]bool {
	out := maps.Clone(p.categories)
	if out == nil {
		out = map[string]bool{}
	}
	return out
}
