package sfoglia

import (
	"reflect"
	"strings"
)

// Keyed lets a rendering supply its own compatibility key instead of the
// default type-derived one. The key must be stable across updates and unique
// within any single navigation snapshot.
type Keyed interface {
	CompatibilityKey() string
}

// Named wraps a rendering with a human-readable disambiguator, so two
// renderings of the same type can denote different logical screens.
// Named values may nest; each layer contributes its name to the key.
type Named struct {
	Wrapped any
	Name    string
}

// Key returns the compatibility key identifying the logical screen a
// rendering denotes. Two renderings are "the same slot" iff their keys are
// equal. Keys are derived from the rendering's type plus any Named
// disambiguators, unless the rendering implements Keyed.
//
// A nil rendering has no key; callers that require one treat nil as a
// contract violation at their own boundary.
func Key(rendering any) string {
	if rendering == nil {
		return ""
	}

	var names []string
	for {
		n, ok := rendering.(Named)
		if !ok {
			break
		}
		names = append(names, n.Name)
		rendering = n.Wrapped
	}

	var base string
	if rendering == nil {
		return ""
	}
	if k, ok := rendering.(Keyed); ok {
		base = k.CompatibilityKey()
	} else {
		base = reflect.TypeOf(rendering).String()
	}

	if len(names) == 0 {
		return base
	}
	// Innermost name first, matching wrap order.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return base + "+" + strings.Join(names, "+")
}

// Compatible reports whether two renderings denote the same logical screen,
// so an existing view or window showing a can be updated in place to show b.
func Compatible(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return Key(a) == Key(b)
}
