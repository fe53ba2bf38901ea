// Package platform defines the boundary between sfoglia and the host UI
// toolkit: opaque state payloads, per-view lifecycles, and the saved-state
// registry contract. The toolkit's own view, window, and dialog primitives
// stay on the other side of these interfaces.
package platform

// NoID marks a view that has no stable numeric identifier assigned.
// Views with NoID do not participate in hierarchy-state capture.
const NoID = -1

// Bundle is a string-keyed collection of opaque byte payloads, the unit of
// registry state. A nil Bundle means "never captured" and is distinct from
// an empty one; that distinction survives serialization.
type Bundle map[string][]byte

// PutString stores a string value under key.
func (b Bundle) PutString(key, value string) {
	b[key] = []byte(value)
}

// GetString returns the string value stored under key, if any.
func (b Bundle) GetString(key string) (string, bool) {
	v, ok := b[key]
	if !ok {
		return "", false
	}
	return string(v), true
}

// Clone returns a deep copy. Nil stays nil.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return nil
	}
	out := make(Bundle, len(b))
	for k, v := range b {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// BundleMap is a named-bundle snapshot: one Bundle per registry provider key.
type BundleMap map[string]Bundle

// Clone returns a deep copy. Nil stays nil.
func (m BundleMap) Clone() BundleMap {
	if m == nil {
		return nil
	}
	out := make(BundleMap, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// HierarchyState is the legacy view-tree state channel: one opaque blob per
// numeric view identifier, captured by walking the tree. A nil HierarchyState
// means the owning screen has never been hidden.
type HierarchyState map[int][]byte

// Clone returns a deep copy. Nil stays nil.
func (h HierarchyState) Clone() HierarchyState {
	if h == nil {
		return nil
	}
	out := make(HierarchyState, len(h))
	for k, v := range h {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
