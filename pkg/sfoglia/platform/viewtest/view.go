// Package viewtest provides a fake view tree implementing platform.View for
// tests of the backstack and modal packages.
package viewtest

import (
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// View is a fake view: a node with a numeric identifier, one string of local
// widget state (standing in for text, scroll position, etc.), and children.
// Hierarchy save/restore walks the tree and keys each node's state by its
// identifier, mirroring the toolkit behavior the real boundary provides:
// nodes with platform.NoID are skipped on save, and nodes whose identifier
// has no entry are silently left untouched on restore.
type View struct {
	id       int
	showing  any
	attached bool
	value    string
	children []*View

	lifecycle *platform.Lifecycle
	owner     *platform.Controller

	nextListener int
	listeners    map[int]attachListener
}

type attachListener struct {
	onAttached func()
	onDetached func()
}

// New returns a detached view with the given identifier (platform.NoID for
// none).
func New(id int) *View {
	return &View{
		id:        id,
		lifecycle: platform.NewLifecycle(),
		listeners: make(map[int]attachListener),
	}
}

// AddChild appends a child node.
func (v *View) AddChild(child *View) {
	v.children = append(v.children, child)
}

// SetShowing sets the rendering this view reports from Showing.
func (v *View) SetShowing(rendering any) {
	v.showing = rendering
}

// SetValue sets the view's local widget state.
func (v *View) SetValue(value string) {
	v.value = value
}

// Value returns the view's local widget state.
func (v *View) Value() string {
	return v.value
}

// Attach simulates the view being attached to a window: the view becomes
// attached, its lifecycle reaches created, and attach listeners fire.
func (v *View) Attach() {
	if v.attached {
		return
	}
	v.attached = true
	if v.lifecycle.State() == platform.StateInitialized {
		v.lifecycle.MoveTo(platform.StateCreated)
	}
	for _, l := range v.snapshotListeners() {
		if l.onAttached != nil {
			l.onAttached()
		}
	}
}

// Detach simulates the view being removed from its window.
func (v *View) Detach() {
	if !v.attached {
		return
	}
	v.attached = false
	for _, l := range v.snapshotListeners() {
		if l.onDetached != nil {
			l.onDetached()
		}
	}
}

func (v *View) snapshotListeners() []attachListener {
	out := make([]attachListener, 0, len(v.listeners))
	for _, l := range v.listeners {
		out = append(out, l)
	}
	return out
}

// platform.View implementation.

func (v *View) ID() int {
	return v.id
}

func (v *View) Showing() any {
	return v.showing
}

func (v *View) SaveHierarchyState(out platform.HierarchyState) {
	if v.id != platform.NoID {
		out[v.id] = []byte(v.value)
	}
	for _, child := range v.children {
		child.SaveHierarchyState(out)
	}
}

func (v *View) RestoreHierarchyState(in platform.HierarchyState) {
	if blob, ok := in[v.id]; ok && v.id != platform.NoID {
		v.value = string(blob)
	}
	for _, child := range v.children {
		child.RestoreHierarchyState(in)
	}
}

func (v *View) Lifecycle() *platform.Lifecycle {
	return v.lifecycle
}

func (v *View) RegistryOwner() *platform.Controller {
	return v.owner
}

func (v *View) SetRegistryOwner(owner *platform.Controller) {
	v.owner = owner
}

func (v *View) Attached() bool {
	return v.attached
}

func (v *View) AddAttachListener(onAttached, onDetached func()) (remove func()) {
	id := v.nextListener
	v.nextListener++
	v.listeners[id] = attachListener{onAttached: onAttached, onDetached: onDetached}
	return func() {
		delete(v.listeners, id)
	}
}
