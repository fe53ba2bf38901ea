package platform

// View is what sfoglia needs from a host-toolkit view: a numeric identifier,
// the rendering it currently shows, the two state channels, a per-view
// lifecycle, a slot to publish a registry owner for descendant lookups, and
// attachment tracking. Concrete views live in the host toolkit; tests use
// the viewtest fake.
type View interface {
	// ID returns the view's stable numeric identifier, or NoID.
	ID() int

	// Showing returns the rendering this view currently shows, or nil.
	Showing() any

	// SaveHierarchyState walks the view tree and records each identified
	// view's state into out.
	SaveHierarchyState(out HierarchyState)

	// RestoreHierarchyState replays previously captured state onto the
	// tree. Views whose identifier has no entry are left untouched; a
	// structurally mismatched payload is a silent no-op, never an error.
	RestoreHierarchyState(in HierarchyState)

	// Lifecycle returns this view instance's own lifecycle.
	Lifecycle() *Lifecycle

	// RegistryOwner returns the controller published on this view, or nil.
	RegistryOwner() *Controller

	// SetRegistryOwner publishes owner so descendant saved-state lookups
	// resolve to it. Pass nil to clear.
	SetRegistryOwner(owner *Controller)

	// Attached reports whether the view is attached to a window.
	Attached() bool

	// AddAttachListener registers callbacks for attach/detach transitions;
	// either func may be nil. The returned func unregisters them and is
	// safe to call more than once.
	AddAttachListener(onAttached, onDetached func()) (remove func())
}
