package backstack

import (
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// Frame owns the persisted state for exactly one logical screen: the
// screen's hierarchy-state payload, its registry-bundle payload, and, while
// the screen's view is attached, a live registry controller bound to that
// view's lifecycle. The controller is transient: created on install, torn
// down when the view detaches, never left dangling while the frame is
// parked in the hidden set.
type Frame struct {
	key string

	// Either payload may be absent: hierarchyState is nil until the screen
	// has been hidden at least once, registryState is nil until the first
	// registry snapshot or restore merge.
	hierarchyState platform.HierarchyState
	registryState  platform.BundleMap

	controller   *platform.Controller
	view         platform.View
	removeDetach func()
}

func newFrame(key string) *Frame {
	return &Frame{key: key}
}

// Key returns the compatibility key of the screen this frame belongs to.
func (f *Frame) Key() string {
	return f.key
}

// InstallOn binds a fresh registry controller to view's own lifecycle and
// publishes it so descendant saved-state lookups resolve to it. Installing
// while a controller already exists is a contract violation.
func (f *Frame) InstallOn(view platform.View) {
	if f.controller != nil {
		platform.Contractf("frame install", "frame %q already has a live controller", f.key)
	}
	f.controller = platform.NewController(view)
	f.view = view
	view.SetRegistryOwner(f.controller)
}

// RestoreStateRegistry feeds the controller the stored registry payload, or
// an empty one if nothing was ever captured, so consumers never find the
// registry un-restored. Requires a prior InstallOn.
func (f *Frame) RestoreStateRegistry() {
	if f.controller == nil {
		platform.Contractf("frame restore", "frame %q has no controller to restore", f.key)
	}
	state := f.registryState
	if state == nil {
		state = platform.BundleMap{}
	}
	f.controller.PerformRestore(state)
}

// RestoreHierarchyState replays the stored hierarchy payload onto view.
// A frame with no payload (a brand-new screen, or a whole-process restore
// where the toolkit already replayed hierarchy state itself) is a no-op.
func (f *Frame) RestoreHierarchyState(view platform.View) {
	if f.hierarchyState == nil {
		return
	}
	view.RestoreHierarchyState(f.hierarchyState)
}

// PerformSave captures the controller's current provider state into the
// registry payload. If view is non-nil its hierarchy state is captured too;
// the cache passes nil for the still-visible screen at whole-cache save
// time, where the toolkit's own traversal covers the hierarchy channel.
// Requires that RestoreStateRegistry has run on this controller.
func (f *Frame) PerformSave(view platform.View) {
	if f.controller == nil {
		platform.Contractf("frame save", "frame %q has no controller to save", f.key)
	}
	f.registryState = f.controller.PerformSave()
	if view != nil {
		out := platform.HierarchyState{}
		view.SaveHierarchyState(out)
		f.hierarchyState = out
	}
}

// LoadStateRegistryFrom replaces this frame's registry payload with other's.
// Used only during whole-cache restore, to merge a freshly-deserialized
// frame's payload into the frame that is already current.
func (f *Frame) LoadStateRegistryFrom(other *Frame) {
	f.registryState = other.registryState
}

// DestroyOnDetach schedules controller teardown for the moment the installed
// view actually detaches from its window, or runs it immediately if the view
// is already detached. The deferral keeps transition animations from losing
// their registry mid-flight. No-op when there is no live controller.
func (f *Frame) DestroyOnDetach() {
	if f.controller == nil {
		return
	}
	if !f.view.Attached() {
		f.destroy()
		return
	}
	f.removeDetach = f.view.AddAttachListener(nil, f.destroy)
}

// destroy moves the bound lifecycle to its terminal state, unpublishes the
// controller from the view, and drops both references.
func (f *Frame) destroy() {
	if f.controller == nil {
		return
	}
	if f.removeDetach != nil {
		f.removeDetach()
		f.removeDetach = nil
	}
	f.view.SetRegistryOwner(nil)
	f.controller.Lifecycle().MoveTo(platform.StateDestroyed)
	f.controller = nil
	f.view = nil
}
