// Package modal keeps N simultaneously-visible modal windows in sync with an
// ordered list of modal renderings, and persists a per-window state snapshot.
//
// Unlike the backstack cache's one-visible-many-hidden model, every entry
// here is visible at once, so each window carries a single state bundle
// instead of the two-channel frame model. Window construction and chrome
// belong to the host's dispatch layer, supplied through WindowBuilder.
package modal

import (
	"log/slog"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// Environment is ambient display configuration handed through to windows
// unchanged; sfoglia never inspects it.
type Environment map[string]any

// Window is one live modal window. Implementations must invoke the callback
// registered with SetOnDismiss from Dismiss and from any native dismissal
// path (back press, outside touch, window detach).
type Window interface {
	// Show makes the window visible.
	Show()

	// Dismiss closes the window.
	Dismiss()

	// Update rebinds the window to a compatible rendering in place.
	Update(rendering any, env Environment)

	// SaveState snapshots the window's view state into a single bundle.
	SaveState() platform.Bundle

	// RestoreState replays a previously saved snapshot.
	RestoreState(state platform.Bundle)

	// SetOnDismiss registers the dismissal callback. At most one is set.
	SetOnDismiss(fn func())
}

// WindowBuilder builds (but does not show) a window for a rendering.
//
// lifecycle tracks the window being built: still initialized when the
// builder runs, created once the window is shown, destroyed when the window
// is dismissed through the container or any native path. Window-scoped
// consumers (registries, subscriptions) should key their teardown off it.
type WindowBuilder func(rendering any, env Environment, lifecycle *platform.Lifecycle) Window

type windowRef struct {
	rendering any
	window    Window
}

// Container owns the ordered list of open modal windows.
type Container struct {
	build   WindowBuilder
	windows []windowRef
	log     *slog.Logger
}

// NewContainer returns an empty container that builds windows with build.
func NewContainer(build WindowBuilder) *Container {
	if build == nil {
		platform.Contractf("modal container", "nil WindowBuilder")
	}
	return &Container{
		build: build,
		log:   internal.GetInternalLogger(),
	}
}

// Update walks renderings pairwise against the open windows. A window at the
// same position showing a compatible rendering is updated in place; anything
// else gets a freshly built and shown window, with its lifecycle wired to be
// destroyed on the window's native dismissal. Windows left over from the old
// list are dismissed.
func (c *Container) Update(renderings []any, env Environment) {
	old := c.windows
	next := make([]windowRef, 0, len(renderings))

	for i, rendering := range renderings {
		if i < len(old) && old[i].window != nil && sfoglia.Compatible(old[i].rendering, rendering) {
			ref := old[i]
			old[i].window = nil // consumed
			ref.rendering = rendering
			ref.window.Update(rendering, env)
			next = append(next, ref)
			continue
		}
		next = append(next, c.show(rendering, env))
	}

	for _, ref := range old {
		if ref.window != nil {
			c.log.Debug("dismissing stale modal", "key", sfoglia.Key(ref.rendering))
			ref.window.Dismiss()
		}
	}

	c.windows = next
}

func (c *Container) show(rendering any, env Environment) windowRef {
	lc := platform.NewLifecycle()
	w := c.build(rendering, env, lc)

	w.SetOnDismiss(func() {
		if lc.State() != platform.StateDestroyed {
			lc.MoveTo(platform.StateDestroyed)
		}
	})

	lc.MoveTo(platform.StateCreated)
	w.Show()
	c.log.Debug("showing modal", "key", sfoglia.Key(rendering))

	return windowRef{rendering: rendering, window: w}
}

// Len returns the number of open windows.
func (c *Container) Len() int {
	return len(c.windows)
}

// SaveState snapshots every open window in order: one (key, bundle) pair per
// window, position-significant.
func (c *Container) SaveState() *SavedModals {
	saved := &SavedModals{Windows: make([]modalRecord, 0, len(c.windows))}
	for _, ref := range c.windows {
		saved.Windows = append(saved.Windows, modalRecord{
			Key:   sfoglia.Key(ref.rendering),
			State: ref.window.SaveState(),
		})
	}
	return saved
}

// RestoreState replays saved snapshots onto the open windows by position. An
// entry only applies when its stored key still matches the live window's
// rendering key at that position; anything else is skipped, defending
// against the list changing shape between save and restore.
func (c *Container) RestoreState(saved *SavedModals) {
	if saved == nil {
		return
	}
	for i, rec := range saved.Windows {
		if i >= len(c.windows) {
			return
		}
		if rec.Key != sfoglia.Key(c.windows[i].rendering) {
			c.log.Debug("skipping modal restore, key mismatch",
				"saved", rec.Key, "showing", sfoglia.Key(c.windows[i].rendering))
			continue
		}
		c.windows[i].window.RestoreState(rec.State)
	}
}
