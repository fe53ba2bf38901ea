package backstack

import (
	"fmt"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
)

// registryKeyPrefix scopes the cache's entry in the host registry. The full
// key appends the host view's numeric identifier so it survives process
// death; two sibling containers that share an identifier would collide, and
// keeping their identifiers distinct is the host's responsibility.
const registryKeyPrefix = "sfoglia.backstack."

// savedStateKey is the single entry inside the cache's host-registry bundle.
const savedStateKey = "state"

// Cache tracks a Frame for every hidden screen plus the frame for the one
// visible screen, and drives save/restore across navigation.
//
// A cache moves through three states: uninstalled, installed-unrestored, and
// installed-restored. InstallOn performs the first transition and wires the
// cache into the host's saved-state plumbing; the host lifecycle's "created"
// callback performs the second via the one allowed RestoreFromBundle pass.
// Both transitions fail loudly on re-entry.
type Cache struct {
	hidden  map[string]*Frame
	current *Frame

	installed atomic.Bool
	restored  atomic.Bool

	providerKey   string
	cancelRestore func()
	removeAttach  func()

	log *slog.Logger
}

// NewCache returns an empty, uninstalled cache.
func NewCache() *Cache {
	return &Cache{
		hidden: make(map[string]*Frame),
		log:    internal.GetInternalLogger(),
	}
}

// InstallOn binds the cache to host's attachment lifecycle and registers it
// with parent, the host's own registry owner. From then on the parent's
// "state save" point serializes the whole cache, and its "created" callback
// triggers the one-time whole-cache restore. Teardown is implicit: when host
// detaches, the provider and the pending restore subscription are removed.
//
// Installing an already-installed cache is a contract violation.
func (c *Cache) InstallOn(host platform.View, parent *platform.Controller) {
	if !c.installed.CompareAndSwap(false, true) {
		platform.Contractf("cache install", "cache is already installed")
	}

	c.providerKey = fmt.Sprintf("%s%d", registryKeyPrefix, host.ID())

	parent.Registry().RegisterProvider(c.providerKey, func() platform.Bundle {
		blob, err := c.SaveToBundle().MarshalBinary()
		if err != nil {
			c.log.Error("cache state save failed", "key", c.providerKey, "error", err)
			return platform.Bundle{}
		}
		return platform.Bundle{savedStateKey: blob}
	})

	c.cancelRestore = platform.OnceOnCreated(parent.Lifecycle(), func() {
		saved := &Saved{}
		if b, ok := parent.Registry().ConsumeRestoredStateForKey(c.providerKey); ok {
			if blob, ok := b[savedStateKey]; ok {
				if err := saved.UnmarshalBinary(blob); err != nil {
					c.log.Error("cache state restore failed", "key", c.providerKey, "error", err)
					saved = &Saved{}
				}
			}
		}
		c.RestoreFromBundle(saved)
	})

	c.removeAttach = host.AddAttachListener(nil, func() {
		parent.Registry().UnregisterProvider(c.providerKey)
		c.cancelRestore()
		c.removeAttach()
	})
}

// Update performs one navigation step. retained is the ordered set of
// renderings whose state must survive this step; it must contain no
// duplicate keys and must include the rendering newView is showing. oldView,
// if non-nil, is the outgoing view and must be showing the rendering the
// cache currently tracks. Violations panic before any state is mutated.
//
// If the incoming screen was hidden, its frame is reinstalled and both state
// channels are replayed onto newView. Otherwise a fresh frame is created;
// its registry restore is deferred when the whole-cache restore is still
// pending, because that restore will populate and restore this exact frame.
// The outgoing screen's state is snapshotted while its view is still
// attached, its controller teardown is deferred until the view detaches, and
// every hidden frame whose key left retained is dropped.
func (c *Cache) Update(retained []any, oldView, newView platform.View) {
	if !c.installed.Load() {
		platform.Contractf("cache update", "cache is not installed")
	}

	newRendering := newView.Showing()
	if newRendering == nil {
		platform.Contractf("cache update", "expected newView to be showing a rendering, found none")
	}
	newKey := sfoglia.Key(newRendering)

	retainedKeys := make(map[string]struct{}, len(retained))
	for _, r := range retained {
		k := sfoglia.Key(r)
		if _, dup := retainedKeys[k]; dup {
			platform.Contractf("cache update", "duplicate retained key %q", k)
		}
		retainedKeys[k] = struct{}{}
	}
	if _, ok := retainedKeys[newKey]; !ok {
		platform.Contractf("cache update", "newView key %q is missing from the retained set", newKey)
	}

	var oldKey string
	if oldView != nil {
		oldRendering := oldView.Showing()
		if oldRendering == nil {
			platform.Contractf("cache update", "expected oldView to be showing a rendering, found none")
		}
		oldKey = sfoglia.Key(oldRendering)
		if c.current == nil || c.current.key != oldKey {
			platform.Contractf("cache update",
				"oldView is showing %q, which is not the tracked current frame", oldKey)
		}
	}

	// Validation is done; mutation starts here.
	frame, wasHidden := c.hidden[newKey]
	if wasHidden {
		delete(c.hidden, newKey)
		frame.InstallOn(newView)
		frame.RestoreStateRegistry()
		frame.RestoreHierarchyState(newView)
		c.log.Debug("navigating back", "key", newKey)
	} else {
		frame = newFrame(newKey)
		frame.InstallOn(newView)
		if c.restored.Load() {
			frame.RestoreStateRegistry()
		}
		c.log.Debug("navigating forward", "key", newKey, "restoreDeferred", !c.restored.Load())
	}

	if oldView != nil {
		outgoing := c.current
		if _, stillRetained := retainedKeys[oldKey]; stillRetained {
			outgoing.PerformSave(oldView)
		}
		outgoing.DestroyOnDetach()
		c.hidden[oldKey] = outgoing
	}

	c.current = frame

	for key := range c.hidden {
		if _, ok := retainedKeys[key]; !ok {
			delete(c.hidden, key)
			c.log.Debug("pruned frame", "key", key)
		}
	}
}

// Prune drops hidden frames whose renderings are absent from retained, for
// containers that change their hidden set without changing the visible
// screen (tab reordering and the like). The current frame is never touched.
// Requires an installed cache; calling twice with the same set is a no-op
// the second time.
func (c *Cache) Prune(retained []any) {
	if !c.installed.Load() {
		platform.Contractf("cache prune", "cache is not installed")
	}
	keep := make(map[string]struct{}, len(retained))
	for _, r := range retained {
		keep[sfoglia.Key(r)] = struct{}{}
	}
	for key := range c.hidden {
		if _, ok := keep[key]; !ok {
			delete(c.hidden, key)
			c.log.Debug("pruned frame", "key", key)
		}
	}
}

// SaveToBundle serializes the whole cache: every hidden frame, plus the
// current frame after one last registry snapshot. No hierarchy snapshot is
// taken for the current frame, since the toolkit's own traversal covers the
// still-attached view. The current frame is written last so its fresh
// snapshot wins over a stale hidden frame sharing its key, which happens
// after an in-place view replacement for a single screen. The cache's
// tracking structures are not mutated.
func (c *Cache) SaveToBundle() *Saved {
	saved := &Saved{Frames: make(map[string]frameRecord, len(c.hidden)+1)}
	for key, frame := range c.hidden {
		saved.Frames[key] = frame.toRecord()
	}
	if c.current != nil {
		c.current.PerformSave(nil)
		saved.Frames[c.current.key] = c.current.toRecord()
	}
	return saved
}

// RestoreFromBundle performs the cache's one allowed restore pass; a second
// call is a contract violation. The hidden set is replaced by the incoming
// records, except that a record matching the pre-existing current frame
// (the one created by the first Update call, which races this restore) has
// its registry payload merged into that frame and restored immediately. A
// current frame with no matching record gets its (empty) deferred registry
// restore now.
func (c *Cache) RestoreFromBundle(saved *Saved) {
	if !c.installed.Load() {
		platform.Contractf("cache restore", "cache is not installed")
	}
	if !c.restored.CompareAndSwap(false, true) {
		platform.Contractf("cache restore", "restoreFromBundle called twice")
	}

	clear(c.hidden)

	merged := false
	if saved != nil {
		for key, rec := range saved.Frames {
			if c.current != nil && key == c.current.key {
				c.current.LoadStateRegistryFrom(frameFromRecord(rec))
				c.current.RestoreStateRegistry()
				merged = true
				continue
			}
			c.hidden[key] = frameFromRecord(rec)
		}
	}

	if c.current != nil && !merged {
		c.current.RestoreStateRegistry()
	}

	c.log.Debug("cache restored", "frames", len(c.hidden), "mergedIntoCurrent", merged)
}

// CurrentKey returns the key of the visible screen's frame, if any.
func (c *Cache) CurrentKey() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.key, true
}

// HiddenKeys returns the keys of all hidden frames, unordered.
func (c *Cache) HiddenKeys() []string {
	out := make([]string, 0, len(c.hidden))
	for key := range c.hidden {
		out = append(out, key)
	}
	return out
}
