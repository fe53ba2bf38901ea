package platform

// StateProvider supplies one component's state at the host's "state save"
// point. Providers must be cheap and side-effect free.
type StateProvider func() Bundle

// StateRegistry is the per-screen saved-state registry: components register
// providers under unique keys, and after a restore pass consume whatever was
// captured for their key in a previous session.
//
// A registry starts un-restored. Consuming from an un-restored registry is a
// contract violation: the provider contract guarantees restore happens at a
// well-defined "created" point before any consumer runs.
type StateRegistry struct {
	providers map[string]StateProvider
	restored  BundleMap
	// isRestored is tracked separately because a restore pass with no
	// payload still counts as a completed pass.
	isRestored bool
}

// NewStateRegistry returns an empty, un-restored registry.
func NewStateRegistry() *StateRegistry {
	return &StateRegistry{providers: make(map[string]StateProvider)}
}

// RegisterProvider registers p under key. Registering a second provider
// under the same key is a contract violation.
func (r *StateRegistry) RegisterProvider(key string, p StateProvider) {
	if p == nil {
		Contractf("registry register", "nil provider for key %q", key)
	}
	if _, dup := r.providers[key]; dup {
		Contractf("registry register", "provider already registered for key %q", key)
	}
	r.providers[key] = p
}

// UnregisterProvider removes the provider for key, if any.
func (r *StateRegistry) UnregisterProvider(key string) {
	delete(r.providers, key)
}

// IsRestored reports whether the registry has completed its restore pass.
func (r *StateRegistry) IsRestored() bool {
	return r.isRestored
}

// ConsumeRestoredStateForKey removes and returns the restored Bundle for
// key. The second return is false when the previous session captured nothing
// under key. Calling this before the restore pass is a contract violation.
func (r *StateRegistry) ConsumeRestoredStateForKey(key string) (Bundle, bool) {
	if !r.isRestored {
		Contractf("registry consume",
			"consumeRestoredStateForKey(%q) called before the restore pass", key)
	}
	b, ok := r.restored[key]
	if ok {
		delete(r.restored, key)
	}
	return b, ok
}

func (r *StateRegistry) performRestore(state BundleMap) {
	r.restored = state.Clone()
	if r.restored == nil {
		r.restored = BundleMap{}
	}
	r.isRestored = true
}

// performSave merges unconsumed restored state with every registered
// provider's current bundle. Unconsumed entries ride along so state owned by
// a component that never re-registered is not silently dropped.
func (r *StateRegistry) performSave() BundleMap {
	out := make(BundleMap, len(r.providers)+len(r.restored))
	for key, b := range r.restored {
		out[key] = b.Clone()
	}
	for key, p := range r.providers {
		out[key] = p()
	}
	return out
}

// Controller binds a StateRegistry to a lifecycle owner and enforces the
// restore-then-save ordering: PerformSave before at least one PerformRestore
// would hand consumers corrupt state, so it is rejected outright.
type Controller struct {
	registry  *StateRegistry
	lifecycle *Lifecycle
	restored  bool
}

// NewController creates a controller bound to owner's lifecycle. The owner
// must not already be destroyed.
func NewController(owner LifecycleOwner) *Controller {
	lc := owner.Lifecycle()
	if lc.State() == StateDestroyed {
		Contractf("controller", "cannot bind to a destroyed lifecycle")
	}
	return &Controller{
		registry:  NewStateRegistry(),
		lifecycle: lc,
	}
}

// Registry returns the controlled registry.
func (c *Controller) Registry() *StateRegistry {
	return c.registry
}

// Lifecycle returns the bound lifecycle, making Controller itself a
// LifecycleOwner.
func (c *Controller) Lifecycle() *Lifecycle {
	return c.lifecycle
}

// IsRestored reports whether PerformRestore has run.
func (c *Controller) IsRestored() bool {
	return c.restored
}

// PerformRestore feeds the registry its restored state. A nil state is a
// valid, empty restore pass. Restoring twice, or restoring after the bound
// lifecycle was destroyed, is a contract violation.
func (c *Controller) PerformRestore(state BundleMap) {
	if c.restored {
		Contractf("controller restore", "performRestore called twice")
	}
	if c.lifecycle.State() == StateDestroyed {
		Contractf("controller restore", "performRestore on a destroyed lifecycle")
	}
	c.registry.performRestore(state)
	c.restored = true
}

// PerformSave captures every provider's current state. Saving before the
// restore pass is a contract violation.
func (c *Controller) PerformSave() BundleMap {
	if !c.restored {
		Contractf("controller save", "performSave called before any restore pass")
	}
	return c.registry.performSave()
}
