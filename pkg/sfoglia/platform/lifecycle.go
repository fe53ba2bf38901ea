package platform

// LifecycleState is the coarse lifecycle of a view or window. Transitions
// only move forward; StateDestroyed is terminal.
type LifecycleState int

const (
	StateInitialized LifecycleState = iota
	StateCreated
	StateDestroyed
)

func (s LifecycleState) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateCreated:
		return "created"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// LifecycleObserver is notified of each state change.
type LifecycleObserver func(state LifecycleState)

// Lifecycle is a small forward-only state machine with observer support.
// All operations run on the host's single UI thread; ordering comes from the
// host's callback sequencing, so there is no internal locking.
type Lifecycle struct {
	state     LifecycleState
	observers map[int]LifecycleObserver
	nextID    int
}

// NewLifecycle returns a Lifecycle in StateInitialized.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{observers: make(map[int]LifecycleObserver)}
}

// State returns the current state.
func (l *Lifecycle) State() LifecycleState {
	return l.state
}

// MoveTo advances the lifecycle and notifies observers. Moving backward or
// out of StateDestroyed is a contract violation; moving to the current state
// is a no-op.
func (l *Lifecycle) MoveTo(state LifecycleState) {
	if state == l.state {
		return
	}
	if state < l.state {
		Contractf("lifecycle", "cannot move backward from %s to %s", l.state, state)
	}
	l.state = state
	for _, obs := range snapshotObservers(l.observers) {
		obs(state)
	}
}

// Subscribe registers an observer and returns a func that unregisters it.
// The returned func is safe to call more than once.
func (l *Lifecycle) Subscribe(obs LifecycleObserver) (cancel func()) {
	id := l.nextID
	l.nextID++
	l.observers[id] = obs
	return func() {
		delete(l.observers, id)
	}
}

// OnceOnCreated invokes fn exactly once when l reaches StateCreated,
// immediately if it is already there. The subscription is removed both when
// it fires and when the returned cancel func runs, whichever comes first.
// If the lifecycle is destroyed without ever being created, fn never runs.
func OnceOnCreated(l *Lifecycle, fn func()) (cancel func()) {
	if l.state == StateCreated {
		fn()
		return func() {}
	}
	if l.state == StateDestroyed {
		return func() {}
	}
	fired := false
	var remove func()
	remove = l.Subscribe(func(state LifecycleState) {
		if fired || state != StateCreated {
			return
		}
		fired = true
		remove()
		fn()
	})
	return func() {
		fired = true
		remove()
	}
}

// snapshotObservers copies the observer set so observers may subscribe or
// unsubscribe during notification without corrupting iteration.
func snapshotObservers(m map[int]LifecycleObserver) []LifecycleObserver {
	out := make([]LifecycleObserver, 0, len(m))
	for _, obs := range m {
		out = append(out, obs)
	}
	return out
}

// LifecycleOwner is anything that exposes a Lifecycle: a view, a window, or
// a registry controller.
type LifecycleOwner interface {
	Lifecycle() *Lifecycle
}
