package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeOwner struct {
	lc *Lifecycle
}

func (o *fakeOwner) Lifecycle() *Lifecycle { return o.lc }

func newOwner() *fakeOwner {
	return &fakeOwner{lc: NewLifecycle()}
}

func contractPanic(t *testing.T, fn func()) (err *ContractError) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a contract violation")
		var ok bool
		err, ok = r.(*ContractError)
		require.True(t, ok, "panic value %v is not a *ContractError", r)
	}()
	fn()
	return nil
}

func TestRegistryRejectsDuplicateProvider(t *testing.T) {
	r := NewStateRegistry()
	r.RegisterProvider("counter", func() Bundle { return Bundle{} })

	err := contractPanic(t, func() {
		r.RegisterProvider("counter", func() Bundle { return Bundle{} })
	})
	require.Contains(t, err.Error(), "counter")
}

func TestRegistryConsumeBeforeRestoreIsFatal(t *testing.T) {
	r := NewStateRegistry()
	err := contractPanic(t, func() {
		r.ConsumeRestoredStateForKey("counter")
	})
	require.Contains(t, err.Error(), "restore pass")
}

func TestControllerRestoreThenSaveOrdering(t *testing.T) {
	c := NewController(newOwner())

	err := contractPanic(t, func() {
		c.PerformSave()
	})
	require.Contains(t, err.Error(), "before any restore pass")

	c.PerformRestore(nil)
	require.True(t, c.IsRestored())
	require.NotNil(t, c.PerformSave())

	contractPanic(t, func() {
		c.PerformRestore(nil)
	})
}

func TestControllerRejectsDestroyedLifecycle(t *testing.T) {
	owner := newOwner()
	owner.lc.MoveTo(StateDestroyed)

	contractPanic(t, func() {
		NewController(owner)
	})
}

func TestRegistryConsumeIsOneShot(t *testing.T) {
	c := NewController(newOwner())
	c.PerformRestore(BundleMap{
		"counter": Bundle{"value": []byte("5")},
	})

	b, ok := c.Registry().ConsumeRestoredStateForKey("counter")
	require.True(t, ok)
	v, _ := b.GetString("value")
	require.Equal(t, "5", v)

	_, ok = c.Registry().ConsumeRestoredStateForKey("counter")
	require.False(t, ok)
}

func TestSaveCarriesUnconsumedRestoredState(t *testing.T) {
	c := NewController(newOwner())
	c.PerformRestore(BundleMap{
		"orphan": Bundle{"value": []byte("kept")},
	})

	// A provider registered under a different key saves alongside the
	// orphaned restored entry.
	c.Registry().RegisterProvider("counter", func() Bundle {
		return Bundle{"value": []byte("7")}
	})

	out := c.PerformSave()
	require.Contains(t, out, "orphan")
	require.Contains(t, out, "counter")

	v, _ := out["orphan"].GetString("value")
	require.Equal(t, "kept", v)
}

func TestProviderOverridesRestoredStateOnSave(t *testing.T) {
	c := NewController(newOwner())
	c.PerformRestore(BundleMap{
		"counter": Bundle{"value": []byte("old")},
	})
	c.Registry().RegisterProvider("counter", func() Bundle {
		return Bundle{"value": []byte("new")}
	})

	out := c.PerformSave()
	v, _ := out["counter"].GetString("value")
	require.Equal(t, "new", v)
}
