package store_test

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/backstack"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/platform/viewtest"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/store"
)

type testRecord struct {
	Data map[string]string
}

type testRecordWire testRecord

func (r *testRecord) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode((*testRecordWire)(r))
	return buf.Bytes(), err
}

func (r *testRecord) UnmarshalBinary(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode((*testRecordWire)(r))
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.Options{
		Path: filepath.Join(t.TempDir(), "state", "sfoglia.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadDelete(t *testing.T) {
	s := openStore(t)

	rec := &testRecord{Data: map[string]string{"scroll": "42"}}
	require.NoError(t, s.Save("main-backstack", rec))

	out := &testRecord{}
	ok, err := s.Load("main-backstack", out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec.Data, out.Data)

	ok, err = s.Load("unknown-container", &testRecord{})
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Delete("main-backstack"))
	ok, err = s.Load("main-backstack", &testRecord{})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := store.Open(store.Options{})
	require.Error(t, err)
}

func TestLoadOptionsFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"path = \"/var/lib/app/sfoglia.db\"\nbucket = \"screens\"\n"), 0644))

	opts, err := store.LoadOptions(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/app/sfoglia.db", opts.Path)
	require.Equal(t, "screens", opts.Bucket)
}

// A cache's saved record persists through the store and seeds a fresh cache.
func TestBackstackRecordPersists(t *testing.T) {
	s := openStore(t)

	type homeScreen struct{}
	home := sfoglia.Named{Wrapped: homeScreen{}, Name: "home"}

	cache := backstack.NewCache()
	host := viewtest.New(100)
	parentOwner := viewtest.New(1)
	parent := platform.NewController(parentOwner)
	cache.InstallOn(host, parent)
	host.Attach()

	v := viewtest.New(10)
	v.SetShowing(home)
	cache.Update([]any{home}, nil, v)
	v.Attach()
	parent.PerformRestore(nil)
	parentOwner.Attach()

	v.RegistryOwner().Registry().RegisterProvider("position", func() platform.Bundle {
		b := platform.Bundle{}
		b.PutString("value", "row 7")
		return b
	})

	require.NoError(t, s.Save("main", cache.SaveToBundle()))

	loaded := &backstack.Saved{}
	ok, err := s.Load("main", loaded)
	require.NoError(t, err)
	require.True(t, ok)
	require.ElementsMatch(t, []string{sfoglia.Key(home)}, loaded.Keys())
}
