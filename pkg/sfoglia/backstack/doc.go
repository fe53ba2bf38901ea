// Package backstack preserves and restores per-screen view state across
// navigation between mutually-exclusive screens.
//
// A Cache tracks one Frame per logical screen: the frame for the visible
// screen plus a keyed set of frames for screens that are currently hidden.
// Each navigation step calls Update with the ordered set of retained
// renderings, the outgoing view (if any), and the incoming view. The cache
// snapshots the outgoing screen's state while its view is still attached,
// replays the incoming screen's state if it was seen before, and drops
// frames for screens that have left the stack entirely.
//
// Two state channels are preserved per screen:
//
//   - hierarchy state: the toolkit's view-tree snapshot (scroll position,
//     focus, text), indexed by numeric view identifier. Only restorable when
//     the replacement view carries the same identifiers.
//   - registry state: bundles captured from the screen's own saved-state
//     providers, keyed by provider name and independent of view identifiers.
//
// The host wires a cache to its own saved-state plumbing with InstallOn;
// after that, whole-cache save and restore ride the host's registry. Two
// event sources race at startup: the synchronous first Update and the
// lifecycle-driven whole-cache restore. The cache tolerates either order by
// merging the restored payload into a pre-existing current frame instead of
// assuming the restore runs first.
//
// All operations run on the host's UI thread; contract violations panic with
// a *platform.ContractError (see the platform package).
package backstack
