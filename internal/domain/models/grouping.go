// internal/domain/models/grouping.go
package models

import (
	"fmt"
	"strings"
)

// Grouping is the composed view of a named grouping: its path, the five
// resolved sub-groups, sync destinations, and the opt-in/opt-out flags.
//
// Invariants, enforced structurally:
//   - Name is derived from Path (last colon-delimited segment) and is
//     never stored or set independently.
//   - The five group references are never nil; SetBasis and friends
//     substitute the empty variant.
//   - Each sync destination record owns its Synced flag; there is no
//     parallel state map to keep in step.
//
// A Grouping is built fresh per resolve and never mutated in place by
// concurrent callers.
type Grouping struct {
	path        string
	Description string

	basis     *Group
	exclude   *Group
	include   *Group
	composite *Group
	owners    *Group

	syncDestinations []SyncDestination

	OptInOn  bool
	OptOutOn bool
}

// NewGrouping constructs a Grouping at the given path. All five group
// references start as the empty variant.
func NewGrouping(path string) *Grouping {
	g := &Grouping{
		basis:     NewEmptyGroup(),
		exclude:   NewEmptyGroup(),
		include:   NewEmptyGroup(),
		composite: NewEmptyGroup(),
		owners:    NewEmptyGroup(),
	}
	g.SetPath(path)
	return g
}

// Path returns the grouping's globally unique path.
func (g *Grouping) Path() string { return g.path }

// SetPath sets the path. Name is recomputed implicitly; see Name.
func (g *Grouping) SetPath(path string) { g.path = path }

// Name is the last colon-delimited segment of the path. It is always
// computed from the current path, so it can never drift from it.
func (g *Grouping) Name() string {
	if i := strings.LastIndex(g.path, ":"); i != -1 {
		return g.path[i+1:]
	}
	return g.path
}

// Basis returns the basis sub-group; never nil.
func (g *Grouping) Basis() *Group { return g.basis }

// Exclude returns the exclude sub-group; never nil.
func (g *Grouping) Exclude() *Group { return g.exclude }

// Include returns the include sub-group; never nil.
func (g *Grouping) Include() *Group { return g.include }

// Composite returns the derived composite membership; never nil.
func (g *Grouping) Composite() *Group { return g.composite }

// Owners returns the owners sub-group; never nil.
func (g *Grouping) Owners() *Group { return g.owners }

// SetBasis assigns the basis group, substituting the empty variant for nil.
func (g *Grouping) SetBasis(gr *Group) { g.basis = orEmpty(gr) }

// SetExclude assigns the exclude group, substituting the empty variant for nil.
func (g *Grouping) SetExclude(gr *Group) { g.exclude = orEmpty(gr) }

// SetInclude assigns the include group, substituting the empty variant for nil.
func (g *Grouping) SetInclude(gr *Group) { g.include = orEmpty(gr) }

// SetComposite assigns the composite group, substituting the empty variant for nil.
func (g *Grouping) SetComposite(gr *Group) { g.composite = orEmpty(gr) }

// SetOwners assigns the owners group, substituting the empty variant for nil.
func (g *Grouping) SetOwners(gr *Group) { g.owners = orEmpty(gr) }

func orEmpty(gr *Group) *Group {
	if gr == nil {
		return NewEmptyGroup()
	}
	return gr
}

// SyncDestinations returns the ordered destination records.
func (g *Grouping) SyncDestinations() []SyncDestination {
	return g.syncDestinations
}

// SetSyncDestinations replaces the destination records.
func (g *Grouping) SetSyncDestinations(dests []SyncDestination) {
	g.syncDestinations = dests
}

// IsSyncDestinationOn reports the synced state for the named
// destination; ok is false when no such destination is configured.
func (g *Grouping) IsSyncDestinationOn(name string) (on, ok bool) {
	for _, d := range g.syncDestinations {
		if d.Name == name {
			return d.Synced, true
		}
	}
	return false, false
}

// ChangeSyncDestinationState flips the synced flag on the named
// destination record. The record is the single source of truth, so the
// mutation is atomic for the grouping.
func (g *Grouping) ChangeSyncDestinationState(name string, on bool) error {
	for i := range g.syncDestinations {
		if g.syncDestinations[i].Name == name {
			g.syncDestinations[i].Synced = on
			return nil
		}
	}
	return fmt.Errorf("grouping %s: unknown sync destination %q", g.path, name)
}
