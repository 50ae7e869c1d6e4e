// internal/domain/models/group.go
package models

// Group is a named, insertion-ordered collection of Persons together
// with three eagerly maintained projections (names, usernames,
// uhUuids). The projections and the member list are kept in lock-step:
// mutation happens only through AddMember, so the invariant is
// structural rather than something callers have to remember.
//
// NewEmptyGroup returns the "no group configured" variant. Group is
// used everywhere a sub-group reference is needed so that absence is
// modeled as an empty variant, never as nil.
type Group struct {
	path      string
	members   []Person
	names     []string
	usernames []string
	uhUuids   []string
	empty     bool
}

// NewGroup constructs a group at the given path with the given members.
func NewGroup(path string, members ...Person) *Group {
	g := &Group{path: path}
	for _, m := range members {
		g.AddMember(m)
	}
	return g
}

// NewEmptyGroup returns the "no group configured" variant. It behaves
// as a permanently empty Group.
func NewEmptyGroup() *Group {
	return &Group{empty: true}
}

// Path returns the group's directory path.
func (g *Group) Path() string { return g.path }

// IsEmpty reports whether this is the "no group configured" variant or
// an ordinary group with no members.
func (g *Group) IsEmpty() bool { return g.empty || len(g.members) == 0 }

// AddMember appends a member and updates all three projections.
func (g *Group) AddMember(p Person) {
	g.members = append(g.members, p)
	g.names = append(g.names, p.Name)
	g.usernames = append(g.usernames, p.Username)
	g.uhUuids = append(g.uhUuids, p.UhUUID)
}

// Members returns the insertion-ordered member list.
func (g *Group) Members() []Person { return g.members }

// Names returns the display-name projection, aligned with Members.
func (g *Group) Names() []string { return g.names }

// Usernames returns the username projection, aligned with Members.
func (g *Group) Usernames() []string { return g.usernames }

// UhUUIDs returns the identifier projection, aligned with Members.
func (g *Group) UhUUIDs() []string { return g.uhUuids }

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// ContainsUsername reports whether any member has the given username.
func (g *Group) ContainsUsername(username string) bool {
	for _, u := range g.usernames {
		if u == username {
			return true
		}
	}
	return false
}

// ContainsIdentity reports whether any member shares p's identity key.
func (g *Group) ContainsIdentity(p Person) bool {
	for _, m := range g.members {
		if m.SameIdentity(p) {
			return true
		}
	}
	return false
}

// WithMembers returns a new group at the same path holding the given
// members. Projection views (sorted, windowed) are built this way so
// the source group is never mutated.
func (g *Group) WithMembers(members []Person) *Group {
	out := &Group{path: g.path, empty: g.empty}
	for _, m := range members {
		out.AddMember(m)
	}
	return out
}

// Compose derives the composite membership (basis ∪ include) \ exclude.
// The union keeps insertion order, basis first; duplicates and
// exclusions are decided by identity key, not by object equality. The
// result is a fresh group at the given path.
func Compose(path string, basis, include, exclude *Group) *Group {
	out := NewGroup(path)
	seen := make(map[string]struct{})
	for _, src := range []*Group{basis, include} {
		if src == nil {
			continue
		}
		for _, m := range src.Members() {
			if _, dup := seen[m.Key()]; dup {
				continue
			}
			if exclude != nil && exclude.ContainsIdentity(m) {
				continue
			}
			seen[m.Key()] = struct{}{}
			out.AddMember(m)
		}
	}
	return out
}
