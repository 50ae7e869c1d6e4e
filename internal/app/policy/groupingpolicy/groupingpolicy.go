// Package groupingpolicy provides authorization policies for grouping
// views.
//
// Authorization rules:
//   - Administrators (members of the configured admin grouping) see
//     full detail for any grouping and the admin lists.
//   - Owners (members of a grouping's owners group) see full detail
//     for that grouping.
//   - Everyone else is denied; no partial data is ever returned.
//
// The requester identity is always an explicit parameter. Nothing in
// this package reads ambient request or session state.
package groupingpolicy

import (
	"context"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// MemberSource is the narrow store surface policy checks need.
type MemberSource interface {
	FetchRawMembers(ctx context.Context, paths []string) (subjects.RawMembersResult, error)
}

// IsGroupingAdmin reports whether username is a member of the admin
// grouping at adminGroupPath. Returns an error only when the store
// lookup fails.
func IsGroupingAdmin(ctx context.Context, src MemberSource, schema subjects.Schema, adminGroupPath, username string) (bool, error) {
	group, err := ResolveGroup(ctx, src, schema, adminGroupPath)
	if err != nil {
		return false, err
	}
	return group.ContainsUsername(username), nil
}

// IsOwner reports whether username appears in the resolved owners
// group.
func IsOwner(owners *models.Group, username string) bool {
	return owners != nil && owners.ContainsUsername(username)
}

// CanViewGrouping reports whether a requester with the given
// owner/admin standing may see the full grouping detail. Owners and
// administrators are equivalent privilege tiers for views.
func CanViewGrouping(isOwner, isAdmin bool) bool {
	return isOwner || isAdmin
}

// ResolveGroup fetches and normalizes the membership of a single group
// path. A path with no members resolves to the empty group variant.
func ResolveGroup(ctx context.Context, src MemberSource, schema subjects.Schema, path string) (*models.Group, error) {
	raw, err := src.FetchRawMembers(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	groups := subjects.MakeGroups(raw, schema)
	if g, ok := groups[path]; ok {
		return g, nil
	}
	return models.NewEmptyGroup(), nil
}
