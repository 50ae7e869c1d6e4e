// internal/app/services/assignment/queries.go
package assignment

import (
	"context"
	"sort"
	"strings"

	"github.com/ruizaj/uh-groupings-api/internal/app/policy/groupingpolicy"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// GroupingsIn filters groupPaths to recognized grouping paths and
// resolves each. The output order is deterministic per input (input
// order, duplicates folded).
func (s *Service) GroupingsIn(ctx context.Context, groupPaths []string) ([]*models.Grouping, error) {
	paths, err := s.store.FilterGroupingPaths(ctx, groupPaths)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, paths)
}

// GroupingsOwned resolves the groupings the caller owns, identified by
// membership paths ending in the owners suffix. Results are sorted by
// path.
func (s *Service) GroupingsOwned(ctx context.Context, groupPaths []string) ([]*models.Grouping, error) {
	var parents []string
	for _, p := range groupPaths {
		if strings.HasSuffix(p, OwnersSuffix) {
			parents = append(parents, strings.TrimSuffix(p, OwnersSuffix))
		}
	}
	paths, err := s.store.FilterGroupingPaths(ctx, parents)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return s.resolveAll(ctx, paths)
}

func (s *Service) resolveAll(ctx context.Context, paths []string) ([]*models.Grouping, error) {
	groupings := make([]*models.Grouping, 0, len(paths))
	for _, p := range paths {
		g, err := s.resolveGrouping(ctx, p)
		if err != nil {
			return nil, err
		}
		groupings = append(groupings, g)
	}
	return groupings, nil
}

// GetOptInGroups returns the distinct grouping paths target may
// self-opt-in to: opt-in is enabled and the target is either not in
// the composite yet or sits in the exclude group.
func (s *Service) GetOptInGroups(ctx context.Context, requester, target string) ([]string, error) {
	if err := s.checkOptQueryAccess(ctx, requester, target); err != nil {
		return nil, err
	}
	optInPaths, err := s.store.FindOptInGroupingPaths(ctx)
	if err != nil {
		return nil, err
	}
	memberOf, err := s.membershipSet(ctx, target)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]struct{}, len(optInPaths))
	for _, p := range optInPaths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		_, inComposite := memberOf[p]
		_, inExclude := memberOf[p+ExcludeSuffix]
		if !inComposite || inExclude {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetOptOutGroups returns the distinct grouping paths target may
// self-opt-out of: opt-out is enabled and the target is in the
// composite.
func (s *Service) GetOptOutGroups(ctx context.Context, requester, target string) ([]string, error) {
	if err := s.checkOptQueryAccess(ctx, requester, target); err != nil {
		return nil, err
	}
	optOutPaths, err := s.store.FindOptOutGroupingPaths(ctx)
	if err != nil {
		return nil, err
	}
	memberOf, err := s.membershipSet(ctx, target)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]struct{}, len(optOutPaths))
	for _, p := range optOutPaths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, inComposite := memberOf[p]; inComposite {
			out = append(out, p)
		}
	}
	return out, nil
}

// MembershipPaths returns the distinct group paths username is a
// member of, in first-seen order.
func (s *Service) MembershipPaths(ctx context.Context, username string) ([]string, error) {
	groups, err := s.store.FindGroupsByMemberUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return subjects.ExtractGroupPaths(groups), nil
}

// membershipSet returns the set of group paths target is a member of.
func (s *Service) membershipSet(ctx context.Context, username string) (map[string]struct{}, error) {
	groups, err := s.store.FindGroupsByMemberUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(groups))
	for _, p := range subjects.ExtractGroupPaths(groups) {
		set[p] = struct{}{}
	}
	return set, nil
}

// checkOptQueryAccess allows a requester to query opt-in/out
// eligibility for target when the requester is the target, a grouping
// administrator, or an owner of at least one grouping.
func (s *Service) checkOptQueryAccess(ctx context.Context, requester, target string) error {
	if requester == target {
		return nil
	}
	isAdmin, err := groupingpolicy.IsGroupingAdmin(ctx, s.store, s.schema, s.adminGroupPath, requester)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}
	owns, err := s.ownsAnyGrouping(ctx, requester)
	if err != nil {
		return err
	}
	if owns {
		return nil
	}
	return apperr.Denied()
}

// ownsAnyGrouping reports whether the requester appears in any
// grouping's owners group.
func (s *Service) ownsAnyGrouping(ctx context.Context, username string) (bool, error) {
	groups, err := s.store.FindGroupsByMemberUsername(ctx, username)
	if err != nil {
		return false, err
	}
	var parents []string
	for _, p := range subjects.ExtractGroupPaths(groups) {
		if strings.HasSuffix(p, OwnersSuffix) {
			parents = append(parents, strings.TrimSuffix(p, OwnersSuffix))
		}
	}
	if len(parents) == 0 {
		return false, nil
	}
	owned, err := s.store.FilterGroupingPaths(ctx, parents)
	if err != nil {
		return false, err
	}
	return len(owned) > 0, nil
}
