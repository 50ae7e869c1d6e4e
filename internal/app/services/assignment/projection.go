// internal/app/services/assignment/projection.go
package assignment

import (
	"context"
	"sort"

	"github.com/dalemusser/waffle/pantry/text"

	"github.com/ruizaj/uh-groupings-api/internal/app/policy/groupingpolicy"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/paging"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// Member sort attributes accepted by GetPaginatedGrouping.
const (
	SortByName     = "name"
	SortByUsername = "username"
	SortByUhUUID   = "uhUuid"
)

// GetGrouping returns the full, unfiltered view of the grouping at
// path. The requester must be an owner of the grouping or a grouping
// administrator; anyone else gets AccessDenied and no data.
func (s *Service) GetGrouping(ctx context.Context, path, requester string) (*models.Grouping, error) {
	grouping, err := s.resolveGrouping(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.checkViewAccess(ctx, grouping, requester); err != nil {
		return nil, err
	}
	return grouping, nil
}

// GetPaginatedGrouping is GetGrouping with each returned group's
// member list sorted and windowed. A nil page, size, sortBy, or
// ascending disables that feature for the call, so passing all nils is
// membership-identical to GetGrouping. Windows beyond the data are
// empty, not errors.
func (s *Service) GetPaginatedGrouping(ctx context.Context, path, requester string, page, size *int, sortBy *string, ascending *bool) (*models.Grouping, error) {
	grouping, err := s.GetGrouping(ctx, path, requester)
	if err != nil {
		return nil, err
	}

	shape := func(g *models.Group) (*models.Group, error) {
		members := append([]models.Person(nil), g.Members()...)
		if sortBy != nil {
			if err := sortMembers(members, *sortBy, ascending); err != nil {
				return nil, err
			}
		}
		if page != nil && size != nil {
			members = paging.Window(members, *page, *size)
		}
		return g.WithMembers(members), nil
	}

	for _, apply := range []struct {
		get func() *models.Group
		set func(*models.Group)
	}{
		{grouping.Basis, grouping.SetBasis},
		{grouping.Include, grouping.SetInclude},
		{grouping.Exclude, grouping.SetExclude},
		{grouping.Composite, grouping.SetComposite},
		{grouping.Owners, grouping.SetOwners},
	} {
		shaped, err := shape(apply.get())
		if err != nil {
			return nil, err
		}
		apply.set(shaped)
	}
	return grouping, nil
}

// sortMembers sorts in place by the named attribute, case-folded,
// stable so ties keep insertion order. A nil ascending flag disables
// sorting entirely.
func sortMembers(members []models.Person, sortBy string, ascending *bool) error {
	var key func(models.Person) string
	switch sortBy {
	case SortByName:
		key = func(p models.Person) string { return p.Name }
	case SortByUsername:
		key = func(p models.Person) string { return p.Username }
	case SortByUhUUID:
		key = func(p models.Person) string { return p.UhUUID }
	default:
		return apperr.InvalidArgumentf("unknown sort attribute %q", sortBy)
	}
	if ascending == nil {
		return nil
	}
	sort.SliceStable(members, func(i, j int) bool {
		a, b := text.Fold(key(members[i])), text.Fold(key(members[j]))
		if *ascending {
			return a < b
		}
		return a > b
	})
	return nil
}

// checkViewAccess enforces the view permission model before any data
// leaves the service.
func (s *Service) checkViewAccess(ctx context.Context, grouping *models.Grouping, requester string) error {
	if groupingpolicy.IsOwner(grouping.Owners(), requester) {
		return nil
	}
	isAdmin, err := groupingpolicy.IsGroupingAdmin(ctx, s.store, s.schema, s.adminGroupPath, requester)
	if err != nil {
		return err
	}
	if !groupingpolicy.CanViewGrouping(false, isAdmin) {
		return apperr.Denied()
	}
	return nil
}
