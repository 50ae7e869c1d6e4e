// internal/app/services/assignment/admin.go
package assignment

import (
	"context"

	"github.com/ruizaj/uh-groupings-api/internal/app/policy/groupingpolicy"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// AdminLists builds the administrative summary: every grouping path
// known to the system plus the current admin group. Admin-only; other
// requesters get the same AccessDenied as the projection engine.
func (s *Service) AdminLists(ctx context.Context, requester string) (*models.AdminListsHolder, error) {
	adminGroup, err := groupingpolicy.ResolveGroup(ctx, s.store, s.schema, s.adminGroupPath)
	if err != nil {
		return nil, err
	}
	if !adminGroup.ContainsUsername(requester) {
		return nil, apperr.Denied()
	}

	paths, err := s.store.FindAllGroupingPaths(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewAdminListsHolder(paths, adminGroup), nil
}
