// internal/app/services/assignment/composer.go
package assignment

import (
	"context"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// resolveGrouping loads and composes the grouping at path: the record,
// the four stored sub-groups, and the composite derived as
// (basis ∪ include) \ exclude. The composite is always recomputed;
// whatever membership is materialized at the parent path is not
// trusted for it. The result is a fresh Grouping, so an abandoned call
// can never leave a shared instance half-mutated.
func (s *Service) resolveGrouping(ctx context.Context, path string) (*models.Grouping, error) {
	rec, err := s.store.FindGroupingByPath(ctx, path)
	if err != nil {
		return nil, err
	}

	subPaths := []string{
		path + BasisSuffix,
		path + IncludeSuffix,
		path + ExcludeSuffix,
		path + OwnersSuffix,
	}
	raw, err := s.store.FetchRawMembers(ctx, subPaths)
	if err != nil {
		return nil, err
	}
	groups := subjects.MakeGroups(raw, s.schema)

	grouping := models.NewGrouping(rec.Path)
	grouping.Description = rec.Description
	grouping.OptInOn = rec.OptInOn
	grouping.OptOutOn = rec.OptOutOn
	grouping.SetSyncDestinations(rec.SyncDestinations)

	grouping.SetBasis(groups[path+BasisSuffix])
	grouping.SetInclude(groups[path+IncludeSuffix])
	grouping.SetExclude(groups[path+ExcludeSuffix])
	grouping.SetOwners(groups[path+OwnersSuffix])
	grouping.SetComposite(models.Compose(path, grouping.Basis(), grouping.Include(), grouping.Exclude()))

	s.log.Debug("resolved grouping",
		zap.String("path", path),
		zap.Int("composite_members", grouping.Composite().Len()),
	)
	return grouping, nil
}
