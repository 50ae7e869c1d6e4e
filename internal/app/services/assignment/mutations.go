// internal/app/services/assignment/mutations.go
package assignment

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/policy/groupingpolicy"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// descriptionPolicy strips all markup from user-supplied descriptions
// before they are persisted.
var descriptionPolicy = bluemonday.StrictPolicy()

// UpdateDescription sets the grouping's description. Owner or admin
// only. The description is sanitized before persisting.
func (s *Service) UpdateDescription(ctx context.Context, path, requester, description string) error {
	return s.mutateRecord(ctx, path, requester, "update description", func(rec *models.GroupingRecord) error {
		rec.Description = descriptionPolicy.Sanitize(description)
		return nil
	})
}

// SetOptIn turns the grouping's self-opt-in preference on or off.
// Owner or admin only.
func (s *Service) SetOptIn(ctx context.Context, path, requester string, on bool) error {
	return s.mutateRecord(ctx, path, requester, "set opt-in", func(rec *models.GroupingRecord) error {
		rec.OptInOn = on
		return nil
	})
}

// SetOptOut turns the grouping's self-opt-out preference on or off.
// Owner or admin only.
func (s *Service) SetOptOut(ctx context.Context, path, requester string, on bool) error {
	return s.mutateRecord(ctx, path, requester, "set opt-out", func(rec *models.GroupingRecord) error {
		rec.OptOutOn = on
		return nil
	})
}

// UpdateSyncDestination flips the synced flag of one destination
// record. Owner or admin only; an unconfigured destination is an
// InvalidArgument. The record and its flag are one value, so the write
// is atomic for the grouping.
func (s *Service) UpdateSyncDestination(ctx context.Context, path, requester, destName string, on bool) error {
	return s.mutateRecord(ctx, path, requester, "update sync destination", func(rec *models.GroupingRecord) error {
		for i := range rec.SyncDestinations {
			if rec.SyncDestinations[i].Name == destName {
				rec.SyncDestinations[i].Synced = on
				return nil
			}
		}
		return apperr.InvalidArgumentf("grouping %s has no sync destination %q", path, destName)
	})
}

// mutateRecord loads the record, enforces owner-or-admin, applies the
// change, and saves the whole document.
func (s *Service) mutateRecord(ctx context.Context, path, requester, op string, change func(*models.GroupingRecord) error) error {
	rec, err := s.store.FindGroupingByPath(ctx, path)
	if err != nil {
		return err
	}

	owners, err := groupingpolicy.ResolveGroup(ctx, s.store, s.schema, path+OwnersSuffix)
	if err != nil {
		return err
	}
	if !groupingpolicy.IsOwner(owners, requester) {
		isAdmin, err := groupingpolicy.IsGroupingAdmin(ctx, s.store, s.schema, s.adminGroupPath, requester)
		if err != nil {
			return err
		}
		if !isAdmin {
			return apperr.Denied()
		}
	}

	if err := change(&rec); err != nil {
		return err
	}
	if err := s.store.SaveGrouping(ctx, rec); err != nil {
		return err
	}
	s.log.Info("grouping updated",
		zap.String("op", op),
		zap.String("path", path),
		zap.String("requester", requester),
	)
	return nil
}
