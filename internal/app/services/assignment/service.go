// internal/app/services/assignment/service.go

// Package assignment resolves groupings and exposes permission-scoped
// views of them. It holds the grouping composer (membership algebra),
// the access-scoped projection engine, the admin aggregator, and the
// grouping query helpers. All persistence and directory access goes
// through the Store contract; the service keeps no mutable state
// between calls and every resolve builds a fresh Grouping.
package assignment

import (
	"context"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// Sub-group path suffixes, relative to a grouping's path. The
// composite is materialized at the grouping path itself.
const (
	BasisSuffix   = ":basis"
	IncludeSuffix = ":include"
	ExcludeSuffix = ":exclude"
	OwnersSuffix  = ":owners"
)

// Store is the Membership Store Adapter contract the service consumes.
// Implementations must offer at least read-committed consistency per
// grouping path; the service performs no retries and propagates
// failures unchanged.
type Store interface {
	FindGroupingByPath(ctx context.Context, path string) (models.GroupingRecord, error)
	SaveGrouping(ctx context.Context, rec models.GroupingRecord) error
	FindAllGroupingPaths(ctx context.Context) ([]string, error)
	FindOptInGroupingPaths(ctx context.Context) ([]string, error)
	FindOptOutGroupingPaths(ctx context.Context) ([]string, error)
	FilterGroupingPaths(ctx context.Context, paths []string) ([]string, error)
	FindGroupsByMemberUsername(ctx context.Context, username string) ([]subjects.RawGroup, error)
	FetchRawMembers(ctx context.Context, paths []string) (subjects.RawMembersResult, error)
}

// Service is the grouping assignment core.
type Service struct {
	store          Store
	schema         subjects.Schema
	adminGroupPath string
	log            *zap.Logger
}

// New constructs the service. adminGroupPath is the directory path of
// the system-wide admin grouping.
func New(store Store, schema subjects.Schema, adminGroupPath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:          store,
		schema:         schema,
		adminGroupPath: adminGroupPath,
		log:            logger,
	}
}

// Schema returns the attribute schema the service normalizes with.
func (s *Service) Schema() subjects.Schema { return s.schema }
