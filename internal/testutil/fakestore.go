// internal/testutil/fakestore.go
package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// memberRow is one seeded raw subject row in the fake store.
type memberRow struct {
	path     string
	username string
	subject  *subjects.RawSubject
}

// FakeStore is an in-memory Membership Store Adapter for core and
// handler tests. It implements the assignment.Store contract without a
// database.
type FakeStore struct {
	records        map[string]models.GroupingRecord
	rows           []memberRow
	attributeNames []string
}

// NewFakeStore returns an empty fake store using the shared test
// attribute-name order.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		records:        make(map[string]models.GroupingRecord),
		attributeNames: AttributeNames(),
	}
}

// PutGrouping seeds a grouping record.
func (f *FakeStore) PutGrouping(rec models.GroupingRecord) {
	f.records[rec.Path] = rec
}

// AddMember seeds one raw subject row for a group path. The username
// is placed in the positional attribute array per the test schema.
func (f *FakeStore) AddMember(groupPath string, p models.Person) {
	f.rows = append(f.rows, memberRow{
		path:     groupPath,
		username: p.Username,
		subject: &subjects.RawSubject{
			Name:            p.Name,
			ID:              p.UhUUID,
			AttributeValues: AttributeValues(p.Username, p.Name),
		},
	})
}

// AddStaleMember seeds a subject tagged with the stale source id.
func (f *FakeStore) AddStaleMember(groupPath string, p models.Person) {
	f.rows = append(f.rows, memberRow{
		path:     groupPath,
		username: p.Username,
		subject: &subjects.RawSubject{
			Name:            p.Name,
			ID:              p.UhUUID,
			SourceID:        StaleSourceID,
			AttributeValues: AttributeValues(p.Username, p.Name),
		},
	})
}

func (f *FakeStore) FindGroupingByPath(ctx context.Context, path string) (models.GroupingRecord, error) {
	rec, ok := f.records[path]
	if !ok {
		return models.GroupingRecord{}, apperr.NotFoundf("grouping %s not found", path)
	}
	return rec, nil
}

func (f *FakeStore) SaveGrouping(ctx context.Context, rec models.GroupingRecord) error {
	f.records[rec.Path] = rec
	return nil
}

func (f *FakeStore) FindAllGroupingPaths(ctx context.Context) ([]string, error) {
	return f.paths(func(models.GroupingRecord) bool { return true }), nil
}

func (f *FakeStore) FindOptInGroupingPaths(ctx context.Context) ([]string, error) {
	return f.paths(func(r models.GroupingRecord) bool { return r.OptInOn }), nil
}

func (f *FakeStore) FindOptOutGroupingPaths(ctx context.Context) ([]string, error) {
	return f.paths(func(r models.GroupingRecord) bool { return r.OptOutOn }), nil
}

func (f *FakeStore) paths(keep func(models.GroupingRecord) bool) []string {
	var out []string
	for p, rec := range f.records {
		if keep(rec) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (f *FakeStore) FilterGroupingPaths(ctx context.Context, paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := f.records[p]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *FakeStore) FindGroupsByMemberUsername(ctx context.Context, username string) ([]subjects.RawGroup, error) {
	var groups []subjects.RawGroup
	seen := make(map[string]struct{})
	for _, row := range f.rows {
		if row.username != username {
			continue
		}
		if _, dup := seen[row.path]; dup {
			continue
		}
		seen[row.path] = struct{}{}
		groups = append(groups, subjects.RawGroup{Name: row.path})
	}
	return groups, nil
}

func (f *FakeStore) FetchRawMembers(ctx context.Context, paths []string) (subjects.RawMembersResult, error) {
	res := subjects.RawMembersResult{AttributeNames: f.attributeNames}
	for _, p := range paths {
		var subs []*subjects.RawSubject
		for _, row := range f.rows {
			if row.path == p {
				subs = append(subs, row.subject)
			}
		}
		if subs != nil {
			res.Batches = append(res.Batches, subjects.RawMemberBatch{GroupPath: p, Subjects: subs})
		}
	}
	return res, nil
}

// OwnersPath is a convenience for seeding owners sub-groups.
func OwnersPath(groupingPath string) string { return groupingPath + ":owners" }

// SubGroupPath joins a grouping path with a sub-group leg ("basis",
// "include", "exclude", "owners").
func SubGroupPath(groupingPath, leg string) string {
	return strings.Join([]string{groupingPath, leg}, ":")
}
