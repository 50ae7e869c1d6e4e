// internal/app/store/groupings/groupingstore.go

// Package groupingstore is the Membership Store Adapter: read/write
// access to grouping records and to the raw subject rows that back
// every sub-group's membership. The core consumes this only through
// the query contract in the assignment service; it performs no
// retries and no transactions of its own.
package groupingstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// ErrDuplicateGroupingPath is returned when a create collides with an
// existing grouping path.
var ErrDuplicateGroupingPath = errors.New("a grouping with this path already exists")

// Store wraps the groupings and group_members collections. The
// attribute-name order is fixed at construction so every raw result it
// produces is positionally aligned the same way.
type Store struct {
	groupings      *mongo.Collection
	members        *mongo.Collection
	attributeNames []string
}

// New builds a Store over db using the given positional attribute-name
// order for raw member results.
func New(db *mongo.Database, attributeNames []string) *Store {
	return &Store{
		groupings:      db.Collection("groupings"),
		members:        db.Collection("group_members"),
		attributeNames: attributeNames,
	}
}

// memberRow is one raw subject row as persisted. Username and name_ci
// are denormalized out of the attribute array for querying and stable
// ordering.
type memberRow struct {
	GroupPath       string   `bson:"group_path"`
	Name            string   `bson:"name"`
	NameCI          string   `bson:"name_ci"`
	Username        string   `bson:"username"`
	UhUUID          string   `bson:"uh_uuid"`
	SourceID        string   `bson:"source_id,omitempty"`
	AttributeValues []string `bson:"attribute_values"`
}

// FindGroupingByPath returns the grouping record at path, or a
// NotFound error when no grouping is persisted there.
func (s *Store) FindGroupingByPath(ctx context.Context, path string) (models.GroupingRecord, error) {
	var rec models.GroupingRecord
	err := s.groupings.FindOne(ctx, bson.M{"path": path}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return models.GroupingRecord{}, apperr.NotFoundf("grouping %s not found", path)
	}
	if err != nil {
		return models.GroupingRecord{}, err
	}
	return rec, nil
}

// SaveGrouping upserts the record keyed by path. A grouping's flags,
// description, and sync destinations live in one document, so the
// write is atomic for the grouping.
func (s *Store) SaveGrouping(ctx context.Context, rec models.GroupingRecord) error {
	now := time.Now().UTC()
	set := bson.M{
		"description":       rec.Description,
		"opt_in_on":         rec.OptInOn,
		"opt_out_on":        rec.OptOutOn,
		"sync_destinations": rec.SyncDestinations,
		"updated_at":        now,
	}
	_, err := s.groupings.UpdateOne(ctx,
		bson.M{"path": rec.Path},
		bson.M{"$set": set, "$setOnInsert": bson.M{"path": rec.Path, "created_at": now}},
		options.Update().SetUpsert(true),
	)
	if wafflemongo.IsDup(err) {
		return ErrDuplicateGroupingPath
	}
	return err
}

// FindAllGroupingPaths returns every persisted grouping path, sorted.
func (s *Store) FindAllGroupingPaths(ctx context.Context) ([]string, error) {
	return s.findPaths(ctx, bson.M{})
}

// FindOptInGroupingPaths returns the paths of groupings with opt-in
// enabled, sorted.
func (s *Store) FindOptInGroupingPaths(ctx context.Context) ([]string, error) {
	return s.findPaths(ctx, bson.M{"opt_in_on": true})
}

// FindOptOutGroupingPaths returns the paths of groupings with opt-out
// enabled, sorted.
func (s *Store) FindOptOutGroupingPaths(ctx context.Context) ([]string, error) {
	return s.findPaths(ctx, bson.M{"opt_out_on": true})
}

func (s *Store) findPaths(ctx context.Context, filter bson.M) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"path": 1}).
		SetSort(bson.D{{Key: "path", Value: 1}})
	cur, err := s.groupings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Path string `bson:"path"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(rows))
	for _, r := range rows {
		paths = append(paths, r.Path)
	}
	return paths, nil
}

// FilterGroupingPaths returns, in input order, the subset of paths
// that are persisted grouping paths.
func (s *Store) FilterGroupingPaths(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	known, err := s.findPaths(ctx, bson.M{"path": bson.M{"$in": paths}})
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(known))
	for _, p := range known {
		set[p] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := set[p]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindGroupsByMemberUsername returns the distinct groups the given
// username is a member of.
func (s *Store) FindGroupsByMemberUsername(ctx context.Context, username string) ([]subjects.RawGroup, error) {
	raw, err := s.members.Distinct(ctx, "group_path", bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	groups := make([]subjects.RawGroup, 0, len(raw))
	for _, v := range raw {
		if p, ok := v.(string); ok {
			groups = append(groups, subjects.RawGroup{Name: p})
		}
	}
	return groups, nil
}

// FetchRawMembers returns the raw subject batches for the given group
// paths, positionally aligned with the store's attribute names. Paths
// with no persisted rows contribute no batch, mirroring the
// directory's "not applicable" nil-array signal.
func (s *Store) FetchRawMembers(ctx context.Context, paths []string) (subjects.RawMembersResult, error) {
	res := subjects.RawMembersResult{AttributeNames: s.attributeNames}
	if len(paths) == 0 {
		return res, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.members.Find(ctx, bson.M{"group_path": bson.M{"$in": paths}}, opts)
	if err != nil {
		return subjects.RawMembersResult{}, err
	}
	defer cur.Close(ctx)

	var rows []memberRow
	if err := cur.All(ctx, &rows); err != nil {
		return subjects.RawMembersResult{}, err
	}

	byPath := make(map[string][]*subjects.RawSubject, len(paths))
	for _, row := range rows {
		byPath[row.GroupPath] = append(byPath[row.GroupPath], &subjects.RawSubject{
			Name:            row.Name,
			ID:              row.UhUUID,
			SourceID:        row.SourceID,
			AttributeValues: row.AttributeValues,
		})
	}
	for _, p := range paths {
		if subs, ok := byPath[p]; ok {
			res.Batches = append(res.Batches, subjects.RawMemberBatch{GroupPath: p, Subjects: subs})
		}
	}
	return res, nil
}

// AddMember persists one raw subject row for a group path. Used by
// ingestion and test fixtures.
func (s *Store) AddMember(ctx context.Context, groupPath string, subj subjects.RawSubject, username string) error {
	_, err := s.members.InsertOne(ctx, memberRow{
		GroupPath:       groupPath,
		Name:            subj.Name,
		NameCI:          text.Fold(subj.Name),
		Username:        username,
		UhUUID:          subj.ID,
		SourceID:        subj.SourceID,
		AttributeValues: subj.AttributeValues,
	})
	return err
}

// RemoveMember deletes the raw subject rows for a username in a group.
// Returns the number of rows removed.
func (s *Store) RemoveMember(ctx context.Context, groupPath, username string) (int64, error) {
	res, err := s.members.DeleteMany(ctx, bson.M{"group_path": groupPath, "username": username})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteGrouping removes the grouping record and every raw member row
// under the grouping's path and its sub-group paths. Returns the
// number of grouping documents deleted (0 or 1).
func (s *Store) DeleteGrouping(ctx context.Context, path string) (int64, error) {
	res, err := s.groupings.DeleteOne(ctx, bson.M{"path": path})
	if err != nil {
		return 0, err
	}
	_, err = s.members.DeleteMany(ctx, bson.M{"group_path": bson.M{"$regex": "^" + regexp.QuoteMeta(path)}})
	if err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
