// internal/app/system/subjects/subjects.go

// Package subjects normalizes raw directory query results into
// canonical Person and Group values. The upstream directory returns
// loosely-typed batches: per-group subject arrays that may be nil,
// subjects that may be nil, and attribute values positionally aligned
// to a caller-supplied attribute-name schema.
package subjects

import "github.com/ruizaj/uh-groupings-api/internal/domain/models"

// StaleUsername is substituted for the username of a subject whose
// source tag marks it as no longer resolvable in the identity system.
const StaleUsername = "User Not Available."

// RawGroup is a group reference as returned by the directory.
type RawGroup struct {
	Name string
}

// RawSubject is one directory subject record. AttributeValues are
// positionally aligned with the attribute names carried on the result.
type RawSubject struct {
	Name            string
	ID              string
	SourceID        string
	AttributeValues []string
}

// RawMemberBatch holds the subjects fetched for one group path. A nil
// Subjects slice means "not applicable" and is distinct from an empty
// one; such a batch contributes no group at all.
type RawMemberBatch struct {
	GroupPath string
	Subjects  []*RawSubject
}

// RawMembersResult is a complete directory membership query result.
type RawMembersResult struct {
	AttributeNames []string
	Batches        []RawMemberBatch
}

// Schema names the attribute keys that identify each Person field
// inside a subject's positional attribute array. The values come from
// configuration and must match the directory's attribute names.
type Schema struct {
	UsernameKey      string
	UhUUIDKey        string
	FirstNameKey     string
	LastNameKey      string
	CompositeNameKey string

	// StaleSourceID tags subjects the identity system can no longer
	// resolve.
	StaleSourceID string
}

// MakeGroups converts a raw membership result into one Group per
// distinct group path.
//
// Tolerated inputs, by design:
//   - a batch with a nil subject slice produces no group entry at all;
//   - a nil subject inside a non-nil slice is skipped silently;
//   - a stale subject becomes a Person with StaleUsername substituted
//     for its username (name and identifier kept verbatim).
//
// Duplicate paths across batches fold into a single Group holding the
// union of their valid members.
func MakeGroups(res RawMembersResult, schema Schema) map[string]*models.Group {
	groups := make(map[string]*models.Group)
	for _, batch := range res.Batches {
		if batch.Subjects == nil {
			continue
		}
		g, ok := groups[batch.GroupPath]
		if !ok {
			g = models.NewGroup(batch.GroupPath)
			groups[batch.GroupPath] = g
		}
		for _, subj := range batch.Subjects {
			if subj == nil {
				continue
			}
			p := MakePerson(subj, res.AttributeNames, schema)
			if subj.SourceID != "" && subj.SourceID == schema.StaleSourceID {
				p = models.NewPerson(p.Name, StaleUsername, p.UhUUID)
			}
			g.AddMember(p)
		}
	}
	return groups
}

// MakePerson builds a Person from one raw subject. The username comes
// from the positional attribute named by the schema; name and
// identifier come from the subject record itself. A schema with no
// matching attributes yields a Person with empty derived fields, never
// an error.
func MakePerson(subj *RawSubject, attributeNames []string, schema Schema) models.Person {
	username := attributeValue(subj, attributeNames, schema.UsernameKey)
	return models.NewPerson(subj.Name, username, subj.ID)
}

func attributeValue(subj *RawSubject, attributeNames []string, key string) string {
	if key == "" {
		return ""
	}
	for i, name := range attributeNames {
		if name != key {
			continue
		}
		if i < len(subj.AttributeValues) {
			return subj.AttributeValues[i]
		}
		return ""
	}
	return ""
}

// ExtractGroupPaths returns the distinct group paths in first-seen
// order. A nil input yields an empty, non-nil slice.
func ExtractGroupPaths(groups []RawGroup) []string {
	paths := make([]string, 0, len(groups))
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if _, dup := seen[g.Name]; dup {
			continue
		}
		seen[g.Name] = struct{}{}
		paths = append(paths, g.Name)
	}
	return paths
}
