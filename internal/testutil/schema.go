// internal/testutil/schema.go
package testutil

import "github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"

// Attribute keys used across tests, matching the shape the campus
// directory reports.
const (
	UIDKey           = "uid"
	UhUUIDKey        = "uhUuid"
	LastNameKey      = "sn"
	CompositeNameKey = "cn"
	FirstNameKey     = "givenName"
	StaleSourceID    = "g:stale"

	// AdminGroupPath is the admin grouping used by test services.
	AdminGroupPath = "uh-settings:groupingAdmins"
)

// Schema returns the subject attribute schema tests normalize with.
func Schema() subjects.Schema {
	return subjects.Schema{
		UsernameKey:      UIDKey,
		UhUUIDKey:        UhUUIDKey,
		FirstNameKey:     FirstNameKey,
		LastNameKey:      LastNameKey,
		CompositeNameKey: CompositeNameKey,
		StaleSourceID:    StaleSourceID,
	}
}

// AttributeNames returns the positional attribute-name order used by
// test subjects, aligned with Schema.
func AttributeNames() []string {
	return []string{UIDKey, UhUUIDKey, LastNameKey, CompositeNameKey, FirstNameKey}
}

// AttributeValues builds a positional value array for AttributeNames.
func AttributeValues(username, name string) []string {
	return []string{username, "", "", name, ""}
}
