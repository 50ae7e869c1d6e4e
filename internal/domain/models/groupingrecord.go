// internal/domain/models/groupingrecord.go
package models

import "time"

// GroupingRecord is the persisted shape of a grouping in the groupings
// collection. Path is the sole key (unique index). Membership is not
// embedded here; it lives as raw subject rows in group_members and is
// resolved and composed per request.
type GroupingRecord struct {
	Path             string            `bson:"path" json:"path"`
	Description      string            `bson:"description" json:"description"`
	OptInOn          bool              `bson:"opt_in_on" json:"opt_in_on"`
	OptOutOn         bool              `bson:"opt_out_on" json:"opt_out_on"`
	SyncDestinations []SyncDestination `bson:"sync_destinations" json:"sync_destinations"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
