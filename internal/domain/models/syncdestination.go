// internal/domain/models/syncdestination.go
package models

// SyncDestination is an external target to which a grouping's composite
// membership may be mirrored. Each record owns its Synced flag; the
// grouping holds these as one ordered list keyed by Name.
type SyncDestination struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Synced      bool   `bson:"synced" json:"synced"`
	Hidden      bool   `bson:"hidden" json:"hidden"`
}
