// internal/domain/models/adminlists.go
package models

// AdminListsHolder is the administrative summary: every grouping path
// known to the system plus the current admin group. It is constructed
// fresh per admin query and never persisted.
type AdminListsHolder struct {
	AllGroupingPaths []string
	AdminGroup       *Group
}

// NewAdminListsHolder builds the holder, substituting the empty group
// variant when no admin group resolves.
func NewAdminListsHolder(paths []string, adminGroup *Group) *AdminListsHolder {
	if adminGroup == nil {
		adminGroup = NewEmptyGroup()
	}
	return &AdminListsHolder{AllGroupingPaths: paths, AdminGroup: adminGroup}
}
