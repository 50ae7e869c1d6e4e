// internal/app/features/groupings/types.go
package groupings

import "github.com/ruizaj/uh-groupings-api/internal/domain/models"

// groupView is the JSON shape of a resolved group.
type groupView struct {
	Path      string          `json:"path"`
	Members   []models.Person `json:"members"`
	Names     []string        `json:"names"`
	Usernames []string        `json:"usernames"`
	UhUUIDs   []string        `json:"uhUuids"`
}

// groupingView is the JSON shape of a composed grouping.
type groupingView struct {
	Path             string                   `json:"path"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	Basis            groupView                `json:"basis"`
	Include          groupView                `json:"include"`
	Exclude          groupView                `json:"exclude"`
	Composite        groupView                `json:"composite"`
	Owners           groupView                `json:"owners"`
	SyncDestinations []models.SyncDestination `json:"syncDestinations"`
	OptInOn          bool                     `json:"isOptInOn"`
	OptOutOn         bool                     `json:"isOptOutOn"`
}

// adminListsView is the JSON shape of the administrative summary.
type adminListsView struct {
	AllGroupingPaths []string  `json:"allGroupingPaths"`
	AdminGroup       groupView `json:"adminGroup"`
}

func toGroupView(g *models.Group) groupView {
	v := groupView{
		Path:      g.Path(),
		Members:   g.Members(),
		Names:     g.Names(),
		Usernames: g.Usernames(),
		UhUUIDs:   g.UhUUIDs(),
	}
	if v.Members == nil {
		v.Members = []models.Person{}
	}
	if v.Names == nil {
		v.Names = []string{}
	}
	if v.Usernames == nil {
		v.Usernames = []string{}
	}
	if v.UhUUIDs == nil {
		v.UhUUIDs = []string{}
	}
	return v
}

func toGroupingView(g *models.Grouping) groupingView {
	return groupingView{
		Path:             g.Path(),
		Name:             g.Name(),
		Description:      g.Description,
		Basis:            toGroupView(g.Basis()),
		Include:          toGroupView(g.Include()),
		Exclude:          toGroupView(g.Exclude()),
		Composite:        toGroupView(g.Composite()),
		Owners:           toGroupView(g.Owners()),
		SyncDestinations: g.SyncDestinations(),
		OptInOn:          g.OptInOn,
		OptOutOn:         g.OptOutOn,
	}
}
