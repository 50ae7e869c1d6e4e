// internal/testutil/fixtures.go
package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
)

// TestPerson builds a deterministic test person: "User N" / "uN" with
// a stable fake uuid.
func TestPerson(n int) models.Person {
	return models.NewPerson(
		fmt.Sprintf("User %d", n),
		fmt.Sprintf("u%d", n),
		fmt.Sprintf("uuid-%04d", n),
	)
}

// RandomPerson builds a person with a random identifier, for tests
// that need unique identities rather than the shared numbered users.
func RandomPerson(name, username string) models.Person {
	return models.NewPerson(name, username, uuid.NewString())
}

// GroupingSeed describes a grouping to seed into a FakeStore.
type GroupingSeed struct {
	Path     string
	Basis    []models.Person
	Include  []models.Person
	Exclude  []models.Person
	Owners   []models.Person
	OptInOn  bool
	OptOutOn bool

	SyncDestinations []models.SyncDestination
}

// Seed writes the grouping record and all sub-group member rows into
// the fake store. Composite rows are seeded at the grouping path so
// membership queries (opt-in/out) see the derived membership.
func (g GroupingSeed) Seed(f *FakeStore) {
	f.PutGrouping(models.GroupingRecord{
		Path:             g.Path,
		OptInOn:          g.OptInOn,
		OptOutOn:         g.OptOutOn,
		SyncDestinations: g.SyncDestinations,
	})
	for _, p := range g.Basis {
		f.AddMember(g.Path+":basis", p)
	}
	for _, p := range g.Include {
		f.AddMember(g.Path+":include", p)
	}
	for _, p := range g.Exclude {
		f.AddMember(g.Path+":exclude", p)
	}
	for _, p := range g.Owners {
		f.AddMember(g.Path+":owners", p)
	}
	composite := models.Compose(g.Path,
		models.NewGroup(g.Path+":basis", g.Basis...),
		models.NewGroup(g.Path+":include", g.Include...),
		models.NewGroup(g.Path+":exclude", g.Exclude...),
	)
	for _, p := range composite.Members() {
		f.AddMember(g.Path, p)
	}
}

// SeedAdmins seeds the admin grouping's membership.
func SeedAdmins(f *FakeStore, admins ...models.Person) {
	for _, p := range admins {
		f.AddMember(AdminGroupPath, p)
	}
}
