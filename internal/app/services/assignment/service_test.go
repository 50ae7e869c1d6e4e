package assignment_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/ruizaj/uh-groupings-api/internal/app/services/assignment"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/apperr"
	"github.com/ruizaj/uh-groupings-api/internal/app/system/subjects"
	"github.com/ruizaj/uh-groupings-api/internal/domain/models"
	"github.com/ruizaj/uh-groupings-api/internal/testutil"
)

const (
	pathRoot      = "path:to:grouping"
	grouping0Path = pathRoot + "0"
	grouping1Path = pathRoot + "1"
	grouping2Path = pathRoot + "2"
	grouping3Path = pathRoot + "3"
	grouping4Path = pathRoot + "4"

	adminUser = "admin"
)

// setupService seeds the standard test fixture: five groupings, ten
// numbered users, one admin.
//
//	grouping0: basis={u4}, include={u5}, exclude={u2}, owners={u0}, opt-in on
//	grouping1: basis={u1,u6}, owners={u0}, opt-in and opt-out on
//	grouping2: basis={u6}, owners={u0}
//	grouping3: basis={u6,u7}, include={u1}, owners={u3}, opt-in on, opt-out on
//	grouping4: owners={u9}
func setupService(t *testing.T) (*assignment.Service, *testutil.FakeStore) {
	t.Helper()
	store := testutil.NewFakeStore()

	u := make([]models.Person, 10)
	for i := range u {
		u[i] = testutil.TestPerson(i)
	}

	seeds := []testutil.GroupingSeed{
		{
			Path:    grouping0Path,
			Basis:   []models.Person{u[4]},
			Include: []models.Person{u[5]},
			Exclude: []models.Person{u[2]},
			Owners:  []models.Person{u[0]},
			OptInOn: true,
			SyncDestinations: []models.SyncDestination{
				{Name: "listserv", Description: "Email list", Synced: true},
				{Name: "google-group", Description: "Google group"},
			},
		},
		{
			Path:     grouping1Path,
			Basis:    []models.Person{u[1], u[6]},
			Owners:   []models.Person{u[0]},
			OptInOn:  true,
			OptOutOn: true,
		},
		{
			Path:   grouping2Path,
			Basis:  []models.Person{u[6]},
			Owners: []models.Person{u[0]},
		},
		{
			Path:     grouping3Path,
			Basis:    []models.Person{u[6], u[7]},
			Include:  []models.Person{u[1]},
			Owners:   []models.Person{u[3]},
			OptInOn:  true,
			OptOutOn: true,
		},
		{
			Path:   grouping4Path,
			Owners: []models.Person{u[9]},
		},
	}
	for _, seed := range seeds {
		seed.Seed(store)
	}
	testutil.SeedAdmins(store, models.NewPerson(adminUser, adminUser, adminUser))

	svc := assignment.New(store, testutil.Schema(), testutil.AdminGroupPath, zap.NewNop())
	return svc, store
}

func TestGetGrouping_AccessDenied(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.GetGrouping(ctx, grouping0Path, "u1")
	if !apperr.IsAccessDenied(err) {
		t.Fatalf("expected AccessDenied, got %v", err)
	}
	var e *apperr.Error
	if !errors.As(err, &e) || e.Message != apperr.InsufficientPrivileges {
		t.Errorf("message: got %v, want %q", err, apperr.InsufficientPrivileges)
	}
}

func TestGetGrouping_OwnerAndAdminSeeFullDetail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, requester := range []string{"u0", adminUser} {
		g, err := svc.GetGrouping(ctx, grouping0Path, requester)
		if err != nil {
			t.Fatalf("GetGrouping(%s): %v", requester, err)
		}
		if g.Name() != "grouping0" {
			t.Errorf("Name: got %q", g.Name())
		}
		if !g.Composite().ContainsUsername("u4") || !g.Composite().ContainsUsername("u5") {
			t.Errorf("%s: composite missing basis/include members: %v", requester, g.Composite().Usernames())
		}
		if g.Composite().ContainsUsername("u2") {
			t.Errorf("%s: excluded member in composite", requester)
		}
		if !g.Basis().ContainsUsername("u4") {
			t.Errorf("%s: basis missing u4", requester)
		}
		if !g.Include().ContainsUsername("u5") {
			t.Errorf("%s: include missing u5", requester)
		}
		if !g.Exclude().ContainsUsername("u2") {
			t.Errorf("%s: exclude missing u2", requester)
		}
		if !g.Owners().ContainsUsername("u0") {
			t.Errorf("%s: owners missing u0", requester)
		}
	}
}

func TestGetGrouping_CompositeAlgebra(t *testing.T) {
	svc, _ := setupService(t)

	g, err := svc.GetGrouping(context.Background(), grouping0Path, "u0")
	if err != nil {
		t.Fatal(err)
	}

	// composite == (basis ∪ include) \ exclude, by identifier.
	want := map[string]struct{}{}
	for _, m := range append(append([]models.Person{}, g.Basis().Members()...), g.Include().Members()...) {
		if !g.Exclude().ContainsIdentity(m) {
			want[m.Key()] = struct{}{}
		}
	}
	got := map[string]struct{}{}
	for _, m := range g.Composite().Members() {
		got[m.Key()] = struct{}{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("composite: got %v, want %v", got, want)
	}
}

func TestGetGrouping_NotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetGrouping(context.Background(), "path:to:nowhere", adminUser)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetGrouping_SyncDestinations(t *testing.T) {
	svc, _ := setupService(t)

	g, err := svc.GetGrouping(context.Background(), grouping0Path, "u0")
	if err != nil {
		t.Fatal(err)
	}
	if on, ok := g.IsSyncDestinationOn("listserv"); !ok || !on {
		t.Errorf("listserv: on=%v ok=%v", on, ok)
	}
	if on, ok := g.IsSyncDestinationOn("google-group"); !ok || on {
		t.Errorf("google-group: on=%v ok=%v", on, ok)
	}
}

func TestGetPaginatedGrouping(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	page, size := 1, 1
	sortBy := assignment.SortByName
	asc := true

	_, err := svc.GetPaginatedGrouping(ctx, grouping0Path, "u1", &page, &size, &sortBy, &asc)
	if !apperr.IsAccessDenied(err) {
		t.Fatalf("non-owner: expected AccessDenied, got %v", err)
	}

	// Owner, ascending by name: composite is {u4, u5}; page 1 of size 1
	// holds u4.
	g, err := svc.GetPaginatedGrouping(ctx, grouping0Path, "u0", &page, &size, &sortBy, &asc)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Composite().Usernames(); len(got) != 1 || got[0] != "u4" {
		t.Errorf("ascending page 1: got %v, want [u4]", got)
	}

	// Admin, descending: page 1 holds u5.
	desc := false
	g, err = svc.GetPaginatedGrouping(ctx, grouping0Path, adminUser, &page, &size, &sortBy, &desc)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Composite().Usernames(); len(got) != 1 || got[0] != "u5" {
		t.Errorf("descending page 1: got %v, want [u5]", got)
	}
}

func TestGetPaginatedGrouping_AllNilsEqualsUnpaginated(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	full, err := svc.GetGrouping(ctx, grouping0Path, "u0")
	if err != nil {
		t.Fatal(err)
	}
	nilled, err := svc.GetPaginatedGrouping(ctx, grouping0Path, "u0", nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nilled.Composite().Usernames(), full.Composite().Usernames()) {
		t.Errorf("composite drifted: %v vs %v", nilled.Composite().Usernames(), full.Composite().Usernames())
	}
	if !reflect.DeepEqual(nilled.Owners().Usernames(), full.Owners().Usernames()) {
		t.Errorf("owners drifted: %v vs %v", nilled.Owners().Usernames(), full.Owners().Usernames())
	}
}

func TestGetPaginatedGrouping_WindowBeyondData(t *testing.T) {
	svc, _ := setupService(t)

	page, size := 50, 10
	sortBy := assignment.SortByUsername
	asc := true
	g, err := svc.GetPaginatedGrouping(context.Background(), grouping0Path, "u0", &page, &size, &sortBy, &asc)
	if err != nil {
		t.Fatalf("beyond-range window must not error: %v", err)
	}
	if g.Composite().Len() != 0 {
		t.Errorf("expected empty window, got %v", g.Composite().Usernames())
	}
}

func TestGetPaginatedGrouping_UnknownSortAttribute(t *testing.T) {
	svc, _ := setupService(t)

	page, size := 1, 10
	sortBy := "shoeSize"
	asc := true
	_, err := svc.GetPaginatedGrouping(context.Background(), grouping0Path, "u0", &page, &size, &sortBy, &asc)
	if !apperr.IsInvalidArgument(err) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestGroupingsIn(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	// u6 is in grouping1/2/3 via basis; membership paths include
	// non-grouping sub-group paths that must be filtered out.
	raw, err := store.FindGroupsByMemberUsername(ctx, "u6")
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, g := range raw {
		paths = append(paths, g.Name)
	}

	groupings, err := svc.GroupingsIn(ctx, paths)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, g := range groupings {
		got[g.Path()] = true
	}
	for _, want := range []string{grouping1Path, grouping2Path, grouping3Path} {
		if !got[want] {
			t.Errorf("missing %s in %v", want, got)
		}
	}
	for p := range got {
		if p != grouping1Path && p != grouping2Path && p != grouping3Path {
			t.Errorf("unexpected grouping %s", p)
		}
	}
}

func TestGroupingsOwned(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	raw, err := store.FindGroupsByMemberUsername(ctx, "u0")
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for _, g := range raw {
		paths = append(paths, g.Name)
	}

	owned, err := svc.GroupingsOwned(ctx, paths)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{grouping0Path, grouping1Path, grouping2Path}
	if len(owned) != len(want) {
		t.Fatalf("owned count: got %d, want %d", len(owned), len(want))
	}
	for i, g := range owned {
		if g.Path() != want[i] {
			t.Errorf("owned[%d]: got %s, want %s (sorted by path)", i, g.Path(), want[i])
		}
		if !g.Owners().ContainsUsername("u0") {
			t.Errorf("owned[%d]: u0 not in owners", i)
		}
	}
}

func TestGetOptInGroups(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// Owner u0 may query on behalf of others.
	assumed := map[string]bool{grouping0Path: true, grouping1Path: true, grouping3Path: true}
	for _, target := range []string{"u0", "u1", "u2", "u3", "u4", "u5"} {
		paths, err := svc.GetOptInGroups(ctx, "u0", target)
		if err != nil {
			t.Fatalf("GetOptInGroups(u0, %s): %v", target, err)
		}
		seen := map[string]bool{}
		for _, p := range paths {
			if !assumed[p] {
				t.Errorf("target %s: unexpected opt-in path %s", target, p)
			}
			if seen[p] {
				t.Errorf("target %s: duplicate path %s", target, p)
			}
			seen[p] = true
		}
	}

	// u2 is excluded from grouping0: still eligible to opt back in.
	paths, err := svc.GetOptInGroups(ctx, "u2", "u2")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range paths {
		if p == grouping0Path {
			found = true
		}
	}
	if !found {
		t.Errorf("excluded member should be able to opt back in: %v", paths)
	}

	// u4 is already in grouping0's composite: not eligible there.
	paths, err = svc.GetOptInGroups(ctx, "u4", "u4")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range paths {
		if p == grouping0Path {
			t.Errorf("composite member should not re-opt-in: %v", paths)
		}
	}
}

func TestGetOptOutGroups(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// u1 is in grouping1 and grouping3 composites; both have opt-out on.
	paths, err := svc.GetOptOutGroups(ctx, "u1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{grouping1Path: true, grouping3Path: true}
	seen := map[string]bool{}
	for _, p := range paths {
		if !want[p] {
			t.Errorf("unexpected opt-out path %s", p)
		}
		if seen[p] {
			t.Errorf("duplicate path %s", p)
		}
		seen[p] = true
	}
	if len(seen) != len(want) {
		t.Errorf("opt-out paths: got %v, want %v", paths, want)
	}

	// u5 is not in any opt-out grouping's composite.
	paths, err = svc.GetOptOutGroups(ctx, "u5", "u5")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no opt-out groups, got %v", paths)
	}
}

func TestOptQueries_PrivilegeCheck(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// u5 owns nothing, is not an admin, and asks about someone else.
	if _, err := svc.GetOptInGroups(ctx, "u5", "u1"); !apperr.IsAccessDenied(err) {
		t.Errorf("opt-in on behalf: expected AccessDenied, got %v", err)
	}
	if _, err := svc.GetOptOutGroups(ctx, "u5", "u1"); !apperr.IsAccessDenied(err) {
		t.Errorf("opt-out on behalf: expected AccessDenied, got %v", err)
	}

	// Admin may query anyone.
	if _, err := svc.GetOptInGroups(ctx, adminUser, "u1"); err != nil {
		t.Errorf("admin query: %v", err)
	}
}

func TestAdminLists(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	holder, err := svc.AdminLists(ctx, adminUser)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(holder.AllGroupingPaths); got != 5 {
		t.Errorf("grouping path count: got %d, want 5", got)
	}
	if got := holder.AdminGroup.Len(); got != 1 {
		t.Errorf("admin group size: got %d, want 1", got)
	}

	_, err = svc.AdminLists(ctx, "u1")
	if !apperr.IsAccessDenied(err) {
		t.Fatalf("expected AccessDenied, got %v", err)
	}
	var e *apperr.Error
	if !errors.As(err, &e) || e.Message != apperr.InsufficientPrivileges {
		t.Errorf("message: got %v, want %q", err, apperr.InsufficientPrivileges)
	}
}

func TestStaleSubjectInResolvedGroup(t *testing.T) {
	svc, store := setupService(t)

	stale := models.NewPerson("iDontExistAnymoreName", "iDontExistAnymoreUsername", "iDontExistAnymoreUHUUID")
	store.AddStaleMember(grouping0Path+":basis", stale)

	g, err := svc.GetGrouping(context.Background(), grouping0Path, "u0")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range g.Basis().Members() {
		if m.UhUUID == "iDontExistAnymoreUHUUID" {
			found = true
			if m.Username != subjects.StaleUsername {
				t.Errorf("stale username: got %q, want %q", m.Username, subjects.StaleUsername)
			}
			if m.Name != "iDontExistAnymoreName" {
				t.Errorf("stale name should be kept verbatim: got %q", m.Name)
			}
		}
	}
	if !found {
		t.Fatal("stale member not resolved into basis")
	}
}
