package models

import "testing"

func TestGrouping_NameDerivedFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"path:to:grouping0", "grouping0"},
		{"grouping0", "grouping0"},
		{"", ""},
		{"a:b", "b"},
	}
	for _, tt := range tests {
		g := NewGrouping(tt.path)
		if got := g.Name(); got != tt.want {
			t.Errorf("NewGrouping(%q).Name() = %q, want %q", tt.path, got, tt.want)
		}
	}

	// Name follows a path change; it is never independently settable.
	g := NewGrouping("path:to:grouping0")
	g.SetPath("other:place:grouping9")
	if g.Name() != "grouping9" {
		t.Errorf("Name after SetPath: got %q, want %q", g.Name(), "grouping9")
	}
}

func TestGrouping_GroupsNeverNil(t *testing.T) {
	g := NewGrouping("path:to:grouping0")

	for label, grp := range map[string]*Group{
		"basis":     g.Basis(),
		"exclude":   g.Exclude(),
		"include":   g.Include(),
		"composite": g.Composite(),
		"owners":    g.Owners(),
	} {
		if grp == nil {
			t.Fatalf("%s is nil on a fresh grouping", label)
		}
		if !grp.IsEmpty() {
			t.Errorf("%s should start empty", label)
		}
	}

	g.SetBasis(nil)
	g.SetExclude(nil)
	g.SetInclude(nil)
	g.SetComposite(nil)
	g.SetOwners(nil)
	if g.Basis() == nil || g.Exclude() == nil || g.Include() == nil || g.Composite() == nil || g.Owners() == nil {
		t.Fatal("nil assignment must substitute the empty group variant")
	}
	if !g.Basis().IsEmpty() {
		t.Error("substituted basis should be empty")
	}
}

func TestGrouping_SyncDestinationState(t *testing.T) {
	g := NewGrouping("path:to:grouping0")
	g.SetSyncDestinations([]SyncDestination{
		{Name: "listserv", Description: "Email list", Synced: true},
		{Name: "google-group", Description: "Google group", Synced: false},
	})

	on, ok := g.IsSyncDestinationOn("listserv")
	if !ok || !on {
		t.Errorf("listserv: got on=%v ok=%v, want on=true ok=true", on, ok)
	}
	on, ok = g.IsSyncDestinationOn("google-group")
	if !ok || on {
		t.Errorf("google-group: got on=%v ok=%v, want on=false ok=true", on, ok)
	}
	if _, ok := g.IsSyncDestinationOn("uh-release"); ok {
		t.Error("unknown destination should report ok=false")
	}

	if err := g.ChangeSyncDestinationState("google-group", true); err != nil {
		t.Fatalf("ChangeSyncDestinationState: %v", err)
	}
	// The destination record is the single source of truth, so the flip
	// must be visible both through the record list and the lookup.
	on, _ = g.IsSyncDestinationOn("google-group")
	if !on {
		t.Error("state change not visible through IsSyncDestinationOn")
	}
	if !g.SyncDestinations()[1].Synced {
		t.Error("state change not visible on the destination record")
	}

	if err := g.ChangeSyncDestinationState("nope", true); err == nil {
		t.Error("expected error for unknown destination")
	}
}
