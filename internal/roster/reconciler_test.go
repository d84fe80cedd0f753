package roster

import (
	"testing"

	"github.com/forgeboard/forgeboard/internal/types"
)

func member(uid string) types.Assignment {
	return types.Assignment{UID: uid, Name: "Dev " + uid, Role: "backend"}
}

func TestAddMember_PairsCounterWithList(t *testing.T) {
	p := &types.ProjectProgress{}

	if !AddMember(p, member("d1")) {
		t.Fatal("first add reported no change")
	}
	if !AddMember(p, member("d2")) {
		t.Fatal("second add reported no change")
	}

	if len(p.Roster) != 2 || p.TeamSize != 2 {
		t.Errorf("roster/counter diverged: len=%d team_size=%d", len(p.Roster), p.TeamSize)
	}
}

func TestAddMember_IdempotentByUID(t *testing.T) {
	p := &types.ProjectProgress{}
	AddMember(p, member("d1"))

	// Same uid, different display fields: still a duplicate
	dup := types.Assignment{UID: "d1", Name: "Renamed", Role: "frontend"}
	if AddMember(p, dup) {
		t.Error("duplicate uid reported as change")
	}
	if len(p.Roster) != 1 || p.TeamSize != 1 {
		t.Errorf("duplicate add changed state: len=%d team_size=%d", len(p.Roster), p.TeamSize)
	}
}

func TestRemoveMember(t *testing.T) {
	p := &types.ProjectProgress{}
	AddMember(p, member("d1"))
	AddMember(p, member("d2"))

	if !RemoveMember(p, "d1") {
		t.Fatal("remove reported no change")
	}
	if len(p.Roster) != 1 || p.TeamSize != 1 {
		t.Errorf("roster/counter diverged: len=%d team_size=%d", len(p.Roster), p.TeamSize)
	}
	if p.Roster[0].UID != "d2" {
		t.Errorf("wrong member removed, remaining %q", p.Roster[0].UID)
	}
}

func TestRemoveMember_AbsentUID(t *testing.T) {
	p := &types.ProjectProgress{}
	AddMember(p, member("d1"))

	if RemoveMember(p, "ghost") {
		t.Error("removing an absent uid reported a change")
	}
	if len(p.Roster) != 1 || p.TeamSize != 1 {
		t.Errorf("absent remove changed state: len=%d team_size=%d", len(p.Roster), p.TeamSize)
	}
}

func TestRemoveMember_CounterFloorsAtZero(t *testing.T) {
	// A drifted record: roster has a member but the counter reads zero.
	p := &types.ProjectProgress{
		Roster:   []types.Assignment{member("d1")},
		TeamSize: 0,
	}

	RemoveMember(p, "d1")
	if p.TeamSize != 0 {
		t.Errorf("counter went negative territory: %d", p.TeamSize)
	}
}

func TestSyncSize(t *testing.T) {
	p := &types.ProjectProgress{
		Roster:   []types.Assignment{member("d1"), member("d2"), member("d3")},
		TeamSize: 99,
	}
	SyncSize(p)
	if p.TeamSize != 3 {
		t.Errorf("expected team size 3, got %d", p.TeamSize)
	}
}
