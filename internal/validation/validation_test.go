package validation

import (
	"testing"

	"github.com/forgeboard/forgeboard/internal/types"
)

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("name", "value"); err != nil {
		t.Errorf("unexpected error for non-empty value: %v", err)
	}
	if err := ValidateRequired("name", ""); err == nil {
		t.Error("expected error for empty value")
	}
	if err := ValidateRequired("name", "   "); err == nil {
		t.Error("expected error for whitespace-only value")
	}
}

func TestValidatePublishable(t *testing.T) {
	// Given a complete request
	req := &types.ProjectRequest{
		ProjectName: "Mobile app",
		Description: "An app for ordering",
		Attachments: []string{"brief.pdf"},
	}

	// When validated, there are no errors
	if errs := ValidatePublishable(req); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidatePublishable_MissingFields(t *testing.T) {
	// Given an empty request, all three publishability checks fire
	errs := ValidatePublishable(&types.ProjectRequest{})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"project_name", "description", "attachments"} {
		if !fields[f] {
			t.Errorf("missing error for field %q", f)
		}
	}
}

func TestValidateProgressRecord_TaskCounters(t *testing.T) {
	p := &types.ProjectProgress{
		TasksCompleted: 7,
		TasksTotal:     5,
	}

	errs := ValidateProgressRecord(p)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "tasks_completed" {
		t.Errorf("expected tasks_completed error, got %q", errs[0].Field)
	}
}

func TestValidateProgressRecord_EqualCountersAllowed(t *testing.T) {
	p := &types.ProjectProgress{
		TasksCompleted: 5,
		TasksTotal:     5,
	}
	if errs := ValidateProgressRecord(p); len(errs) != 0 {
		t.Errorf("completed == total must be allowed, got %v", errs)
	}
}

func TestValidateProgressRecord_PercentBounds(t *testing.T) {
	for _, pct := range []int{-1, 101} {
		p := &types.ProjectProgress{ProgressPercent: pct}
		if errs := ValidateProgressRecord(p); len(errs) == 0 {
			t.Errorf("expected error for percent %d", pct)
		}
	}
	for _, pct := range []int{0, 50, 100} {
		p := &types.ProjectProgress{ProgressPercent: pct}
		if errs := ValidateProgressRecord(p); len(errs) != 0 {
			t.Errorf("unexpected errors for percent %d: %v", pct, errs)
		}
	}
}

func TestValidateProgressRecord_Milestones(t *testing.T) {
	p := &types.ProjectProgress{
		Milestones: []types.Milestone{
			{Title: "", Status: types.MilestoneUpcoming},
			{Title: "Launch", Status: "someday"},
		},
	}

	errs := ValidateProgressRecord(p)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateProgressRecord_DuplicateCurrentAllowed(t *testing.T) {
	// Two "current" milestones are tolerated; uniqueness is not an invariant.
	p := &types.ProjectProgress{
		Milestones: []types.Milestone{
			{Title: "A", Status: types.MilestoneCurrent},
			{Title: "B", Status: types.MilestoneCurrent},
		},
	}
	if errs := ValidateProgressRecord(p); len(errs) != 0 {
		t.Errorf("duplicate current milestones must be allowed, got %v", errs)
	}
}

func TestValidateProgressRecord_RosterUIDs(t *testing.T) {
	p := &types.ProjectProgress{
		Roster: []types.Assignment{{UID: "", Name: "Nameless"}},
	}
	if errs := ValidateProgressRecord(p); len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}
