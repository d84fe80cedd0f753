package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseRole_Known(t *testing.T) {
	for _, s := range []string{"client", "developer", "admin"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseRole(%q) = %q", s, role)
		}
	}
}

func TestParseRole_RejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "superadmin", "Client", "ADMIN", "owner"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) should have failed", s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		if !ValidStatus(RequestStatus(s)) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []RequestStatus{"", "archived", "Pending", "pending_closure"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestDraftDocument_ApplyPartial(t *testing.T) {
	doc := DefaultDraftDocument()

	name := "Storefront rebuild"
	budget := Budget{Currency: "EUR", Amount: 12000}
	next := doc.Apply(DraftPatch{
		ProjectName: &name,
		Budget:      &budget,
	})

	if next.ProjectName != name {
		t.Errorf("expected project name %q, got %q", name, next.ProjectName)
	}
	if next.Budget != budget {
		t.Errorf("expected budget %+v, got %+v", budget, next.Budget)
	}
	// Untouched fields keep defaults
	if next.ProjectType != ProjectTypeFixedPrice {
		t.Errorf("project type changed unexpectedly: %q", next.ProjectType)
	}
	// The original is a value; applying must not mutate it
	if doc.ProjectName != "" {
		t.Errorf("Apply mutated the receiver: %q", doc.ProjectName)
	}
}

func TestDraftDocument_ApplyCopiesSlices(t *testing.T) {
	doc := DefaultDraftDocument()

	tags := []string{"web", "commerce"}
	next := doc.Apply(DraftPatch{SubCategories: &tags})

	tags[0] = "mutated"
	if next.SubCategories[0] != "web" {
		t.Error("Apply aliased the patch slice instead of copying it")
	}
}

func TestSummarize(t *testing.T) {
	p := &ProjectProgress{
		TeamSize: 3,
		Milestones: []Milestone{
			{Title: "Design", Status: MilestoneCompleted},
			{Title: "Build", Status: MilestoneCurrent},
			{Title: "Launch", Status: MilestoneUpcoming},
			{Title: "Handoff", Status: MilestoneCompleted},
		},
	}

	s := Summarize(p)
	if s.MilestonesTotal != 4 {
		t.Errorf("expected total 4, got %d", s.MilestonesTotal)
	}
	if s.MilestonesCompleted != 2 {
		t.Errorf("expected completed 2, got %d", s.MilestonesCompleted)
	}
	if s.CompletionRatio != 0.5 {
		t.Errorf("expected ratio 0.5, got %f", s.CompletionRatio)
	}
	if s.TeamSize != 3 {
		t.Errorf("expected team size 3, got %d", s.TeamSize)
	}
}

func TestSummarize_EmptyMilestones(t *testing.T) {
	s := Summarize(&ProjectProgress{})
	if s.CompletionRatio != 0 {
		t.Errorf("expected ratio 0 with no milestones, got %f", s.CompletionRatio)
	}
}

func TestMarshalJSON_NilSlicesBecomeArrays(t *testing.T) {
	data, err := json.Marshal(ProjectRequest{ID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	if strings.Contains(body, `"sub_categories":null`) {
		t.Error("sub_categories marshalled as null")
	}
	if strings.Contains(body, `"attachments":null`) {
		t.Error("attachments marshalled as null")
	}

	data, err = json.Marshal(ProjectProgress{ProjectID: "r1"})
	if err != nil {
		t.Fatal(err)
	}
	body = string(data)
	if strings.Contains(body, `"milestones":null`) {
		t.Error("milestones marshalled as null")
	}
	if strings.Contains(body, `"roster":null`) {
		t.Error("roster marshalled as null")
	}
}
