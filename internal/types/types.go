package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role classifies an authenticated actor. Roles are a closed set; anything
// else is rejected at the boundary by ParseRole.
type Role string

const (
	RoleClient    Role = "client"
	RoleDeveloper Role = "developer"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a raw role string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleDeveloper, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity is the opaque (uid, role) pair supplied by the authentication
// collaborator. The core never verifies credentials, only authorizes.
type Identity struct {
	UID  string `json:"uid"`
	Role Role   `json:"role"`
}

// RequestStatus is the operational status of a published project.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusActive         RequestStatus = "active"
	StatusOnHold         RequestStatus = "on-hold"
	StatusCompleted      RequestStatus = "completed"
	StatusPendingClosure RequestStatus = "pending-closure"
	StatusClosed         RequestStatus = "closed"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusOnHold, StatusCompleted,
		StatusPendingClosure, StatusClosed:
		return true
	}
	return false
}

// AllStatuses lists every lifecycle status, for validation messages.
func AllStatuses() []string {
	return []string{
		string(StatusPending), string(StatusActive), string(StatusOnHold),
		string(StatusCompleted), string(StatusPendingClosure), string(StatusClosed),
	}
}

// ProjectType distinguishes the billing model of a request.
type ProjectType string

const (
	ProjectTypeFixedPrice ProjectType = "fixed_price"
	ProjectTypeHourly     ProjectType = "hourly"
)

// Budget is the client's stated budget for a request.
type Budget struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Links holds reference URLs attached to a request. All fields are optional.
type Links struct {
	GitHub  string `json:"github,omitempty"`
	Figma   string `json:"figma,omitempty"`
	Website string `json:"website,omitempty"`
	Docs    string `json:"docs,omitempty"`
	Other   string `json:"other,omitempty"`
}

// MilestoneStatus classifies a milestone within a tracked project.
type MilestoneStatus string

const (
	MilestoneUpcoming  MilestoneStatus = "upcoming"
	MilestoneCurrent   MilestoneStatus = "current"
	MilestoneCompleted MilestoneStatus = "completed"
)

// ValidMilestoneStatus reports whether s is a known milestone status.
func ValidMilestoneStatus(s MilestoneStatus) bool {
	switch s {
	case MilestoneUpcoming, MilestoneCurrent, MilestoneCompleted:
		return true
	}
	return false
}

// Milestone is a single tracked milestone. Ordering is insertion order.
// Multiple "current" milestones are tolerated; uniqueness is not enforced.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Date        string          `json:"date"` // free text or ISO date
	Status      MilestoneStatus `json:"status"`
	Description string          `json:"description,omitempty"`
}

// Assignment is a roster entry: one developer assigned to a project.
type Assignment struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // free text, e.g. "backend", "designer"
}

// ProjectRequest is the submitted brief. Freely mutable while a draft,
// immutable (except links) once published.
type ProjectRequest struct {
	ID             string      `json:"id"`
	OwnerID        string      `json:"owner_id"`
	ProjectName    string      `json:"project_name"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	SubCategories  []string    `json:"sub_categories"`
	Budget         Budget      `json:"budget"`
	DeliveryTarget string      `json:"delivery_target"`
	ProjectType    ProjectType `json:"project_type"`
	Links          Links       `json:"links"`
	Attachments    []string    `json:"attachments"`
	IsDraft        bool        `json:"is_draft"`
	CreatedAt      time.Time   `json:"created_at"`
	PublishedAt    *time.Time  `json:"published_at,omitempty"`
}

// ProjectProgress is the operational record, one-to-one with a published
// request. DeletionScheduledAt is set if and only if status is closed.
type ProjectProgress struct {
	ProjectID           string          `json:"project_id"`
	Status              RequestStatus   `json:"status"`
	ProgressPercent     int             `json:"progress_percent"`
	HoursSpent          float64         `json:"hours_spent"`
	TasksCompleted      int             `json:"tasks_completed"`
	TasksTotal          int             `json:"tasks_total"`
	TeamSize            int             `json:"team_size"`
	StartDate           string          `json:"start_date"`
	DueDate             string          `json:"due_date"`
	LiveURL             string          `json:"live_url,omitempty"`
	Milestones          []Milestone     `json:"milestones"`
	Roster              []Assignment    `json:"roster"`
	DeletionScheduledAt *time.Time      `json:"deletion_scheduled_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Summary             ProgressSummary `json:"summary"`
}

// ProgressSummary exposes plain numbers for the presentation boundary.
// The core does not format percentages, dates, or currency.
type ProgressSummary struct {
	MilestonesCompleted int     `json:"milestones_completed"`
	MilestonesTotal     int     `json:"milestones_total"`
	CompletionRatio     float64 `json:"completion_ratio"`
	TeamSize            int     `json:"team_size"`
}

// Summarize computes the presentation numbers from the milestone list and
// team size. Duplicate "current" milestones are tolerated.
func Summarize(p *ProjectProgress) ProgressSummary {
	s := ProgressSummary{
		MilestonesTotal: len(p.Milestones),
		TeamSize:        p.TeamSize,
	}
	for _, m := range p.Milestones {
		if m.Status == MilestoneCompleted {
			s.MilestonesCompleted++
		}
	}
	if s.MilestonesTotal > 0 {
		s.CompletionRatio = float64(s.MilestonesCompleted) / float64(s.MilestonesTotal)
	}
	return s
}

// DraftDocument is the editable brief while a client composes a request.
// It is the unit of snapshotting for the edit session.
type DraftDocument struct {
	ProjectName    string      `json:"project_name"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	SubCategories  []string    `json:"sub_categories"`
	Budget         Budget      `json:"budget"`
	DeliveryTarget string      `json:"delivery_target"`
	ProjectType    ProjectType `json:"project_type"`
	Links          Links       `json:"links"`
	Attachments    []string    `json:"attachments"`
}

// DefaultDraftDocument returns the canonical empty document. Restoration
// unmarshals persisted drafts over these defaults so fields absent from an
// older persisted shape come back populated.
func DefaultDraftDocument() DraftDocument {
	return DraftDocument{
		SubCategories: []string{},
		Budget:        Budget{Currency: "USD"},
		ProjectType:   ProjectTypeFixedPrice,
		Attachments:   []string{},
	}
}

// DraftPatch is a partial update to a draft document. Nil fields are left
// untouched.
type DraftPatch struct {
	ProjectName    *string      `json:"project_name,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Category       *string      `json:"category,omitempty"`
	SubCategories  *[]string    `json:"sub_categories,omitempty"`
	Budget         *Budget      `json:"budget,omitempty"`
	DeliveryTarget *string      `json:"delivery_target,omitempty"`
	ProjectType    *ProjectType `json:"project_type,omitempty"`
	Links          *Links       `json:"links,omitempty"`
	Attachments    *[]string    `json:"attachments,omitempty"`
}

// Apply returns a copy of d with the non-nil patch fields applied.
func (d DraftDocument) Apply(p DraftPatch) DraftDocument {
	if p.ProjectName != nil {
		d.ProjectName = *p.ProjectName
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.SubCategories != nil {
		d.SubCategories = append([]string(nil), (*p.SubCategories)...)
	}
	if p.Budget != nil {
		d.Budget = *p.Budget
	}
	if p.DeliveryTarget != nil {
		d.DeliveryTarget = *p.DeliveryTarget
	}
	if p.ProjectType != nil {
		d.ProjectType = *p.ProjectType
	}
	if p.Links != nil {
		d.Links = *p.Links
	}
	if p.Attachments != nil {
		d.Attachments = append([]string(nil), (*p.Attachments)...)
	}
	return d
}

// ProgressPatch is an admin bulk update to a progress record. Nil fields are
// left untouched. Milestones and Roster replace the stored lists in full
// (last write wins; no merge).
type ProgressPatch struct {
	ProgressPercent *int          `json:"progress_percent,omitempty"`
	HoursSpent      *float64      `json:"hours_spent,omitempty"`
	TasksCompleted  *int          `json:"tasks_completed,omitempty"`
	TasksTotal      *int          `json:"tasks_total,omitempty"`
	StartDate       *string       `json:"start_date,omitempty"`
	DueDate         *string       `json:"due_date,omitempty"`
	LiveURL         *string       `json:"live_url,omitempty"`
	Milestones      *[]Milestone  `json:"milestones,omitempty"`
	Roster          *[]Assignment `json:"roster,omitempty"`
}

// TransitionRequest is the body of a status transition call.
type TransitionRequest struct {
	Status RequestStatus `json:"status"`
}

// AuditEntry records one lifecycle transition for a project.
type AuditEntry struct {
	Sequence   int64         `json:"sequence"`
	ProjectID  string        `json:"project_id"`
	ActorUID   string        `json:"actor_uid"`
	ActorRole  Role          `json:"actor_role"`
	FromStatus RequestStatus `json:"from_status"`
	ToStatus   RequestStatus `json:"to_status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	RequestCount int64  `json:"request_count"`
	TrackedCount int64  `json:"tracked_count"`
}

// MarshalJSON ensures nil slices in ProjectRequest marshal as [] not null.
func (r ProjectRequest) MarshalJSON() ([]byte, error) {
	if r.SubCategories == nil {
		r.SubCategories = []string{}
	}
	if r.Attachments == nil {
		r.Attachments = []string{}
	}
	type Alias ProjectRequest
	return json.Marshal(Alias(r))
}

// MarshalJSON ensures nil slices in ProjectProgress marshal as [] not null.
func (p ProjectProgress) MarshalJSON() ([]byte, error) {
	if p.Milestones == nil {
		p.Milestones = []Milestone{}
	}
	if p.Roster == nil {
		p.Roster = []Assignment{}
	}
	type Alias ProjectProgress
	return json.Marshal(Alias(p))
}
