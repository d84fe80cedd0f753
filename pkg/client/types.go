package client

import "time"

// Request is a project request as returned by the API.
type Request struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	ProjectName    string     `json:"project_name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	SubCategories  []string   `json:"sub_categories"`
	Budget         Budget     `json:"budget"`
	DeliveryTarget string     `json:"delivery_target"`
	ProjectType    string     `json:"project_type"`
	Links          Links      `json:"links"`
	Attachments    []string   `json:"attachments"`
	IsDraft        bool       `json:"is_draft"`
	CreatedAt      time.Time  `json:"created_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

// Budget is the budget portion of a request.
type Budget struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Links holds the optional reference URLs of a request.
type Links struct {
	GitHub  string `json:"github,omitempty"`
	Figma   string `json:"figma,omitempty"`
	Website string `json:"website,omitempty"`
	Docs    string `json:"docs,omitempty"`
	Other   string `json:"other,omitempty"`
}

// Progress is the tracked lifecycle state of a published project.
type Progress struct {
	ProjectID           string          `json:"project_id"`
	Status              string          `json:"status"`
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

// ProgressSummary carries derived roll-up numbers.
type ProgressSummary struct {
	MilestonesCompleted int     `json:"milestones_completed"`
	MilestonesTotal     int     `json:"milestones_total"`
	CompletionRatio     float64 `json:"completion_ratio"`
	TeamSize            int     `json:"team_size"`
}

// Milestone is one milestone of a tracked project.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// Assignment is one roster member.
type Assignment struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuditEntry is one recorded status transition.
type AuditEntry struct {
	Sequence   int64     `json:"sequence"`
	ProjectID  string    `json:"project_id"`
	ActorUID   string    `json:"actor_uid"`
	ActorRole  string    `json:"actor_role"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Health is the health endpoint payload.
type Health struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	RequestCount int64  `json:"request_count"`
	TrackedCount int64  `json:"tracked_count"`
}

// listResponse wraps the request list body.
type listResponse struct {
	Requests []Request `json:"requests"`
	Total    int       `json:"total"`
}

// auditResponse wraps the audit list body.
type auditResponse struct {
	Entries []AuditEntry `json:"entries"`
	Total   int          `json:"total"`
}
