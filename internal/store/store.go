package store

import (
	"context"
	"time"

	"github.com/forgeboard/forgeboard/internal/types"
)

// Store defines the interface contract for the lifecycle persistence layer.
// Every mutation is all-or-nothing: on any returned error the stored state
// is unchanged.
type Store interface {
	CreateDraft(ctx context.Context, ownerID string, doc types.DraftDocument) (*types.ProjectRequest, error)
	GetRequest(ctx context.Context, id string) (*types.ProjectRequest, error)
	ListRequestsByOwner(ctx context.Context, ownerID string) ([]types.ProjectRequest, error)
	UpdateDraft(ctx context.Context, id string, actor types.Identity, patch types.DraftPatch) (*types.ProjectRequest, error)
	DeleteDraft(ctx context.Context, id string, actor types.Identity) error
	Publish(ctx context.Context, id string, actor types.Identity) (*types.ProjectProgress, error)

	GetProgress(ctx context.Context, projectID string) (*types.ProjectProgress, error)
	TransitionStatus(ctx context.Context, projectID string, actor types.Identity, to types.RequestStatus) (*types.ProjectProgress, error)
	UpdateProgress(ctx context.Context, projectID string, actor types.Identity, patch types.ProgressPatch) (*types.ProjectProgress, error)
	AddRosterMember(ctx context.Context, projectID string, actor types.Identity, member types.Assignment) (*types.ProjectProgress, error)
	RemoveRosterMember(ctx context.Context, projectID string, actor types.Identity, uid string) (*types.ProjectProgress, error)

	GetAudit(ctx context.Context, projectID string) ([]types.AuditEntry, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds aggregate counts for the health endpoint.
type Stats struct {
	RequestCount int64 `json:"request_count"`
	TrackedCount int64 `json:"tracked_count"`
}
