package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forgeboard/forgeboard/internal/authz"
	"github.com/forgeboard/forgeboard/internal/closure"
	"github.com/forgeboard/forgeboard/internal/roster"
	"github.com/forgeboard/forgeboard/internal/types"
	"github.com/forgeboard/forgeboard/internal/validation"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the SQLite-backed lifecycle store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable pragmas for performance and safety
	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	// Run goose migrations
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const requestColumns = `id, owner_id, project_name, description, category, sub_categories,
	budget_currency, budget_amount, delivery_target, project_type, links, attachments,
	is_draft, created_at, published_at`

const progressColumns = `project_id, status, progress_percent, hours_spent, tasks_completed,
	tasks_total, team_size, start_date, due_date, live_url, milestones, roster,
	deletion_scheduled_at, created_at, updated_at`

// scanRequest scans a row into a ProjectRequest, unpacking the JSON columns.
func scanRequest(scanner interface{ Scan(...any) error }) (*types.ProjectRequest, error) {
	var req types.ProjectRequest
	var subCategoriesJSON, linksJSON, attachmentsJSON string
	var createdAt string
	var publishedAt sql.NullString

	err := scanner.Scan(
		&req.ID,
		&req.OwnerID,
		&req.ProjectName,
		&req.Description,
		&req.Category,
		&subCategoriesJSON,
		&req.Budget.Currency,
		&req.Budget.Amount,
		&req.DeliveryTarget,
		&req.ProjectType,
		&linksJSON,
		&attachmentsJSON,
		&req.IsDraft,
		&createdAt,
		&publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(subCategoriesJSON), &req.SubCategories); err != nil {
		return nil, fmt.Errorf("parse sub_categories JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(linksJSON), &req.Links); err != nil {
		return nil, fmt.Errorf("parse links JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(attachmentsJSON), &req.Attachments); err != nil {
		return nil, fmt.Errorf("parse attachments JSON: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		req.CreatedAt = t
	}
	if publishedAt.Valid {
		if t, err := time.Parse(time.RFC3339, publishedAt.String); err == nil {
			req.PublishedAt = &t
		}
	}

	return &req, nil
}

// scanProgress scans a row into a ProjectProgress and recomputes the
// presentation summary.
func scanProgress(scanner interface{ Scan(...any) error }) (*types.ProjectProgress, error) {
	var prog types.ProjectProgress
	var milestonesJSON, rosterJSON string
	var createdAt, updatedAt string
	var deletionAt sql.NullString

	err := scanner.Scan(
		&prog.ProjectID,
		&prog.Status,
		&prog.ProgressPercent,
		&prog.HoursSpent,
		&prog.TasksCompleted,
		&prog.TasksTotal,
		&prog.TeamSize,
		&prog.StartDate,
		&prog.DueDate,
		&prog.LiveURL,
		&milestonesJSON,
		&rosterJSON,
		&deletionAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(milestonesJSON), &prog.Milestones); err != nil {
		return nil, fmt.Errorf("parse milestones JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(rosterJSON), &prog.Roster); err != nil {
		return nil, fmt.Errorf("parse roster JSON: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		prog.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		prog.UpdatedAt = t
	}
	if deletionAt.Valid {
		if t, err := time.Parse(time.RFC3339, deletionAt.String); err == nil {
			prog.DeletionScheduledAt = &t
		}
	}

	prog.Summary = types.Summarize(&prog)
	return &prog, nil
}

// getRequest reads one request inside the given querier (db or tx).
func getRequest(ctx context.Context, q rowQuerier, id string) (*types.ProjectRequest, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM project_requests WHERE id = ?`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan request: %w", err)
	}
	return req, nil
}

// getProgress reads one progress record inside the given querier.
func getProgress(ctx context.Context, q rowQuerier, projectID string) (*types.ProjectProgress, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM project_progress WHERE project_id = ?`, projectID)

	prog, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	return prog, nil
}

// CreateDraft inserts a new draft request owned by ownerID.
func (s *SQLiteStore) CreateDraft(ctx context.Context, ownerID string, doc types.DraftDocument) (*types.ProjectRequest, error) {
	now := time.Now().UTC()
	req := &types.ProjectRequest{
		ID:             ulid.Make().String(),
		OwnerID:        ownerID,
		ProjectName:    doc.ProjectName,
		Description:    doc.Description,
		Category:       doc.Category,
		SubCategories:  doc.SubCategories,
		Budget:         doc.Budget,
		DeliveryTarget: doc.DeliveryTarget,
		ProjectType:    doc.ProjectType,
		Links:          doc.Links,
		Attachments:    doc.Attachments,
		IsDraft:        true,
		CreatedAt:      now,
	}

	subCategoriesJSON, linksJSON, attachmentsJSON, err := marshalRequestColumns(req)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO project_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`, req.ID, req.OwnerID, req.ProjectName, req.Description, req.Category,
		subCategoriesJSON, req.Budget.Currency, req.Budget.Amount,
		req.DeliveryTarget, req.ProjectType, linksJSON, attachmentsJSON,
		req.IsDraft, req.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("%w: insert draft: %v", ErrStorage, err)
	}

	return req, nil
}

// marshalRequestColumns packs the JSON-backed request columns.
func marshalRequestColumns(req *types.ProjectRequest) (string, string, string, error) {
	if req.SubCategories == nil {
		req.SubCategories = []string{}
	}
	if req.Attachments == nil {
		req.Attachments = []string{}
	}

	subCategories, err := json.Marshal(req.SubCategories)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal sub_categories: %w", err)
	}
	links, err := json.Marshal(req.Links)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal links: %w", err)
	}
	attachments, err := json.Marshal(req.Attachments)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal attachments: %w", err)
	}
	return string(subCategories), string(links), string(attachments), nil
}

// GetRequest retrieves a request by ID.
func (s *SQLiteStore) GetRequest(ctx context.Context, id string) (*types.ProjectRequest, error) {
	return getRequest(ctx, s.db, id)
}

// ListRequestsByOwner returns all requests for an owner, newest first.
func (s *SQLiteStore) ListRequestsByOwner(ctx context.Context, ownerID string) ([]types.ProjectRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM project_requests
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := make([]types.ProjectRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// UpdateDraft applies a partial update to a draft. Published requests reject
// all field edits except links.
func (s *SQLiteStore) UpdateDraft(ctx context.Context, id string, actor types.Identity, patch types.DraftPatch) (*types.ProjectRequest, error) {
	req, err := getRequest(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, req.OwnerID); err != nil {
		return nil, err
	}
	if !req.IsDraft && !linksOnly(patch) {
		return nil, ErrDraftRequired
	}

	doc := types.DraftDocument{
		ProjectName:    req.ProjectName,
		Description:    req.Description,
		Category:       req.Category,
		SubCategories:  req.SubCategories,
		Budget:         req.Budget,
		DeliveryTarget: req.DeliveryTarget,
		ProjectType:    req.ProjectType,
		Links:          req.Links,
		Attachments:    req.Attachments,
	}.Apply(patch)

	req.ProjectName = doc.ProjectName
	req.Description = doc.Description
	req.Category = doc.Category
	req.SubCategories = doc.SubCategories
	req.Budget = doc.Budget
	req.DeliveryTarget = doc.DeliveryTarget
	req.ProjectType = doc.ProjectType
	req.Links = doc.Links
	req.Attachments = doc.Attachments

	subCategoriesJSON, linksJSON, attachmentsJSON, err := marshalRequestColumns(req)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE project_requests
		SET project_name = ?, description = ?, category = ?, sub_categories = ?,
		    budget_currency = ?, budget_amount = ?, delivery_target = ?,
		    project_type = ?, links = ?, attachments = ?
		WHERE id = ?
	`, req.ProjectName, req.Description, req.Category, subCategoriesJSON,
		req.Budget.Currency, req.Budget.Amount, req.DeliveryTarget,
		req.ProjectType, linksJSON, attachmentsJSON, id)
	if err != nil {
		return nil, fmt.Errorf("%w: update draft: %v", ErrStorage, err)
	}

	return req, nil
}

// linksOnly reports whether a patch touches only the links field, the one
// mutation a published request still accepts.
func linksOnly(p types.DraftPatch) bool {
	return p.Links != nil &&
		p.ProjectName == nil && p.Description == nil && p.Category == nil &&
		p.SubCategories == nil && p.Budget == nil && p.DeliveryTarget == nil &&
		p.ProjectType == nil && p.Attachments == nil
}

// DeleteDraft removes a request that is still a draft. Published requests
// are only removed by the reaper after closure.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string, actor types.Identity) error {
	req, err := getRequest(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actor, req.OwnerID); err != nil {
		return err
	}
	if !req.IsDraft {
		return ErrDraftRequired
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM project_requests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete draft: %v", ErrStorage, err)
	}
	return nil
}

// Publish atomically flips the draft flag and creates the progress record
// with status pending. Either both happen or neither does.
func (s *SQLiteStore) Publish(ctx context.Context, id string, actor types.Identity) (*types.ProjectProgress, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	req, err := getRequest(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, req.OwnerID); err != nil {
		return nil, err
	}
	if !req.IsDraft {
		return nil, ErrAlreadyPublished
	}
	if err := newValidationError(validation.ValidatePublishable(req)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		UPDATE project_requests SET is_draft = 0, published_at = ? WHERE id = ?
	`, nowStr, id); err != nil {
		return nil, fmt.Errorf("%w: publish request: %v", ErrStorage, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO project_progress (project_id, status, milestones, roster, created_at, updated_at)
		VALUES (?, ?, '[]', '[]', ?, ?)
	`, id, types.StatusPending, nowStr, nowStr); err != nil {
		return nil, fmt.Errorf("%w: create progress: %v", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit transaction: %v", ErrStorage, err)
	}

	return &types.ProjectProgress{
		ProjectID:  id,
		Status:     types.StatusPending,
		Milestones: []types.Milestone{},
		Roster:     []types.Assignment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GetProgress retrieves the progress record for a published project.
func (s *SQLiteStore) GetProgress(ctx context.Context, projectID string) (*types.ProjectProgress, error) {
	return getProgress(ctx, s.db, projectID)
}

// TransitionStatus moves a project through the lifecycle state machine. The
// authorization gate decides; approval of a closure additionally stamps the
// deletion horizon. The status change and its audit row commit together.
func (s *SQLiteStore) TransitionStatus(ctx context.Context, projectID string, actor types.Identity, to types.RequestStatus) (*types.ProjectProgress, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	req, err := getRequest(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	prog, err := getProgress(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	isOwner := actor.UID == req.OwnerID
	if err := authz.CanTransition(actor.Role, isOwner, prog.Status, to); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// deletion_scheduled_at is set iff status becomes closed; the horizon is
	// measured from this approval instant.
	var deletionAt sql.NullString
	prog.DeletionScheduledAt = nil
	if to == types.StatusClosed {
		horizon := closure.Schedule(now)
		prog.DeletionScheduledAt = &horizon
		deletionAt = sql.NullString{String: horizon.Format(time.RFC3339), Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE project_progress
		SET status = ?, deletion_scheduled_at = ?, updated_at = ?
		WHERE project_id = ?
	`, to, deletionAt, now.Format(time.RFC3339), projectID); err != nil {
		return nil, fmt.Errorf("%w: update status: %v", ErrStorage, err)
	}

	if err := appendAudit(ctx, tx, types.AuditEntry{
		ProjectID:  projectID,
		ActorUID:   actor.UID,
		ActorRole:  actor.Role,
		FromStatus: prog.Status,
		ToStatus:   to,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit transaction: %v", ErrStorage, err)
	}

	prog.Status = to
	prog.UpdatedAt = now
	prog.Summary = types.Summarize(prog)
	return prog, nil
}

// UpdateProgress applies an admin bulk patch to counters, dates, liveUrl,
// milestones, and roster. The merged record is validated before anything is
// written; a rejected patch leaves the stored record unchanged.
func (s *SQLiteStore) UpdateProgress(ctx context.Context, projectID string, actor types.Identity, patch types.ProgressPatch) (*types.ProjectProgress, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	prog, err := getProgress(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	applyProgressPatch(prog, patch)

	if err := newValidationError(validation.ValidateProgressRecord(prog)); err != nil {
		return nil, err
	}

	milestonesJSON, err := json.Marshal(prog.Milestones)
	if err != nil {
		return nil, fmt.Errorf("marshal milestones: %w", err)
	}
	rosterJSON, err := json.Marshal(prog.Roster)
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE project_progress
		SET progress_percent = ?, hours_spent = ?, tasks_completed = ?, tasks_total = ?,
		    team_size = ?, start_date = ?, due_date = ?, live_url = ?,
		    milestones = ?, roster = ?, updated_at = ?
		WHERE project_id = ?
	`, prog.ProgressPercent, prog.HoursSpent, prog.TasksCompleted, prog.TasksTotal,
		prog.TeamSize, prog.StartDate, prog.DueDate, prog.LiveURL,
		string(milestonesJSON), string(rosterJSON), now.Format(time.RFC3339),
		projectID); err != nil {
		return nil, fmt.Errorf("%w: update progress: %v", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit transaction: %v", ErrStorage, err)
	}

	prog.UpdatedAt = now
	prog.Summary = types.Summarize(prog)
	return prog, nil
}

// applyProgressPatch merges non-nil patch fields into prog. Counters and
// percent stay independently settable overrides; they are not derived from
// milestones. A wholesale roster replacement re-syncs the team-size counter
// in the same operation.
func applyProgressPatch(prog *types.ProjectProgress, patch types.ProgressPatch) {
	if patch.ProgressPercent != nil {
		prog.ProgressPercent = *patch.ProgressPercent
	}
	if patch.HoursSpent != nil {
		prog.HoursSpent = *patch.HoursSpent
	}
	if patch.TasksCompleted != nil {
		prog.TasksCompleted = *patch.TasksCompleted
	}
	if patch.TasksTotal != nil {
		prog.TasksTotal = *patch.TasksTotal
	}
	if patch.StartDate != nil {
		prog.StartDate = *patch.StartDate
	}
	if patch.DueDate != nil {
		prog.DueDate = *patch.DueDate
	}
	if patch.LiveURL != nil {
		prog.LiveURL = *patch.LiveURL
	}
	if patch.Milestones != nil {
		milestones := append([]types.Milestone(nil), (*patch.Milestones)...)
		for i := range milestones {
			if milestones[i].ID == "" {
				milestones[i].ID = ulid.Make().String()
			}
		}
		prog.Milestones = milestones
	}
	if patch.Roster != nil {
		prog.Roster = append([]types.Assignment(nil), (*patch.Roster)...)
		roster.SyncSize(prog)
	}
}

// AddRosterMember appends a member through the reconciler. Adding an
// already-present uid is an idempotent no-op.
func (s *SQLiteStore) AddRosterMember(ctx context.Context, projectID string, actor types.Identity, member types.Assignment) (*types.ProjectProgress, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := newValidationError(rosterMemberErrors(member)); err != nil {
		return nil, err
	}

	return s.mutateRoster(ctx, projectID, func(prog *types.ProjectProgress) bool {
		return roster.AddMember(prog, member)
	})
}

// RemoveRosterMember removes a member through the reconciler.
func (s *SQLiteStore) RemoveRosterMember(ctx context.Context, projectID string, actor types.Identity, uid string) (*types.ProjectProgress, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.mutateRoster(ctx, projectID, func(prog *types.ProjectProgress) bool {
		return roster.RemoveMember(prog, uid)
	})
}

// rosterMemberErrors validates a roster candidate.
func rosterMemberErrors(member types.Assignment) []validation.ValidationError {
	var c validation.Collector
	c.Add(validation.ValidateRequired("uid", member.UID))
	c.Add(validation.ValidateRequired("name", member.Name))
	return c.Errors()
}

// mutateRoster loads the progress record, applies the reconciler mutation,
// and writes the roster list and team-size counter back in one statement so
// the paired fields cannot diverge.
func (s *SQLiteStore) mutateRoster(ctx context.Context, projectID string, mutate func(*types.ProjectProgress) bool) (*types.ProjectProgress, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	prog, err := getProgress(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	if !mutate(prog) {
		// No change; skip the write entirely.
		return prog, nil
	}

	rosterJSON, err := json.Marshal(prog.Roster)
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE project_progress
		SET roster = ?, team_size = ?, updated_at = ?
		WHERE project_id = ?
	`, string(rosterJSON), prog.TeamSize, now.Format(time.RFC3339), projectID); err != nil {
		return nil, fmt.Errorf("%w: update roster: %v", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit transaction: %v", ErrStorage, err)
	}

	prog.UpdatedAt = now
	prog.Summary = types.Summarize(prog)
	return prog, nil
}

// PurgeExpired deletes closed projects whose deletion horizon has passed,
// along with their progress and audit rows. Returns the number of projects
// removed.
func (s *SQLiteStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT project_id FROM project_progress
		WHERE status = ? AND deletion_scheduled_at IS NOT NULL AND deletion_scheduled_at <= ?
	`, types.StatusClosed, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("query expired projects: %w", err)
	}

	var expired []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan expired project: %w", err)
		}
		expired = append(expired, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate expired projects: %w", err)
	}
	rows.Close()

	for _, id := range expired {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM transition_audit WHERE project_id = ?`, id); err != nil {
			return 0, fmt.Errorf("%w: purge audit: %v", ErrStorage, err)
		}
		// Progress rows cascade via the foreign key.
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM project_requests WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("%w: purge request: %v", ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit transaction: %v", ErrStorage, err)
	}

	return int64(len(expired)), nil
}

// GetStats returns aggregate counts for the health endpoint.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_requests`).Scan(&stats.RequestCount); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_progress`).Scan(&stats.TrackedCount); err != nil {
		return nil, err
	}
	return &stats, nil
}
