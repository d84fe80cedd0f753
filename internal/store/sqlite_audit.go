package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgeboard/forgeboard/internal/types"
)

const insertAuditSQL = `
	INSERT INTO transition_audit (project_id, actor_uid, actor_role, from_status, to_status, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// appendAudit records one lifecycle transition. Always called inside the
// same transaction as the status change so the audit trail cannot drift
// from the stored state.
func appendAudit(ctx context.Context, e execer, entry types.AuditEntry) error {
	_, err := e.ExecContext(ctx, insertAuditSQL,
		entry.ProjectID, entry.ActorUID, entry.ActorRole,
		entry.FromStatus, entry.ToStatus,
		entry.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: append audit: %v", ErrStorage, err)
	}
	return nil
}

// GetAudit returns the transition history for a project in order of
// occurrence. An unknown project yields ErrNotFound rather than an empty
// list so callers can distinguish "never existed" from "no transitions yet".
func (s *SQLiteStore) GetAudit(ctx context.Context, projectID string) ([]types.AuditEntry, error) {
	if _, err := getRequest(ctx, s.db, projectID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sequence, project_id, actor_uid, actor_role, from_status, to_status, created_at
		FROM transition_audit
		WHERE project_id = ?
		ORDER BY sequence ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	entries := make([]types.AuditEntry, 0)
	for rows.Next() {
		var e types.AuditEntry
		var createdAt string

		if err := rows.Scan(&e.Sequence, &e.ProjectID, &e.ActorUID, &e.ActorRole,
			&e.FromStatus, &e.ToStatus, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		var parseErr error
		if e.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdAt); parseErr != nil {
			slog.Warn("transition_audit: failed to parse created_at", "value", createdAt, "error", parseErr)
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}
