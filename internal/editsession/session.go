// Package editsession gives a draft author bounded undo/redo and crash-safe
// autosave while composing a request. Each open draft editor owns one
// Session; every change to the current document is mirrored synchronously to
// durable session-scoped storage.
package editsession

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/forgeboard/forgeboard/internal/types"
)

// DefaultHistoryLimit bounds the undo history per session.
const DefaultHistoryLimit = 50

// Session is an in-memory editable document with bounded history.
//
// Invariants: history is never empty, 0 <= cursor < len(history), and the
// current document is always history[cursor].
type Session struct {
	mu      sync.Mutex
	key     string
	history []types.DraftDocument
	cursor  int
	limit   int
	mirror  Mirror
}

// newSession seeds a session with the given starting document.
func newSession(key string, start types.DraftDocument, limit int, mirror Mirror) *Session {
	if limit < 2 {
		limit = DefaultHistoryLimit
	}
	return &Session{
		key:     key,
		history: []types.DraftDocument{start},
		cursor:  0,
		limit:   limit,
		mirror:  mirror,
	}
}

// Current returns the current document snapshot.
func (s *Session) Current() types.DraftDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[s.cursor]
}

// Update applies a partial update. The pre-mutation snapshot stays on the
// history stack so the first undo reverts this edit; any redo branch beyond
// the cursor is discarded. The new current document is mirrored before
// returning.
func (s *Session) Update(ctx context.Context, patch types.DraftPatch) types.DraftDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A new edit after undoing invalidates the undone-away branch.
	s.history = s.history[:s.cursor+1]

	next := s.history[s.cursor].Apply(patch)
	s.history = append(s.history, next)
	s.cursor++

	// Drop the oldest snapshots once past the bound. The cursor shifts with
	// them so it keeps pointing at the same document.
	if len(s.history) > s.limit {
		drop := len(s.history) - s.limit
		s.history = append([]types.DraftDocument(nil), s.history[drop:]...)
		s.cursor -= drop
	}

	s.persist(ctx)
	return next
}

// Undo steps the cursor back one snapshot. No-op at the oldest entry.
// Returns the current document and whether anything changed.
func (s *Session) Undo(ctx context.Context) (types.DraftDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		return s.history[s.cursor], false
	}
	s.cursor--
	s.persist(ctx)
	return s.history[s.cursor], true
}

// Redo steps the cursor forward one snapshot. No-op at the newest entry or
// after an edit has truncated the redo branch.
func (s *Session) Redo(ctx context.Context) (types.DraftDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.history)-1 {
		return s.history[s.cursor], false
	}
	s.cursor++
	s.persist(ctx)
	return s.history[s.cursor], true
}

// Reset clears the history, restores the canonical empty document, and
// clears the durable mirror immediately.
func (s *Session) Reset(ctx context.Context) types.DraftDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := types.DefaultDraftDocument()
	s.history = []types.DraftDocument{doc}
	s.cursor = 0

	if err := s.mirror.Delete(ctx, s.key); err != nil {
		slog.Warn("draft mirror clear failed", "key", s.key, "error", err)
	}
	return doc
}

// persist mirrors the current document. Mirror failures degrade silently:
// the edit already happened in memory and restore tolerates a stale mirror,
// so at most one edit of work can be lost on a crash.
func (s *Session) persist(ctx context.Context) {
	data, err := json.Marshal(s.history[s.cursor])
	if err != nil {
		slog.Warn("draft mirror marshal failed", "key", s.key, "error", err)
		return
	}
	if err := s.mirror.Put(ctx, s.key, data); err != nil {
		slog.Warn("draft mirror write failed", "key", s.key, "error", err)
	}
}

// restoreDocument loads the persisted draft for key, degrading to the
// canonical empty document when the mirror is absent, unreadable, or
// corrupt. Unmarshalling over the defaults back-fills fields an older
// persisted shape never had.
func restoreDocument(ctx context.Context, mirror Mirror, key string) types.DraftDocument {
	doc := types.DefaultDraftDocument()

	data, err := mirror.Get(ctx, key)
	if err != nil {
		if err != ErrNoMirror {
			slog.Warn("draft mirror read failed", "key", key, "error", err)
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("draft mirror corrupt, starting fresh", "key", key, "error", err)
		return types.DefaultDraftDocument()
	}
	return doc
}
