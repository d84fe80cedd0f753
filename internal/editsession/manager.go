package editsession

import (
	"context"
	"fmt"
	"sync"

	"github.com/forgeboard/forgeboard/internal/types"
)

// Manager owns the open edit sessions, keyed by draft ID. The mirror key is
// fixed per (owner, draft) so a reopened editor restores the same draft.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	mirror   Mirror
	limit    int
}

// NewManager creates a Manager backed by the given mirror.
func NewManager(mirror Mirror, historyLimit int) *Manager {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Manager{
		sessions: make(map[string]*Session),
		mirror:   mirror,
		limit:    historyLimit,
	}
}

// mirrorKey is the fixed durable-storage key for a draft session.
func mirrorKey(ownerID, draftID string) string {
	return fmt.Sprintf("forgeboard:draft:%s:%s", ownerID, draftID)
}

// Open returns the session for draftID, restoring from the durable mirror
// when no session is live. Restoration never fails: a missing or corrupt
// mirror yields the canonical empty document.
func (m *Manager) Open(ctx context.Context, ownerID, draftID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[draftID]; ok {
		return s
	}

	key := mirrorKey(ownerID, draftID)
	doc := restoreDocument(ctx, m.mirror, key)
	s := newSession(key, doc, m.limit, m.mirror)
	m.sessions[draftID] = s
	return s
}

// Release drops the in-memory session on normal editor teardown. The durable
// mirror is kept so accidental navigation does not lose work.
func (m *Manager) Release(draftID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, draftID)
}

// Discard is the terminal close: it drops the session and clears the durable
// mirror. Called when the draft is published or deleted.
func (m *Manager) Discard(ctx context.Context, ownerID, draftID string) {
	m.mu.Lock()
	s, ok := m.sessions[draftID]
	delete(m.sessions, draftID)
	m.mu.Unlock()

	if ok {
		s.Reset(ctx)
		return
	}
	// No live session; clear the mirror directly.
	_ = m.mirror.Delete(ctx, mirrorKey(ownerID, draftID))
}

// Restore returns the document an editor should open with, without keeping a
// session live. Used by read-only restoration checks.
func (m *Manager) Restore(ctx context.Context, ownerID, draftID string) types.DraftDocument {
	return m.Open(ctx, ownerID, draftID).Current()
}
