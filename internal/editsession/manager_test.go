package editsession

import (
	"context"
	"errors"
	"testing"
)

func TestManager_OpenReturnsSameSession(t *testing.T) {
	m := NewManager(NewMemoryMirror(), DefaultHistoryLimit)
	ctx := context.Background()

	a := m.Open(ctx, "u1", "d1")
	b := m.Open(ctx, "u1", "d1")
	if a != b {
		t.Error("two opens of the same draft returned different sessions")
	}
}

func TestManager_ReleaseKeepsMirror(t *testing.T) {
	// Normal editor teardown keeps the autosave; reopening restores it.
	mirror := NewMemoryMirror()
	m := NewManager(mirror, DefaultHistoryLimit)
	ctx := context.Background()

	s := m.Open(ctx, "u1", "d1")
	s.Update(ctx, namePatch("saved work"))
	m.Release("d1")

	reopened := m.Open(ctx, "u1", "d1")
	if reopened == s {
		t.Fatal("release did not drop the live session")
	}
	if doc := reopened.Current(); doc.ProjectName != "saved work" {
		t.Errorf("restored document lost the work: %q", doc.ProjectName)
	}
}

func TestManager_RestoredSessionHasFreshHistory(t *testing.T) {
	// The mirror holds one document, not the undo stack; a restored session
	// starts with nothing to undo.
	m := NewManager(NewMemoryMirror(), DefaultHistoryLimit)
	ctx := context.Background()

	s := m.Open(ctx, "u1", "d1")
	s.Update(ctx, namePatch("v1"))
	s.Update(ctx, namePatch("v2"))
	m.Release("d1")

	reopened := m.Open(ctx, "u1", "d1")
	if _, changed := reopened.Undo(ctx); changed {
		t.Error("restored session carried undo history across teardown")
	}
}

func TestManager_DiscardClearsMirror(t *testing.T) {
	mirror := NewMemoryMirror()
	m := NewManager(mirror, DefaultHistoryLimit)
	ctx := context.Background()

	s := m.Open(ctx, "u1", "d1")
	s.Update(ctx, namePatch("doomed"))
	m.Discard(ctx, "u1", "d1")

	if _, err := mirror.Get(ctx, mirrorKey("u1", "d1")); !errors.Is(err, ErrNoMirror) {
		t.Errorf("mirror survived discard: %v", err)
	}

	reopened := m.Open(ctx, "u1", "d1")
	if doc := reopened.Current(); doc.ProjectName != "" {
		t.Errorf("discarded draft came back: %q", doc.ProjectName)
	}
}

func TestManager_DiscardWithoutLiveSession(t *testing.T) {
	// Publish can happen from a fresh process with no session open; the
	// stale mirror must still be cleared.
	mirror := NewMemoryMirror()
	ctx := context.Background()
	_ = mirror.Put(ctx, mirrorKey("u1", "d1"), []byte(`{"project_name":"stale"}`))

	m := NewManager(mirror, DefaultHistoryLimit)
	m.Discard(ctx, "u1", "d1")

	if _, err := mirror.Get(ctx, mirrorKey("u1", "d1")); !errors.Is(err, ErrNoMirror) {
		t.Errorf("stale mirror survived discard: %v", err)
	}
}

func TestManager_SessionsIsolatedByDraft(t *testing.T) {
	m := NewManager(NewMemoryMirror(), DefaultHistoryLimit)
	ctx := context.Background()

	m.Open(ctx, "u1", "d1").Update(ctx, namePatch("one"))
	m.Open(ctx, "u1", "d2").Update(ctx, namePatch("two"))

	if doc := m.Open(ctx, "u1", "d1").Current(); doc.ProjectName != "one" {
		t.Errorf("draft d1 leaked: %q", doc.ProjectName)
	}
	if doc := m.Open(ctx, "u1", "d2").Current(); doc.ProjectName != "two" {
		t.Errorf("draft d2 leaked: %q", doc.ProjectName)
	}
}

func TestManager_Restore(t *testing.T) {
	mirror := NewMemoryMirror()
	ctx := context.Background()
	_ = mirror.Put(ctx, mirrorKey("u1", "d1"), []byte(`{"project_name":"persisted"}`))

	m := NewManager(mirror, DefaultHistoryLimit)
	doc := m.Restore(ctx, "u1", "d1")
	if doc.ProjectName != "persisted" {
		t.Errorf("restore returned %q", doc.ProjectName)
	}
}
