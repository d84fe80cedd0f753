package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockReaperStore implements ReaperStore for testing
type mockReaperStore struct {
	mu       sync.Mutex
	calls    []time.Time
	purgeErr error
	purged   int64
}

func (m *mockReaperStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, now)
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	return m.purged, nil
}

func (m *mockReaperStore) getCalls() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Time{}, m.calls...)
}

func TestReaper_RunsOnSchedule(t *testing.T) {
	store := &mockReaperStore{purged: 2}
	reaper := NewReaper(store, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go reaper.Run(ctx)

	// Wait for at least 2 ticks
	time.Sleep(120 * time.Millisecond)
	cancel()

	calls := store.getCalls()
	if len(calls) < 2 {
		t.Errorf("expected at least 2 purge calls, got %d", len(calls))
	}
}

func TestReaper_DoesNotRunImmediately(t *testing.T) {
	store := &mockReaperStore{}
	reaper := NewReaper(store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go reaper.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()

	if calls := store.getCalls(); len(calls) != 0 {
		t.Errorf("expected no purge before the first tick, got %d", len(calls))
	}
}

func TestReaper_SurvivesPurgeError(t *testing.T) {
	store := &mockReaperStore{purgeErr: errors.New("db locked")}
	reaper := NewReaper(store, 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go reaper.Run(ctx)

	// The loop keeps ticking despite errors
	time.Sleep(110 * time.Millisecond)
	cancel()

	if calls := store.getCalls(); len(calls) < 2 {
		t.Errorf("worker stopped after an error: %d calls", len(calls))
	}
}

func TestReaper_StopsOnContextCancel(t *testing.T) {
	store := &mockReaperStore{}
	reaper := NewReaper(store, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancellation")
	}
}
