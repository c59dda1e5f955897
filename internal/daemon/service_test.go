package daemon

import (
	"math"
	"testing"
	"time"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Balance: 180}
	curr := Snapshot{Balance: 147.5}

	delta := diffSnapshots(prev, curr)
	if math.Abs(delta.Balance-(-32.5)) > 1e-9 {
		t.Fatalf("Balance delta = %.2f, want -32.50", delta.Balance)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	same := diffSnapshots(curr, curr)
	if !same.isZero() {
		t.Fatalf("identical snapshots produced delta %+v", same)
	}
	same.Renewed = true
	if same.isZero() {
		t.Fatal("renewal-only delta reported as zero")
	}
}

func TestRecordEmitsEvents(t *testing.T) {
	s := New(Config{Interval: 10 * time.Second}, nil)
	at := time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)

	s.record(Snapshot{At: at, Balance: 100}, false)
	s.record(Snapshot{At: at.Add(time.Minute), Balance: 100}, false)
	s.record(Snapshot{At: at.Add(2 * time.Minute), Balance: 70}, false)
	s.record(Snapshot{At: at.Add(3 * time.Minute), Balance: 170}, true)

	s.mu.RLock()
	defer s.mu.RUnlock()

	// The unchanged poll emits nothing.
	if len(s.events) != 3 {
		t.Fatalf("events len = %d, want 3", len(s.events))
	}
	if s.events[0].Type != "snapshot" {
		t.Fatalf("first event type = %q, want snapshot", s.events[0].Type)
	}
	if s.events[1].Type != "budget_updated" || s.events[1].Delta.Balance != -30 {
		t.Fatalf("second event = %q delta %.0f, want budget_updated -30",
			s.events[1].Type, s.events[1].Delta.Balance)
	}
	if s.events[2].Type != "renewal" || !s.events[2].Delta.Renewed {
		t.Fatalf("third event = %q renewed=%v, want renewal true",
			s.events[2].Type, s.events[2].Delta.Renewed)
	}
	if s.renewals != 1 {
		t.Fatalf("renewals = %d, want 1", s.renewals)
	}
	if s.pollCount != 4 {
		t.Fatalf("pollCount = %d, want 4", s.pollCount)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}
