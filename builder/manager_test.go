package builder

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager(time.Hour)

	a, err := m.Open(Options{Slug: "a", Title: "A"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := m.Open(Options{Slug: "b", Title: "B"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.ID() == b.ID() {
		t.Fatal("sessions share an id")
	}

	_ = a.Stage(Snapshot{Document: Document(`{"a":1}`), Markup: Markup{HTML: "<p>A</p>"}})
	snap, _ := b.Project(context.Background())
	if !snap.Document.IsEmpty() {
		t.Fatal("state leaked between sessions")
	}

	if err := m.Close(a.ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.Closed() {
		t.Fatal("closed session is still live")
	}
	if _, err := m.Get(a.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if got, err := m.Get(b.ID()); err != nil || got != b {
		t.Fatalf("Get(b) = %v, %v", got, err)
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(30 * time.Minute)
	m.now = func() time.Time { return now }

	idle, _ := m.Open(Options{Slug: "idle", Title: "Idle"})
	now = now.Add(20 * time.Minute)
	active, _ := m.Open(Options{Slug: "active", Title: "Active"})

	now = now.Add(15 * time.Minute)
	if _, err := m.Get(active.ID()); err != nil {
		t.Fatalf("active session evicted: %v", err)
	}
	if _, err := m.Get(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("idle session not evicted: %v", err)
	}
	if !idle.Closed() {
		t.Fatal("evicted session was not closed")
	}
	if m.Len() != 1 {
		t.Fatalf("unexpected session count %d", m.Len())
	}
}

func TestManagerCloseAll(t *testing.T) {
	m := NewManager(0)
	s, _ := m.Open(Options{Slug: "a", Title: "A"})
	m.CloseAll()
	if m.Len() != 0 || !s.Closed() {
		t.Fatal("CloseAll left sessions open")
	}
}

func TestManagerEvictionDoesNotHoldRegistryDuringSave(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(30 * time.Minute)
	m.now = func() time.Time { return now }

	started := make(chan struct{})
	release := make(chan struct{})
	seed := helloSnapshot()
	slow, _ := m.Open(Options{Slug: "slow", Title: "Slow", InitialData: &seed,
		Save: func(context.Context, Document, string, string) error {
			close(started)
			<-release
			return nil
		},
	})
	now = now.Add(20 * time.Minute)
	other, _ := m.Open(Options{Slug: "other", Title: "Other"})
	now = now.Add(15 * time.Minute)

	saved := make(chan error, 1)
	go func() { saved <- slow.Save(context.Background()) }()
	<-started

	evicted := make(chan struct{})
	go func() {
		_, _ = m.Get(other.ID())
		close(evicted)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for m.Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("expired session was not unregistered")
		}
		time.Sleep(time.Millisecond)
	}
	if got, err := m.Get(other.ID()); err != nil || got != other {
		t.Fatalf("Get(other) = %v, %v", got, err)
	}

	close(release)
	if err := <-saved; err != nil {
		t.Fatalf("Save: %v", err)
	}
	<-evicted
	if !slow.Closed() {
		t.Fatal("evicted session was not closed")
	}
}
