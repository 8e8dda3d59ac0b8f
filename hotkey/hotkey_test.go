package hotkey

import (
	"context"
	"testing"
	"time"
)

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("wayland"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewGlobalDefault(t *testing.T) {
	b, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*globalBackend); !ok {
		t.Errorf("default backend = %T, want *globalBackend", b)
	}
}

func TestFakeFiresCallback(t *testing.T) {
	f := NewFake()
	combo, err := ParseCombo("ctrl+alt+l")
	if err != nil {
		t.Fatal(err)
	}

	fired := 0
	if err := f.Register(combo, func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	if !f.Fire("ctrl+alt+l") {
		t.Fatal("combo not registered")
	}
	f.Fire("ctrl+alt+l")
	if fired != 2 {
		t.Errorf("fired %d times, want 2", fired)
	}
	if f.Fire("ctrl+alt+x") {
		t.Error("unregistered combo fired")
	}
}

func TestFakeListenStopsOnCancel(t *testing.T) {
	f := NewFake()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.Listen(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Listen to return")
	}
	if !f.Closed() {
		t.Error("backend not closed after Listen returned")
	}
}
