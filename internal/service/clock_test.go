package service

import (
	"sync"
	"testing"
	"time"
)

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeNow() *fakeNow {
	return &fakeNow{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestClock(t *testing.T) {
	t.Parallel()
	now := newFakeNow()
	c := NewClock(time.Minute, now.Now)

	now.Advance(10 * time.Second)
	if got := c.TimeLeft(); got != time.Minute {
		t.Fatalf("stopped clock ran: %v", got)
	}

	c.Start()
	now.Advance(15 * time.Second)
	if got := c.TimeLeft(); got != 45*time.Second {
		t.Fatalf("TimeLeft = %v, want 45s", got)
	}
	c.Start()
	now.Advance(5 * time.Second)
	c.Stop()
	if c.Running() {
		t.Fatal("clock still running after Stop")
	}
	if got := c.TimeLeft(); got != 40*time.Second {
		t.Fatalf("TimeLeft = %v, want 40s", got)
	}
	if got := c.tenths(); got != 400 {
		t.Fatalf("tenths = %d, want 400", got)
	}

	c.Start()
	now.Advance(time.Hour)
	if got := c.TimeLeft(); got != 0 {
		t.Fatalf("TimeLeft = %v, want 0", got)
	}
	if !c.Expired() {
		t.Fatal("clock should have expired")
	}
}

func TestNilClock(t *testing.T) {
	t.Parallel()
	var c *Clock
	c.Start()
	c.Stop()
	if c.Running() || c.Expired() || c.TimeLeft() != 0 || c.tenths() != 0 {
		t.Fatal("nil clock should be an idle untimed clock")
	}
}
