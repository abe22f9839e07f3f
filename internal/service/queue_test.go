package service

import (
	"errors"
	"testing"
)

func TestQueue(t *testing.T) {
	t.Parallel()
	q := NewQueue()

	if _, _, ok := q.NextPair(); ok {
		t.Fatal("empty queue produced a pair")
	}
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	if err := q.AddPlayer("b"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("AddPlayer twice = %v, want ErrAlreadyQueued", err)
	}
	if !q.Contains("c") || q.Contains("d") {
		t.Fatal("Contains disagrees with the queue")
	}

	p1, p2, ok := q.NextPair()
	if !ok || p1.PlayerID != "a" || p2.PlayerID != "b" {
		t.Fatalf("NextPair = %v %v %v, want a b", p1.PlayerID, p2.PlayerID, ok)
	}
	if q.Size() != 1 {
		t.Fatalf("Size = %d, want 1", q.Size())
	}

	if err := q.RemovePlayer("c"); err != nil {
		t.Fatal(err)
	}
	if err := q.RemovePlayer("c"); !errors.Is(err, ErrNotQueued) {
		t.Fatalf("RemovePlayer twice = %v, want ErrNotQueued", err)
	}
	if q.Size() != 0 {
		t.Fatalf("Size = %d, want 0", q.Size())
	}
}
