package model

import (
	"errors"
	"testing"
)

func TestQueue(t *testing.T) {
	q := NewQueue()
	if _, _, ok := q.GetNextPair(); ok {
		t.Fatal("empty queue produced a pair")
	}

	for _, id := range []string{"alice", "bob", "carol"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatalf("AddPlayer(%s) error: %v", id, err)
		}
	}
	if err := q.AddPlayer(Player{ID: "bob"}); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("duplicate AddPlayer error = %v, want ErrAlreadyQueued", err)
	}
	if q.Size() != 3 {
		t.Errorf("Size() = %d, want 3", q.Size())
	}

	first, second, ok := q.GetNextPair()
	if !ok || first.ID != "alice" || second.ID != "bob" {
		t.Errorf("GetNextPair() = %s, %s, %v; want alice, bob, true", first.ID, second.ID, ok)
	}
	if _, _, ok := q.GetNextPair(); ok {
		t.Error("one queued player produced a pair")
	}

	if !q.RemovePlayer("carol") || q.RemovePlayer("carol") {
		t.Error("RemovePlayer should succeed exactly once")
	}
	if q.Size() != 0 {
		t.Errorf("Size() = %d, want 0", q.Size())
	}
}
