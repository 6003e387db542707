package chess

import (
	"sort"
	"testing"
)

func sq(name string) Square { return MustParseSquare(name) }

func mustBuild(t *testing.T, b *Builder) *Board {
	t.Helper()
	board, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return board
}

func mustParseFEN(t *testing.T, fen string) *Board {
	t.Helper()
	board, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return board
}

// attempt looks up from-to on the board and attempts it for the side to move.
func attempt(b *Board, from, to string) MoveTransition {
	m := FindMove(b, sq(from), sq(to))
	return b.CurrentPlayer().AttemptMove(m)
}

// play makes each move in turn ("e2e4" form) and fails unless all complete.
func play(t *testing.T, b *Board, moves ...string) *Board {
	t.Helper()
	for _, mv := range moves {
		tr := attempt(b, mv[:2], mv[2:4])
		if !tr.Status.IsDone() {
			t.Fatalf("move %s: status %v on\n%s", mv, tr.Status, b)
		}
		b = tr.To
	}
	return b
}

// moveKeys returns the sorted from-to strings of moves, duplicates removed.
func moveKeys(moves []Move) []string {
	seen := make(map[string]bool, len(moves))
	var keys []string
	for _, m := range moves {
		k := m.From().String() + m.To.String()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func movesFrom(moves []Move, from Square) []Move {
	var out []Move
	for _, m := range moves {
		if m.From() == from {
			out = append(out, m)
		}
	}
	return out
}
