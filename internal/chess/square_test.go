package chess

import (
	"errors"
	"testing"
)

func TestSquareNames(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{0, "a8"},
		{1, "b8"},
		{7, "h8"},
		{35, "d4"},
		{36, "e4"},
		{56, "a1"},
		{60, "e1"},
		{63, "h1"},
		{NoSquare, "-"},
		{64, "-"},
	}
	for _, tt := range tests {
		if got := tt.sq.String(); got != tt.want {
			t.Errorf("Square(%d).String() = %q, want %q", tt.sq, got, tt.want)
		}
	}
}

func TestSquareRoundTrip(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		s := Square(i)
		got, err := ParseSquare(s.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q) error: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseSquare(%q) = %d, want %d", s.String(), got, s)
		}
	}
	for file := 'a'; file <= 'h'; file++ {
		for rank := '1'; rank <= '8'; rank++ {
			name := string([]rune{file, rank})
			if got := MustParseSquare(name).String(); got != name {
				t.Errorf("round trip of %q = %q", name, got)
			}
		}
	}
}

func TestSquareFileRank(t *testing.T) {
	e4 := MustParseSquare("e4")
	if e4.File() != 4 || e4.Rank() != 4 {
		t.Errorf("e4 file/rank = %d/%d, want 4/4", e4.File(), e4.Rank())
	}
	if !FileA[sq("a5")] || FileA[sq("b5")] || !FileH[sq("h1")] || !FileB[sq("b3")] || !FileG[sq("g8")] {
		t.Error("file tables disagree with square names")
	}
	if !Rank8[sq("c8")] || !Rank7[sq("c7")] || !Rank2[sq("c2")] || !Rank1[sq("c1")] || Rank1[sq("c2")] {
		t.Error("rank tables disagree with square names")
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, name := range []string{"", "e", "e9", "i1", "E4", "e44"} {
		if _, err := ParseSquare(name); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", name, err)
		}
	}
}
