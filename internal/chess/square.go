package chess

import (
	"fmt"
)

// Square is a board index in rank-major order starting from the eighth rank:
// 0 is a8, 7 is h8, 56 is a1 and 63 is h1.
type Square int

const (
	NumSquares     = 64
	SquaresPerRank = 8

	// NoSquare is reported by the null move as its origin.
	NoSquare Square = -1
)

var (
	FileA = initFile(0)
	FileB = initFile(1)
	FileG = initFile(6)
	FileH = initFile(7)

	Rank8 = initRank(0)
	Rank7 = initRank(1)
	Rank2 = initRank(6)
	Rank1 = initRank(7)
)

var (
	algebraicNames = initAlgebraicNames()
	nameToSquare   = initNameToSquare()
)

func initFile(file int) [NumSquares]bool {
	var column [NumSquares]bool
	for i := 0; i < SquaresPerRank; i++ {
		column[i*SquaresPerRank+file] = true
	}
	return column
}

// initRank marks the row'th row counted from the top of the board (a8..h8 is row 0).
func initRank(row int) [NumSquares]bool {
	var rank [NumSquares]bool
	for i := row * SquaresPerRank; i < (row+1)*SquaresPerRank; i++ {
		rank[i] = true
	}
	return rank
}

func initAlgebraicNames() [NumSquares]string {
	var names [NumSquares]string
	for i := 0; i < NumSquares; i++ {
		names[i] = fmt.Sprintf("%c%d", 'a'+i%SquaresPerRank, SquaresPerRank-i/SquaresPerRank)
	}
	return names
}

func initNameToSquare() map[string]Square {
	m := make(map[string]Square, NumSquares)
	for i, name := range algebraicNames {
		m[name] = Square(i)
	}
	return m
}

func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// File returns 0 for the a-file through 7 for the h-file.
func (s Square) File() int {
	return int(s) % SquaresPerRank
}

// Rank returns the chess rank, 1 through 8.
func (s Square) Rank() int {
	return SquaresPerRank - int(s)/SquaresPerRank
}

// String returns the algebraic name of the square, or "-" if it is off the board.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return algebraicNames[s]
}

// ParseSquare converts an algebraic name such as "e4" into its square index.
func ParseSquare(name string) (Square, error) {
	sq, ok := nameToSquare[name]
	if !ok {
		return NoSquare, fmt.Errorf("%q: %w", name, ErrInvalidSquare)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics if name is not a square.
func MustParseSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}
