package chess

import "fmt"

type Side int

const (
	White Side = iota
	Black
)

// Direction is the index delta of one step forward for this side's pawns.
func (s Side) Direction() int {
	if s == White {
		return -SquaresPerRank
	}
	return SquaresPerRank
}

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) IsPromotionSquare(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	if s == White {
		return Rank8[sq]
	}
	return Rank1[sq]
}

func (s Side) isPawnHomeSquare(sq Square) bool {
	if s == White {
		return Rank2[sq]
	}
	return Rank7[sq]
}

// kingHome is the square the king starts on and castles from.
func (s Side) kingHome() Square {
	if s == White {
		return 60
	}
	return 4
}

func (s Side) choosePlayer(white, black *Player) *Player {
	if s == White {
		return white
	}
	return black
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown side %q", s)
}
