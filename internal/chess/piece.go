package chess

type PieceKind int

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var (
	knightOffsets   = []int{-17, -15, -10, -6, 6, 10, 15, 17}
	diagonalOffsets = []int{-9, -7, 7, 9}
	straightOffsets = []int{-8, -1, 1, 8}
	royalOffsets    = []int{-9, -8, -7, -1, 1, 7, 8, 9}
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "unknown"
}

// Letter is the upper-case letter used for the kind in FEN and move notation.
func (k PieceKind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return '?'
}

func (k PieceKind) offsets() []int {
	switch k {
	case Knight:
		return knightOffsets
	case Bishop:
		return diagonalOffsets
	case Rook:
		return straightOffsets
	case Queen, King:
		return royalOffsets
	}
	return nil
}

func (k PieceKind) slides() bool {
	return k == Bishop || k == Rook || k == Queen
}

// edgeExcluded reports whether stepping by offset from sq would wrap around
// the a/h edge of the board. Index arithmetic alone lands on a valid square
// in those cases, so every offset has to be checked against the files.
func edgeExcluded(k PieceKind, sq Square, offset int) bool {
	if k == Knight {
		switch {
		case FileA[sq] && (offset == -17 || offset == -10 || offset == 6 || offset == 15):
			return true
		case FileB[sq] && (offset == -10 || offset == 6):
			return true
		case FileG[sq] && (offset == -6 || offset == 10):
			return true
		case FileH[sq] && (offset == -15 || offset == -6 || offset == 10 || offset == 17):
			return true
		}
		return false
	}
	return FileA[sq] && (offset == -9 || offset == -1 || offset == 7) ||
		FileH[sq] && (offset == -7 || offset == 1 || offset == 9)
}

// Piece is an immutable value. Moving a piece produces a new Piece at the
// destination; the king-only castling fields are zero for every other kind.
type Piece struct {
	Kind      PieceKind
	Side      Side
	Square    Square
	FirstMove bool

	Castled         bool
	KingSideCastle  bool
	QueenSideCastle bool
}

// NewPiece returns a piece that has not moved yet.
func NewPiece(kind PieceKind, side Side, sq Square) Piece {
	return Piece{Kind: kind, Side: side, Square: sq, FirstMove: true}
}

// NewKing returns an unmoved king with the given castling rights.
func NewKing(side Side, sq Square, kingSide, queenSide bool) Piece {
	return Piece{
		Kind:            King,
		Side:            side,
		Square:          sq,
		FirstMove:       true,
		KingSideCastle:  kingSide,
		QueenSideCastle: queenSide,
	}
}

// Equal compares kind, side, square and the first-move flag.
func (p Piece) Equal(o Piece) bool {
	return p.Kind == o.Kind && p.Side == o.Side && p.Square == o.Square && p.FirstMove == o.FirstMove
}

// Letter is the FEN letter of the piece: upper case for white, lower case for black.
func (p Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Side == Black {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	return p.Side.String() + " " + p.Kind.String() + " " + p.Square.String()
}

// Moves returns the pseudo-legal moves of the piece on board b. Moves that
// leave the mover's own king attacked are included; Player.AttemptMove
// filters them out.
func (p Piece) Moves(b *Board) []Move {
	switch {
	case p.Kind == Pawn:
		return p.pawnMoves(b)
	case p.Kind.slides():
		return p.slidingMoves(b)
	default:
		return p.steppingMoves(b)
	}
}

func (p Piece) slidingMoves(b *Board) []Move {
	var moves []Move
	for _, offset := range p.Kind.offsets() {
		from := p.Square
		for {
			if edgeExcluded(p.Kind, from, offset) {
				break
			}
			dest := from + Square(offset)
			if !dest.Valid() {
				break
			}
			tile := b.Tile(dest)
			if !tile.Occupied() {
				moves = append(moves, newMove(QuietMove, b, p, dest))
				from = dest
				continue
			}
			if occupant := tile.Piece(); occupant.Side != p.Side {
				moves = append(moves, newCapture(b, p, dest, occupant))
			}
			break
		}
	}
	return moves
}

func (p Piece) steppingMoves(b *Board) []Move {
	var moves []Move
	for _, offset := range p.Kind.offsets() {
		if edgeExcluded(p.Kind, p.Square, offset) {
			continue
		}
		dest := p.Square + Square(offset)
		if !dest.Valid() {
			continue
		}
		tile := b.Tile(dest)
		if !tile.Occupied() {
			moves = append(moves, newMove(QuietMove, b, p, dest))
		} else if occupant := tile.Piece(); occupant.Side != p.Side {
			moves = append(moves, newCapture(b, p, dest, occupant))
		}
	}
	return moves
}

func (p Piece) pawnMoves(b *Board) []Move {
	var moves []Move
	dir := p.Side.Direction()

	ahead := p.Square + Square(dir)
	if ahead.Valid() && !b.Tile(ahead).Occupied() {
		m := newMove(QuietMove, b, p, ahead)
		m.Promote = p.Side.IsPromotionSquare(ahead)
		moves = append(moves, m)

		jump := ahead + Square(dir)
		if p.FirstMove && p.Side.isPawnHomeSquare(p.Square) && jump.Valid() && !b.Tile(jump).Occupied() {
			moves = append(moves, newMove(PawnDoublePush, b, p, jump))
		}
	}

	for _, fileStep := range []int{-1, 1} {
		if fileStep < 0 && FileA[p.Square] || fileStep > 0 && FileH[p.Square] {
			continue
		}
		dest := p.Square + Square(dir+fileStep)
		if !dest.Valid() {
			continue
		}
		if tile := b.Tile(dest); tile.Occupied() {
			if occupant := tile.Piece(); occupant.Side != p.Side {
				m := newCapture(b, p, dest, occupant)
				m.Promote = p.Side.IsPromotionSquare(dest)
				moves = append(moves, m)
			}
			continue
		}
		if ep, ok := b.EnPassantPawn(); ok && ep.Side != p.Side && ep.Square == p.Square+Square(fileStep) {
			m := newCapture(b, p, dest, ep)
			m.Kind = EnPassantCapture
			moves = append(moves, m)
		}
	}
	return moves
}

// pawnAttacks returns the two diagonal squares a pawn threatens, whether or
// not anything stands on them.
func (p Piece) pawnAttacks() []Square {
	var squares []Square
	for _, fileStep := range []int{-1, 1} {
		if fileStep < 0 && FileA[p.Square] || fileStep > 0 && FileH[p.Square] {
			continue
		}
		if dest := p.Square + Square(p.Side.Direction()+fileStep); dest.Valid() {
			squares = append(squares, dest)
		}
	}
	return squares
}

// moveTo returns the piece as it stands after m has been played.
func (p Piece) moveTo(m Move) Piece {
	moved := Piece{Kind: p.Kind, Side: p.Side, Square: m.To}
	if p.Kind == King {
		moved.Castled = m.IsCastle()
	}
	return moved
}

// promoted returns the queen that replaces a pawn reaching the far rank.
func (p Piece) promoted() Piece {
	return Piece{Kind: Queen, Side: p.Side, Square: p.Square}
}
