package chess

import "strings"

type MoveKind int

const (
	// NullMove is the zero value. It stands for "no such move" and cannot be executed.
	NullMove MoveKind = iota
	QuietMove
	CaptureMove
	PawnDoublePush
	EnPassantCapture
	KingSideCastle
	QueenSideCastle
)

func (k MoveKind) String() string {
	switch k {
	case QuietMove:
		return "quiet"
	case CaptureMove:
		return "capture"
	case PawnDoublePush:
		return "double push"
	case EnPassantCapture:
		return "en passant"
	case KingSideCastle:
		return "king side castle"
	case QueenSideCastle:
		return "queen side castle"
	}
	return "null"
}

// Move is a proposed transition from the board it was generated on.
// Captured is set for captures and en-passant captures, Rook and RookTo for
// castles. Promote marks a pawn move that ends on the far rank; the pawn
// always becomes a queen.
type Move struct {
	Kind     MoveKind
	Piece    Piece
	To       Square
	Captured Piece
	Promote  bool
	Rook     Piece
	RookTo   Square

	board *Board
}

func newMove(kind MoveKind, b *Board, p Piece, to Square) Move {
	return Move{Kind: kind, Piece: p, To: to, board: b}
}

func newCapture(b *Board, p Piece, to Square, captured Piece) Move {
	m := newMove(CaptureMove, b, p, to)
	m.Captured = captured
	return m
}

func newCastle(kind MoveKind, b *Board, king Piece, to Square, rook Piece, rookTo Square) Move {
	m := newMove(kind, b, king, to)
	m.Rook = rook
	m.RookTo = rookTo
	return m
}

// Board returns the position the move was generated on, nil for the null move.
func (m Move) Board() *Board { return m.board }

// From is the square the moved piece starts on, NoSquare for the null move.
func (m Move) From() Square {
	if m.Kind == NullMove {
		return NoSquare
	}
	return m.Piece.Square
}

func (m Move) IsNull() bool { return m.Kind == NullMove }

func (m Move) IsCapture() bool {
	return m.Kind == CaptureMove || m.Kind == EnPassantCapture
}

func (m Move) IsCastle() bool {
	return m.Kind == KingSideCastle || m.Kind == QueenSideCastle
}

// Equal reports whether two moves describe the same transition. The board
// the moves were generated on is not compared.
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || m.To != o.To || m.Promote != o.Promote || !m.Piece.Equal(o.Piece) {
		return false
	}
	if m.IsCapture() && !m.Captured.Equal(o.Captured) {
		return false
	}
	if m.IsCastle() && (!m.Rook.Equal(o.Rook) || m.RookTo != o.RookTo) {
		return false
	}
	return true
}

// Execute builds the board that results from playing m. The mover's side is
// taken from the moved piece, and the opponent moves next.
func (m Move) Execute() (*Board, error) {
	if m.Kind == NullMove || m.board == nil {
		return nil, ErrNullMove
	}
	mover := m.Piece.Side

	builder := NewBuilder()
	for _, p := range m.board.pieces(mover) {
		if p.Equal(m.Piece) || m.IsCastle() && p.Equal(m.Rook) {
			continue
		}
		builder.SetPiece(p)
	}
	for _, p := range m.board.pieces(mover.Opponent()) {
		if m.IsCapture() && p.Equal(m.Captured) {
			continue
		}
		builder.SetPiece(p)
	}

	moved := m.Piece.moveTo(m)
	builder.SetPiece(moved)

	switch m.Kind {
	case PawnDoublePush:
		builder.SetEnPassantPawn(moved)
	case KingSideCastle, QueenSideCastle:
		builder.SetPiece(m.Rook.moveTo(Move{To: m.RookTo}))
	}
	if m.Promote {
		builder.SetPiece(moved.promoted())
	}

	builder.SetMoveMaker(mover.Opponent())
	return builder.Build()
}

// String returns the move in short algebraic form without check suffixes.
func (m Move) String() string {
	switch m.Kind {
	case NullMove:
		return "null"
	case KingSideCastle:
		return "O-O"
	case QueenSideCastle:
		return "O-O-O"
	}

	var sb strings.Builder
	if m.Piece.Kind == Pawn {
		if m.IsCapture() {
			sb.WriteString(m.From().String()[:1])
			sb.WriteByte('x')
		}
	} else {
		sb.WriteByte(m.Piece.Kind.Letter())
		if m.IsCapture() {
			sb.WriteByte('x')
		}
	}
	sb.WriteString(m.To.String())
	if m.Promote {
		sb.WriteString("=Q")
	}
	return sb.String()
}

// FindMove returns the current player's legal move from one square to
// another, or the null move when there is none.
func FindMove(b *Board, from, to Square) Move {
	for _, m := range b.CurrentPlayer().moves {
		if m.From() == from && m.To == to {
			return m
		}
	}
	return Move{}
}

// AttacksOnSquare returns the moves in moves whose destination is sq.
func AttacksOnSquare(sq Square, moves []Move) []Move {
	var attacks []Move
	for _, m := range moves {
		if m.To == sq {
			attacks = append(attacks, m)
		}
	}
	return attacks
}
