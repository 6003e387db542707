package chess

import (
	"fmt"
	"strings"
)

// Board is an immutable chess position. It owns both players, which are
// derived from it when it is built. Every move produces a new Board.
type Board struct {
	tiles       [NumSquares]*Tile
	whitePieces []Piece
	blackPieces []Piece

	whitePlayer   *Player
	blackPlayer   *Player
	currentPlayer *Player

	enPassantPawn *Piece
}

// Builder accumulates a layout for Build.
type Builder struct {
	pieces        map[Square]Piece
	moveMaker     Side
	enPassantPawn *Piece
}

func NewBuilder() *Builder {
	return &Builder{pieces: make(map[Square]Piece, 32)}
}

// SetPiece places p on its square, replacing whatever was there.
func (b *Builder) SetPiece(p Piece) *Builder {
	b.pieces[p.Square] = p
	return b
}

func (b *Builder) SetMoveMaker(side Side) *Builder {
	b.moveMaker = side
	return b
}

func (b *Builder) SetEnPassantPawn(p Piece) *Builder {
	b.enPassantPawn = &p
	return b
}

// Build materializes the board, generates both sides' moves and derives the
// two players from them.
func (b *Builder) Build() (*Board, error) {
	board := &Board{}
	for i := range board.tiles {
		sq := Square(i)
		if p, ok := b.pieces[sq]; ok {
			board.tiles[i] = newTile(sq, &p)
		} else {
			board.tiles[i] = newTile(sq, nil)
		}
	}
	board.whitePieces = board.activePieces(White)
	board.blackPieces = board.activePieces(Black)

	for _, side := range []Side{White, Black} {
		if n := countKings(board.pieces(side)); n != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", side, n, ErrInvalidPosition)
		}
	}

	if ep := b.enPassantPawn; ep != nil {
		if onBoard, ok := board.Piece(ep.Square); !ok || ep.Kind != Pawn || !onBoard.Equal(*ep) {
			return nil, fmt.Errorf("en passant pawn %v is not on the board: %w", *ep, ErrInvalidPosition)
		}
		pawn := *ep
		board.enPassantPawn = &pawn
	}

	whiteMoves := board.calculateMoves(board.whitePieces)
	blackMoves := board.calculateMoves(board.blackPieces)

	board.whitePlayer = newPlayer(board, White, whiteMoves, blackMoves)
	board.blackPlayer = newPlayer(board, Black, blackMoves, whiteMoves)
	board.currentPlayer = b.moveMaker.choosePlayer(board.whitePlayer, board.blackPlayer)
	return board, nil
}

func countKings(pieces []Piece) int {
	n := 0
	for _, p := range pieces {
		if p.Kind == King {
			n++
		}
	}
	return n
}

func (b *Board) activePieces(side Side) []Piece {
	var pieces []Piece
	for _, t := range b.tiles {
		if t.Occupied() && t.Piece().Side == side {
			pieces = append(pieces, t.Piece())
		}
	}
	return pieces
}

func (b *Board) calculateMoves(pieces []Piece) []Move {
	var moves []Move
	for _, p := range pieces {
		moves = append(moves, p.Moves(b)...)
	}
	return moves
}

// NewStandardBoard returns the initial position with white to move.
func NewStandardBoard() *Board {
	builder := NewBuilder()
	back := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range back {
		black, white := Square(file), Square(56+file)
		if kind == King {
			builder.SetPiece(NewKing(Black, black, true, true))
			builder.SetPiece(NewKing(White, white, true, true))
			continue
		}
		builder.SetPiece(NewPiece(kind, Black, black))
		builder.SetPiece(NewPiece(kind, White, white))
	}
	for file := 0; file < SquaresPerRank; file++ {
		builder.SetPiece(NewPiece(Pawn, Black, Square(8+file)))
		builder.SetPiece(NewPiece(Pawn, White, Square(48+file)))
	}
	builder.SetMoveMaker(White)

	board, err := builder.Build()
	if err != nil {
		panic(err)
	}
	return board
}

// Tile returns the tile at sq. sq must be valid.
func (b *Board) Tile(sq Square) *Tile {
	return b.tiles[sq]
}

// Piece returns the occupant of sq, if any.
func (b *Board) Piece(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	t := b.tiles[sq]
	return t.Piece(), t.Occupied()
}

func (b *Board) SideToMove() Side { return b.currentPlayer.side }

func (b *Board) CurrentPlayer() *Player { return b.currentPlayer }

func (b *Board) WhitePlayer() *Player { return b.whitePlayer }

func (b *Board) BlackPlayer() *Player { return b.blackPlayer }

func (b *Board) Player(side Side) *Player {
	return side.choosePlayer(b.whitePlayer, b.blackPlayer)
}

func (b *Board) WhitePieces() []Piece { return clonePieces(b.whitePieces) }

func (b *Board) BlackPieces() []Piece { return clonePieces(b.blackPieces) }

func (b *Board) AllPieces() []Piece {
	return append(b.WhitePieces(), b.blackPieces...)
}

func (b *Board) pieces(side Side) []Piece {
	if side == White {
		return b.whitePieces
	}
	return b.blackPieces
}

// AllLegalMoves returns the legal moves of both players, white first.
func (b *Board) AllLegalMoves() []Move {
	return append(b.whitePlayer.LegalMoves(), b.blackPlayer.moves...)
}

// EnPassantPawn returns the pawn that may be captured en passant on this move.
func (b *Board) EnPassantPawn() (Piece, bool) {
	if b.enPassantPawn == nil {
		return Piece{}, false
	}
	return *b.enPassantPawn, true
}

// EnPassantSquare is the square a pawn capturing en passant lands on.
func (b *Board) EnPassantSquare() (Square, bool) {
	ep, ok := b.EnPassantPawn()
	if !ok {
		return NoSquare, false
	}
	return ep.Square - Square(ep.Side.Direction()), true
}

func clonePieces(pieces []Piece) []Piece {
	out := make([]Piece, len(pieces))
	copy(out, pieces)
	return out
}

// String draws the board from white's point of view, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for i, t := range b.tiles {
		sb.WriteString(fmt.Sprintf("%3s", t.String()))
		if (i+1)%SquaresPerRank == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
