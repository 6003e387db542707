package model

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func pieceTypeOf(k chess.PieceKind) PieceType {
	switch k {
	case chess.King:
		return King
	case chess.Queen:
		return Queen
	case chess.Rook:
		return Rook
	case chess.Bishop:
		return Bishop
	case chess.Knight:
		return Knight
	}
	return Pawn
}

// BoardState is the client view of a position: Board[y][x] with y = 0 on rank 8.
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition Position   `json:"blackKingPosition"`
	WhiteKingPosition Position   `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionOf(sq chess.Square) Position {
	return Position{X: sq.File(), Y: 8 - sq.Rank()}
}

// Square converts the position back to an engine square, NoSquare when off the board.
func (p Position) Square() chess.Square {
	if p.X < 0 || p.X > 7 || p.Y < 0 || p.Y > 7 {
		return chess.NoSquare
	}
	return chess.Square(p.Y*chess.SquaresPerRank + p.X)
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.X+'a', 8-p.Y)
}

func pieceOf(p chess.Piece) Piece {
	return Piece{
		Type:     pieceTypeOf(p.Kind),
		Color:    colorOf(p.Side),
		Position: positionOf(p.Square),
		HasMoved: !p.FirstMove,
	}
}

func newBoardState(b *chess.Board) *BoardState {
	state := &BoardState{Board: make([][]*Piece, 8)}
	for y := range state.Board {
		state.Board[y] = make([]*Piece, 8)
	}
	for _, p := range b.AllPieces() {
		view := pieceOf(p)
		state.Board[view.Position.Y][view.Position.X] = &view
	}
	state.WhiteKingPosition = positionOf(b.WhitePlayer().King().Square)
	state.BlackKingPosition = positionOf(b.BlackPlayer().King().Square)
	return state
}
