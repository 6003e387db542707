package chess

import "errors"

var (
	// ErrInvalidPosition is returned by Build when a layout does not have
	// exactly one king per side or names an en-passant pawn that is not on the board.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNullMove is returned when executing the null move.
	ErrNullMove = errors.New("cannot execute null move")

	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidFEN    = errors.New("invalid FEN string")
)
