package model

import "errors"

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotInGame         = errors.New("player not in game")
	ErrGameFull          = errors.New("game is full")
	ErrGameOver          = errors.New("game is over")
	ErrIllegalMove       = errors.New("illegal move")
	ErrLeavesKingInCheck = errors.New("move leaves king in check")
	ErrAlreadyQueued     = errors.New("player already in queue")
	ErrNotAuthorized     = errors.New("not authorized to join this game")
)
