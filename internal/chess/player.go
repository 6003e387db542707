package chess

import "sync"

// MoveStatus is the outcome of Player.AttemptMove.
type MoveStatus int

const (
	MoveDone MoveStatus = iota
	MoveIllegal
	MoveLeavesPlayerInCheck
)

func (s MoveStatus) IsDone() bool { return s == MoveDone }

func (s MoveStatus) String() string {
	switch s {
	case MoveDone:
		return "done"
	case MoveIllegal:
		return "illegal move"
	case MoveLeavesPlayerInCheck:
		return "leaves player in check"
	}
	return "unknown"
}

// MoveTransition records an attempted move. To is the same board as From
// unless the move was done.
type MoveTransition struct {
	From   *Board
	To     *Board
	Move   Move
	Status MoveStatus
}

// Status classifies a player's situation on a board.
type Status int

const (
	StatusNormal Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	}
	return "normal"
}

// Player is one side's view of a Board. It is created together with the
// board and never changes.
type Player struct {
	side    Side
	board   *Board
	king    Piece
	moves   []Move
	inCheck bool

	escapeOnce sync.Once
	hasEscape  bool
}

func newPlayer(b *Board, side Side, standard, opponent []Move) *Player {
	p := &Player{side: side, board: b}
	for _, piece := range b.pieces(side) {
		if piece.Kind == King {
			p.king = piece
			break
		}
	}
	p.inCheck = len(AttacksOnSquare(p.king.Square, opponent)) > 0

	castles := p.calculateKingCastles(opponent)
	p.moves = make([]Move, 0, len(standard)+len(castles))
	p.moves = append(p.moves, standard...)
	p.moves = append(p.moves, castles...)
	return p
}

func (p *Player) Side() Side { return p.side }

func (p *Player) Board() *Board { return p.board }

func (p *Player) King() Piece { return p.king }

func (p *Player) Opponent() *Player { return p.board.Player(p.side.Opponent()) }

func (p *Player) ActivePieces() []Piece { return clonePieces(p.board.pieces(p.side)) }

// LegalMoves returns the player's pseudo-legal moves including castles.
// Some of them may leave the king attacked; see SafeMoves.
func (p *Player) LegalMoves() []Move {
	out := make([]Move, len(p.moves))
	copy(out, p.moves)
	return out
}

// SafeMoves returns the legal moves whose attempt completes.
func (p *Player) SafeMoves() []Move {
	var safe []Move
	for _, m := range p.moves {
		if p.AttemptMove(m).Status.IsDone() {
			safe = append(safe, m)
		}
	}
	return safe
}

func (p *Player) InCheck() bool { return p.inCheck }

func (p *Player) InCheckmate() bool { return p.inCheck && !p.hasEscapeMoves() }

func (p *Player) InStalemate() bool { return !p.inCheck && !p.hasEscapeMoves() }

func (p *Player) Status() Status {
	switch {
	case p.InCheckmate():
		return StatusCheckmate
	case p.InStalemate():
		return StatusStalemate
	case p.inCheck:
		return StatusCheck
	}
	return StatusNormal
}

func (p *Player) Castled() bool { return p.king.Castled }

func (p *Player) KingSideCastleCapable() bool { return p.king.KingSideCastle }

func (p *Player) QueenSideCastleCapable() bool { return p.king.QueenSideCastle }

func (p *Player) IsMoveLegal(m Move) bool {
	_, ok := p.legalMove(m)
	return ok
}

func (p *Player) legalMove(m Move) (Move, bool) {
	for _, legal := range p.moves {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return Move{}, false
}

// hasEscapeMoves is computed once per player: it speculatively plays every
// legal move.
func (p *Player) hasEscapeMoves() bool {
	p.escapeOnce.Do(func() {
		for _, m := range p.moves {
			if p.AttemptMove(m).Status.IsDone() {
				p.hasEscape = true
				return
			}
		}
	})
	return p.hasEscape
}

// AttemptMove plays m if it is one of the player's legal moves and does not
// leave the player's own king attacked.
func (p *Player) AttemptMove(m Move) MoveTransition {
	legal, ok := p.legalMove(m)
	if !ok {
		return MoveTransition{From: p.board, To: p.board, Move: m, Status: MoveIllegal}
	}
	next, err := legal.Execute()
	if err != nil {
		// Only reachable on a board where the side not to move is already in
		// check, so the king itself can be captured.
		return MoveTransition{From: p.board, To: p.board, Move: m, Status: MoveIllegal}
	}
	king := next.Player(p.side).King()
	if len(AttacksOnSquare(king.Square, next.Player(p.side.Opponent()).moves)) > 0 {
		return MoveTransition{From: p.board, To: p.board, Move: m, Status: MoveLeavesPlayerInCheck}
	}
	return MoveTransition{From: p.board, To: next, Move: legal, Status: MoveDone}
}

// calculateKingCastles generates the castles open to the player. Transit
// squares are checked with threatened rather than a plain AttacksOnSquare
// query, so pawn pushes never block a castle and pawn diagonals always do.
func (p *Player) calculateKingCastles(opponent []Move) []Move {
	var castles []Move
	home := p.side.kingHome()
	if p.inCheck || !p.king.FirstMove || p.king.Square != home {
		return nil
	}
	b := p.board

	if b.emptySquares(home+1, home+2) {
		if rook, ok := b.Piece(home + 3); ok && p.castleRook(rook) &&
			!p.threatened(home+1, opponent) && !p.threatened(home+2, opponent) {
			castles = append(castles, newCastle(KingSideCastle, b, p.king, home+2, rook, home+1))
		}
	}
	if b.emptySquares(home-1, home-2, home-3) {
		if rook, ok := b.Piece(home - 4); ok && p.castleRook(rook) &&
			!p.threatened(home-1, opponent) && !p.threatened(home-2, opponent) {
			castles = append(castles, newCastle(QueenSideCastle, b, p.king, home-2, rook, home-1))
		}
	}
	return castles
}

func (p *Player) castleRook(rook Piece) bool {
	return rook.Kind == Rook && rook.Side == p.side && rook.FirstMove
}

// threatened reports whether the opponent could capture on the empty square
// sq. Pawn pushes do not threaten anything, while pawns threaten their
// diagonals even though no capture move is generated onto an empty square.
func (p *Player) threatened(sq Square, opponent []Move) bool {
	for _, m := range AttacksOnSquare(sq, opponent) {
		if m.Piece.Kind != Pawn {
			return true
		}
	}
	for _, piece := range p.board.pieces(p.side.Opponent()) {
		if piece.Kind != Pawn {
			continue
		}
		for _, a := range piece.pawnAttacks() {
			if a == sq {
				return true
			}
		}
	}
	return false
}

func (b *Board) emptySquares(squares ...Square) bool {
	for _, sq := range squares {
		if b.Tile(sq).Occupied() {
			return false
		}
	}
	return true
}
