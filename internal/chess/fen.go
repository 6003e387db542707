package chess

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenKinds = map[rune]PieceKind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// ParseFEN builds a board from a FEN string. Castling rights become the
// first-move flags of the king and the corner rooks, and the en-passant
// square names the pawn that just made a double push. The move clocks are
// accepted but not tracked.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("want at least 2 fields, got %d: %w", len(parts), ErrInvalidFEN)
	}

	pieces, err := parsePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	side, err := ParseSide(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidFEN)
	}

	rights := "-"
	if len(parts) > 2 {
		rights = parts[2]
	}
	if err := applyCastlingRights(pieces, rights); err != nil {
		return nil, err
	}

	builder := NewBuilder().SetMoveMaker(side)
	for _, p := range pieces {
		builder.SetPiece(*p)
	}

	if len(parts) > 3 && parts[3] != "-" {
		target, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("en passant square: %v: %w", err, ErrInvalidFEN)
		}
		pawnSq := target + Square(side.Opponent().Direction())
		pawn, ok := pieces[pawnSq]
		if !ok || pawn.Kind != Pawn || pawn.Side == side {
			return nil, fmt.Errorf("no pawn to capture en passant on %s: %w", target, ErrInvalidFEN)
		}
		builder.SetEnPassantPawn(*pawn)
	}

	board, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidFEN)
	}
	return board, nil
}

func parsePlacement(placement string) (map[Square]*Piece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != SquaresPerRank {
		return nil, fmt.Errorf("want 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}

	pieces := make(map[Square]*Piece, 32)
	for row, rank := range ranks {
		file := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind, ok := fenKinds[unicode.ToLower(c)]
			if !ok {
				return nil, fmt.Errorf("invalid piece character %q: %w", c, ErrInvalidFEN)
			}
			if file >= SquaresPerRank {
				return nil, fmt.Errorf("rank %d is too long: %w", SquaresPerRank-row, ErrInvalidFEN)
			}
			side := White
			if unicode.IsLower(c) {
				side = Black
			}
			sq := Square(row*SquaresPerRank + file)
			p := NewPiece(kind, side, sq)
			switch kind {
			case Pawn:
				p.FirstMove = side.isPawnHomeSquare(sq)
			case King, Rook:
				// Castling rights decide.
				p.FirstMove = false
			}
			pieces[sq] = &p
			file++
		}
		if file != SquaresPerRank {
			return nil, fmt.Errorf("rank %d has %d files: %w", SquaresPerRank-row, file, ErrInvalidFEN)
		}
	}
	return pieces, nil
}

func applyCastlingRights(pieces map[Square]*Piece, rights string) error {
	if rights == "-" {
		return nil
	}
	for _, c := range rights {
		side := White
		if unicode.IsLower(c) {
			side = Black
		}
		home := side.kingHome()
		corner := home + 3
		switch unicode.ToLower(c) {
		case 'k':
		case 'q':
			corner = home - 4
		default:
			return fmt.Errorf("invalid castling right %q: %w", c, ErrInvalidFEN)
		}

		king, ok := pieces[home]
		if !ok || king.Kind != King || king.Side != side {
			continue
		}
		rook, ok := pieces[corner]
		if !ok || rook.Kind != Rook || rook.Side != side {
			continue
		}
		king.FirstMove = true
		rook.FirstMove = true
		if corner > home {
			king.KingSideCastle = true
		} else {
			king.QueenSideCastle = true
		}
	}
	return nil
}

// FEN encodes the board. Castling rights are reported where the king and the
// corner rook have not moved.
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := 0; row < SquaresPerRank; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for file := 0; file < SquaresPerRank; file++ {
			t := b.tiles[row*SquaresPerRank+file]
			if !t.Occupied() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(t.Piece().Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove() == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.CastlingRights())

	sb.WriteByte(' ')
	if target, ok := b.EnPassantSquare(); ok {
		sb.WriteString(target.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 1")
	return sb.String()
}

// CastlingRights returns the FEN castling field, "-" when neither side may castle.
func (b *Board) CastlingRights() string {
	var rights []byte
	for _, side := range []Side{White, Black} {
		home := side.kingHome()
		king, ok := b.Piece(home)
		if !ok || king.Kind != King || king.Side != side || !king.FirstMove {
			continue
		}
		for _, right := range []struct {
			corner Square
			letter byte
		}{{home + 3, 'K'}, {home - 4, 'Q'}} {
			rook, ok := b.Piece(right.corner)
			if !ok || rook.Kind != Rook || rook.Side != side || !rook.FirstMove {
				continue
			}
			letter := right.letter
			if side == Black {
				letter += 'a' - 'A'
			}
			rights = append(rights, letter)
		}
	}
	if len(rights) == 0 {
		return "-"
	}
	return string(rights)
}
