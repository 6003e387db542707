package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slices"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *chess.Board
	state       GameState
	connections *GameConnections
}

type GameState struct {
	Sound           string              `json:"sound"`
	Board           *BoardState         `json:"boardState"`
	ToMove          PlayerColor         `json:"toMove"`
	FEN             string              `json:"fen"`
	MoveHistory     []Move              `json:"moveHistory"`
	CapturedPieces  CapturedPieces      `json:"capturedPieces"`
	IsCheck         bool                `json:"isCheck"`
	LegalMoves      map[string][]string `json:"legalMoves"`
	EnPassantTarget *Position           `json:"enPassantTarget"`
	Castling        string              `json:"castling"`
	Resolve         *string             `json:"resolve"`
	Winner          *PlayerColor        `json:"winner"`
	Players         Players             `json:"players"`
	LastMove        *SimpleMove         `json:"lastMove"`
}

// CapturedPieces lists what each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

const (
	ResolveCheckmate   = "checkmate"
	ResolveStalemate   = "stalemate"
	ResolveResignation = "resignation"
)

func NewGame(id string) *Game {
	return newGame(id, chess.NewStandardBoard())
}

// NewGameFromFEN starts a game from an arbitrary position.
func NewGameFromFEN(id, fen string) (*Game, error) {
	board, err := chess.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(id, board), nil
}

func newGame(id string, board *chess.Board) *Game {
	g := &Game{
		ID:    id,
		board: board,
		state: GameState{
			MoveHistory: make([]Move, 0),
			CapturedPieces: CapturedPieces{
				White: make([]Piece, 0),
				Black: make([]Piece, 0),
			},
		},
		connections: NewGameConnections(),
	}
	g.refresh()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// AddPlayer seats the player in the first free seat, white first. A player
// who is already seated gets their color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.state.Players.colorFor(playerID); ok {
		return color, nil
	}
	for _, side := range []chess.Side{chess.White, chess.Black} {
		seat := g.state.Players.seat(side)
		if seat.ID == "" {
			*seat = ClientPlayer{ID: playerID, Color: colorOf(side)}
			log.Printf("game %s: %s seated as %s", g.ID, playerID, seat.Color)
			return seat.Color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.state.Players.colorFor(playerID)
	return ok
}

// CanSpectate reports whether a seat is still open.
func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// LegalMoves returns the destinations the side to move can reach from the
// named square without leaving its king attacked.
func (g *Game) LegalMoves(from string) ([]string, error) {
	if _, err := chess.ParseSquare(from); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.state.LegalMoves[from]), nil
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	if err := g.makeMove(playerID, move); err != nil {
		g.mu.Unlock()
		return err
	}
	state := g.snapshot()
	g.mu.Unlock()

	g.broadcastState(state)
	return nil
}

func (g *Game) makeMove(playerID string, move WSMove) error {
	if g.state.Resolve != nil {
		return ErrGameOver
	}
	color, ok := g.state.Players.colorFor(playerID)
	if !ok {
		return ErrNotInGame
	}
	if color.Side() != g.board.SideToMove() {
		return ErrNotYourTurn
	}

	from, err := chess.ParseSquare(move.From)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	to, err := chess.ParseSquare(move.To)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}

	tr := g.board.CurrentPlayer().AttemptMove(chess.FindMove(g.board, from, to))
	switch tr.Status {
	case chess.MoveIllegal:
		return fmt.Errorf("%s-%s: %w", move.From, move.To, ErrIllegalMove)
	case chess.MoveLeavesPlayerInCheck:
		return fmt.Errorf("%s-%s: %w", move.From, move.To, ErrLeavesKingInCheck)
	}

	ply := g.record(tr)
	g.board = tr.To
	g.refresh()
	log.Printf("game %s: %s played %s", g.ID, color, ply.Notation)
	return nil
}

// Resign ends the game in favour of the resigning player's opponent.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	if g.state.Resolve != nil {
		g.mu.Unlock()
		return ErrGameOver
	}
	color, ok := g.state.Players.colorFor(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	g.finish(ResolveResignation, colorOf(color.Side().Opponent()))
	state := g.snapshot()
	g.mu.Unlock()

	log.Printf("game %s: %s resigned", g.ID, color)
	g.broadcastState(state)
	return nil
}

// record appends the completed transition to the move history.
func (g *Game) record(tr chess.MoveTransition) *Ply {
	m := tr.Move
	ply := &Ply{
		Piece:    pieceOf(m.Piece),
		From:     positionOf(m.From()),
		To:       positionOf(m.To),
		Notation: chess.Notation(tr),
	}

	g.state.Sound = "move"
	if m.IsCapture() {
		captured := pieceOf(m.Captured)
		ply.CapturedPiece = &captured
		if m.Piece.Side == chess.White {
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, captured)
		} else {
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, captured)
		}
		g.state.Sound = "capture"
	}
	if m.IsCastle() {
		ply.CastleRookMove = &CastleRookMove{
			From: positionOf(m.Rook.Square),
			To:   positionOf(m.RookTo),
		}
		g.state.Sound = "castle"
	}
	if m.Promote {
		ply.Promotion = Queen
	}

	history := g.state.MoveHistory
	if m.Piece.Side == chess.White {
		history = append(history, Move{WhitePly: ply})
	} else if n := len(history); n == 0 || history[n-1].BlackPly != nil {
		history = append(history, Move{BlackPly: ply})
	} else {
		history[n-1].BlackPly = ply
	}
	g.state.MoveHistory = history
	g.state.LastMove = &SimpleMove{From: ply.From, To: ply.To}
	return ply
}

// refresh recomputes every field derived from the current board.
func (g *Game) refresh() {
	b := g.board
	current := b.CurrentPlayer()

	g.state.Board = newBoardState(b)
	g.state.ToMove = colorOf(b.SideToMove())
	g.state.FEN = b.FEN()
	g.state.IsCheck = current.InCheck()
	g.state.Castling = b.CastlingRights()
	g.state.EnPassantTarget = nil
	if target, ok := b.EnPassantSquare(); ok {
		pos := positionOf(target)
		g.state.EnPassantTarget = &pos
	}

	switch current.Status() {
	case chess.StatusCheckmate:
		g.finish(ResolveCheckmate, colorOf(current.Side().Opponent()))
		return
	case chess.StatusStalemate:
		g.finish(ResolveStalemate, "")
		return
	}

	moves := make(map[string][]string)
	for _, m := range current.SafeMoves() {
		from := m.From().String()
		moves[from] = append(moves[from], m.To.String())
	}
	for _, to := range moves {
		slices.Sort(to)
	}
	g.state.LegalMoves = moves
}

// finish resolves the game. An empty winner means a draw.
func (g *Game) finish(resolve string, winner PlayerColor) {
	g.state.Resolve = &resolve
	g.state.Winner = nil
	if winner != "" {
		g.state.Winner = &winner
	}
	g.state.LegalMoves = map[string][]string{}
}

// snapshot copies the state so it can be used after g.mu is released.
func (g *Game) snapshot() GameState {
	s := g.state
	s.MoveHistory = slices.Clone(g.state.MoveHistory)
	s.CapturedPieces = CapturedPieces{
		White: slices.Clone(g.state.CapturedPieces.White),
		Black: slices.Clone(g.state.CapturedPieces.Black),
	}
	return s
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	if !g.connections.add(playerID, conn) {
		// Keep the existing connection and turn the new one away.
		if err := conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		); err != nil {
			log.Printf("game %s: close duplicate connection for %s: %v", g.ID, playerID, err)
		}
		if err := conn.Close(); err != nil {
			log.Printf("game %s: close duplicate connection for %s: %v", g.ID, playerID, err)
		}
		return nil
	}
	log.Printf("game %s: registered connection for %s", g.ID, playerID)

	msg, err := stateMessage(state)
	if err != nil {
		return err
	}
	g.connections.send(playerID, msg)
	return nil
}

// UnregisterConnection drops conn if it is still the player's current connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistered connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// SendError reports err to a single observer.
func (g *Game) SendError(playerID string, err error) {
	payload, mErr := json.Marshal(err.Error())
	if mErr != nil {
		log.Printf("game %s: marshal error message: %v", g.ID, mErr)
		return
	}
	g.connections.send(playerID, ws.Message{Type: ws.MessageTypeError, Payload: payload})
}

func (g *Game) broadcastState(state GameState) {
	msg, err := stateMessage(state)
	if err != nil {
		log.Printf("game %s: %v", g.ID, err)
		return
	}
	g.connections.broadcast(msg)
}

func stateMessage(state GameState) (ws.Message, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return ws.Message{}, fmt.Errorf("marshal game state: %w", err)
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: payload}, nil
}

// add registers conn unless the player already has a connection.
func (gc *GameConnections) add(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[playerID]; exists {
		return false
	}
	gc.connections[playerID] = conn
	return true
}

// send writes to one connection. Writes happen under gc.mu so that a
// connection never has two concurrent writers.
func (gc *GameConnections) send(playerID string, msg ws.Message) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if conn, ok := gc.connections[playerID]; ok {
		gc.write(playerID, conn, msg)
	}
}

func (gc *GameConnections) broadcast(msg ws.Message) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	for playerID, conn := range gc.connections {
		gc.write(playerID, conn, msg)
	}
}

func (gc *GameConnections) write(playerID string, conn Conn, msg ws.Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("failed to send %s to player %s: %v", msg.Type, playerID, err)
		delete(gc.connections, playerID)
	}
}

// Observers is the number of open connections to the game.
func (g *Game) Observers() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}
