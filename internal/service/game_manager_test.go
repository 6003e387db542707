package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestCreateAndListGames(t *testing.T) {
	gm := NewGameManager(time.Second)
	for _, id := range []string{"b", "c", "a"} {
		if err := gm.CreateGame(id, ""); err != nil {
			t.Fatalf("CreateGame(%s) error: %v", id, err)
		}
	}
	if err := gm.CreateGame("a", ""); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate CreateGame error = %v, want ErrGameExists", err)
	}
	if err := gm.CreateGame("d", "bogus"); !errors.Is(err, chess.ErrInvalidFEN) {
		t.Errorf("CreateGame with bad FEN error = %v, want ErrInvalidFEN", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, gm.ListGames()); diff != "" {
		t.Errorf("ListGames mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownGame(t *testing.T) {
	gm := NewGameManager(time.Second)
	if _, err := gm.GetGameState("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState error = %v", err)
	}
	if _, err := gm.AddPlayerToGame("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("AddPlayerToGame error = %v", err)
	}
	if err := gm.MakeMove("nope", "alice", model.WSMove{From: "e2", To: "e4"}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("MakeMove error = %v", err)
	}
	if _, err := gm.LegalMoves("nope", "e2"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LegalMoves error = %v", err)
	}
	if err := gm.Resign("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Resign error = %v", err)
	}
}

func TestServicePlaysAGame(t *testing.T) {
	gs := NewGameService(NewGameManager(time.Second))
	gameID, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame() error: %v", err)
	}
	if got, err := gs.JoinGame(gameID, "alice"); err != nil || got != model.PlayerColorWhite {
		t.Fatalf("JoinGame(alice) = %s, %v; want white", got, err)
	}
	if got, err := gs.JoinGame(gameID, "bob"); err != nil || got != model.PlayerColorBlack {
		t.Fatalf("JoinGame(bob) = %s, %v; want black", got, err)
	}

	moves, err := gs.LegalMoves(gameID, "e2")
	if err != nil {
		t.Fatalf("LegalMoves() error: %v", err)
	}
	if diff := cmp.Diff([]string{"e3", "e4"}, moves); diff != "" {
		t.Errorf("e2 moves mismatch (-want +got):\n%s", diff)
	}
	if _, err := gs.LegalMoves(gameID, "z9"); !errors.Is(err, chess.ErrInvalidSquare) {
		t.Errorf("LegalMoves(z9) error = %v", err)
	}

	if err := gs.HandleMove(gameID, "alice", model.WSMove{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("HandleMove() error: %v", err)
	}
	if err := gs.HandleMove(gameID, "alice", model.WSMove{From: "d2", To: "d4"}); !errors.Is(err, model.ErrNotYourTurn) {
		t.Errorf("second white move error = %v, want ErrNotYourTurn", err)
	}
	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState() error: %v", err)
	}
	if state.ToMove != model.PlayerColorBlack || len(state.MoveHistory) != 1 {
		t.Errorf("toMove/history = %s / %d", state.ToMove, len(state.MoveHistory))
	}

	if err := gs.Resign(gameID, "bob"); err != nil {
		t.Fatalf("Resign() error: %v", err)
	}
	if state, _ := gs.GetGameState(gameID); state.Resolve == nil || *state.Resolve != model.ResolveResignation {
		t.Errorf("resolve = %v, want resignation", state.Resolve)
	}
}

func TestMatchmaking(t *testing.T) {
	gm := NewGameManager(time.Second)
	alice, bob := make(chan string, 1), make(chan string, 1)
	gm.RegisterMatchmakingChannel("alice", alice)
	gm.RegisterMatchmakingChannel("bob", bob)

	if err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("JoinMatchmaking(alice) error: %v", err)
	}
	if err := gm.JoinMatchmaking("alice"); !errors.Is(err, model.ErrAlreadyQueued) {
		t.Errorf("duplicate JoinMatchmaking error = %v", err)
	}
	if gm.matchNextPair() {
		t.Fatal("matched a single player")
	}
	if err := gm.JoinMatchmaking("bob"); err != nil {
		t.Fatalf("JoinMatchmaking(bob) error: %v", err)
	}
	if !gm.matchNextPair() {
		t.Fatal("two queued players were not matched")
	}

	var events []model.MatchFoundEvent
	for _, ch := range []chan string{alice, bob} {
		var event model.MatchFoundEvent
		if err := json.Unmarshal([]byte(<-ch), &event); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if _, open := <-ch; open {
			t.Error("channel left open after the match")
		}
		events = append(events, event)
	}
	if events[0].GameID != events[1].GameID || events[0].Color != model.PlayerColorWhite || events[1].Color != model.PlayerColorBlack {
		t.Errorf("events = %+v", events)
	}
	game, err := gm.GetGame(events[0].GameID)
	if err != nil {
		t.Fatalf("matched game not registered: %v", err)
	}
	if !game.IsPlayerInGame("alice") || !game.IsPlayerInGame("bob") {
		t.Error("matched players are not seated")
	}
}

func TestMatchmakingChannelReplaced(t *testing.T) {
	gm := NewGameManager(time.Second)
	old, current := make(chan string, 1), make(chan string, 1)
	gm.RegisterMatchmakingChannel("alice", old)
	gm.RegisterMatchmakingChannel("alice", current)
	if _, open := <-old; open {
		t.Error("replaced channel should be closed")
	}

	if gm.UnregisterMatchmakingChannel("alice", old) {
		t.Error("unregistering a stale channel reported success")
	}
	if gm.matchingChannels["alice"] != current {
		t.Error("unregistering a stale channel removed the current one")
	}
	if !gm.UnregisterMatchmakingChannel("alice", current) {
		t.Error("unregistering the current channel reported failure")
	}
	if _, ok := gm.matchingChannels["alice"]; ok {
		t.Error("channel still registered")
	}
}

func TestRunMatchesUntilCancelled(t *testing.T) {
	gm := NewGameManager(10 * time.Millisecond)
	ch := make(chan string, 1)
	gm.RegisterMatchmakingChannel("alice", ch)
	for _, id := range []string{"alice", "bob"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gm.Run(ctx)
		close(done)
	}()

	select {
	case msg := <-ch:
		if msg == "" {
			t.Error("empty match event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no match within 2s")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := len(gm.ListGames()); got != 1 {
		t.Errorf("games = %d, want 1", got)
	}
}
