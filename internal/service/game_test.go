package service

import (
	"errors"
	"testing"

	"github.com/emiletimothy/competitive-chess-bot/internal/engine"
	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

func newTestGame(t *testing.T, fen string, humanColor model.Color, depth int) *Game {
	t.Helper()
	pos, err := model.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return &Game{
		ID:          "test",
		pos:         pos,
		engine:      engine.New(depth),
		humanColor:  humanColor,
		engineColor: humanColor.Opposite(),
		connections: newGameConnections(),
	}
}

func TestNewGameAsBlackIncludesEngineOpening(t *testing.T) {
	gs := NewGameService(NewGameManager())
	result, err := gs.NewGame(1, "black")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if result.EngineMove == nil {
		t.Fatal("engine plays white and must open before the state is returned")
	}
	if result.BoardState.CurrentPlayer != "black" {
		t.Errorf("after the engine's opening it is black's turn, got %s", result.BoardState.CurrentPlayer)
	}
	if result.GameID == "" {
		t.Error("missing game id")
	}
}

func TestNewGameAsWhiteWaitsForHuman(t *testing.T) {
	gs := NewGameService(NewGameManager())
	result, err := gs.NewGame(1, "white")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if result.EngineMove != nil {
		t.Error("engine must not move before the human when the human is white")
	}
	if result.BoardState.CurrentPlayer != "white" {
		t.Errorf("got current player %s, want white", result.BoardState.CurrentPlayer)
	}
}

func TestUnknownGameID(t *testing.T) {
	gs := NewGameService(NewGameManager())
	if _, err := gs.BoardState("nope"); !errors.Is(err, model.ErrNoActiveGame) {
		t.Fatalf("got %v, want ErrNoActiveGame", err)
	}
	if _, err := gs.LegalMoves("nope", 0, 0); !errors.Is(err, model.ErrNoActiveGame) {
		t.Fatalf("got %v, want ErrNoActiveGame", err)
	}
}

func TestInvalidMoveLeavesPositionUnchanged(t *testing.T) {
	gs := NewGameService(NewGameManager())
	result, err := gs.NewGame(1, "white")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	// e2-e5 in one step is not chess.
	_, err = gs.MakeMove(result.GameID,
		model.Square{Row: 6, Col: 4}, model.Square{Row: 3, Col: 4}, "")
	if !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("got %v, want ErrInvalidMove", err)
	}

	state, err := gs.BoardState(result.GameID)
	if err != nil {
		t.Fatalf("BoardState: %v", err)
	}
	if state.CurrentPlayer != "white" {
		t.Error("failed move must not consume the turn")
	}
	if state.Board[6][4] == nil || state.Board[6][4].Type != "pawn" {
		t.Error("failed move must leave the board untouched")
	}
}

func TestLegalMovesValidation(t *testing.T) {
	gs := NewGameService(NewGameManager())
	result, err := gs.NewGame(1, "white")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	// Empty square.
	if _, err := gs.LegalMoves(result.GameID, 4, 4); !errors.Is(err, model.ErrInvalidMove) {
		t.Errorf("empty square: got %v, want ErrInvalidMove", err)
	}
	// Opponent's piece.
	if _, err := gs.LegalMoves(result.GameID, 1, 4); !errors.Is(err, model.ErrInvalidMove) {
		t.Errorf("opponent piece: got %v, want ErrInvalidMove", err)
	}

	moves, err := gs.LegalMoves(result.GameID, 6, 4)
	if err != nil {
		t.Fatalf("LegalMoves(e2): %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("e2 pawn should have 2 destinations, got %d", len(moves))
	}
}

func TestScholarsMateEndsGame(t *testing.T) {
	// After 1.e4 e5 2.Bc4 Nc6 3.Qh5 Nf6, Qxf7 is mate.
	g := newTestGame(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4", model.White, 2)

	result, err := g.MakeMove(model.Square{Row: 3, Col: 7}, model.Square{Row: 1, Col: 5}, "")
	if err != nil {
		t.Fatalf("Qxf7 rejected: %v", err)
	}
	if !result.BoardState.GameOver {
		t.Fatal("game should be over after scholar's mate")
	}
	if result.BoardState.Winner == nil || *result.BoardState.Winner != "white" {
		t.Fatalf("winner should be white, got %v", result.BoardState.Winner)
	}
	if result.EngineMove != nil {
		t.Error("engine must not reply to a mating move")
	}

	// The finished session accepts no further moves.
	if _, err := g.MakeMove(model.Square{Row: 6, Col: 0}, model.Square{Row: 5, Col: 0}, ""); !errors.Is(err, model.ErrInvalidMove) {
		t.Errorf("move after game over: got %v, want ErrInvalidMove", err)
	}
}

func TestPromotionThroughService(t *testing.T) {
	g := newTestGame(t, "8/P7/8/8/8/8/k6K/8 w - - 0 1", model.White, 1)
	from, to := model.Square{Row: 1, Col: 0}, model.Square{Row: 0, Col: 0}

	if _, err := g.MakeMove(from, to, ""); !errors.Is(err, model.ErrPromotionRequired) {
		t.Fatalf("got %v, want ErrPromotionRequired", err)
	}

	result, err := g.MakeMove(from, to, model.Queen)
	if err != nil {
		t.Fatalf("promotion rejected: %v", err)
	}
	if piece := result.BoardState.Board[0][0]; piece == nil || piece.Type != "queen" {
		t.Fatalf("expected a queen on a8, got %+v", piece)
	}
	if result.EngineMove == nil {
		t.Error("game continues, engine should have replied")
	}
}

func TestStalemateIsDraw(t *testing.T) {
	// Qg6-f7 leaves the black king on h8 with no moves and no check.
	g := newTestGame(t, "7k/8/6QK/8/8/8/8/8 w - - 0 1", model.White, 1)
	result, err := g.MakeMove(model.Square{Row: 2, Col: 6}, model.Square{Row: 1, Col: 5}, "")
	if err != nil {
		t.Fatalf("Qf7 rejected: %v", err)
	}
	if !result.BoardState.GameOver {
		t.Fatal("stalemate should end the game")
	}
	if result.BoardState.Winner == nil || *result.BoardState.Winner != "draw" {
		t.Fatalf("stalemate winner should be draw, got %v", result.BoardState.Winner)
	}
}

func TestNotYourTurn(t *testing.T) {
	// Human is black but white is to move.
	g := newTestGame(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", model.Black, 1)
	if _, err := g.MakeMove(model.Square{Row: 0, Col: 4}, model.Square{Row: 1, Col: 4}, ""); !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("got %v, want ErrInvalidMove", err)
	}
	if _, err := g.LegalDestinations(model.Square{Row: 0, Col: 4}); !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("LegalDestinations out of turn: got %v, want ErrInvalidMove", err)
	}
}
