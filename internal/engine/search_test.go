package engine

import (
	"testing"

	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

func TestDepthForDifficulty(t *testing.T) {
	cases := map[int]int{-3: 2, 0: 2, 1: 2, 3: 4, 5: 6, 9: 6}
	for level, want := range cases {
		if got := DepthForDifficulty(level); got != want {
			t.Errorf("DepthForDifficulty(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestSearchReturnsLegalMove(t *testing.T) {
	pos := model.NewPosition()
	eng := New(2)
	mv, _, err := eng.Search(pos)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, legal := range pos.LegalMoves(pos.SideToMove()) {
		if legal == mv {
			return
		}
	}
	t.Fatalf("search returned %s, which is not a legal move", mv)
}

func TestSearchFindsBackRankMate(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	mv, score, err := New(2).Search(pos)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := model.Move{From: model.Square{Row: 7, Col: 0}, To: model.Square{Row: 0, Col: 0}}
	if mv.From != want.From || mv.To != want.To {
		t.Fatalf("expected Ra8#, got %s", mv)
	}
	if score < mateScore-10 {
		t.Errorf("mate should score near mateScore, got %d", score)
	}
}

func TestSearchPrefersFasterMate(t *testing.T) {
	// White can mate in one; a deeper search must still take it rather
	// than a slower forced mate.
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	mv, _, err := New(4).Search(pos)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if mv.To != (model.Square{Row: 0, Col: 0}) {
		t.Fatalf("depth-4 search should still play the mate in one, got %s", mv)
	}
}

func TestSearchTakesHangingQueen(t *testing.T) {
	// Black queen on d5 is defended by nothing; white queen on d1 takes it.
	pos := mustFEN(t, "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1")
	mv, _, err := New(2).Search(pos)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if mv.To != (model.Square{Row: 3, Col: 3}) || !mv.IsCapture {
		t.Fatalf("expected Qxd5, got %s", mv)
	}
}

func TestSearchSignalsGameOver(t *testing.T) {
	pos := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if _, _, err := New(2).Search(pos); err != ErrGameOver {
		t.Fatalf("mated position should signal game over, got %v", err)
	}
}

func TestOrderMovesPutsCapturesFirst(t *testing.T) {
	// Pawn, knight and queen can all take the black queen on d5; the least
	// valuable attacker must come first.
	pos := mustFEN(t, "4k3/8/8/3q4/2P2N2/8/8/3QK3 w - - 0 1")
	moves := orderMoves(pos, pos.LegalMoves(model.White))
	if len(moves) < 3 {
		t.Fatal("expected a full move list")
	}
	if !moves[0].IsCapture || !moves[1].IsCapture || !moves[2].IsCapture {
		t.Fatal("all three queen captures should lead the ordering")
	}
	if first := pos.PieceAt(moves[0].From); first.Type != model.Pawn {
		t.Errorf("MVV-LVA should lead with pawn takes queen, got %s (%s)", moves[0], first.Type)
	}
	if second := pos.PieceAt(moves[1].From); second.Type != model.Knight {
		t.Errorf("knight takes queen should come second, got %s (%s)", moves[1], second.Type)
	}
	for i := 1; i < len(moves); i++ {
		if moves[i].IsCapture && !moves[i-1].IsCapture {
			t.Fatal("capture ordered after a non-capture")
		}
	}
}
