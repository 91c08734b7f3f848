package model

import "fmt"

// Square is a board coordinate. Row 0 is rank 8 (black's back rank),
// col 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) onBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) Notation() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// SquareFromNotation parses "e4" style coordinates.
func SquareFromNotation(n string) (Square, bool) {
	if len(n) != 2 || n[0] < 'a' || n[0] > 'h' || n[1] < '1' || n[1] > '8' {
		return Square{}, false
	}
	return Square{Row: 8 - int(n[1]-'0'), Col: int(n[0] - 'a')}, true
}

// Move is produced by move generation and consumed by Position.Apply.
// Promotion is empty except for pawn moves onto the final rank, where the
// generator emits one move per promotion piece.
type Move struct {
	From             Square
	To               Square
	Promotion        PieceType
	IsCapture        bool
	IsEnPassant      bool
	IsCastle         bool
	IsDoublePawnPush bool
}

func (m Move) String() string {
	s := m.From.Notation() + m.To.Notation()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// MoveFromNotation parses coordinate moves like e2e4 or e7e8q. Special-move
// flags are left unset; matching against the legal-move set fills them in.
func MoveFromNotation(n string) (Move, bool) {
	if len(n) != 4 && len(n) != 5 {
		return Move{}, false
	}
	from, ok := SquareFromNotation(n[:2])
	if !ok {
		return Move{}, false
	}
	to, ok := SquareFromNotation(n[2:4])
	if !ok {
		return Move{}, false
	}
	mv := Move{From: from, To: to}
	if len(n) == 5 {
		promo, ok := PromotionToken(n[4:])
		if !ok {
			return Move{}, false
		}
		mv.Promotion = promo
	}
	return mv, true
}
