package model

import (
	"fmt"
	"strings"
)

// CastlingRights tracks per-color kingside/queenside castle eligibility.
// Flags only ever go from true to false over the course of a game.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// Position holds the board plus all state needed to determine move legality.
// Row 0 is rank 8, col 0 is file a.
type Position struct {
	board           [8][8]*Piece
	sideToMove      Color
	castling        CastlingRights
	enPassantTarget *Square
	halfmoveClock   int
	fullmoveNumber  int

	whiteKing Square
	blackKing Square

	whiteCastled bool
	blackCastled bool
}

// NewPosition returns the standard starting position with white to move.
func NewPosition() *Position {
	p := &Position{
		sideToMove: White,
		castling: CastlingRights{
			WhiteKingside: true, WhiteQueenside: true,
			BlackKingside: true, BlackQueenside: true,
		},
		fullmoveNumber: 1,
		whiteKing:      Square{Row: 7, Col: 4},
		blackKing:      Square{Row: 0, Col: 4},
	}
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < 8; col++ {
		p.board[0][col] = &Piece{Type: backRank[col], Color: Black}
		p.board[1][col] = &Piece{Type: Pawn, Color: Black}
		p.board[6][col] = &Piece{Type: Pawn, Color: White}
		p.board[7][col] = &Piece{Type: backRank[col], Color: White}
	}
	return p
}

func (p *Position) SideToMove() Color { return p.sideToMove }

func (p *Position) PieceAt(sq Square) *Piece {
	if !sq.onBoard() {
		return nil
	}
	return p.board[sq.Row][sq.Col]
}

func (p *Position) EnPassantTarget() *Square {
	if p.enPassantTarget == nil {
		return nil
	}
	sq := *p.enPassantTarget
	return &sq
}

func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) HalfmoveClock() int       { return p.halfmoveClock }
func (p *Position) FullmoveNumber() int      { return p.fullmoveNumber }

func (p *Position) HasCastled(color Color) bool {
	if color == White {
		return p.whiteCastled
	}
	return p.blackCastled
}

func (p *Position) KingSquare(color Color) Square {
	if color == White {
		return p.whiteKing
	}
	return p.blackKing
}

func (p *Position) InCheck(color Color) bool {
	return p.IsSquareAttacked(p.KingSquare(color), color.Opposite())
}

// Copy returns an independent position. Pieces are immutable values, so the
// board copy shares piece pointers.
func (p *Position) Copy() *Position {
	cp := *p
	if p.enPassantTarget != nil {
		sq := *p.enPassantTarget
		cp.enPassantTarget = &sq
	}
	return &cp
}

// Apply mutates the position with a move that must already be a member of
// the legal-move set for the side to move. Behavior is undefined otherwise;
// callers validate against LegalMoves first.
func (p *Position) Apply(mv Move) {
	piece := p.board[mv.From.Row][mv.From.Col]
	captured := p.board[mv.To.Row][mv.To.Col]
	resetClock := piece.Type == Pawn || captured != nil || mv.IsEnPassant

	// A rook captured on its home square loses that side's castle right.
	if captured != nil && captured.Type == Rook {
		p.clearRookRight(mv.To, captured.Color)
	}

	p.board[mv.To.Row][mv.To.Col] = piece
	p.board[mv.From.Row][mv.From.Col] = nil

	switch {
	case mv.IsCastle:
		p.moveCastleRook(mv)
		if piece.Color == White {
			p.whiteCastled = true
		} else {
			p.blackCastled = true
		}
	case mv.IsEnPassant:
		// The captured pawn sits beside the origin, not on the target square.
		p.board[mv.From.Row][mv.To.Col] = nil
	}

	if mv.Promotion != "" {
		p.board[mv.To.Row][mv.To.Col] = &Piece{Type: mv.Promotion, Color: piece.Color}
	}

	switch piece.Type {
	case King:
		if piece.Color == White {
			p.whiteKing = mv.To
			p.castling.WhiteKingside = false
			p.castling.WhiteQueenside = false
		} else {
			p.blackKing = mv.To
			p.castling.BlackKingside = false
			p.castling.BlackQueenside = false
		}
	case Rook:
		p.clearRookRight(mv.From, piece.Color)
	}

	p.enPassantTarget = nil
	if mv.IsDoublePawnPush {
		mid := Square{Row: (mv.From.Row + mv.To.Row) / 2, Col: mv.From.Col}
		p.enPassantTarget = &mid
	}

	if resetClock {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}

	p.sideToMove = p.sideToMove.Opposite()
	if p.sideToMove == White {
		p.fullmoveNumber++
	}
}

func (p *Position) clearRookRight(sq Square, color Color) {
	switch {
	case color == White && sq == Square{Row: 7, Col: 0}:
		p.castling.WhiteQueenside = false
	case color == White && sq == Square{Row: 7, Col: 7}:
		p.castling.WhiteKingside = false
	case color == Black && sq == Square{Row: 0, Col: 0}:
		p.castling.BlackQueenside = false
	case color == Black && sq == Square{Row: 0, Col: 7}:
		p.castling.BlackKingside = false
	}
}

func (p *Position) moveCastleRook(mv Move) {
	row := mv.From.Row
	if mv.To.Col == 6 { // kingside
		p.board[row][5] = p.board[row][7]
		p.board[row][7] = nil
	} else { // queenside
		p.board[row][3] = p.board[row][0]
		p.board[row][0] = nil
	}
}

var (
	straightDirs = []Square{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
	diagonalDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightDirs   = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
	kingDirs = append(append([]Square{}, straightDirs...), diagonalDirs...)
)

// IsSquareAttacked reports whether any piece of byColor has a pseudo-legal
// attack on sq. It ignores whether that piece is pinned; this is only used
// for check and castle-safety tests.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	for _, dir := range straightDirs {
		target := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		for target.onBoard() {
			if piece := p.board[target.Row][target.Col]; piece != nil {
				if piece.Color == byColor && (piece.Type == Rook || piece.Type == Queen) {
					return true
				}
				break
			}
			target = Square{Row: target.Row + dir.Row, Col: target.Col + dir.Col}
		}
	}
	for _, dir := range diagonalDirs {
		target := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		for target.onBoard() {
			if piece := p.board[target.Row][target.Col]; piece != nil {
				if piece.Color == byColor && (piece.Type == Bishop || piece.Type == Queen) {
					return true
				}
				break
			}
			target = Square{Row: target.Row + dir.Row, Col: target.Col + dir.Col}
		}
	}
	for _, dir := range knightDirs {
		target := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		if target.onBoard() {
			if piece := p.board[target.Row][target.Col]; piece != nil && piece.Color == byColor && piece.Type == Knight {
				return true
			}
		}
	}
	for _, dir := range kingDirs {
		target := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		if target.onBoard() {
			if piece := p.board[target.Row][target.Col]; piece != nil && piece.Color == byColor && piece.Type == King {
				return true
			}
		}
	}
	// White pawns attack upward (toward row 0), black pawns downward.
	pawnRow := sq.Row + 1
	if byColor == Black {
		pawnRow = sq.Row - 1
	}
	for _, dc := range []int{-1, 1} {
		target := Square{Row: pawnRow, Col: sq.Col + dc}
		if target.onBoard() {
			if piece := p.board[target.Row][target.Col]; piece != nil && piece.Color == byColor && piece.Type == Pawn {
				return true
			}
		}
	}
	return false
}

// Validate checks the one-king-per-color invariant against the tracked king
// squares. A failure indicates a move generation or application bug.
func (p *Position) Validate() error {
	for _, color := range []Color{White, Black} {
		kings := 0
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				piece := p.board[row][col]
				if piece != nil && piece.Type == King && piece.Color == color {
					kings++
				}
			}
		}
		if kings != 1 {
			return fmt.Errorf("%w: %d %s kings on board", ErrIllegalState, kings, color)
		}
		sq := p.KingSquare(color)
		piece := p.board[sq.Row][sq.Col]
		if piece == nil || piece.Type != King || piece.Color != color {
			return fmt.Errorf("%w: tracked %s king square %s is stale", ErrIllegalState, color, sq.Notation())
		}
	}
	return nil
}

func (p *Position) String() string {
	var b strings.Builder
	b.WriteString("  a b c d e f g h\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&b, "%d ", 8-row)
		for col := 0; col < 8; col++ {
			if piece := p.board[row][col]; piece != nil {
				b.WriteString(piece.Symbol())
			} else {
				b.WriteString("·")
			}
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d\n", 8-row)
	}
	b.WriteString("  a b c d e f g h")
	return b.String()
}
