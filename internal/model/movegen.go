package model

// Move generation. Pseudo-legal moves are produced per piece kind through a
// single switch, then filtered on a scratch copy so that no move ever leaves
// the mover's own king attacked.

// LegalMoves returns every legal move for the given color.
func (p *Position) LegalMoves(color Color) []Move {
	moves := []Move{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.board[row][col]
			if piece != nil && piece.Color == color {
				moves = append(moves, p.LegalMovesFrom(Square{Row: row, Col: col})...)
			}
		}
	}
	return moves
}

// LegalMovesFrom returns the legal moves for the piece on sq, or nil when
// the square is empty.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	piece := p.PieceAt(sq)
	if piece == nil {
		return nil
	}
	legal := []Move{}
	for _, mv := range p.pseudoLegalMoves(sq, piece) {
		if p.isLegal(mv, piece.Color) {
			legal = append(legal, mv)
		}
	}
	return legal
}

// isLegal applies the move to a scratch copy and rejects it if the mover's
// king ends up attacked. This also re-verifies castling and catches en
// passant captures that open the vacated rank onto the king.
func (p *Position) isLegal(mv Move, mover Color) bool {
	scratch := p.Copy()
	scratch.Apply(mv)
	return !scratch.InCheck(mover)
}

func (p *Position) pseudoLegalMoves(sq Square, piece *Piece) []Move {
	switch piece.Type {
	case Pawn:
		return p.pawnMoves(sq, piece.Color)
	case Knight:
		return p.stepMoves(sq, piece.Color, knightDirs)
	case Bishop:
		return p.slideMoves(sq, piece.Color, diagonalDirs)
	case Rook:
		return p.slideMoves(sq, piece.Color, straightDirs)
	case Queen:
		return p.slideMoves(sq, piece.Color, kingDirs)
	case King:
		return p.kingMoves(sq, piece.Color)
	}
	return nil
}

func (p *Position) pawnMoves(sq Square, color Color) []Move {
	moves := []Move{}
	dir, startRow, promoRow := -1, 6, 0
	if color == Black {
		dir, startRow, promoRow = 1, 1, 7
	}

	appendMaybePromoting := func(mv Move) {
		if mv.To.Row == promoRow {
			for _, kind := range []PieceType{Queen, Rook, Bishop, Knight} {
				promoted := mv
				promoted.Promotion = kind
				moves = append(moves, promoted)
			}
			return
		}
		moves = append(moves, mv)
	}

	// Forward pushes.
	one := Square{Row: sq.Row + dir, Col: sq.Col}
	if one.onBoard() && p.board[one.Row][one.Col] == nil {
		appendMaybePromoting(Move{From: sq, To: one})
		two := Square{Row: sq.Row + 2*dir, Col: sq.Col}
		if sq.Row == startRow && p.board[two.Row][two.Col] == nil {
			moves = append(moves, Move{From: sq, To: two, IsDoublePawnPush: true})
		}
	}

	// Diagonal captures and en passant.
	for _, dc := range []int{-1, 1} {
		to := Square{Row: sq.Row + dir, Col: sq.Col + dc}
		if !to.onBoard() {
			continue
		}
		if target := p.board[to.Row][to.Col]; target != nil {
			if target.Color != color {
				appendMaybePromoting(Move{From: sq, To: to, IsCapture: true})
			}
		} else if p.enPassantTarget != nil && *p.enPassantTarget == to {
			moves = append(moves, Move{From: sq, To: to, IsCapture: true, IsEnPassant: true})
		}
	}
	return moves
}

func (p *Position) stepMoves(sq Square, color Color, dirs []Square) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		to := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		if !to.onBoard() {
			continue
		}
		target := p.board[to.Row][to.Col]
		if target == nil {
			moves = append(moves, Move{From: sq, To: to})
		} else if target.Color != color {
			moves = append(moves, Move{From: sq, To: to, IsCapture: true})
		}
	}
	return moves
}

func (p *Position) slideMoves(sq Square, color Color, dirs []Square) []Move {
	moves := []Move{}
	for _, dir := range dirs {
		to := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
		for to.onBoard() {
			target := p.board[to.Row][to.Col]
			if target == nil {
				moves = append(moves, Move{From: sq, To: to})
			} else {
				if target.Color != color {
					moves = append(moves, Move{From: sq, To: to, IsCapture: true})
				}
				break
			}
			to = Square{Row: to.Row + dir.Row, Col: to.Col + dir.Col}
		}
	}
	return moves
}

func (p *Position) kingMoves(sq Square, color Color) []Move {
	moves := p.stepMoves(sq, color, kingDirs)

	// Castling: rights flag set, squares between king and rook empty, king
	// not in check, and neither the transit square nor the destination
	// attacked. The post-move legality filter re-verifies the destination.
	if p.InCheck(color) {
		return moves
	}
	kingside, queenside := p.castling.WhiteKingside, p.castling.WhiteQueenside
	if color == Black {
		kingside, queenside = p.castling.BlackKingside, p.castling.BlackQueenside
	}
	row := sq.Row
	opponent := color.Opposite()
	if kingside && p.rookAt(Square{Row: row, Col: 7}, color) &&
		p.board[row][5] == nil && p.board[row][6] == nil &&
		!p.IsSquareAttacked(Square{Row: row, Col: 5}, opponent) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 6}, opponent) {
		moves = append(moves, Move{From: sq, To: Square{Row: row, Col: 6}, IsCastle: true})
	}
	if queenside && p.rookAt(Square{Row: row, Col: 0}, color) &&
		p.board[row][1] == nil && p.board[row][2] == nil && p.board[row][3] == nil &&
		!p.IsSquareAttacked(Square{Row: row, Col: 3}, opponent) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 2}, opponent) {
		moves = append(moves, Move{From: sq, To: Square{Row: row, Col: 2}, IsCastle: true})
	}
	return moves
}

func (p *Position) rookAt(sq Square, color Color) bool {
	piece := p.board[sq.Row][sq.Col]
	return piece != nil && piece.Type == Rook && piece.Color == color
}

// FindMove matches a from/to/promotion request against the current legal-move
// set, returning the fully flagged generator move. A pawn reaching the final
// rank without a promotion piece yields ErrPromotionRequired, never a silent
// pawn placement.
func (p *Position) FindMove(from, to Square, promotion PieceType) (Move, error) {
	needsPromotion := false
	for _, mv := range p.LegalMovesFrom(from) {
		if mv.To != to {
			continue
		}
		if mv.Promotion == promotion {
			return mv, nil
		}
		if mv.Promotion != "" && promotion == "" {
			needsPromotion = true
		}
	}
	if needsPromotion {
		return Move{}, ErrPromotionRequired
	}
	return Move{}, ErrInvalidMove
}

// InsufficientMaterial reports the dead positions adjudicated as draws:
// king vs king and king plus one minor piece vs king.
func (p *Position) InsufficientMaterial() bool {
	minors := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := p.board[row][col]
			if piece == nil || piece.Type == King {
				continue
			}
			if piece.Type != Bishop && piece.Type != Knight {
				return false
			}
			minors++
		}
	}
	return minors <= 1
}

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves(p.sideToMove)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, mv := range moves {
		next := p.Copy()
		next.Apply(mv)
		nodes += Perft(next, depth-1)
	}
	return nodes
}
