package engine

import "github.com/emiletimothy/competitive-chess-bot/internal/model"

// Static evaluation in centipawns, always from white's perspective.
// score = material + positional + king safety + mobility.

var pieceValue = map[model.PieceType]int{
	model.Pawn:   100,
	model.Knight: 320,
	model.Bishop: 330,
	model.Rook:   500,
	model.Queen:  900,
	model.King:   20000,
}

const (
	mobilityWeight     = 2
	castledBonus       = 30
	brokenCastlePen    = 30
	centerKingPenalty  = 50
	openKingFilePen    = 12
)

// Piece-square tables, indexed [row][col] from white's side of the board
// (row 0 = rank 8). Mirrored vertically for black.
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingTable = [8][8]int{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

var pieceTables = map[model.PieceType]*[8][8]int{
	model.Pawn:   &pawnTable,
	model.Knight: &knightTable,
	model.Bishop: &bishopTable,
	model.Rook:   &rookTable,
	model.Queen:  &queenTable,
	model.King:   &kingTable,
}

// Evaluate scores the position from white's perspective. Positive favors
// white. Terminal detection (mate, stalemate) is handled by the search.
func Evaluate(pos *model.Position) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := pos.PieceAt(model.Square{Row: row, Col: col})
			if piece == nil {
				continue
			}
			pieceScore := pieceValue[piece.Type] + positional(piece, row, col)
			if piece.Color == model.White {
				score += pieceScore
			} else {
				score -= pieceScore
			}
		}
	}

	whiteMoves := len(pos.LegalMoves(model.White))
	blackMoves := len(pos.LegalMoves(model.Black))
	score += (whiteMoves - blackMoves) * mobilityWeight

	score += kingSafety(pos, model.White)
	score -= kingSafety(pos, model.Black)

	return score
}

func positional(piece *model.Piece, row, col int) int {
	if piece.Color == model.Black {
		row = 7 - row
	}
	return pieceTables[piece.Type][row][col]
}

func kingSafety(pos *model.Position, color model.Color) int {
	safety := 0
	king := pos.KingSquare(color)

	if pos.HasCastled(color) {
		safety += castledBonus
	} else if !canStillCastle(pos.Castling(), color) {
		safety -= brokenCastlePen
	}

	if king.Row >= 2 && king.Row <= 5 && king.Col >= 2 && king.Col <= 5 {
		safety -= centerKingPenalty
	}

	// Open files next to the king invite heavy-piece attacks.
	for col := king.Col - 1; col <= king.Col+1; col++ {
		if col < 0 || col > 7 {
			continue
		}
		if !ownPawnOnFile(pos, color, col) {
			safety -= openKingFilePen
		}
	}
	return safety
}

func canStillCastle(rights model.CastlingRights, color model.Color) bool {
	if color == model.White {
		return rights.WhiteKingside || rights.WhiteQueenside
	}
	return rights.BlackKingside || rights.BlackQueenside
}

func ownPawnOnFile(pos *model.Position, color model.Color, col int) bool {
	for row := 0; row < 8; row++ {
		piece := pos.PieceAt(model.Square{Row: row, Col: col})
		if piece != nil && piece.Type == model.Pawn && piece.Color == color {
			return true
		}
	}
	return false
}
