package engine

import (
	"errors"
	"sort"

	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

// Fixed-depth minimax with alpha-beta pruning. The search is synchronous and
// always runs to the configured depth; there is no time management.

const (
	mateScore = 100000
	infinity  = 1 << 30
)

// ErrGameOver is returned when search is asked for a move in a position
// that has none.
var ErrGameOver = errors.New("no legal moves")

type Engine struct {
	depth int
	nodes int
}

// New returns an engine searching to the given ply depth (at least 1).
func New(depth int) *Engine {
	if depth < 1 {
		depth = 1
	}
	return &Engine{depth: depth}
}

// DepthForDifficulty maps difficulty levels 1..5 onto search depths 2..6.
func DepthForDifficulty(level int) int {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return level + 1
}

func (e *Engine) Depth() int { return e.depth }

// Nodes reports the number of positions visited by the last Search call.
func (e *Engine) Nodes() int { return e.nodes }

// Search picks the best move for the side to move, returning it with the
// position's score from white's perspective.
func (e *Engine) Search(pos *model.Position) (model.Move, int, error) {
	e.nodes = 0
	side := pos.SideToMove()
	moves := orderMoves(pos, pos.LegalMoves(side))
	if len(moves) == 0 {
		return model.Move{}, 0, ErrGameOver
	}

	maximizing := side == model.White
	alpha, beta := -infinity, infinity
	best := moves[0]
	bestScore := infinity
	if maximizing {
		bestScore = -infinity
	}

	for _, mv := range moves {
		next := pos.Copy()
		next.Apply(mv)
		score := e.minimax(next, e.depth-1, alpha, beta, 1)
		if maximizing {
			if score > bestScore {
				bestScore, best = score, mv
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score < bestScore {
				bestScore, best = score, mv
			}
			if score < beta {
				beta = score
			}
		}
	}
	return best, bestScore, nil
}

func (e *Engine) minimax(pos *model.Position, depth, alpha, beta, ply int) int {
	e.nodes++

	side := pos.SideToMove()
	moves := pos.LegalMoves(side)
	if len(moves) == 0 {
		if pos.InCheck(side) {
			// Mate: prefer faster mates for the winner, slower for the loser.
			if side == model.White {
				return -(mateScore - ply)
			}
			return mateScore - ply
		}
		return 0 // stalemate
	}
	if pos.HalfmoveClock() >= 100 || pos.InsufficientMaterial() {
		return 0
	}
	if depth == 0 {
		return Evaluate(pos)
	}

	moves = orderMoves(pos, moves)
	if side == model.White {
		best := -infinity
		for _, mv := range moves {
			next := pos.Copy()
			next.Apply(mv)
			score := e.minimax(next, depth-1, alpha, beta, ply+1)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}
	best := infinity
	for _, mv := range moves {
		next := pos.Copy()
		next.Apply(mv)
		score := e.minimax(next, depth-1, alpha, beta, ply+1)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// orderMoves puts captures first, sorted by most valuable victim / least
// valuable attacker, leaving non-captures in generator order.
func orderMoves(pos *model.Position, moves []model.Move) []model.Move {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureScore(pos, moves[i]) > captureScore(pos, moves[j])
	})
	return moves
}

func captureScore(pos *model.Position, mv model.Move) int {
	if !mv.IsCapture {
		return 0
	}
	attacker := pos.PieceAt(mv.From)
	victimValue := pieceValue[model.Pawn] // en passant never lands on the victim
	if victim := pos.PieceAt(mv.To); victim != nil {
		victimValue = pieceValue[victim.Type]
	}
	// Offset keeps even losing captures ahead of every quiet move.
	return 100000 + victimValue - pieceValue[attacker.Type]
}
