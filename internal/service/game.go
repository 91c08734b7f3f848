package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/emiletimothy/competitive-chess-bot/internal/engine"
	"github.com/emiletimothy/competitive-chess-bot/internal/model"
	"github.com/emiletimothy/competitive-chess-bot/internal/ws"
)

// PieceState is the wire shape of one occupied square.
type PieceState struct {
	Type   string `json:"type"`
	Color  string `json:"color"`
	Symbol string `json:"symbol"`
}

// BoardState is the full client-facing game snapshot.
type BoardState struct {
	Board         [8][8]*PieceState `json:"board"`
	CurrentPlayer string            `json:"current_player"`
	InCheck       bool              `json:"in_check"`
	GameOver      bool              `json:"game_over"`
	Winner        *string           `json:"winner"`
}

// EngineMove reports the engine's reply half-move.
type EngineMove struct {
	From      model.Square `json:"from"`
	To        model.Square `json:"to"`
	Promotion string       `json:"promotion,omitempty"`
}

// LegalDestination is one entry of a legal_moves response.
type LegalDestination struct {
	Row         int  `json:"row"`
	Col         int  `json:"col"`
	IsCapture   bool `json:"is_capture"`
	IsCastling  bool `json:"is_castling"`
	IsEnPassant bool `json:"is_en_passant"`
}

// MoveResult is returned after a successfully applied human move.
type MoveResult struct {
	Success    bool        `json:"success"`
	BoardState BoardState  `json:"board_state"`
	EngineMove *EngineMove `json:"engine_move,omitempty"`
}

// GameConnections holds the WebSocket observers of one game.
type GameConnections struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

func newGameConnections() *GameConnections {
	return &GameConnections{connections: make(map[string]*websocket.Conn)}
}

// Game owns exactly one Position and sequences human and engine turns.
// The mutex is held for a full validate→apply→search→apply round, so two
// concurrent requests against the same session never interleave.
type Game struct {
	ID string

	mu          sync.Mutex
	pos         *model.Position
	engine      *engine.Engine
	humanColor  model.Color
	engineColor model.Color
	gameOver    bool
	winner      *string

	connections *GameConnections
}

// NewGame starts a session from the standard position. If the human plays
// black, the engine's opening move is searched and applied before returning,
// so the returned state already reflects it.
func NewGame(id string, difficulty int, humanColor model.Color) (*Game, *EngineMove, error) {
	g := &Game{
		ID:          id,
		pos:         model.NewPosition(),
		engine:      engine.New(engine.DepthForDifficulty(difficulty)),
		humanColor:  humanColor,
		engineColor: humanColor.Opposite(),
		connections: newGameConnections(),
	}
	if g.engineColor == model.White {
		reply, err := g.engineReply()
		if err != nil {
			return nil, nil, err
		}
		return g, reply, nil
	}
	return g, nil, nil
}

// State snapshots the session for clients.
func (g *Game) State() BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.boardState()
}

func (g *Game) boardState() BoardState {
	var state BoardState
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.pos.PieceAt(model.Square{Row: row, Col: col})
			if piece == nil {
				continue
			}
			state.Board[row][col] = &PieceState{
				Type:   string(piece.Type),
				Color:  string(piece.Color),
				Symbol: piece.Symbol(),
			}
		}
	}
	state.CurrentPlayer = string(g.pos.SideToMove())
	state.InCheck = g.pos.InCheck(g.pos.SideToMove())
	state.GameOver = g.gameOver
	state.Winner = g.winner
	return state
}

// LegalDestinations lists where the piece on the given square may move.
func (g *Game) LegalDestinations(sq model.Square) ([]LegalDestination, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver {
		return nil, fmt.Errorf("%w: game is over", model.ErrInvalidMove)
	}
	if g.pos.SideToMove() != g.humanColor {
		return nil, fmt.Errorf("%w: not your turn", model.ErrInvalidMove)
	}
	piece := g.pos.PieceAt(sq)
	if piece == nil {
		return nil, fmt.Errorf("%w: no piece on %s", model.ErrInvalidMove, sq.Notation())
	}
	if piece.Color != g.humanColor {
		return nil, fmt.Errorf("%w: %s is not your piece", model.ErrInvalidMove, sq.Notation())
	}

	destinations := []LegalDestination{}
	for _, mv := range g.pos.LegalMovesFrom(sq) {
		destinations = append(destinations, LegalDestination{
			Row:         mv.To.Row,
			Col:         mv.To.Col,
			IsCapture:   mv.IsCapture,
			IsCastling:  mv.IsCastle,
			IsEnPassant: mv.IsEnPassant,
		})
	}
	return destinations, nil
}

// MakeMove validates and applies the human move, re-checks game over, and,
// while the game continues, applies the engine's reply. Validation failures
// leave the position untouched.
func (g *Game) MakeMove(from, to model.Square, promotion model.PieceType) (*MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gameOver {
		return nil, fmt.Errorf("%w: game is over", model.ErrInvalidMove)
	}
	if g.pos.SideToMove() != g.humanColor {
		return nil, fmt.Errorf("%w: not your turn", model.ErrInvalidMove)
	}

	mv, err := g.pos.FindMove(from, to, promotion)
	if err != nil {
		return nil, err
	}
	if err := g.applyMove(mv); err != nil {
		return nil, err
	}

	result := &MoveResult{Success: true}
	if !g.gameOver {
		reply, err := g.engineReply()
		if err != nil {
			return nil, err
		}
		result.EngineMove = reply
	}
	result.BoardState = g.boardState()

	go g.broadcastState(result.BoardState)
	return result, nil
}

// applyMove mutates the position and updates game-over state. Callers hold
// the session lock and have validated the move.
func (g *Game) applyMove(mv model.Move) error {
	g.pos.Apply(mv)
	if err := g.pos.Validate(); err != nil {
		return err
	}
	g.checkGameOver()
	return nil
}

func (g *Game) engineReply() (*EngineMove, error) {
	mv, _, err := g.engine.Search(g.pos)
	if err != nil {
		// No legal moves should have been caught by checkGameOver.
		return nil, fmt.Errorf("%w: engine asked to move with no legal moves", model.ErrIllegalState)
	}
	if err := g.applyMove(mv); err != nil {
		return nil, err
	}
	reply := &EngineMove{From: mv.From, To: mv.To}
	if mv.Promotion != "" {
		reply.Promotion = string(mv.Promotion)
	}
	return reply, nil
}

// checkGameOver runs after every applied half-move, human and engine alike.
func (g *Game) checkGameOver() {
	side := g.pos.SideToMove()
	if len(g.pos.LegalMoves(side)) == 0 {
		g.gameOver = true
		if g.pos.InCheck(side) {
			winner := string(side.Opposite())
			g.winner = &winner
		} else {
			draw := "draw"
			g.winner = &draw
		}
		return
	}
	if g.pos.HalfmoveClock() >= 100 || g.pos.InsufficientMaterial() {
		g.gameOver = true
		draw := "draw"
		g.winner = &draw
	}
}

// RegisterConnection adds a WebSocket observer and sends it the current state.
func (g *Game) RegisterConnection(conn *websocket.Conn) {
	connID := fmt.Sprintf("%p", conn)
	g.connections.mu.Lock()
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState(g.State())
}

func (g *Game) UnregisterConnection(conn *websocket.Conn) {
	connID := fmt.Sprintf("%p", conn)
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, connID)
}

func (g *Game) broadcastState(state BoardState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal board state: %v", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for connID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("send state to %s: %v", connID, err)
			delete(g.connections.connections, connID)
		}
	}
}
