package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"

	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

// GameService is the facade the transport layers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{gameManager: gameManager}
}

// NewGameResult is the response payload for a freshly created game.
type NewGameResult struct {
	GameID     string      `json:"game_id"`
	BoardState BoardState  `json:"board_state"`
	EngineMove *EngineMove `json:"engine_move,omitempty"`
}

// NewGame creates a session. Difficulty levels run 1..5; color is the
// human's side.
func (gs *GameService) NewGame(difficulty int, color string) (*NewGameResult, error) {
	humanColor := model.White
	if color == string(model.Black) {
		humanColor = model.Black
	}

	game, engineMove, err := gs.gameManager.CreateGame(difficulty, humanColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &NewGameResult{
		GameID:     game.ID,
		BoardState: game.State(),
		EngineMove: engineMove,
	}, nil
}

func (gs *GameService) BoardState(gameID string) (BoardState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return BoardState{}, err
	}
	return game.State(), nil
}

func (gs *GameService) LegalMoves(gameID string, row, col int) ([]LegalDestination, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalDestinations(model.Square{Row: row, Col: col})
}

func (gs *GameService) MakeMove(gameID string, from, to model.Square, promotion string) (*MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	var promo model.PieceType
	if promotion != "" {
		kind, ok := model.PromotionToken(promotion)
		if !ok {
			return nil, fmt.Errorf("%w: unknown promotion piece %q", model.ErrInvalidMove, promotion)
		}
		promo = kind
	}

	return game.MakeMove(from, to, promo)
}

func (gs *GameService) RegisterConnection(gameID string, conn *websocket.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	game.RegisterConnection(conn)
	return nil
}

func (gs *GameService) UnregisterConnection(gameID string, conn *websocket.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(conn)
}
