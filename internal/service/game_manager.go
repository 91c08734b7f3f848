package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

// GameManager is the session registry: one exclusively-owned Game per id.
// The registry lock only guards the map; per-game sequencing is the Game's
// own mutex.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewGameManager() *GameManager {
	return &GameManager{games: make(map[string]*Game)}
}

// CreateGame starts a new session and returns it with the engine's opening
// move when the engine plays white.
func (gm *GameManager) CreateGame(difficulty int, humanColor model.Color) (*Game, *EngineMove, error) {
	game, engineMove, err := NewGame(uuid.New().String(), difficulty, humanColor)
	if err != nil {
		return nil, nil, err
	}

	gm.mu.Lock()
	gm.games[game.ID] = game
	gm.mu.Unlock()

	return game, engineMove, nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, model.ErrNoActiveGame
	}
	return game, nil
}

// RemoveGame drops an ended or abandoned session.
func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}
