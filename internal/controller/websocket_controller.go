package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/emiletimothy/competitive-chess-bot/internal/service"
	"github.com/emiletimothy/competitive-chess-bot/internal/ws"
)

// WebSocketController streams board states to observers of a game. Moves are
// made over the REST API; the socket is read only to detect disconnects.
type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection is called when a new WebSocket connection is established.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")

	if err := wsc.gameService.RegisterConnection(gameID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	wsc.gameService.UnregisterConnection(gameID, c)
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(map[string]string{"error": errorMsg})
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
