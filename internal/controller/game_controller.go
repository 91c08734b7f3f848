package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emiletimothy/competitive-chess-bot/internal/model"
	"github.com/emiletimothy/competitive-chess-bot/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type newGameRequest struct {
	Difficulty int    `json:"difficulty"`
	Color      string `json:"color"`
}

type makeMoveRequest struct {
	From      model.Square `json:"from"`
	To        model.Square `json:"to"`
	Promotion string       `json:"promotion"`
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	req := newGameRequest{Difficulty: 4, Color: string(model.White)}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}

	result, err := gc.gameService.NewGame(req.Difficulty, req.Color)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

func (gc *GameController) GetBoardState(c *fiber.Ctx) error {
	state, err := gc.gameService.BoardState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	row, err := c.ParamsInt("row")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad row"})
	}
	col, err := c.ParamsInt("col")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad col"})
	}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), row, col)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"legal_moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req makeMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	result, err := gc.gameService.MakeMove(c.Params("gameId"), req.From, req.To, req.Promotion)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// errorResponse maps the model's error taxonomy onto HTTP statuses. Failed
// validations always leave the position unchanged, so 4xx responses are safe
// to retry with a corrected request.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrNoActiveGame):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, model.ErrPromotionRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":              err.Error(),
			"promotion_required": true,
		})
	case errors.Is(err, model.ErrInvalidMove):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		// Includes ErrIllegalState: a defect, not a client problem.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
