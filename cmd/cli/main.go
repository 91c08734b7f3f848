package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"

	"github.com/emiletimothy/competitive-chess-bot/internal/engine"
	"github.com/emiletimothy/competitive-chess-bot/internal/model"
)

func main() {
	var level int
	var colorFlag string
	var fen string
	var profileCPU bool
	flag.IntVar(&level, "level", 3, "difficulty level 1..5")
	flag.StringVar(&colorFlag, "color", "white", "side to play: white or black")
	flag.StringVar(&fen, "fen", "", "start from a FEN position instead of the initial one")
	flag.BoolVar(&profileCPU, "profile", false, "write a CPU profile")
	flag.Parse()

	if profileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	humanColor := model.White
	if colorFlag == string(model.Black) {
		humanColor = model.Black
	}

	pos := model.NewPosition()
	if fen != "" {
		parsed, err := model.ParseFEN(fen)
		if err != nil {
			fmt.Println("bad fen:", err)
			os.Exit(1)
		}
		pos = parsed
	}

	eng := engine.New(engine.DepthForDifficulty(level))
	fmt.Printf("Playing %s against the engine (depth %d).\n", humanColor, eng.Depth())
	fmt.Println("Enter moves in coordinate notation (e2e4, e7e8q). Commands: moves, fen, quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n" + pos.String())
		side := pos.SideToMove()
		if pos.InCheck(side) {
			fmt.Println("CHECK!")
		}

		if over, result := gameResult(pos); over {
			fmt.Println(result)
			return
		}

		if side == humanColor {
			if !humanMove(pos, scanner) {
				return
			}
			continue
		}

		fmt.Println("Engine is thinking...")
		mv, score, err := eng.Search(pos)
		if err != nil {
			fmt.Println("engine error:", err)
			return
		}
		pos.Apply(mv)
		fmt.Printf("Engine plays %s (score %d, %d nodes)\n", mv, score, eng.Nodes())
	}
}

// humanMove reads input until a legal move is applied. Returns false on quit.
func humanMove(pos *model.Position, scanner *bufio.Scanner) bool {
	for {
		fmt.Print("\nYour move: ")
		if !scanner.Scan() {
			return false
		}
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch input {
		case "quit", "exit":
			fmt.Println("Thanks for playing!")
			return false
		case "moves":
			for _, mv := range pos.LegalMoves(pos.SideToMove()) {
				fmt.Print(mv, " ")
			}
			fmt.Println()
			continue
		case "fen":
			fmt.Println(pos.FEN())
			continue
		case "":
			continue
		}

		parsed, ok := model.MoveFromNotation(input)
		if !ok {
			fmt.Println("Could not parse that; use coordinates like e2e4.")
			continue
		}
		mv, err := pos.FindMove(parsed.From, parsed.To, parsed.Promotion)
		switch {
		case errors.Is(err, model.ErrPromotionRequired):
			fmt.Println("That pawn promotes: add a piece letter, e.g. e7e8q.")
			continue
		case err != nil:
			fmt.Println("Invalid move! Try again.")
			continue
		}
		pos.Apply(mv)
		return true
	}
}

func gameResult(pos *model.Position) (bool, string) {
	side := pos.SideToMove()
	if len(pos.LegalMoves(side)) == 0 {
		if pos.InCheck(side) {
			return true, fmt.Sprintf("Checkmate! %s wins.", side.Opposite())
		}
		return true, "Stalemate."
	}
	if pos.HalfmoveClock() >= 100 {
		return true, "Draw by the fifty-move rule."
	}
	if pos.InsufficientMaterial() {
		return true, "Draw by insufficient material."
	}
	return false, ""
}
