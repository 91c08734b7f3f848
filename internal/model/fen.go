package model

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[byte]Piece{
	'P': {Type: Pawn, Color: White}, 'N': {Type: Knight, Color: White},
	'B': {Type: Bishop, Color: White}, 'R': {Type: Rook, Color: White},
	'Q': {Type: Queen, Color: White}, 'K': {Type: King, Color: White},
	'p': {Type: Pawn, Color: Black}, 'n': {Type: Knight, Color: Black},
	'b': {Type: Bishop, Color: Black}, 'r': {Type: Rook, Color: Black},
	'q': {Type: Queen, Color: Black}, 'k': {Type: King, Color: Black},
}

// ParseFEN builds a position from a FEN string. Castled-already state is not
// part of FEN and defaults to false.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	p := &Position{fullmoveNumber: 1}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	whiteKings, blackKings := 0, 0
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			piece, ok := fenPieces[c]
			if !ok || col > 7 {
				return nil, fmt.Errorf("fen: bad rank %q", rank)
			}
			pc := piece
			p.board[row][col] = &pc
			if piece.Type == King {
				if piece.Color == White {
					p.whiteKing = Square{Row: row, Col: col}
					whiteKings++
				} else {
					p.blackKing = Square{Row: row, Col: col}
					blackKings++
				}
			}
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("fen: rank %q does not fill 8 files", rank)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("fen: %w", ErrIllegalState)
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.castling.WhiteKingside = true
			case 'Q':
				p.castling.WhiteQueenside = true
			case 'k':
				p.castling.BlackKingside = true
			case 'q':
				p.castling.BlackQueenside = true
			default:
				return nil, fmt.Errorf("fen: bad castling field %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, ok := SquareFromNotation(fields[3])
		if !ok {
			return nil, fmt.Errorf("fen: bad en passant square %q", fields[3])
		}
		p.enPassantTarget = &sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: bad halfmove clock %q", fields[4])
	}
	p.halfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: bad fullmove number %q", fields[5])
	}
	p.fullmoveNumber = fullmove

	return p, nil
}

// FEN serializes the position.
func (p *Position) FEN() string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := p.board[row][col]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			for c, fp := range fenPieces {
				if fp == *piece {
					b.WriteByte(c)
					break
				}
			}
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			b.WriteByte('/')
		}
	}

	side := "w"
	if p.sideToMove == Black {
		side = "b"
	}

	castle := ""
	if p.castling.WhiteKingside {
		castle += "K"
	}
	if p.castling.WhiteQueenside {
		castle += "Q"
	}
	if p.castling.BlackKingside {
		castle += "k"
	}
	if p.castling.BlackQueenside {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}

	ep := "-"
	if p.enPassantTarget != nil {
		ep = p.enPassantTarget.Notation()
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		b.String(), side, castle, ep, p.halfmoveClock, p.fullmoveNumber)
}
