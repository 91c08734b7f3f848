package model

import "errors"

var (
	// ErrInvalidMove is returned when a requested move is not in the
	// current legal-move set. The position is left unchanged.
	ErrInvalidMove = errors.New("invalid move")

	// ErrPromotionRequired is returned when a pawn move reaches the final
	// rank without a promotion piece. The caller must resubmit with one.
	ErrPromotionRequired = errors.New("promotion required")

	// ErrNoActiveGame is returned for operations referencing an unknown
	// or expired game session.
	ErrNoActiveGame = errors.New("game not found")

	// ErrIllegalState marks a broken internal invariant, e.g. a side with
	// no king. It indicates a generation or application bug, not a
	// recoverable condition.
	ErrIllegalState = errors.New("illegal position state")
)
