package engine

import "errors"

// All engine errors are local and recoverable. A rejected action leaves the
// game state untouched and the caller is expected to re-present legal options.
var (
	// ErrInvalidAction is returned when an action is not legal for the
	// current state and turn
	ErrInvalidAction = errors.New("action not valid for current state")

	// ErrInsufficientFunds is returned when an amount exceeds the player's
	// available chips
	ErrInsufficientFunds = errors.New("insufficient chips")

	// ErrNotPlayersTurn is returned when a decision or action is requested
	// for a player who is not due to act
	ErrNotPlayersTurn = errors.New("not this player's turn")

	// ErrHandComplete is returned when an action arrives after the hand has
	// been resolved
	ErrHandComplete = errors.New("hand is complete")

	// ErrNotEnoughPlayers is returned when a hand cannot start with fewer
	// than two funded players
	ErrNotEnoughPlayers = errors.New("need at least 2 players with chips")
)
