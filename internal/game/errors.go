package game

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfTurn is returned when the acting player is not the seat due
	// to act.
	ErrOutOfTurn = errors.New("action out of turn")

	// ErrNoCurrentTurn is returned when an action arrives while no seat
	// holds the turn.
	ErrNoCurrentTurn = errors.New("no seat is due to act")

	// ErrNotEnoughPlayers is returned by StartHand with fewer than two
	// seats able to play.
	ErrNotEnoughPlayers = errors.New("not enough players to start a hand")

	// ErrHandOver is returned for actions submitted after showdown.
	ErrHandOver = errors.New("hand is over")
)

// IllegalActionError reports an action that violates the betting rules. The
// hand state is left untouched by the rejected action.
type IllegalActionError struct {
	Action ActionType
	Rule   string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal %s: %s", e.Action, e.Rule)
}

func illegal(action ActionType, format string, args ...any) error {
	return &IllegalActionError{Action: action, Rule: fmt.Sprintf(format, args...)}
}
