package dealer

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/game"
)

// HandView is the state an agent sees when asked to act: its own cards and
// the public table state, never another player's holding.
type HandView struct {
	HandID     string
	Street     game.Street
	Board      []deck.Card
	HoleCards  []deck.Card
	PotChips   int
	CurrentBet int
	Owed       int
	MinRaise   int
	Chips      int
	BigBlind   int
}

// ValidAction is one action the acting player may take. For Bet and Raise,
// MinChips and MaxChips bound the legal sizing; other actions carry no
// amount.
type ValidAction struct {
	Type     game.ActionType
	MinChips int
	MaxChips int
}

// Decision is an agent's chosen action.
type Decision struct {
	Type  game.ActionType
	Chips int
}

// Agent decides actions for one seat. Implementations must not block
// indefinitely; the dealer folds a seat whose agent outlives the action
// timeout.
type Agent interface {
	Decide(view HandView, valid []ValidAction) Decision
}

// ForStrategy returns the agent for a configured strategy name.
func ForStrategy(strategy string, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	switch strategy {
	case "call":
		return NewCallAgent(logger), nil
	case "fold":
		return NewFoldAgent(logger), nil
	case "rand":
		return NewRandAgent(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// CallAgent checks when it can and calls when it must.
type CallAgent struct {
	logger *log.Logger
}

// NewCallAgent creates a new CallAgent instance
func NewCallAgent(logger *log.Logger) *CallAgent {
	return &CallAgent{logger: logger}
}

func (c *CallAgent) Decide(view HandView, valid []ValidAction) Decision {
	if hasAction(game.Check, valid) {
		return Decision{Type: game.Check}
	}
	if hasAction(game.Call, valid) {
		return Decision{Type: game.Call}
	}
	return Decision{Type: game.Fold}
}

// FoldAgent gives up on every hand, checking only when it is free.
type FoldAgent struct {
	logger *log.Logger
}

// NewFoldAgent creates a new FoldAgent instance
func NewFoldAgent(logger *log.Logger) *FoldAgent {
	return &FoldAgent{logger: logger}
}

func (f *FoldAgent) Decide(view HandView, valid []ValidAction) Decision {
	if hasAction(game.Check, valid) {
		return Decision{Type: game.Check}
	}
	return Decision{Type: game.Fold}
}

// RandAgent picks a uniform random legal action, with random sizing for
// bets and raises.
type RandAgent struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandAgent creates a new RandAgent instance
func NewRandAgent(rng *rand.Rand, logger *log.Logger) *RandAgent {
	return &RandAgent{rng: rng, logger: logger}
}

func (r *RandAgent) Decide(view HandView, valid []ValidAction) Decision {
	if len(valid) == 0 {
		return Decision{Type: game.Fold}
	}

	choice := valid[r.rng.IntN(len(valid))]
	chips := choice.MinChips
	if (choice.Type == game.Bet || choice.Type == game.Raise) && choice.MaxChips > choice.MinChips {
		chips = choice.MinChips + r.rng.IntN(choice.MaxChips-choice.MinChips+1)
	}
	return Decision{Type: choice.Type, Chips: chips}
}

func hasAction(action game.ActionType, valid []ValidAction) bool {
	for _, va := range valid {
		if va.Type == action {
			return true
		}
	}
	return false
}
