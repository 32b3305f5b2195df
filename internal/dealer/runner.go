// Package dealer runs complete hands: it collects decisions from seated
// agents, enforces the action timeout, and pays out the pot at showdown.
package dealer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/evaluator"
	"github.com/cardroomlabs/holdem/internal/game"
	"github.com/cardroomlabs/holdem/internal/handid"
)

// HandResult is the settled outcome of one hand.
type HandResult struct {
	ID             string
	PotChips       int
	Board          []deck.Card
	WentToShowdown bool
	Winners        []game.PlayerID
	// NetChips maps player ID to chips won or lost over the hand.
	NetChips map[string]int
}

// Dealer drives hands on one table. Register an agent per seat before the
// first RunHand; seats without an agent are folded when action reaches them.
type Dealer struct {
	engine  *game.HandEngine
	agents  map[game.PlayerID]Agent
	logger  *log.Logger
	clock   quartz.Clock
	timeout time.Duration
	ids     *handid.Generator
}

// NewDealer creates a dealer for the engine's table. A timeout of zero
// disables the action clock; a nil clock falls back to real time.
func NewDealer(engine *game.HandEngine, logger *log.Logger, timeout time.Duration, clock quartz.Clock) *Dealer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Dealer{
		engine:  engine,
		agents:  make(map[game.PlayerID]Agent),
		logger:  logger.WithPrefix("dealer"),
		clock:   clock,
		timeout: timeout,
		ids:     handid.NewGenerator(nil),
	}
}

// Seat assigns the agent that acts for a player.
func (d *Dealer) Seat(id game.PlayerID, agent Agent) {
	d.agents[id] = agent
}

// RunHand deals and plays one complete hand, returning the settled result.
// The context cancels the hand between actions.
func (d *Dealer) RunHand(ctx context.Context) (*HandResult, error) {
	table := d.engine.Table()

	before := make(map[game.PlayerID]int, len(table.Players))
	for _, p := range table.Players {
		before[p.ID] = p.Chips
	}

	if err := d.engine.StartHand(); err != nil {
		return nil, err
	}
	id := d.ids.New()
	d.logger.Info("hand started",
		"hand", id,
		"button", table.DealerButton,
		"pot", d.engine.Pot().Total())

	for d.engine.Street() != game.Showdown {
		if err := d.runBettingRound(ctx, id); err != nil {
			return nil, err
		}
		if d.engine.Street() == game.Showdown {
			break
		}
		if err := d.engine.DealNextStreet(); err != nil {
			return nil, err
		}
	}

	result := d.settle(id, before)
	table.AdvanceButton()

	d.logger.Info("hand complete",
		"hand", id,
		"pot", result.PotChips,
		"showdown", result.WentToShowdown,
		"winners", result.Winners)
	return result, nil
}

func (d *Dealer) runBettingRound(ctx context.Context, handID string) error {
	for {
		actor := d.engine.CurrentActor()
		if actor == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		decision := d.decide(ctx, handID, actor)
		settled, err := d.engine.Apply(game.ActionRequest{
			Player: actor.ID,
			Type:   decision.Type,
			Chips:  decision.Chips,
		})
		if err != nil {
			// An agent that picks an illegal action forfeits its turn:
			// check when that is free, otherwise fold.
			d.logger.Warn("illegal action, forcing fallback",
				"hand", handID,
				"player", actor.Name,
				"action", decision.Type,
				"error", err)
			settled, err = d.engine.Apply(d.fallback(actor))
			if err != nil {
				return fmt.Errorf("fallback action rejected: %w", err)
			}
		}

		d.logger.Debug("action applied",
			"hand", handID,
			"player", actor.Name,
			"action", decision.Type,
			"chips", decision.Chips,
			"pot", d.engine.Pot().Total())

		if settled {
			return nil
		}
	}
}

// decide asks the actor's agent for a decision, folding the seat if the
// agent outlives the action timeout.
func (d *Dealer) decide(ctx context.Context, handID string, actor *game.Player) Decision {
	agent := d.agents[actor.ID]
	if agent == nil {
		d.logger.Warn("no agent seated, folding", "hand", handID, "player", actor.Name)
		return d.fallbackDecision(actor)
	}

	view := d.viewFor(handID, actor)
	valid := d.validActions(actor)

	decisionCh := make(chan Decision, 1)
	go func() {
		decisionCh <- agent.Decide(view, valid)
	}()

	if d.timeout <= 0 {
		select {
		case decision := <-decisionCh:
			return decision
		case <-ctx.Done():
			return d.fallbackDecision(actor)
		}
	}

	timeoutFired := make(chan struct{})
	timer := d.clock.AfterFunc(d.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case decision := <-decisionCh:
		return decision
	case <-timeoutFired:
		d.logger.Warn("action timeout, folding", "hand", handID, "player", actor.Name)
		return d.fallbackDecision(actor)
	case <-ctx.Done():
		return d.fallbackDecision(actor)
	}
}

func (d *Dealer) fallback(actor *game.Player) game.ActionRequest {
	decision := d.fallbackDecision(actor)
	return game.ActionRequest{Player: actor.ID, Type: decision.Type}
}

func (d *Dealer) fallbackDecision(actor *game.Player) Decision {
	b := d.engine.Betting()
	if b.ContribOf(actor.ID) == b.CurrentBet {
		return Decision{Type: game.Check}
	}
	return Decision{Type: game.Fold}
}

// viewFor builds the acting player's view of the table.
func (d *Dealer) viewFor(handID string, actor *game.Player) HandView {
	table := d.engine.Table()
	b := d.engine.Betting()
	return HandView{
		HandID:     handID,
		Street:     b.Street,
		Board:      append([]deck.Card(nil), table.Board...),
		HoleCards:  append([]deck.Card(nil), actor.HoleCards...),
		PotChips:   d.engine.Pot().Total(),
		CurrentBet: b.CurrentBet,
		Owed:       b.CurrentBet - b.ContribOf(actor.ID),
		MinRaise:   b.MinRaise,
		Chips:      actor.Chips,
		BigBlind:   table.BigBlind,
	}
}

// validActions enumerates the actor's legal actions with sizing bounds.
func (d *Dealer) validActions(actor *game.Player) []ValidAction {
	table := d.engine.Table()
	b := d.engine.Betting()
	owed := b.CurrentBet - b.ContribOf(actor.ID)

	valid := []ValidAction{{Type: game.Fold}}
	if owed == 0 {
		valid = append(valid, ValidAction{Type: game.Check})
	} else {
		valid = append(valid, ValidAction{Type: game.Call})
	}

	if b.CurrentBet == 0 && actor.Chips >= table.BigBlind {
		valid = append(valid, ValidAction{
			Type:     game.Bet,
			MinChips: table.BigBlind,
			MaxChips: actor.Chips,
		})
	}

	if b.CurrentBet > 0 && actor.Chips > owed {
		// An all-in raise may fall short of the minimum increment.
		maxIncrement := actor.Chips - owed
		minIncrement := b.MinRaise
		if minIncrement > maxIncrement {
			minIncrement = maxIncrement
		}
		valid = append(valid, ValidAction{
			Type:     game.Raise,
			MinChips: minIncrement,
			MaxChips: maxIncrement,
		})
	}

	return valid
}

// settle pays the pot out and reports each player's net for the hand.
func (d *Dealer) settle(handID string, before map[game.PlayerID]int) *HandResult {
	table := d.engine.Table()
	pot := d.engine.Pot()
	inHand := d.engine.InHandPlayers()

	result := &HandResult{
		ID:             handID,
		PotChips:       pot.Total(),
		Board:          append([]deck.Card(nil), table.Board...),
		WentToShowdown: len(inHand) >= 2,
	}

	if len(inHand) == 1 {
		// Everyone else folded: the pot moves without showing a hand.
		winner := inHand[0]
		winner.Chips += pot.Total()
		result.Winners = []game.PlayerID{winner.ID}
	} else if len(inHand) > 1 {
		result.Winners = d.payShowdown(handID, inHand)
	}

	result.NetChips = make(map[string]int, len(table.Players))
	for _, p := range table.Players {
		result.NetChips[string(p.ID)] = p.Chips - before[p.ID]
	}
	return result
}

// payShowdown evaluates every hand still live and splits each side pot
// among its best eligible hands. Odd chips go to the earliest seat.
func (d *Dealer) payShowdown(handID string, inHand []*game.Player) []game.PlayerID {
	table := d.engine.Table()

	scores := make(map[game.PlayerID]uint32, len(inHand))
	byID := make(map[game.PlayerID]*game.Player, len(inHand))
	for _, p := range inHand {
		cards := append(append([]deck.Card(nil), p.HoleCards...), table.Board...)
		hand, err := evaluator.EvaluateBest(cards)
		if err != nil {
			// Only reachable with corrupted hand state.
			d.logger.Error("showdown evaluation failed",
				"hand", handID, "player", p.Name, "error", err)
			continue
		}
		scores[p.ID] = hand.Score
		byID[p.ID] = p
		d.logger.Debug("showdown hand",
			"hand", handID,
			"player", p.Name,
			"category", hand.Category,
			"cards", hand.Cards)
	}

	var winners []game.PlayerID
	seen := make(map[game.PlayerID]bool)
	for _, side := range d.engine.Pot().BuildSidePots(table.Players) {
		best := uint32(0)
		for _, id := range side.Eligible {
			if scores[id] > best {
				best = scores[id]
			}
		}

		var potWinners []*game.Player
		for _, id := range side.Eligible {
			if scores[id] == best && byID[id] != nil {
				potWinners = append(potWinners, byID[id])
			}
		}
		if len(potWinners) == 0 {
			continue
		}
		sort.Slice(potWinners, func(i, j int) bool {
			return potWinners[i].Seat < potWinners[j].Seat
		})

		share := side.Amount / len(potWinners)
		remainder := side.Amount % len(potWinners)
		for i, p := range potWinners {
			p.Chips += share
			if i == 0 {
				p.Chips += remainder
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				winners = append(winners, p.ID)
			}
		}
	}
	return winners
}
