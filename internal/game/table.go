package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroomlabs/holdem/internal/deck"
)

// SeatConfig describes one seat at table construction time.
type SeatConfig struct {
	ID    PlayerID // optional; derived from the seat index when empty
	Name  string
	Chips int
}

// Table owns the players, the dealer button, the blinds, the board and the
// deck for a session. Seats are fixed for the table's lifetime, in clockwise
// order.
type Table struct {
	Players      []*Player
	DealerButton int
	SmallBlind   int
	BigBlind     int
	Board        []deck.Card
	Deck         *deck.Deck
}

// NewTable seats the configured players. A nil rng shuffles from a
// time-seeded source; pass randutil.New(seed) for reproducible deals.
func NewTable(seats []SeatConfig, smallBlind, bigBlind int, rng *rand.Rand) (*Table, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("table needs at least 2 seats, got %d", len(seats))
	}
	if len(seats) > 10 {
		return nil, fmt.Errorf("table supports at most 10 seats, got %d", len(seats))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}

	players := make([]*Player, len(seats))
	for i, seat := range seats {
		if seat.Chips < 0 {
			return nil, fmt.Errorf("seat %d has negative chips", i)
		}
		id := seat.ID
		if id == "" {
			id = PlayerID(fmt.Sprintf("seat-%d", i))
		}
		players[i] = &Player{
			ID:    id,
			Name:  seat.Name,
			Seat:  i,
			Chips: seat.Chips,
		}
	}

	return &Table{
		Players:    players,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Board:      make([]deck.Card, 0, 5),
		Deck:       deck.New(rng),
	}, nil
}

// NextOccupiedSeat returns the first seat strictly after fromExclusive
// (wrapping) whose player is not sitting out, or -1 if none qualify.
func (t *Table) NextOccupiedSeat(fromExclusive int) int {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		seat := (fromExclusive + i) % n
		if t.Players[seat].Status != SittingOut {
			return seat
		}
	}
	return -1
}

// AdvanceButton moves the dealer button to the next seat that is not sitting
// out, the same occupancy rule the blind and action order use.
func (t *Table) AdvanceButton() {
	if next := t.NextOccupiedSeat(t.DealerButton); next != -1 {
		t.DealerButton = next
		return
	}
	t.DealerButton = (t.DealerButton + 1) % len(t.Players)
}

// TotalChips returns the sum of all stacks, for chip conservation checks.
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.Players {
		total += p.Chips
	}
	return total
}

// PostBlinds commits the small and big blinds, capped by each stack, and
// records them into pot. The small blind sits after the button, the big
// blind after the small blind.
func (t *Table) PostBlinds(pot *Pot) (sb, bb *Player, err error) {
	sbSeat := t.NextOccupiedSeat(t.DealerButton)
	if sbSeat == -1 {
		return nil, nil, ErrNotEnoughPlayers
	}
	bbSeat := t.NextOccupiedSeat(sbSeat)
	if bbSeat == -1 || bbSeat == sbSeat {
		return nil, nil, ErrNotEnoughPlayers
	}

	sb = t.Players[sbSeat]
	bb = t.Players[bbSeat]
	pot.Add(sb.ID, sb.Commit(t.SmallBlind))
	pot.Add(bb.ID, bb.Commit(t.BigBlind))
	return sb, bb, nil
}

// DealHoleCards deals two cards to every seated player over two passes,
// starting after the button. Sitting-out seats are skipped.
func (t *Table) DealHoleCards() error {
	start := t.NextOccupiedSeat(t.DealerButton)
	if start == -1 {
		return ErrNotEnoughPlayers
	}
	n := len(t.Players)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			player := t.Players[(start+i)%n]
			if player.Status == SittingOut {
				continue
			}
			card, err := t.Deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			player.HoleCards = append(player.HoleCards, card)
		}
	}
	return nil
}

// DealFlop burns one card and deals three to the board.
func (t *Table) DealFlop() error {
	return t.dealBoard(3)
}

// DealTurn burns one card and deals one to the board.
func (t *Table) DealTurn() error {
	return t.dealBoard(1)
}

// DealRiver burns one card and deals one to the board.
func (t *Table) DealRiver() error {
	return t.dealBoard(1)
}

func (t *Table) dealBoard(n int) error {
	if _, err := t.Deck.Draw(); err != nil { // burn
		return fmt.Errorf("burning: %w", err)
	}
	cards, err := t.Deck.DrawN(n)
	if err != nil {
		return fmt.Errorf("dealing board: %w", err)
	}
	t.Board = append(t.Board, cards...)
	return nil
}

// PlayerByID finds a seated player, or nil.
func (t *Table) PlayerByID(id PlayerID) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
