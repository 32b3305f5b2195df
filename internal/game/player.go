package game

import "github.com/cardroomlabs/holdem/internal/deck"

// PlayerID is an opaque, process-unique player identifier.
type PlayerID string

// Status describes a player's participation in the current hand.
type Status int

const (
	Active Status = iota
	Folded
	AllIn
	SittingOut
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Folded:
		return "folded"
	case AllIn:
		return "all-in"
	case SittingOut:
		return "sitting-out"
	default:
		return "unknown"
	}
}

// Player is one seat's chip stack and hand state. Owned by Table.
type Player struct {
	ID        PlayerID
	Name      string
	Seat      int
	Chips     int
	Status    Status
	HoleCards []deck.Card
}

// Commit moves up to amount chips out of the stack and returns how many
// actually moved. Committing the whole stack flips the player to all-in.
func (p *Player) Commit(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	if amount < 0 {
		amount = 0
	}
	p.Chips -= amount
	if p.Chips == 0 && amount > 0 {
		p.Status = AllIn
	}
	return amount
}

// InHand returns true while the player can still win a share of the pot.
func (p *Player) InHand() bool {
	return p.Status == Active || p.Status == AllIn
}
