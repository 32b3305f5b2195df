package game

import "sort"

// Pot is the contribution ledger for one hand: total chips committed per
// player across all streets. It only ever grows; it is rebuilt at the start
// of each hand.
type Pot struct {
	contributions map[PlayerID]int
}

// NewPot creates an empty pot
func NewPot() *Pot {
	return &Pot{contributions: make(map[PlayerID]int)}
}

// Add records amount chips contributed by a player.
func (p *Pot) Add(id PlayerID, amount int) {
	p.contributions[id] += amount
}

// ContribOf returns a player's total contribution this hand.
func (p *Pot) ContribOf(id PlayerID) int {
	return p.contributions[id]
}

// Total returns the sum of all contributions.
func (p *Pot) Total() int {
	total := 0
	for _, amount := range p.contributions {
		total += amount
	}
	return total
}

// Reset clears the ledger for a new hand.
func (p *Pot) Reset() {
	p.contributions = make(map[PlayerID]int)
}

// SidePot is a slice of the pot capped at a contribution level. Only players
// who contributed at least the cap and are still in the hand can win it.
type SidePot struct {
	Amount   int
	Cap      int
	Eligible []PlayerID
}

// BuildSidePots partitions the pot into side pots, ascending by cap. With no
// all-ins this degenerates to a single pot at the highest contribution level.
func (p *Pot) BuildSidePots(players []*Player) []SidePot {
	caps := make([]int, 0, len(p.contributions))
	seen := make(map[int]bool)
	for _, amount := range p.contributions {
		if amount > 0 && !seen[amount] {
			seen[amount] = true
			caps = append(caps, amount)
		}
	}
	if len(caps) == 0 {
		return nil
	}
	sort.Ints(caps)

	pots := make([]SidePot, 0, len(caps))
	prev := 0
	dead := 0
	for _, cap := range caps {
		pot := SidePot{Cap: cap}
		for _, amount := range p.contributions {
			slice := amount - prev
			if slice <= 0 {
				continue
			}
			if slice > cap-prev {
				slice = cap - prev
			}
			pot.Amount += slice
		}
		prev = cap

		// Eligibility: contributed at least this cap and still in hand.
		for _, player := range players {
			if player.InHand() && p.contributions[player.ID] >= cap {
				pot.Eligible = append(pot.Eligible, player.ID)
			}
		}

		// A slice nobody can win is dead money; it rolls into the nearest
		// winnable pot so the partition still sums to the pot total.
		if len(pot.Eligible) == 0 {
			dead += pot.Amount
			continue
		}
		pot.Amount += dead
		dead = 0
		pots = append(pots, pot)
	}
	if dead > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += dead
	}
	return pots
}
