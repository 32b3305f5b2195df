package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// BettingState is the per-street wagering ledger: who has put in what on the
// current street, the bet to match, and whose turn it is. It is cleared at
// the start of every street.
type BettingState struct {
	contrib map[PlayerID]int

	CurrentBet        int
	MinRaise          int
	ToActSeat         int
	LastAggressorSeat int
	Street            Street
}

// NewBettingState creates a betting ledger positioned before the preflop
// street with no turn holder.
func NewBettingState() *BettingState {
	return &BettingState{
		contrib:           make(map[PlayerID]int),
		ToActSeat:         -1,
		LastAggressorSeat: -1,
		Street:            Preflop,
	}
}

// ContribOf returns the player's contribution on the current street.
func (b *BettingState) ContribOf(id PlayerID) int {
	return b.contrib[id]
}

// Post adds to the player's street contribution, raising CurrentBet when the
// new total exceeds it.
func (b *BettingState) Post(id PlayerID, amount int) {
	b.contrib[id] += amount
	if b.contrib[id] > b.CurrentBet {
		b.CurrentBet = b.contrib[id]
	}
}

// ClearStreet resets the per-street state for a new betting round.
func (b *BettingState) ClearStreet() {
	b.contrib = make(map[PlayerID]int)
	b.CurrentBet = 0
	b.LastAggressorSeat = -1
}

// AdvanceStreet moves one street forward. Showdown is terminal; advancing
// past it is a no-op.
func (b *BettingState) AdvanceStreet() {
	if b.Street < Showdown {
		b.Street++
	}
}
