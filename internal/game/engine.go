package game

// ActionType represents a player action
type ActionType int

const (
	Check ActionType = iota
	Call
	Bet
	Raise
	Fold
)

func (a ActionType) String() string {
	return [...]string{"check", "call", "bet", "raise", "fold"}[a]
}

// ActionRequest is one submitted action. For Bet, Chips is the bet size; for
// Raise, Chips is the raise increment above the current bet. Check, Call and
// Fold ignore Chips.
type ActionRequest struct {
	Player PlayerID
	Type   ActionType
	Chips  int
}

// HandEngine drives one hand: it validates and applies actions, advances
// streets and detects when a betting round has settled. It is not safe for
// concurrent use; callers must serialize Apply and DealNextStreet against a
// single engine. Independent engines never share state.
type HandEngine struct {
	table   *Table
	pot     *Pot
	betting *BettingState
}

// NewHandEngine wraps a table in a fresh engine.
func NewHandEngine(table *Table) *HandEngine {
	return &HandEngine{
		table:   table,
		pot:     NewPot(),
		betting: NewBettingState(),
	}
}

// Table returns the engine's table.
func (e *HandEngine) Table() *Table { return e.table }

// Pot returns the hand's contribution ledger.
func (e *HandEngine) Pot() *Pot { return e.pot }

// Betting returns the per-street wagering state.
func (e *HandEngine) Betting() *BettingState { return e.betting }

// Street returns the current street.
func (e *HandEngine) Street() Street { return e.betting.Street }

// CurrentActor returns the player due to act, or nil when no seat holds the
// turn.
func (e *HandEngine) CurrentActor() *Player {
	if e.betting.ToActSeat < 0 {
		return nil
	}
	return e.table.Players[e.betting.ToActSeat]
}

// StartHand resets the deck, pot and betting state, posts blinds, deals hole
// cards and hands the turn to the seat after the big blind. Players who
// busted in a previous hand are parked sitting out.
func (e *HandEngine) StartHand() error {
	t := e.table

	for _, p := range t.Players {
		p.HoleCards = p.HoleCards[:0]
		switch {
		case p.Chips == 0:
			p.Status = SittingOut
		case p.Status == Folded || p.Status == AllIn:
			p.Status = Active
		}
	}

	active := 0
	for _, p := range t.Players {
		if p.Status == Active {
			active++
		}
	}
	if active < 2 {
		return ErrNotEnoughPlayers
	}

	t.Board = t.Board[:0]
	t.Deck.Reset()
	t.Deck.Shuffle()
	e.pot.Reset()

	e.betting = NewBettingState()
	e.betting.ClearStreet()
	e.betting.MinRaise = t.BigBlind

	sb, bb, err := t.PostBlinds(e.pot)
	if err != nil {
		return err
	}
	e.betting.Post(sb.ID, e.pot.ContribOf(sb.ID))
	e.betting.Post(bb.ID, e.pot.ContribOf(bb.ID))
	e.betting.CurrentBet = t.BigBlind

	if err := t.DealHoleCards(); err != nil {
		return err
	}

	e.betting.ToActSeat = e.nextAbleSeat(bb.Seat)
	return nil
}

// Apply validates one action against the betting rules and applies it. It
// reports whether the betting round has settled. A rejected action leaves
// the hand untouched.
func (e *HandEngine) Apply(req ActionRequest) (settled bool, err error) {
	b := e.betting
	if b.Street == Showdown {
		return false, ErrHandOver
	}
	if b.ToActSeat < 0 {
		return false, ErrNoCurrentTurn
	}
	actor := e.table.Players[b.ToActSeat]
	if actor.ID != req.Player {
		return false, ErrOutOfTurn
	}
	if actor.Status != Active {
		return false, illegal(req.Type, "player is %s and cannot act", actor.Status)
	}

	contrib := b.ContribOf(actor.ID)
	switch req.Type {
	case Fold:
		actor.Status = Folded

	case Check:
		if contrib != b.CurrentBet {
			return false, illegal(Check, "facing a bet of %d", b.CurrentBet-contrib)
		}

	case Call:
		owed := b.CurrentBet - contrib
		if owed <= 0 {
			return false, illegal(Call, "nothing owed")
		}
		committed := actor.Commit(owed)
		e.pot.Add(actor.ID, committed)
		b.Post(actor.ID, committed)

	case Bet:
		if b.CurrentBet != 0 {
			return false, illegal(Bet, "a bet of %d already exists", b.CurrentBet)
		}
		if req.Chips < e.table.BigBlind {
			return false, illegal(Bet, "bet %d below big blind %d", req.Chips, e.table.BigBlind)
		}
		committed := actor.Commit(req.Chips)
		e.pot.Add(actor.ID, committed)
		b.Post(actor.ID, committed)
		b.MinRaise = req.Chips
		b.LastAggressorSeat = actor.Seat

	case Raise:
		if b.CurrentBet == 0 {
			return false, illegal(Raise, "no bet to raise")
		}
		if req.Chips <= 0 {
			return false, illegal(Raise, "raise increment must be positive")
		}
		owed := b.CurrentBet - contrib
		allIn := owed+req.Chips >= actor.Chips
		if req.Chips < b.MinRaise && !allIn {
			return false, illegal(Raise, "raise %d below minimum %d", req.Chips, b.MinRaise)
		}
		committed := actor.Commit(owed + req.Chips)
		e.pot.Add(actor.ID, committed)
		b.Post(actor.ID, committed)
		b.MinRaise = req.Chips
		b.LastAggressorSeat = actor.Seat

	default:
		return false, illegal(req.Type, "unknown action")
	}

	// A lone remaining player wins outright: jump straight to showdown,
	// bet matching no longer matters.
	if e.inHandCount() == 1 {
		b.Street = Showdown
		b.ToActSeat = -1
		return true, nil
	}

	b.ToActSeat = e.nextUnmatchedSeat(actor.Seat)
	return b.ToActSeat == -1, nil
}

// DealNextStreet closes the current betting round: it clears the street
// ledger, deals the community cards owed by the street being left, and opens
// the next round after the dealer button. Advancing past showdown is a
// no-op.
func (e *HandEngine) DealNextStreet() error {
	b := e.betting
	if b.Street == Showdown {
		return nil
	}

	b.ClearStreet()

	var err error
	switch b.Street {
	case Preflop:
		err = e.table.DealFlop()
	case Flop:
		err = e.table.DealTurn()
	case Turn:
		err = e.table.DealRiver()
	case River:
		// no cards owed; the river round closes into showdown
	}
	if err != nil {
		return err
	}

	b.AdvanceStreet()
	if b.Street == Showdown {
		b.ToActSeat = -1
		return nil
	}

	b.ToActSeat = e.nextAbleSeat(e.table.DealerButton)
	b.MinRaise = e.table.BigBlind
	return nil
}

// InHandPlayers returns the players still eligible for the pot, in seat
// order.
func (e *HandEngine) InHandPlayers() []*Player {
	players := make([]*Player, 0, len(e.table.Players))
	for _, p := range e.table.Players {
		if p.InHand() {
			players = append(players, p)
		}
	}
	return players
}

func (e *HandEngine) inHandCount() int {
	return len(e.InHandPlayers())
}

// nextAbleSeat finds the next seat after fromExclusive whose player can act
// at the start of a round, or -1 (for example an all-in runout).
func (e *HandEngine) nextAbleSeat(fromExclusive int) int {
	n := len(e.table.Players)
	for i := 1; i <= n; i++ {
		seat := (fromExclusive + i) % n
		if e.table.Players[seat].Status == Active {
			return seat
		}
	}
	return -1
}

// nextUnmatchedSeat finds the next seat after fromExclusive whose player can
// act and has not matched the current bet, or -1 when the round has settled.
func (e *HandEngine) nextUnmatchedSeat(fromExclusive int) int {
	n := len(e.table.Players)
	for i := 1; i <= n; i++ {
		seat := (fromExclusive + i) % n
		p := e.table.Players[seat]
		if p.Status == Active && e.betting.ContribOf(p.ID) < e.betting.CurrentBet {
			return seat
		}
	}
	return -1
}
