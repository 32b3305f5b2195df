package game

import "testing"

func potPlayers(statuses ...Status) []*Player {
	players := make([]*Player, len(statuses))
	for i, s := range statuses {
		players[i] = &Player{
			ID:     PlayerID([]string{"P1", "P2", "P3", "P4"}[i]),
			Seat:   i,
			Status: s,
		}
	}
	return players
}

func TestPotTotals(t *testing.T) {
	t.Parallel()
	pot := NewPot()
	pot.Add("P1", 50)
	pot.Add("P1", 25)
	pot.Add("P2", 100)

	if pot.Total() != 175 {
		t.Errorf("expected total 175, got %d", pot.Total())
	}
	if pot.ContribOf("P1") != 75 {
		t.Errorf("expected P1 contribution 75, got %d", pot.ContribOf("P1"))
	}
	if pot.ContribOf("P3") != 0 {
		t.Errorf("absent player should contribute 0, got %d", pot.ContribOf("P3"))
	}

	pot.Reset()
	if pot.Total() != 0 {
		t.Errorf("reset pot should be empty, got %d", pot.Total())
	}
}

func TestBuildSidePotsAllInLevels(t *testing.T) {
	t.Parallel()
	players := potPlayers(Active, AllIn, Active)
	pot := NewPot()
	pot.Add("P1", 100)
	pot.Add("P2", 50)
	pot.Add("P3", 100)

	pots := pot.BuildSidePots(players)
	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %d", len(pots))
	}

	if pots[0].Cap != 50 || pots[0].Amount != 150 {
		t.Errorf("first pot should be cap 50 amount 150, got cap %d amount %d", pots[0].Cap, pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Errorf("all three reached cap 50, got eligible %v", pots[0].Eligible)
	}

	if pots[1].Cap != 100 || pots[1].Amount != 100 {
		t.Errorf("second pot should be cap 100 amount 100, got cap %d amount %d", pots[1].Cap, pots[1].Amount)
	}
	if len(pots[1].Eligible) != 2 {
		t.Errorf("only the full contributors reach cap 100, got %v", pots[1].Eligible)
	}

	if pots[0].Amount+pots[1].Amount != pot.Total() {
		t.Errorf("pots must sum back to the total %d", pot.Total())
	}
}

func TestBuildSidePotsFoldedExcluded(t *testing.T) {
	t.Parallel()
	players := potPlayers(Active, Folded, Active)
	pot := NewPot()
	pot.Add("P1", 100)
	pot.Add("P2", 100)
	pot.Add("P3", 100)

	pots := pot.BuildSidePots(players)
	if len(pots) != 1 {
		t.Fatalf("expected a single pot, got %d", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Errorf("folded chips stay in the pot, got %d", pots[0].Amount)
	}
	for _, id := range pots[0].Eligible {
		if id == "P2" {
			t.Error("folded player must not be eligible")
		}
	}
}

func TestBuildSidePotsDeadMoneyRollsDown(t *testing.T) {
	t.Parallel()
	// The big stack folded after contributing the deepest level: nobody in
	// hand reached cap 100, so that slice rolls into the winnable pot.
	players := potPlayers(AllIn, Folded, Active)
	pot := NewPot()
	pot.Add("P1", 50)
	pot.Add("P2", 100)
	pot.Add("P3", 50)

	pots := pot.BuildSidePots(players)
	if len(pots) != 1 {
		t.Fatalf("expected a single winnable pot, got %d", len(pots))
	}
	if pots[0].Amount != 200 {
		t.Errorf("pot should hold all 200 chips, got %d", pots[0].Amount)
	}
}

func TestBuildSidePotsEmpty(t *testing.T) {
	t.Parallel()
	pot := NewPot()
	if pots := pot.BuildSidePots(potPlayers(Active, Active)); len(pots) != 0 {
		t.Errorf("empty pot should yield no side pots, got %v", pots)
	}

	pot.Add("P1", 10)
	pot.Add("P2", 10)
	if pots := pot.BuildSidePots(potPlayers(Folded, Folded)); len(pots) != 0 {
		t.Errorf("no in-hand players should yield no side pots, got %v", pots)
	}
}
