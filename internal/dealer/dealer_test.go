package dealer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomlabs/holdem/internal/game"
	"github.com/cardroomlabs/holdem/internal/handid"
	"github.com/cardroomlabs/holdem/internal/randutil"
)

func newTestDealer(t *testing.T, clock quartz.Clock, timeout time.Duration, chips ...int) *Dealer {
	t.Helper()
	seats := make([]game.SeatConfig, len(chips))
	names := []string{"alice", "bob", "carol", "dave"}
	for i, c := range chips {
		seats[i] = game.SeatConfig{ID: game.PlayerID(names[i]), Name: names[i], Chips: c}
	}
	table, err := game.NewTable(seats, 5, 10, randutil.New(42))
	require.NoError(t, err)

	logger := log.New(io.Discard)
	return NewDealer(game.NewHandEngine(table), logger, timeout, clock)
}

func seatCallers(d *Dealer) {
	logger := log.New(io.Discard)
	for _, p := range d.engine.Table().Players {
		d.Seat(p.ID, NewCallAgent(logger))
	}
}

func TestRunHandCallersReachShowdown(t *testing.T) {
	d := newTestDealer(t, nil, 0, 1000, 1000, 1000)
	seatCallers(d)

	startTotal := d.engine.Table().TotalChips()
	result, err := d.RunHand(context.Background())
	require.NoError(t, err)

	assert.True(t, result.WentToShowdown, "calling players should see a showdown")
	assert.Len(t, result.Board, 5)
	assert.Equal(t, 30, result.PotChips, "three flat calls of the big blind")
	assert.NotEmpty(t, result.Winners)
	require.NoError(t, handid.Validate(result.ID))

	// Chips only move between players.
	assert.Equal(t, startTotal, d.engine.Table().TotalChips())
	net := 0
	for _, delta := range result.NetChips {
		net += delta
	}
	assert.Zero(t, net, "hand nets must sum to zero")
}

func TestRunHandFoldersLoseBlinds(t *testing.T) {
	d := newTestDealer(t, nil, 0, 1000, 1000, 1000)
	logger := log.New(io.Discard)
	for _, p := range d.engine.Table().Players {
		d.Seat(p.ID, NewFoldAgent(logger))
	}

	result, err := d.RunHand(context.Background())
	require.NoError(t, err)

	assert.False(t, result.WentToShowdown, "everyone folded to the big blind")
	assert.Equal(t, []game.PlayerID{"carol"}, result.Winners)
	assert.Equal(t, 0, result.NetChips["alice"])
	assert.Equal(t, -5, result.NetChips["bob"])
	assert.Equal(t, 5, result.NetChips["carol"])
}

func TestRunHandAdvancesButton(t *testing.T) {
	d := newTestDealer(t, nil, 0, 1000, 1000, 1000)
	seatCallers(d)

	require.Equal(t, 0, d.engine.Table().DealerButton)
	_, err := d.RunHand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.engine.Table().DealerButton)
}

func TestUnseatedPlayerIsFolded(t *testing.T) {
	d := newTestDealer(t, nil, 0, 1000, 1000, 1000)
	logger := log.New(io.Discard)
	// alice has no agent and gets folded when action reaches her.
	d.Seat("bob", NewCallAgent(logger))
	d.Seat("carol", NewCallAgent(logger))

	result, err := d.RunHand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.NetChips["alice"], "alice folded before committing chips")
	assert.NotContains(t, result.Winners, game.PlayerID("alice"))
}

// raiseOneAgent always submits an illegal undersized raise.
type raiseOneAgent struct{}

func (raiseOneAgent) Decide(view HandView, valid []ValidAction) Decision {
	return Decision{Type: game.Raise, Chips: 1}
}

func TestIllegalActionFallsBackToFold(t *testing.T) {
	d := newTestDealer(t, nil, 0, 1000, 1000, 1000)
	logger := log.New(io.Discard)
	d.Seat("alice", raiseOneAgent{})
	d.Seat("bob", NewCallAgent(logger))
	d.Seat("carol", NewCallAgent(logger))

	result, err := d.RunHand(context.Background())
	require.NoError(t, err)

	// The illegal preflop raise became a fold.
	assert.Equal(t, 0, result.NetChips["alice"])
	assert.Equal(t, game.Folded, d.engine.Table().PlayerByID("alice").Status)
}

// blockingAgent never answers; the dealer's clock must fold it.
type blockingAgent struct{}

func (blockingAgent) Decide(view HandView, valid []ValidAction) Decision {
	select {}
}

func TestActionTimeoutFoldsSlowAgent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	d := newTestDealer(t, mockClock, 5*time.Second, 1000, 1000, 1000)
	logger := log.New(io.Discard)
	d.Seat("alice", blockingAgent{})
	d.Seat("bob", NewCallAgent(logger))
	d.Seat("carol", NewCallAgent(logger))

	type outcome struct {
		result *HandResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := d.RunHand(ctx)
		done <- outcome{result, err}
	}()

	// Let the dealer register its action timer, then fire it.
	time.Sleep(10 * time.Millisecond)
	mockClock.Advance(5 * time.Second).MustWait(ctx)

	select {
	case out := <-done:
		require.NoError(t, out.err)
		assert.Equal(t, 0, out.result.NetChips["alice"], "timed-out player should be folded")
		assert.NotContains(t, out.result.Winners, game.PlayerID("alice"))
	case <-ctx.Done():
		t.Fatal("hand did not complete after clock advance")
	}
}

func TestForStrategy(t *testing.T) {
	logger := log.New(io.Discard)
	rng := randutil.New(1)

	for _, strategy := range []string{"call", "fold", "rand"} {
		agent, err := ForStrategy(strategy, rng, logger)
		require.NoError(t, err)
		assert.NotNil(t, agent)
	}

	_, err := ForStrategy("gto", rng, logger)
	assert.Error(t, err)
}

func TestRandAgentStaysLegal(t *testing.T) {
	d := newTestDealer(t, nil, 0, 500, 500, 500)
	logger := log.New(io.Discard)
	rng := randutil.New(7)
	for _, p := range d.engine.Table().Players {
		d.Seat(p.ID, NewRandAgent(rng, logger))
	}

	// Random agents only ever choose from the valid action list, so many
	// hands in a row should settle without the fallback path firing.
	startTotal := d.engine.Table().TotalChips()
	for i := 0; i < 20; i++ {
		result, err := d.RunHand(context.Background())
		if err != nil {
			require.ErrorIs(t, err, game.ErrNotEnoughPlayers)
			break
		}
		net := 0
		for _, delta := range result.NetChips {
			net += delta
		}
		require.Zero(t, net)
	}
	assert.Equal(t, startTotal, d.engine.Table().TotalChips())
}
