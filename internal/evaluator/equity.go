package evaluator

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/randutil"
)

// workerResult holds the tallies from one Monte Carlo worker.
type workerResult struct {
	wins    int
	ties    int
	samples int
}

// Equity estimates the probability that the hole cards win against the given
// number of opponents holding random hands, by Monte Carlo simulation. Ties
// count as a fractional win split between the tied hands. The work is spread
// across workers with per-worker deterministic RNGs derived from seed.
func Equity(ctx context.Context, hole, board []deck.Card, opponents, iterations int, seed int64) (float64, error) {
	if len(hole) != 2 {
		return 0, fmt.Errorf("equity requires exactly 2 hole cards, got %d", len(hole))
	}
	if len(board) > 5 {
		return 0, fmt.Errorf("board cannot exceed 5 cards, got %d", len(board))
	}
	if opponents < 1 {
		return 0, fmt.Errorf("need at least 1 opponent, got %d", opponents)
	}
	if iterations < 1 {
		return 0, fmt.Errorf("need at least 1 iteration, got %d", iterations)
	}

	// Candidate cards are the full deck minus known cards.
	known := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}
	full := deck.New(randutil.New(seed))
	candidates := make([]deck.Card, 0, 52)
	for full.Remaining() > 0 {
		c, err := full.Draw()
		if err != nil {
			return 0, err
		}
		if !known[c] {
			candidates = append(candidates, c)
		}
	}

	need := opponents*2 + (5 - len(board))
	if need > len(candidates) {
		return 0, fmt.Errorf("not enough cards for %d opponents", opponents)
	}

	workers := runtime.NumCPU()
	if workers > iterations {
		workers = iterations
	}
	results := make([]workerResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		share := iterations / workers
		if w < iterations%workers {
			share++
		}
		rng := randutil.New(seed + int64(w) + 1)
		g.Go(func() error {
			local := make([]deck.Card, len(candidates))
			for i := 0; i < share; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				copy(local, candidates)
				r, err := sampleShowdown(local, hole, board, opponents, rng)
				if err != nil {
					return err
				}
				results[w].wins += r.wins
				results[w].ties += r.ties
				results[w].samples += r.samples
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total workerResult
	for _, r := range results {
		total.wins += r.wins
		total.ties += r.ties
		total.samples += r.samples
	}
	if total.samples == 0 {
		return 0, nil
	}
	return (float64(total.wins) + float64(total.ties)/2.0) / float64(total.samples), nil
}

// sampleShowdown plays out one random runout and compares final hands.
// local is scratch space holding the candidate cards; it is partially
// permuted in place.
func sampleShowdown(local, hole, board []deck.Card, opponents int, rng *rand.Rand) (workerResult, error) {
	need := opponents*2 + (5 - len(board))
	for i := 0; i < need; i++ {
		j := i + rng.IntN(len(local)-i)
		local[i], local[j] = local[j], local[i]
	}
	drawn := local[:need]

	fullBoard := make([]deck.Card, 0, 5)
	fullBoard = append(fullBoard, board...)
	fullBoard = append(fullBoard, drawn[opponents*2:]...)

	hero, err := EvaluateBest(append(append([]deck.Card{}, hole...), fullBoard...))
	if err != nil {
		return workerResult{}, err
	}

	best := hero.Score
	tied := false
	heroBest := true
	for o := 0; o < opponents; o++ {
		oppHole := drawn[o*2 : o*2+2]
		opp, err := EvaluateBest(append(append([]deck.Card{}, oppHole...), fullBoard...))
		if err != nil {
			return workerResult{}, err
		}
		if opp.Score > best {
			heroBest = false
			break
		}
		if opp.Score == best {
			tied = true
		}
	}

	r := workerResult{samples: 1}
	switch {
	case heroBest && !tied:
		r.wins = 1
	case heroBest && tied:
		r.ties = 1
	}
	return r, nil
}
