// Package statistics aggregates hand outcomes over a simulation run. Results
// are tracked per player in big blinds per hand so runs with different stake
// sizes compare directly.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandOutcome is the settled result of one hand.
type HandOutcome struct {
	HandID         string
	PotChips       int
	WentToShowdown bool
	// NetChips maps player ID to chips won or lost this hand. Chips only
	// move between players, so the values sum to zero.
	NetChips map[string]int
}

// Sample accumulates one player's per-hand results.
type Sample struct {
	Count  int
	Sum    float64
	SumSq  float64
	Values []float64
}

// Add records one observation.
func (s *Sample) Add(v float64) {
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean in big blinds per hand.
func (s *Sample) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance.
func (s *Sample) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation.
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Sample) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation.
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Run aggregates outcomes across a whole simulation.
type Run struct {
	BigBlind int

	Hands     int
	Showdowns int
	ledgerBB  float64

	// Pot size analytics. Big pots are pots of at least 50 big blinds.
	MaxPotChips int
	BigPots     int

	players map[string]*Sample
}

// NewRun creates an empty run accumulator for the given big blind size.
func NewRun(bigBlind int) *Run {
	return &Run{
		BigBlind: bigBlind,
		players:  make(map[string]*Sample),
	}
}

// Record incorporates one settled hand.
func (r *Run) Record(outcome HandOutcome) {
	r.Hands++
	if outcome.WentToShowdown {
		r.Showdowns++
	}

	if outcome.PotChips > r.MaxPotChips {
		r.MaxPotChips = outcome.PotChips
	}
	if outcome.PotChips >= 50*r.BigBlind {
		r.BigPots++
	}

	for id, chips := range outcome.NetChips {
		bb := float64(chips) / float64(r.BigBlind)
		r.ledgerBB += bb
		sample := r.players[id]
		if sample == nil {
			sample = &Sample{}
			r.players[id] = sample
		}
		sample.Add(bb)
	}
}

// Player returns the accumulator for one player, or nil if the player never
// appeared in a recorded hand.
func (r *Run) Player(id string) *Sample {
	return r.players[id]
}

// PlayerIDs returns the tracked players in sorted order.
func (r *Run) PlayerIDs() []string {
	ids := make([]string, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ShowdownRate returns the fraction of hands that reached showdown.
func (r *Run) ShowdownRate() float64 {
	if r.Hands == 0 {
		return 0
	}
	return float64(r.Showdowns) / float64(r.Hands)
}

// Validate checks the run's internal accounting. Chips only move between
// players, so the per-player nets must sum to zero across the run.
func (r *Run) Validate() error {
	if r.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", r.Hands)
	}
	if math.Abs(r.ledgerBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: player nets sum to %.6f bb, want 0", r.ledgerBB)
	}
	for id, sample := range r.players {
		if sample.Count > r.Hands {
			return fmt.Errorf("player %s has %d results across %d hands", id, sample.Count, r.Hands)
		}
	}
	return nil
}
