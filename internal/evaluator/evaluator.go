package evaluator

import (
	"fmt"
	"sort"

	"github.com/cardroomlabs/holdem/internal/deck"
)

// HandCategory enumerates hand strengths from weakest to strongest.
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a description of the hand category
func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandResult is the best five-card hand found in an evaluation. Score is a
// packed value: the category occupies the top nibble, followed by the
// tie-break ranks one nibble each, most significant first, zero padded.
// A strictly better hand always has a strictly greater Score; equal Scores
// tie under standard poker rules.
type HandResult struct {
	Category HandCategory
	Cards    []deck.Card // the five cards, descending by rank
	Kickers  []int       // ordered tie-break rank values, ace high
	Score    uint32
}

// EvaluateBest returns the best five-card hand contained in 5-7 cards.
func EvaluateBest(cards []deck.Card) (HandResult, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandResult{}, fmt.Errorf("evaluator requires 5-7 cards, got %d", len(cards))
	}

	// Rank histogram (ace high) and per-suit buckets.
	var counts [15]int
	var bySuit [4][]deck.Card
	for _, c := range cards {
		counts[c.Rank.HighValue()]++
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	for s := range bySuit {
		sort.Slice(bySuit[s], func(i, j int) bool {
			return bySuit[s][i].Rank.HighValue() > bySuit[s][j].Rank.HighValue()
		})
	}

	rankMask := uint16(0)
	for v := 2; v <= 14; v++ {
		if counts[v] > 0 {
			rankMask |= 1 << v
		}
	}

	flushSuit := deck.Suit(-1)
	for s := deck.Hearts; s <= deck.Spades; s++ {
		if len(bySuit[s]) >= 5 {
			flushSuit = s
			break
		}
	}

	// Straight flush
	if flushSuit >= 0 {
		suitMask := uint16(0)
		for _, c := range bySuit[flushSuit] {
			suitMask |= 1 << c.Rank.HighValue()
		}
		if high := straightHigh(suitMask); high > 0 {
			return build(StraightFlush, straightCards(cards, high, &flushSuit), []int{high}), nil
		}
	}

	quads, trips, pairs := groupRanks(counts)

	// Four of a kind
	if len(quads) > 0 {
		quad := quads[0]
		five := pickByValue(cards, quad, 4)
		kicker := bestOtherValue(counts, quad)
		five = append(five, pickByValue(cards, kicker, 1)...)
		return build(FourOfAKind, five, []int{quad, kicker}), nil
	}

	// Full house: best triple plus best pair, where a second triple may
	// serve as the pair.
	if len(trips) > 0 && (len(pairs) > 0 || len(trips) > 1) {
		trip := trips[0]
		pair := 0
		if len(pairs) > 0 {
			pair = pairs[0]
		}
		if len(trips) > 1 && trips[1] > pair {
			pair = trips[1]
		}
		five := pickByValue(cards, trip, 3)
		five = append(five, pickByValue(cards, pair, 2)...)
		return build(FullHouse, five, []int{trip, pair}), nil
	}

	// Flush
	if flushSuit >= 0 {
		five := bySuit[flushSuit][:5]
		kickers := make([]int, 5)
		for i, c := range five {
			kickers[i] = c.Rank.HighValue()
		}
		return build(Flush, five, kickers), nil
	}

	// Straight
	if high := straightHigh(rankMask); high > 0 {
		return build(Straight, straightCards(cards, high, nil), []int{high}), nil
	}

	// Three of a kind
	if len(trips) > 0 {
		trip := trips[0]
		five := pickByValue(cards, trip, 3)
		kickers := []int{trip}
		for _, v := range topOtherValues(counts, 2, trip) {
			five = append(five, pickByValue(cards, v, 1)...)
			kickers = append(kickers, v)
		}
		return build(ThreeOfAKind, five, kickers), nil
	}

	// Two pair
	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		five := pickByValue(cards, hi, 2)
		five = append(five, pickByValue(cards, lo, 2)...)
		kicker := bestOtherValue(counts, hi, lo)
		five = append(five, pickByValue(cards, kicker, 1)...)
		return build(TwoPair, five, []int{hi, lo, kicker}), nil
	}

	// One pair
	if len(pairs) == 1 {
		pair := pairs[0]
		five := pickByValue(cards, pair, 2)
		kickers := []int{pair}
		for _, v := range topOtherValues(counts, 3, pair) {
			five = append(five, pickByValue(cards, v, 1)...)
			kickers = append(kickers, v)
		}
		return build(OnePair, five, kickers), nil
	}

	// High card
	var five []deck.Card
	var kickers []int
	for _, v := range topOtherValues(counts, 5) {
		five = append(five, pickByValue(cards, v, 1)...)
		kickers = append(kickers, v)
	}
	return build(HighCard, five, kickers), nil
}

// build packs the score and sorts the five cards for presentation.
func build(cat HandCategory, five []deck.Card, kickers []int) HandResult {
	score := uint32(cat) << 28
	shift := 24
	for _, k := range kickers {
		score |= uint32(k) << shift
		shift -= 4
	}

	sorted := make([]deck.Card, len(five))
	copy(sorted, five)
	wheel := cat == Straight || cat == StraightFlush
	wheel = wheel && len(kickers) == 1 && kickers[0] == 5
	sort.Slice(sorted, func(i, j int) bool {
		return displayValue(sorted[i], wheel) > displayValue(sorted[j], wheel)
	})

	return HandResult{Category: cat, Cards: sorted, Kickers: kickers, Score: score}
}

// displayValue orders cards for presentation; the wheel is the one case
// where the ace sorts low.
func displayValue(c deck.Card, wheel bool) int {
	if wheel && c.Rank == deck.Ace {
		return 1
	}
	return c.Rank.HighValue()
}

// straightHigh finds the highest run of 5 consecutive ranks in a rank-presence
// mask. Bit 14 is mirrored into bit 1 so the wheel (A-2-3-4-5) is found as a
// 5-high straight.
func straightHigh(mask uint16) int {
	if mask&(1<<14) != 0 {
		mask |= 1 << 1
	}
	for high := 14; high >= 5; high-- {
		run := uint16(0x1F) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	return 0
}

// straightCards collects one card per rank of the straight, high rank first.
// A nil suit accepts any suit; otherwise only cards of that suit qualify.
func straightCards(cards []deck.Card, high int, suit *deck.Suit) []deck.Card {
	five := make([]deck.Card, 0, 5)
	for v := high; v > high-5; v-- {
		want := v
		if want == 1 {
			want = 14 // the wheel's low ace
		}
		for _, c := range cards {
			if c.Rank.HighValue() != want {
				continue
			}
			if suit != nil && c.Suit != *suit {
				continue
			}
			five = append(five, c)
			break
		}
	}
	return five
}

// groupRanks splits the histogram into quad, trip and pair rank values,
// each descending.
func groupRanks(counts [15]int) (quads, trips, pairs []int) {
	for v := 14; v >= 2; v-- {
		switch counts[v] {
		case 4:
			quads = append(quads, v)
		case 3:
			trips = append(trips, v)
		case 2:
			pairs = append(pairs, v)
		}
	}
	return quads, trips, pairs
}

// bestOtherValue returns the highest present rank value not in excluded.
func bestOtherValue(counts [15]int, excluded ...int) int {
	vals := topOtherValues(counts, 1, excluded...)
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}

// topOtherValues returns up to n present rank values, highest first,
// skipping excluded ranks.
func topOtherValues(counts [15]int, n int, excluded ...int) []int {
	skip := make(map[int]bool, len(excluded))
	for _, v := range excluded {
		skip[v] = true
	}
	vals := make([]int, 0, n)
	for v := 14; v >= 2 && len(vals) < n; v-- {
		if counts[v] > 0 && !skip[v] {
			vals = append(vals, v)
		}
	}
	return vals
}

// pickByValue returns up to n cards of the given ace-high rank value.
func pickByValue(cards []deck.Card, value, n int) []deck.Card {
	out := make([]deck.Card, 0, n)
	for _, c := range cards {
		if c.Rank.HighValue() == value {
			out = append(out, c)
			if len(out) == n {
				break
			}
		}
	}
	return out
}
