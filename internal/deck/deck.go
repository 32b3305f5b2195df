package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroomlabs/holdem/internal/randutil"
)

// ErrExhausted is returned when a draw is requested from an empty deck.
var ErrExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of 52 unique cards, drawable from the front.
// The random source is deck-private so that concurrent tables never share
// shuffle state.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full deck in canonical order. A nil rng gets a time-seeded
// source; pass randutil.New(seed) for reproducible shuffles.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.NewFromTime()
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset regenerates the canonical 52-card sequence.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
}

// Shuffle permutes the deck with Fisher-Yates using the deck's own source.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the next card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN removes and returns the next n cards. The draw is atomic: if fewer
// than n cards remain, no cards are removed.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, len(d.cards), ErrExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
