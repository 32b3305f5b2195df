// Package display renders cards and hand results for terminal output.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroomlabs/holdem/internal/deck"
)

var (
	redSuit = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))

	blackSuit = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

func suitSymbol(s deck.Suit) string {
	switch s {
	case deck.Hearts:
		return "♥"
	case deck.Diamonds:
		return "♦"
	case deck.Clubs:
		return "♣"
	case deck.Spades:
		return "♠"
	default:
		return "?"
	}
}

// Card renders one card with its suit symbol, hearts and diamonds in red.
func Card(c deck.Card) string {
	text := c.Rank.String() + suitSymbol(c.Suit)
	if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
		return redSuit.Render(text)
	}
	return blackSuit.Render(text)
}

// Cards renders a hand or board as space-separated cards.
func Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return labelStyle.Render("(no cards)")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Board renders a labelled community board.
func Board(cards []deck.Card) string {
	return fmt.Sprintf("%s %s", labelStyle.Render("board:"), Cards(cards))
}
