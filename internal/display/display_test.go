package display

import (
	"strings"
	"testing"

	"github.com/cardroomlabs/holdem/internal/deck"
)

func TestCards(t *testing.T) {
	t.Parallel()
	cards, err := deck.ParseCards("AhKd2c")
	if err != nil {
		t.Fatal(err)
	}

	out := Cards(cards)
	for _, want := range []string{"A♥", "K♦", "2♣"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered cards missing %s: %q", want, out)
		}
	}
}

func TestCardsEmpty(t *testing.T) {
	t.Parallel()
	if out := Cards(nil); !strings.Contains(out, "no cards") {
		t.Errorf("empty hand should render a placeholder, got %q", out)
	}
}

func TestBoard(t *testing.T) {
	t.Parallel()
	cards, err := deck.ParseCards("7s8s9s")
	if err != nil {
		t.Fatal(err)
	}
	out := Board(cards)
	if !strings.Contains(out, "board:") || !strings.Contains(out, "9♠") {
		t.Errorf("board rendering wrong: %q", out)
	}
}
