package deck

import "testing"

func TestParseCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, c := range cards {
				if c != tt.expected[i] {
					t.Errorf("card %d: expected %v, got %v", i, tt.expected[i], c)
				}
			}
		})
	}
}

func TestNewCardRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := NewCard(0, Hearts); err == nil {
		t.Error("expected error for rank 0")
	}
	if _, err := NewCard(King+1, Hearts); err == nil {
		t.Error("expected error for rank above king")
	}
	if _, err := NewCard(Ace, Spades+1); err == nil {
		t.Error("expected error for suit out of range")
	}
	card, err := NewCard(Ace, Spades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Rank != Ace || card.Suit != Spades {
		t.Errorf("unexpected card %v", card)
	}
}

func TestRankHighValue(t *testing.T) {
	t.Parallel()
	if Ace.HighValue() != 14 {
		t.Errorf("ace should evaluate high, got %d", Ace.HighValue())
	}
	if King.HighValue() != 13 {
		t.Errorf("king should be 13, got %d", King.HighValue())
	}
	if Two.HighValue() != 2 {
		t.Errorf("two should be 2, got %d", Two.HighValue())
	}
}
