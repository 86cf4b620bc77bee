package poker

import (
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input    string
		expected Card
	}{
		{"As", Card{Ace, Spades}},
		{"Kh", Card{King, Hearts}},
		{"qd", Card{Queen, Diamonds}},
		{"jC", Card{Jack, Clubs}},
		{"Ts", Card{Ten, Spades}},
		{"10d", Card{Ten, Diamonds}},
		{"2c", Card{Two, Clubs}},
		{"A♠", Card{Ace, Spades}},
		{"9♥", Card{Nine, Hearts}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			card, err := ParseCard(tt.input)
			if err != nil {
				t.Fatalf("ParseCard(%q) failed: %v", tt.input, err)
			}
			if card != tt.expected {
				t.Errorf("ParseCard(%q) = %v, expected %v", tt.input, card, tt.expected)
			}
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, input := range []string{"", "A", "Xs", "Az", "11d"} {
		if _, err := ParseCard(input); err == nil {
			t.Errorf("ParseCard(%q) should have failed", input)
		}
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKsQsJsTs")
	if err != nil {
		t.Fatalf("ParseCards failed: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("Expected 5 cards, got %d", len(cards))
	}
	if cards[0] != (Card{Ace, Spades}) || cards[4] != (Card{Ten, Spades}) {
		t.Errorf("Unexpected cards: %v", cards)
	}

	// Spaces and "10" notation are accepted
	cards, err = ParseCards("10d Kh 2c")
	if err != nil {
		t.Fatalf("ParseCards failed: %v", err)
	}
	if len(cards) != 3 || cards[0] != (Card{Ten, Diamonds}) {
		t.Errorf("Unexpected cards: %v", cards)
	}

	if _, err := ParseCards("AsK"); err == nil {
		t.Error("Expected error for incomplete card")
	}
}

func TestCardStrings(t *testing.T) {
	card := NewCard(Ace, Spades)
	if card.String() != "A♠" {
		t.Errorf("String = %q", card.String())
	}
	if card.Notation() != "As" {
		t.Errorf("Notation = %q", card.Notation())
	}

	card = NewCard(Ten, Hearts)
	if card.String() != "T♥" {
		t.Errorf("String = %q", card.String())
	}
	if !card.IsRed() {
		t.Error("Hearts should be red")
	}
	if NewCard(Two, Clubs).IsRed() {
		t.Error("Clubs should not be red")
	}
}

// Notation must survive a parse round trip for all 52 cards
func TestNotationRoundTrip(t *testing.T) {
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.Notation())
			if err != nil {
				t.Fatalf("ParseCard(%q) failed: %v", card.Notation(), err)
			}
			if parsed != card {
				t.Errorf("Round trip failed: %v != %v", parsed, card)
			}
		}
	}
}
