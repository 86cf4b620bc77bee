// Package evaluator ranks 5-7 card Texas Hold'em hands. Categories are
// detected with a first-match scan from strongest to weakest, and hands of
// equal category compare kicker-by-kicker.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/poker"
)

// ErrInsufficientCards is returned when fewer than 5 cards are supplied
var ErrInsufficientCards = errors.New("need at least 5 cards to evaluate a hand")

// Category represents a hand category, ordered weakest to strongest
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
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
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Per-category strength values on the normalized 0.0-1.0 scale. Pair and
// high card scale with the dominant rank instead of using a fixed value.
const (
	strengthRoyal         = 1.0
	strengthStraightFlush = 0.95
	strengthFourOfAKind   = 0.9
	strengthFullHouse     = 0.85
	strengthFlush         = 0.75
	strengthStraight      = 0.65
	strengthWheel         = 0.60
	strengthThreeOfAKind  = 0.55
	strengthTwoPair       = 0.45
)

// HandEvaluation is the result of evaluating a hand. Kickers holds the full
// tiebreak vector for the category: primary ranks first, then side cards in
// descending order.
type HandEvaluation struct {
	Category    Category
	Kickers     []poker.Rank
	Strength    float64
	Description string
}

// CategoryRank returns the numeric rank of the category (1-10)
func (e HandEvaluation) CategoryRank() int {
	return int(e.Category)
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on an exact tie.
// Equal categories are decided by the first differing kicker.
func Compare(a, b HandEvaluation) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	n := len(a.Kickers)
	if len(b.Kickers) < n {
		n = len(b.Kickers)
	}
	for i := 0; i < n; i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] > b.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Evaluate determines the best 5-card hand within the supplied 5-7 cards
func Evaluate(cards []poker.Card) (HandEvaluation, error) {
	if len(cards) < 5 {
		return HandEvaluation{}, fmt.Errorf("%w: got %d", ErrInsufficientCards, len(cards))
	}

	rankCounts := make(map[poker.Rank]int)
	suitRanks := make(map[poker.Suit][]poker.Rank)
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitRanks[c.Suit] = append(suitRanks[c.Suit], c.Rank)
	}
	allRanks := make([]poker.Rank, 0, len(rankCounts))
	for rank := range rankCounts {
		allRanks = append(allRanks, rank)
	}

	// Straight flush / royal flush: a suit with 5+ cards containing a run
	suitedWheel := false
	for _, ranks := range suitRanks {
		if len(ranks) < 5 {
			continue
		}
		if high := straightHigh(ranks); high != 0 {
			if high == poker.Ace {
				return HandEvaluation{
					Category:    RoyalFlush,
					Kickers:     []poker.Rank{poker.Ace},
					Strength:    strengthRoyal,
					Description: "Royal Flush",
				}, nil
			}
			return HandEvaluation{
				Category:    StraightFlush,
				Kickers:     []poker.Rank{high},
				Strength:    strengthStraightFlush,
				Description: fmt.Sprintf("Straight Flush, %s high", high),
			}, nil
		}
		if hasWheel(ranks) {
			suitedWheel = true
		}
	}

	// A suited wheel reports as a five-high straight, never as a straight
	// flush or flush. A higher straight across all suits still outranks it.
	if suitedWheel {
		if high := straightHigh(allRanks); high != 0 {
			return straightEvaluation(high), nil
		}
		return wheelEvaluation(), nil
	}

	// Four of a kind
	if quad := highestWithCount(rankCounts, 4); quad != 0 {
		kicker := highestExcluding(rankCounts, quad)
		return HandEvaluation{
			Category:    FourOfAKind,
			Kickers:     []poker.Rank{quad, kicker},
			Strength:    strengthFourOfAKind,
			Description: fmt.Sprintf("Four of a Kind, %ss", quad),
		}, nil
	}

	// Full house: the highest trips plus the best remaining pair or trips
	if trips := highestWithAtLeast(rankCounts, 3); trips != 0 {
		pair := poker.Rank(0)
		for rank, count := range rankCounts {
			if rank != trips && count >= 2 && rank > pair {
				pair = rank
			}
		}
		if pair != 0 {
			return HandEvaluation{
				Category:    FullHouse,
				Kickers:     []poker.Rank{trips, pair},
				Strength:    strengthFullHouse,
				Description: fmt.Sprintf("Full House, %ss over %ss", trips, pair),
			}, nil
		}
	}

	// Flush: top five cards of any 5+ card suit
	for _, ranks := range suitRanks {
		if len(ranks) < 5 {
			continue
		}
		sorted := sortedDesc(ranks)
		kickers := sorted[:5]
		return HandEvaluation{
			Category:    Flush,
			Kickers:     kickers,
			Strength:    strengthFlush,
			Description: fmt.Sprintf("Flush, %s high", kickers[0]),
		}, nil
	}

	// Straight, scanned high to low, wheel recognized at five-high
	if high := straightHigh(allRanks); high != 0 {
		return straightEvaluation(high), nil
	}
	if hasWheel(allRanks) {
		return wheelEvaluation(), nil
	}

	// Three of a kind with two kickers
	if trips := highestWithCount(rankCounts, 3); trips != 0 {
		kickers := topExcluding(rankCounts, 2, trips)
		return HandEvaluation{
			Category:    ThreeOfAKind,
			Kickers:     append([]poker.Rank{trips}, kickers...),
			Strength:    strengthThreeOfAKind,
			Description: fmt.Sprintf("Three of a Kind, %ss", trips),
		}, nil
	}

	// Two pair: the two highest pairs plus the best side card
	pairs := ranksWithCount(rankCounts, 2)
	if len(pairs) >= 2 {
		high, low := pairs[0], pairs[1]
		kicker := highestExcluding(rankCounts, high, low)
		return HandEvaluation{
			Category:    TwoPair,
			Kickers:     []poker.Rank{high, low, kicker},
			Strength:    strengthTwoPair,
			Description: fmt.Sprintf("Two Pair, %ss and %ss", high, low),
		}, nil
	}

	// One pair, strength scaled by the pair rank
	if len(pairs) == 1 {
		pair := pairs[0]
		kickers := topExcluding(rankCounts, 3, pair)
		return HandEvaluation{
			Category:    Pair,
			Kickers:     append([]poker.Rank{pair}, kickers...),
			Strength:    0.3 + float64(pair)/100,
			Description: fmt.Sprintf("Pair of %ss", pair),
		}, nil
	}

	// High card fallback
	kickers := topExcluding(rankCounts, 5)
	return HandEvaluation{
		Category:    HighCard,
		Kickers:     kickers,
		Strength:    0.1 + float64(kickers[0])/200,
		Description: fmt.Sprintf("%s high", kickers[0]),
	}, nil
}

func straightEvaluation(high poker.Rank) HandEvaluation {
	return HandEvaluation{
		Category:    Straight,
		Kickers:     []poker.Rank{high},
		Strength:    strengthStraight,
		Description: fmt.Sprintf("Straight, %s high", high),
	}
}

func wheelEvaluation() HandEvaluation {
	return HandEvaluation{
		Category:    Straight,
		Kickers:     []poker.Rank{poker.Five},
		Strength:    strengthWheel,
		Description: "Straight, 5 high (wheel)",
	}
}

// straightHigh returns the high card of the best run of 5 consecutive
// distinct ranks, or 0 if there is none. The wheel is handled separately.
func straightHigh(ranks []poker.Rank) poker.Rank {
	present := make(map[poker.Rank]bool, len(ranks))
	for _, r := range ranks {
		present[r] = true
	}
	for high := poker.Ace; high >= poker.Six; high-- {
		run := true
		for i := poker.Rank(0); i < 5; i++ {
			if !present[high-i] {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	return 0
}

func hasWheel(ranks []poker.Rank) bool {
	present := make(map[poker.Rank]bool, len(ranks))
	for _, r := range ranks {
		present[r] = true
	}
	return present[poker.Ace] && present[poker.Two] && present[poker.Three] &&
		present[poker.Four] && present[poker.Five]
}

func highestWithCount(counts map[poker.Rank]int, n int) poker.Rank {
	best := poker.Rank(0)
	for rank, count := range counts {
		if count == n && rank > best {
			best = rank
		}
	}
	return best
}

func highestWithAtLeast(counts map[poker.Rank]int, n int) poker.Rank {
	best := poker.Rank(0)
	for rank, count := range counts {
		if count >= n && rank > best {
			best = rank
		}
	}
	return best
}

func ranksWithCount(counts map[poker.Rank]int, n int) []poker.Rank {
	var out []poker.Rank
	for rank, count := range counts {
		if count == n {
			out = append(out, rank)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// highestExcluding returns the highest rank present that is not excluded
func highestExcluding(counts map[poker.Rank]int, exclude ...poker.Rank) poker.Rank {
	best := poker.Rank(0)
	for rank := range counts {
		if rank > best && !contains(exclude, rank) {
			best = rank
		}
	}
	return best
}

// topExcluding returns the n highest ranks present, minus the excluded ones
func topExcluding(counts map[poker.Rank]int, n int, exclude ...poker.Rank) []poker.Rank {
	var out []poker.Rank
	for rank := range counts {
		if !contains(exclude, rank) {
			out = append(out, rank)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedDesc(ranks []poker.Rank) []poker.Rank {
	out := make([]poker.Rank, len(ranks))
	copy(out, ranks)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func contains(ranks []poker.Rank, r poker.Rank) bool {
	for _, x := range ranks {
		if x == r {
			return true
		}
	}
	return false
}
