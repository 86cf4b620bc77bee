package engine

import (
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/poker"
)

// HeuristicStrength is the estimator-free fallback for WinProbability. With
// five or more known cards it reuses the evaluator's normalized strength;
// preflop it scores the hole cards directly: pairs land in the top half of
// the scale, everything else is rated by average rank with small bonuses
// for suited and connected cards.
func HeuristicStrength(hole, board []poker.Card) float64 {
	cards := make([]poker.Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, board...)
	if len(cards) >= 5 {
		eval, err := evaluator.Evaluate(cards)
		if err != nil {
			return 0
		}
		return eval.Strength
	}
	if len(hole) != 2 {
		return 0
	}

	c1, c2 := hole[0], hole[1]
	if c1.Rank == c2.Rank {
		return 0.5 + float64(c1.Rank)/26.0
	}

	strength := (float64(c1.Rank) + float64(c2.Rank)) / 2 / 14.0
	if c1.Suit == c2.Suit {
		strength += 0.1
	}
	gap := int(c1.Rank) - int(c2.Rank)
	if gap == 1 || gap == -1 {
		strength += 0.05
	}
	if strength > 0.95 {
		strength = 0.95
	}
	return strength
}
