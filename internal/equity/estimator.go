// Package equity estimates win probability by Monte Carlo simulation over
// the unseen portion of the deck.
package equity

import (
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

// Samples below this run sequentially; the goroutine overhead is not worth
// it for small estimates
const parallelThreshold = 2000

const maxWorkers = 8

// CardSet is a 52-bit set for fast exclusion checks
type CardSet uint64

func cardIndex(c poker.Card) int {
	return int(c.Rank-poker.Two)*4 + int(c.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(c poker.Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains reports whether the card is in the set
func (cs CardSet) Contains(c poker.Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// Estimator produces equity figures for a hole-card hand against unknown
// opponents. All sampling flows through the injected RNG, so a fixed seed
// yields identical estimates.
type Estimator struct {
	rng     *rand.Rand
	samples int
}

// New creates an estimator running the given number of samples per call
func New(rng *rand.Rand, samples int) *Estimator {
	if samples <= 0 {
		samples = 1000
	}
	return &Estimator{rng: rng, samples: samples}
}

// WinProbability returns the fraction of sampled showdowns the hand wins,
// counting ties as half a win. Works at any street: unknown board cards are
// sampled along with the opponents' holdings.
func (e *Estimator) WinProbability(hole, board []poker.Card, opponents int) float64 {
	if len(hole) != 2 || len(board) > 5 {
		return 0
	}
	if opponents < 1 {
		opponents = 1
	}

	available := availableCards(hole, board)

	if e.samples >= parallelThreshold {
		return e.estimateParallel(hole, board, available, opponents)
	}
	return estimate(hole, board, available, opponents, e.samples, e.rng)
}

func availableCards(hole, board []poker.Card) []poker.Card {
	var used CardSet
	for _, c := range hole {
		used.Add(c)
	}
	for _, c := range board {
		used.Add(c)
	}

	available := make([]poker.Card, 0, 52-len(hole)-len(board))
	for suit := poker.Spades; suit <= poker.Clubs; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			card := poker.NewCard(rank, suit)
			if !used.Contains(card) {
				available = append(available, card)
			}
		}
	}
	return available
}

func (e *Estimator) estimateParallel(hole, board, available []poker.Card, opponents int) float64 {
	workers := maxWorkers
	perWorker := e.samples / workers
	remainder := e.samples % workers

	results := make([]float64, workers)
	var g errgroup.Group

	for w := 0; w < workers; w++ {
		samples := perWorker
		if w < remainder {
			samples++
		}
		// Each worker gets an independent stream derived from the parent
		// so the overall estimate stays deterministic for a fixed seed
		workerRng := randutil.Child(e.rng)
		g.Go(func() error {
			results[w] = estimate(hole, board, available, opponents, samples, workerRng) * float64(samples)
			return nil
		})
	}

	// Workers never fail; Wait is just the join point
	_ = g.Wait()

	total := 0.0
	for _, r := range results {
		total += r
	}
	return total / float64(e.samples)
}

// estimate runs the sampling loop: deal unseen cards to each opponent,
// complete the board, and score the showdown
func estimate(hole, board, available []poker.Card, opponents, samples int, rng *rand.Rand) float64 {
	if samples <= 0 {
		return 0
	}

	boardNeed := 5 - len(board)
	draw := opponents*2 + boardNeed

	scratch := make([]poker.Card, len(available))
	finalBoard := make([]poker.Card, 0, 5)
	hand := make([]poker.Card, 0, 7)

	score := 0.0
	for i := 0; i < samples; i++ {
		copy(scratch, available)
		// Partial Fisher-Yates: only the first draw cards need shuffling
		for j := 0; j < draw; j++ {
			k := j + rng.IntN(len(scratch)-j)
			scratch[j], scratch[k] = scratch[k], scratch[j]
		}

		finalBoard = append(finalBoard[:0], board...)
		finalBoard = append(finalBoard, scratch[opponents*2:draw]...)

		hand = append(hand[:0], hole...)
		hand = append(hand, finalBoard...)
		heroEval, err := evaluator.Evaluate(hand)
		if err != nil {
			continue
		}

		won, tied := true, false
		for opp := 0; opp < opponents; opp++ {
			hand = append(hand[:0], scratch[opp*2:opp*2+2]...)
			hand = append(hand, finalBoard...)
			oppEval, err := evaluator.Evaluate(hand)
			if err != nil {
				continue
			}
			switch evaluator.Compare(heroEval, oppEval) {
			case -1:
				won, tied = false, false
			case 0:
				if won {
					tied = true
				}
			}
			if !won {
				break
			}
		}

		if won && !tied {
			score += 1.0
		} else if won && tied {
			score += 0.5
		}
	}

	return score / float64(samples)
}
