package engine

import (
	"sort"

	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/poker"
)

// awardUncontested ends the hand when everyone else has folded. The pot
// moves without any evaluation; the winner's cards stay private.
func (e *Engine) awardUncontested() {
	s := e.state
	for _, p := range s.Players {
		if !p.IsActive {
			continue
		}
		p.Chips += s.Pot
		s.Winners = []Winner{{
			PlayerID:    p.ID,
			Amount:      s.Pot,
			Description: "uncontested",
		}}
		break
	}
	s.Pot = 0
	s.Complete = true
}

// resolveShowdown evaluates every live player's seven cards, splits the pot
// among the best hands, and assigns any odd chips starting from the first
// seat left of the button. The odd-chip rule is deterministic so equal hands
// always settle the same way.
func (e *Engine) resolveShowdown() {
	s := e.state
	s.Phase = Showdown

	type contender struct {
		player *Player
		eval   evaluator.HandEvaluation
	}

	var best []contender
	for _, p := range s.Players {
		if !p.IsActive {
			continue
		}
		cards := make([]poker.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, s.CommunityCards...)
		eval, err := evaluator.Evaluate(cards)
		if err != nil {
			// A live player always holds two cards and the board is full
			// at showdown, so this only trips on a corrupted state
			continue
		}

		c := contender{player: p, eval: eval}
		if len(best) == 0 {
			best = []contender{c}
			continue
		}
		switch evaluator.Compare(eval, best[0].eval) {
		case 1:
			best = []contender{c}
		case 0:
			best = append(best, c)
		}
	}

	if len(best) == 0 {
		s.Complete = true
		return
	}

	// Order winners clockwise from the seat left of the button so odd
	// chips always land on the earliest position
	seats := len(s.Players)
	dist := func(pos int) int {
		return ((pos-s.Button-1)%seats + seats) % seats
	}
	sort.Slice(best, func(i, j int) bool {
		return dist(best[i].player.Position) < dist(best[j].player.Position)
	})

	share := s.Pot / len(best)
	remainder := s.Pot % len(best)
	s.Winners = make([]Winner, 0, len(best))
	for i, c := range best {
		amount := share
		if i < remainder {
			amount++
		}
		c.player.Chips += amount
		s.Winners = append(s.Winners, Winner{
			PlayerID:    c.player.ID,
			Amount:      amount,
			Description: c.eval.Description,
		})
	}
	s.Pot = 0
	s.Complete = true
}
