// Package bot implements the automated decision engine used for non-human
// seats. Decisions are driven by estimated hand strength against pot odds,
// with a small seeded perturbation so play is not perfectly predictable.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/thoas/go-funk"

	"github.com/lox/holdem-engine/internal/engine"
)

// Strength thresholds for the action ladder. Above raiseThreshold the bot
// raises, above callThreshold it calls or checks, above marginThreshold it
// calls only when the pot odds justify it.
const (
	raiseThreshold  = 0.8
	callThreshold   = 0.6
	marginThreshold = 0.4
)

// bluffChance is the probability a weak hand plays on anyway
const bluffChance = 0.05

// Decider chooses actions for bot seats. It satisfies engine.DecisionMaker.
type Decider struct {
	estimator engine.WinEstimator
	rng       *rand.Rand
}

// New creates a decider. The estimator may be nil, in which case hand
// strength falls back to the engine's rank heuristic.
func New(rng *rand.Rand, estimator engine.WinEstimator) *Decider {
	return &Decider{estimator: estimator, rng: rng}
}

// Decide picks an action for the given seat. The seat must be a bot whose
// turn it is to act.
func (d *Decider) Decide(s *engine.GameState, seat int) (engine.BotDecision, error) {
	if seat < 0 || seat >= len(s.Players) {
		return engine.BotDecision{}, fmt.Errorf("seat %d: %w", seat, engine.ErrNotPlayersTurn)
	}
	p := s.Players[seat]
	if !p.IsBot || s.ActivePlayerIndex != seat {
		return engine.BotDecision{}, fmt.Errorf("seat %d: %w", seat, engine.ErrNotPlayersTurn)
	}

	legal := engine.AvailableActionsFor(s, seat)
	if len(legal) == 0 {
		return engine.BotDecision{}, fmt.Errorf("seat %d has no legal actions: %w", seat, engine.ErrNotPlayersTurn)
	}

	strength := d.handStrength(s, seat)
	toCall := s.CurrentBet - p.CurrentBet
	if toCall > p.Chips {
		toCall = p.Chips
	}

	potOdds := 0.0
	if toCall > 0 {
		potOdds = float64(toCall) / float64(s.Pot+toCall)
	}
	ev := strength*float64(s.Pot+toCall) - float64(toCall)

	decision := d.pick(s, p, legal, strength, toCall, potOdds)
	decision.HandStrength = strength
	decision.PotOdds = potOdds
	decision.ExpectedValue = ev
	return decision, nil
}

func (d *Decider) pick(s *engine.GameState, p *engine.Player, legal []engine.PlayerAction, strength float64, toCall int, potOdds float64) engine.BotDecision {
	canCheck := funk.Contains(legal, engine.Check)
	canRaise := funk.Contains(legal, engine.Raise)
	canCall := funk.Contains(legal, engine.Call)

	switch {
	case strength > raiseThreshold && canRaise:
		// A short stack may not cover the minimum raise; fall through to
		// the call ladder in that case
		if amount := d.raiseTo(s, p, strength); amount >= engine.MinimumRaiseTo(s) {
			return engine.BotDecision{
				Action:     engine.Raise,
				Amount:     amount,
				Confidence: confidence(strength, raiseThreshold),
				Reasoning:  fmt.Sprintf("strong hand (%.2f), raising to %d", strength, amount),
			}
		}
		fallthrough

	case strength > callThreshold:
		if canCheck {
			return engine.BotDecision{
				Action:     engine.Check,
				Confidence: confidence(strength, callThreshold),
				Reasoning:  fmt.Sprintf("decent hand (%.2f), checking for free", strength),
			}
		}
		if canCall {
			return engine.BotDecision{
				Action:     engine.Call,
				Confidence: confidence(strength, callThreshold),
				Reasoning:  fmt.Sprintf("decent hand (%.2f), calling %d", strength, toCall),
			}
		}

	case strength > marginThreshold:
		if canCheck {
			return engine.BotDecision{
				Action:     engine.Check,
				Confidence: confidence(strength, marginThreshold),
				Reasoning:  fmt.Sprintf("marginal hand (%.2f), checking", strength),
			}
		}
		if canCall && strength > potOdds {
			return engine.BotDecision{
				Action:     engine.Call,
				Confidence: confidence(strength, marginThreshold),
				Reasoning:  fmt.Sprintf("marginal hand (%.2f) but pot odds %.2f favor a call", strength, potOdds),
			}
		}
	}

	if canCheck {
		return engine.BotDecision{
			Action:     engine.Check,
			Confidence: 0.5,
			Reasoning:  fmt.Sprintf("weak hand (%.2f), checking for free", strength),
		}
	}
	if canCall && d.rng != nil && d.rng.Float64() < bluffChance {
		return engine.BotDecision{
			Action:     engine.Call,
			Confidence: 0.2,
			Reasoning:  fmt.Sprintf("weak hand (%.2f), calling as a bluff", strength),
		}
	}
	return engine.BotDecision{
		Action:     engine.Fold,
		Confidence: confidence(1-strength, 1-marginThreshold),
		Reasoning:  fmt.Sprintf("weak hand (%.2f), folding to %d", strength, toCall),
	}
}

// raiseTo sizes a raise to roughly half the pot scaled up with strength,
// clamped to the legal minimum and the player's stack
func (d *Decider) raiseTo(s *engine.GameState, p *engine.Player, strength float64) int {
	amount := s.CurrentBet + int(float64(s.Pot)*0.5*strength)
	if min := engine.MinimumRaiseTo(s); amount < min {
		amount = min
	}
	if max := p.CurrentBet + p.Chips; amount > max {
		amount = max
	}
	return amount
}

func (d *Decider) handStrength(s *engine.GameState, seat int) float64 {
	p := s.Players[seat]
	if d.estimator != nil {
		opponents := s.ActiveCount() - 1
		if opponents < 1 {
			opponents = 1
		}
		return d.estimator.WinProbability(p.HoleCards, s.CommunityCards, opponents)
	}
	return engine.HeuristicStrength(p.HoleCards, s.CommunityCards)
}

// confidence maps how far the strength clears its threshold onto [0.5, 1.0]
func confidence(strength, threshold float64) float64 {
	margin := (strength - threshold) / (1 - threshold)
	if margin < 0 {
		margin = 0
	}
	if margin > 1 {
		margin = 1
	}
	return 0.5 + margin/2
}
