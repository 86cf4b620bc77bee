// Package simulator plays automated hands end to end and aggregates the
// results for the tracked seat.
package simulator

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/engine"
	"github.com/lox/holdem-engine/internal/equity"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// Hands that take more actions than this are treated as stuck
const maxActionsPerHand = 500

// Config holds configuration for a simulation run
type Config struct {
	Hands         int
	Seed          int64
	EquitySamples int
	TrackedSeat   int
	Logger        *log.Logger
	Clock         quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	Stats   *statistics.Statistics
	Hands   int
	Elapsed time.Duration
}

// Simulator drives the engine with bot deciders in every seat
type Simulator struct {
	config Config
	game   engine.Config
}

// New creates a simulator. Every seat plays automatically regardless of its
// configured bot flag.
func New(config Config, game engine.Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	players := make([]engine.PlayerConfig, len(game.Players))
	for i, p := range game.Players {
		p.IsBot = true
		players[i] = p
	}
	game.Players = players
	if config.TrackedSeat < 0 || config.TrackedSeat >= len(players) {
		config.TrackedSeat = 0
	}
	return &Simulator{config: config, game: game}
}

// Run plays the configured number of hands and returns aggregated results.
// The run ends early if the table can no longer field two funded players.
func (s *Simulator) Run() (*Result, error) {
	start := s.config.Clock.Now()

	rng := randutil.New(s.config.Seed)
	estimator := equity.New(randutil.Child(rng), s.config.EquitySamples)
	decider := bot.New(randutil.Child(rng), estimator)

	eng, err := engine.New(rng, s.game,
		engine.WithEstimator(estimator),
		engine.WithDecider(decider),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	stats := &statistics.Statistics{}
	played := 0

	for hand := 0; hand < s.config.Hands; hand++ {
		result, err := s.playHand(eng)
		if err != nil {
			if errors.Is(err, engine.ErrNotEnoughPlayers) {
				s.config.Logger.Info("table down to one funded player, stopping",
					"hands_played", played)
				break
			}
			return nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}
		stats.Add(result)
		played++
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	return &Result{
		Stats:   stats,
		Hands:   played,
		Elapsed: s.config.Clock.Now().Sub(start),
	}, nil
}

// playHand runs one hand to completion and scores it from the tracked
// seat's point of view
func (s *Simulator) playHand(eng *engine.Engine) (statistics.HandResult, error) {
	before := eng.Snapshot()
	var chipsBefore int
	var tracked *engine.Player

	state, err := eng.StartNewHand()
	if err != nil {
		return statistics.HandResult{}, err
	}
	if before != nil {
		chipsBefore = before.Players[s.config.TrackedSeat].Chips
	} else {
		chipsBefore = s.game.StartingChips
	}
	tracked = state.Players[s.config.TrackedSeat]

	s.config.Logger.Debug("starting hand",
		"hand", state.HandNumber, "button", state.Button, "id", state.ID)

	actions := 0
	for !eng.HandComplete() {
		if actions++; actions > maxActionsPerHand {
			return statistics.HandResult{}, fmt.Errorf("hand %s exceeded %d actions", state.ID, maxActionsPerHand)
		}

		snap := eng.Snapshot()
		actor := snap.CurrentPlayer()
		if actor == nil {
			return statistics.HandResult{}, fmt.Errorf("hand %s: no player to act", state.ID)
		}

		decision, err := eng.BotDecision(actor.ID)
		if err != nil {
			return statistics.HandResult{}, fmt.Errorf("deciding for %s: %w", actor.Name, err)
		}

		s.config.Logger.Debug("bot action",
			"player", actor.Name,
			"action", decision.Action,
			"amount", decision.Amount,
			"strength", fmt.Sprintf("%.2f", decision.HandStrength),
			"reasoning", decision.Reasoning)

		if _, err := eng.ProcessPlayerAction(decision.Action, decision.Amount); err != nil {
			return statistics.HandResult{}, fmt.Errorf("applying %s for %s: %w", decision.Action, actor.Name, err)
		}
	}

	final := eng.Snapshot()
	netBB := float64(final.Players[s.config.TrackedSeat].Chips-chipsBefore) / float64(s.game.BigBlind)

	won := false
	potSize := 0
	wentToShowdown := final.Phase == engine.Showdown
	for _, w := range final.Winners {
		potSize += w.Amount
		if w.PlayerID == tracked.ID {
			won = true
		}
	}

	return statistics.HandResult{
		NetBB:          netBB,
		Seat:           s.config.TrackedSeat,
		Won:            won,
		WentToShowdown: wentToShowdown,
		PotBB:          float64(potSize) / float64(s.game.BigBlind),
	}, nil
}
