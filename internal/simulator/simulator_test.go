package simulator

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/engine"
)

func testGameConfig(seats, chips int) engine.Config {
	players := make([]engine.PlayerConfig, seats)
	for i := range players {
		players[i] = engine.PlayerConfig{
			ID:   string(rune('a' + i)),
			Name: string(rune('A' + i)),
		}
	}
	return engine.Config{
		Players:       players,
		SmallBlind:    25,
		BigBlind:      50,
		StartingChips: chips,
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRun_PlaysRequestedHands(t *testing.T) {
	sim := New(Config{
		Hands:         10,
		Seed:          123,
		EquitySamples: 200,
		Logger:        quietLogger(),
		Clock:         quartz.NewMock(t),
	}, testGameConfig(3, 2000))

	result, err := sim.Run()
	require.NoError(t, err)

	assert.Equal(t, 10, result.Hands)
	assert.Equal(t, 10, result.Stats.Hands)
	require.NoError(t, result.Stats.Validate())
}

func TestRun_Deterministic(t *testing.T) {
	run := func() float64 {
		sim := New(Config{
			Hands:         10,
			Seed:          99,
			EquitySamples: 200,
			Logger:        quietLogger(),
			Clock:         quartz.NewMock(t),
		}, testGameConfig(3, 2000))
		result, err := sim.Run()
		require.NoError(t, err)
		return result.Stats.Mean()
	}

	assert.Equal(t, run(), run(), "same seed must replay identically")
}

func TestRun_StopsWhenTableGoesBroke(t *testing.T) {
	// Two-blind stacks bust quickly; the run must end cleanly, not error
	sim := New(Config{
		Hands:         500,
		Seed:          7,
		EquitySamples: 100,
		Logger:        quietLogger(),
		Clock:         quartz.NewMock(t),
	}, testGameConfig(2, 100))

	result, err := sim.Run()
	require.NoError(t, err)
	assert.Less(t, result.Hands, 500)
	assert.Greater(t, result.Hands, 0)
	require.NoError(t, result.Stats.Validate())
}

func TestRun_TrackedSeatOutOfRangeDefaultsToZero(t *testing.T) {
	sim := New(Config{
		Hands:         2,
		Seed:          5,
		EquitySamples: 100,
		TrackedSeat:   9,
		Logger:        quietLogger(),
		Clock:         quartz.NewMock(t),
	}, testGameConfig(3, 2000))

	require.Equal(t, 0, sim.config.TrackedSeat)

	result, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Hands)
}

// Net results across all seats must cancel out: chips only move between
// players
func TestRun_NetBBSumsToZeroAcrossSeats(t *testing.T) {
	total := 0.0
	for seat := 0; seat < 3; seat++ {
		sim := New(Config{
			Hands:         5,
			Seed:          31,
			EquitySamples: 100,
			TrackedSeat:   seat,
			Logger:        quietLogger(),
			Clock:         quartz.NewMock(t),
		}, testGameConfig(3, 2000))
		result, err := sim.Run()
		require.NoError(t, err)
		total += result.Stats.SumBB
	}
	assert.InDelta(t, 0.0, total, 1e-9)
}
