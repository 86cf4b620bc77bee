package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/statistics"
)

type CLI struct {
	Hands   int    `default:"1000" help:"Number of hands to simulate"`
	Config  string `short:"c" default:"holdem.hcl" help:"Table configuration file"`
	Seat    int    `default:"0" help:"Seat index to track in the results"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		ctx.Exit(1)
	}

	fmt.Printf("Starting simulation: %d hands, %d seats, blinds %d/%d (seed: %d)\n",
		cli.Hands, len(cfg.Seats), cfg.Table.SmallBlind, cfg.Table.BigBlind, cli.Seed)

	sim := simulator.New(simulator.Config{
		Hands:         cli.Hands,
		Seed:          cli.Seed,
		EquitySamples: cfg.Table.EquitySamples,
		TrackedSeat:   cli.Seat,
		Logger:        logger,
	}, cfg.EngineConfig())

	result, err := sim.Run()
	if err != nil {
		logger.Error("Simulation failed", "error", err)
		ctx.Exit(1)
	}

	printResults(result, cli.Seat)
	ctx.Exit(0)
}

func printResults(result *simulator.Result, seat int) {
	stats := result.Stats
	mean := stats.Mean()
	low, high := stats.ConfidenceInterval95()

	handsPerSec := 0.0
	if result.Elapsed > 0 {
		handsPerSec = float64(result.Hands) / result.Elapsed.Seconds()
	}

	fmt.Printf("\n=== RESULTS (seat %d) ===\n", seat)
	fmt.Printf("Hands played: %d\n", result.Hands)
	fmt.Printf("Total time: %v (%.1f hands/sec)\n", result.Elapsed.Round(time.Millisecond), handsPerSec)

	fmt.Printf("\nMean: %.4f bb/hand\n", mean)
	fmt.Printf("Median: %.4f bb/hand\n", stats.Median())
	fmt.Printf("Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Printf("95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Printf("Win rate: %.1f%%\n", stats.WinRate()*100)

	totalWins := stats.ShowdownWins + stats.UncontestedWins
	if totalWins > 0 {
		fmt.Printf("Wins: %d at showdown, %d uncontested\n",
			stats.ShowdownWins, stats.UncontestedWins)
	}
	fmt.Printf("Largest pot: %.1f bb\n", stats.MaxPotBB)

	fmt.Printf("\n=== SEAT ANALYSIS ===\n")
	for s := 0; s < statistics.MaxSeats; s++ {
		ss := stats.SeatResults[s]
		if ss.Hands > 0 {
			fmt.Printf("Seat %d: %d hands, %.3f bb/hand\n", s, ss.Hands, stats.SeatMean(s))
		}
	}
}
