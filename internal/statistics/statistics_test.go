package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty stats, got %f", stats.StdDev())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
}

func TestStatistics_SingleResult(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{
		NetBB:          2.5,
		Seat:           1,
		Won:            true,
		WentToShowdown: true,
		PotBB:          6.0,
	})

	if stats.Hands != 1 {
		t.Errorf("Expected 1 hand, got %d", stats.Hands)
	}
	if stats.Mean() != 2.5 {
		t.Errorf("Expected mean of 2.5, got %f", stats.Mean())
	}
	if stats.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", stats.Median())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for a single value, got %f", stats.Variance())
	}
	if stats.ShowdownWins != 1 {
		t.Errorf("Expected 1 showdown win, got %d", stats.ShowdownWins)
	}
	if stats.UncontestedWins != 0 {
		t.Errorf("Expected 0 uncontested wins, got %d", stats.UncontestedWins)
	}
	if stats.MaxPotBB != 6.0 {
		t.Errorf("Expected max pot of 6.0, got %f", stats.MaxPotBB)
	}
	if stats.SeatResults[1].Hands != 1 {
		t.Errorf("Expected 1 hand recorded for seat 1, got %d", stats.SeatResults[1].Hands)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatistics_MeanAndVariance(t *testing.T) {
	stats := &Statistics{}
	values := []float64{1, 2, 3, 4, 5}
	for _, v := range values {
		stats.Add(HandResult{NetBB: v, Seat: 0, Won: v > 0})
	}

	if stats.Mean() != 3 {
		t.Errorf("Expected mean of 3, got %f", stats.Mean())
	}
	// Sample variance of 1..5 is 2.5
	if math.Abs(stats.Variance()-2.5) > 1e-9 {
		t.Errorf("Expected variance of 2.5, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("Expected stddev of sqrt(2.5), got %f", stats.StdDev())
	}
	if stats.Median() != 3 {
		t.Errorf("Expected median of 3, got %f", stats.Median())
	}

	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("CI [%f, %f] does not bracket the mean", low, high)
	}
}

func TestStatistics_MedianEvenCount(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4} {
		stats.Add(HandResult{NetBB: v})
	}
	if stats.Median() != 2.5 {
		t.Errorf("Expected median of 2.5, got %f", stats.Median())
	}
}

func TestStatistics_WinBuckets(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 3, Won: true, WentToShowdown: true})
	stats.Add(HandResult{NetBB: 1.5, Won: true, WentToShowdown: false})
	stats.Add(HandResult{NetBB: -2, Won: false, WentToShowdown: true})
	stats.Add(HandResult{NetBB: -1, Won: false, WentToShowdown: false})

	if stats.ShowdownWins != 1 || stats.UncontestedWins != 1 {
		t.Errorf("Expected 1 win of each kind, got %d/%d", stats.ShowdownWins, stats.UncontestedWins)
	}
	if stats.ShowdownBB != 1.0 {
		t.Errorf("Expected showdown net of 1.0, got %f", stats.ShowdownBB)
	}
	if stats.UncontestedBB != 0.5 {
		t.Errorf("Expected uncontested net of 0.5, got %f", stats.UncontestedBB)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("Expected win rate of 0.5, got %f", stats.WinRate())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStatistics_SeatMean(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2, Seat: 0})
	stats.Add(HandResult{NetBB: 4, Seat: 0})
	stats.Add(HandResult{NetBB: -1, Seat: 2})

	if stats.SeatMean(0) != 3 {
		t.Errorf("Expected seat 0 mean of 3, got %f", stats.SeatMean(0))
	}
	if stats.SeatMean(2) != -1 {
		t.Errorf("Expected seat 2 mean of -1, got %f", stats.SeatMean(2))
	}
	if stats.SeatMean(5) != 0 {
		t.Errorf("Expected 0 for unused seat, got %f", stats.SeatMean(5))
	}
	if stats.SeatMean(-1) != 0 || stats.SeatMean(MaxSeats) != 0 {
		t.Error("Out of range seats should report 0")
	}
}

func TestStatistics_ValidateCatchesCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1, Won: true})

	stats.AllBB += 5 // corrupt the ledger
	if err := stats.Validate(); err == nil {
		t.Error("Expected ledger mismatch error")
	}
}
