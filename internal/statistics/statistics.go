// Package statistics aggregates per-seat results across a simulation run.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// MaxSeats bounds the per-seat breakdown
const MaxSeats = 10

// HandResult records the outcome of a single hand from one seat's view.
// Amounts are expressed in big blinds so runs at different stakes compare.
type HandResult struct {
	NetBB          float64 // net big blinds won or lost
	Seat           int     // seat index at the table
	Won            bool
	WentToShowdown bool
	PotBB          float64 // final pot size in big blinds
}

// SeatStats tracks results for one seat position
type SeatStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks results for one tracked seat over many hands
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for variance
	Values []float64 // all results, kept for median calculation

	ShowdownWins    int // hands won at showdown
	UncontestedWins int // hands won when everyone else folded
	ShowdownBB      float64
	UncontestedBB   float64
	AllBB           float64 // total, used for the ledger check

	SeatResults [MaxSeats]SeatStats

	MaxPotBB float64
}

// Add incorporates a new hand result
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.Won {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.UncontestedWins++
		}
	}

	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.UncontestedBB += netBB
	}
	s.AllBB += netBB

	if result.Seat >= 0 && result.Seat < MaxSeats {
		s.SeatResults[result.Seat].Hands++
		s.SeatResults[result.Seat].SumBB += netBB
		s.SeatResults[result.Seat].SumBB2 += netBB * netBB
	}

	if result.PotBB > s.MaxPotBB {
		s.MaxPotBB = result.PotBB
	}
}

// Mean returns the arithmetic mean result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// SeatMean returns the mean result when playing from the given seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= MaxSeats {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Hands == 0 {
		return 0
	}
	return ss.SumBB / float64(ss.Hands)
}

// WinRate returns the fraction of hands won by any means
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.ShowdownWins+s.UncontestedWins) / float64(s.Hands)
}

// Validate checks internal consistency of the aggregated data
func (s *Statistics) Validate() error {
	if math.Abs(s.AllBB-s.ShowdownBB-s.UncontestedBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: all=%.6f showdown=%.6f uncontested=%.6f",
			s.AllBB, s.ShowdownBB, s.UncontestedBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length %d does not match hands count %d", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.UncontestedWins; wins > s.Hands {
		return fmt.Errorf("total wins %d exceeds total hands %d", wins, s.Hands)
	}
	return nil
}
