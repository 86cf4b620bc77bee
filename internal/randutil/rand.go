// Package randutil seeds math/rand/v2 generators deterministically.
// Every generator in the module is created here, so a single int64 seed
// from a log line is enough to replay a run.
package randutil

import rand "math/rand/v2"

// New returns a generator whose sequence is fully determined by seed.
// rand.NewPCG wants two 64-bit words; the seed is expanded with a
// splitmix64 step so adjacent seeds do not yield correlated streams.
func New(seed int64) *rand.Rand {
	lo := splitmix(uint64(seed))
	hi := splitmix(lo)
	return rand.New(rand.NewPCG(lo, hi))
}

// Child derives an independent generator from an existing one, consuming
// one value from the parent. Each Monte Carlo worker runs on its own
// child stream.
func Child(rng *rand.Rand) *rand.Rand {
	return New(int64(rng.Uint64()))
}

// splitmix is one step of the splitmix64 generator.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
