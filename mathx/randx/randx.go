package randx

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// MAX_SEED bounds drawn seeds to [0, MAX_SEED).
const MAX_SEED = 1000000

// Seeder hands out one seed per augmentation call.
// Implementations must be safe for concurrent use.
type Seeder interface {
	Seed() uint64
}

// UniformSeeder draws seeds uniformly from [0, MAX_SEED) using the
// process-wide generator, so concurrent callers never share a draw.
type UniformSeeder struct {
	dist distuv.Uniform
}

func NewUniformSeeder() *UniformSeeder {
	return &UniformSeeder{dist: distuv.Uniform{Min: 0, Max: MAX_SEED}}
}

func (s *UniformSeeder) Seed() uint64 {
	v := uint64(s.dist.Rand())
	if v >= MAX_SEED {
		v = MAX_SEED - 1
	}
	return v
}

// SequenceSeeder replays fixed seeds in order and wraps around.
type SequenceSeeder struct {
	mu    sync.Mutex
	seeds []uint64
	next  int
}

func NewSequenceSeeder(seeds ...uint64) *SequenceSeeder {
	if len(seeds) == 0 {
		seeds = []uint64{0}
	}
	return &SequenceSeeder{seeds: seeds}
}

func (s *SequenceSeeder) Seed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.seeds[s.next]
	s.next = (s.next + 1) % len(s.seeds)
	return seed
}

// SeederFunc adapts a function to Seeder.
type SeederFunc func() uint64

func (f SeederFunc) Seed() uint64 {
	return f()
}

// NewPCG returns a generator fully determined by seed.
func NewPCG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func Uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func Bool(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
