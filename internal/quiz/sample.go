package quiz

import (
	"math/rand/v2"
	"sync"
)

// sampler draws without replacement. The rand source is not safe for
// concurrent use, so draws are serialized.
type sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSampler(rng *rand.Rand) *sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &sampler{rng: rng}
}

// sample returns min(n, len(items)) distinct elements of items in random
// order. items itself is left untouched.
func sample[T any](s *sampler, items []T, n int) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	s.mu.Lock()
	// Fisher-Yates.
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	s.mu.Unlock()

	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 0 {
		n = 0
	}
	return shuffled[:n]
}
