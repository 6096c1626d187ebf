package chaos

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the random draws the engine makes. The probability
// gate and the action selector draw independently, possibly from many
// requests at once, so implementations must be safe for concurrent use.
// Tests replace the Source with a deterministic sequence to make
// decision streams reproducible.
type Source interface {
	Float64() float64
	Intn(n int) int
	Int63n(n int64) int64
}

// NewSource returns a Source backed by math/rand with the given seed,
// guarded by a mutex so concurrent draws cannot corrupt generator state.
func NewSource(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func newDefaultSource() Source {
	return NewSource(time.Now().UnixNano())
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Int63n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n)
}
