package random

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/dejavu/internal/common/random Source

// Source picks random integers for topic selection and history sampling
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int

	// Int63n returns a value in [0, n). n must be positive.
	Int63n(n int64) int64
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Picker is a goroutine-safe Source backed by math/rand
type Picker struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random picker
func New(cfg *Config) *Picker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Picker{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random value in [0, n)
func (p *Picker) Intn(n int) int {
	if n < 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.random.Intn(n)
}

// Int63n returns a random value in [0, n)
func (p *Picker) Int63n(n int64) int64 {
	if n < 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.random.Int63n(n)
}
