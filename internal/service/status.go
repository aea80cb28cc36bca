package service

import (
	"math/rand"
	"sync"
	"time"

	"unbolt-api/internal/models"
)

// StatusSampler decides the status reported for a booking on each read
type StatusSampler interface {
	Sample() string
}

// lockedRand is a *rand.Rand safe for use from concurrent handlers
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// RandomStatusSampler picks uniformly from every booking status, ignoring
// previous reads and elapsed time
type RandomStatusSampler struct {
	rnd *lockedRand
}

// NewRandomStatusSampler creates a sampler. A zero seed uses the clock.
func NewRandomStatusSampler(seed int64) *RandomStatusSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomStatusSampler{rnd: newLockedRand(seed)}
}

func (s *RandomStatusSampler) Sample() string {
	return models.BookingStatuses[s.rnd.Intn(len(models.BookingStatuses))]
}

// FixedStatusSampler always reports the same status
type FixedStatusSampler string

func (s FixedStatusSampler) Sample() string {
	return string(s)
}
