package aggregator

import (
	"context"
	"errors"
	"sync"
)

// Finish reasons reported by the consumer.
const (
	// ReasonComplete means every producer contributed at least one sample.
	ReasonComplete = "complete"
	// ReasonProducersDone means all producers exited before all contributed.
	ReasonProducersDone = "producers_done"
	// ReasonTimeout means the consumer deadline expired.
	ReasonTimeout = "timeout"
	// ReasonCanceled means the run context was canceled.
	ReasonCanceled = "canceled"
)

// Snapshot is a consistent view of the accumulator.
type Snapshot struct {
	Samples   []float64
	Completed int
}

// Observer is called with the accumulator lengths after every update.
// It runs while the accumulator lock is held and must not block.
type Observer func(samples, completed int)

// Accumulator is the state shared by producers and the consumer.
// Every read and write of samples and completed happens under mu, and each
// append is paired with its completed-count update in one critical section.
//
// Invariants: completed <= k, completed <= len(samples), completed never decreases.
type Accumulator struct {
	mu          sync.Mutex
	cond        *sync.Cond
	k           int
	samples     []float64
	contributed map[int]struct{}
	completed   int
	closed      bool
	observers   []Observer
}

// NewAccumulator creates an accumulator expecting k distinct producers.
func NewAccumulator(k int, observers ...Observer) *Accumulator {
	a := &Accumulator{
		k:           k,
		contributed: make(map[int]struct{}, k),
		observers:   observers,
	}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Add appends value on behalf of producer and returns the completed count
// after the update and whether this was the producer's first contribution.
func (a *Accumulator) Add(producer int, value float64) (completed int, first bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.samples = append(a.samples, value)
	if _, ok := a.contributed[producer]; !ok && a.completed < a.k {
		a.contributed[producer] = struct{}{}
		a.completed++
		first = true
	}

	for _, observe := range a.observers {
		observe(len(a.samples), a.completed)
	}

	if a.completed >= a.k {
		a.cond.Broadcast()
	}
	return a.completed, first
}

// Completed returns the number of distinct producers that have contributed.
func (a *Accumulator) Completed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completed
}

// Snapshot returns a copy of the current state.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	samples := make([]float64, len(a.samples))
	copy(samples, a.samples)
	return Snapshot{Samples: samples, Completed: a.completed}
}

// Close marks that no producer will add again and wakes the consumer.
func (a *Accumulator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.cond.Broadcast()
}

// Wait blocks until all k producers have contributed, the accumulator is
// closed, or ctx is done, and returns which of those happened first.
func (a *Accumulator) Wait(ctx context.Context) string {
	stop := context.AfterFunc(ctx, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.cond.Broadcast()
	})
	defer stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	for a.completed < a.k && !a.closed && ctx.Err() == nil {
		a.cond.Wait()
	}

	switch {
	case a.completed >= a.k:
		return ReasonComplete
	case a.closed:
		return ReasonProducersDone
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonCanceled
	}
}

// Finalize computes sum(samples)/len(samples) and takes a snapshot in the
// same critical section. An empty accumulator yields 0.
func (a *Accumulator) Finalize() (float64, Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	samples := make([]float64, len(a.samples))
	copy(samples, a.samples)
	snap := Snapshot{Samples: samples, Completed: a.completed}

	if len(samples) == 0 {
		return 0, snap
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples)), snap
}
