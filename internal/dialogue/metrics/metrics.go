// Package metrics provides an injectable in-process aggregator for
// dialogue observability counters. It is explicitly constructed and passed
// to the components that record events; Reset exists for tests.
package metrics

import "sync"

// Aggregator accumulates named counters. Safe for concurrent use.
type Aggregator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// Counter names recorded by the dialogue core.
const (
	CounterTurns               = "turns"
	CounterRAGTurns            = "rag_turns"
	CounterGuardrailBlocks     = "guardrail_blocks"
	CounterAdjacencyViolations = "adjacency_violations"
	CounterStoreDegradations   = "store_degradations"
	CounterRetrievalFallbacks  = "retrieval_fallbacks"
	CounterConfirmations       = "confirmations"
	CounterCorruptSessions     = "corrupt_sessions"
)

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{counters: map[string]int64{}}
}

// Inc increments a named counter by one.
func (a *Aggregator) Inc(name string) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.counters[name]++
	a.mu.Unlock()
}

// Get returns the current value of a counter.
func (a *Aggregator) Get(name string) int64 {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[name]
}

// Snapshot returns a copy of all counters.
func (a *Aggregator) Snapshot() map[string]int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int64, len(a.counters))
	for k, v := range a.counters {
		out[k] = v
	}
	return out
}

// Reset clears all counters.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.counters = map[string]int64{}
	a.mu.Unlock()
}
