package flow

import (
	"time"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/metrics"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Machine applies transitions against the declared adjacency table.
// Unexpected jumps are an observability event, not an error.
type Machine struct {
	agg *metrics.Aggregator
	now func() time.Time
}

// NewMachine creates a state machine recording into the given aggregator.
func NewMachine(agg *metrics.Aggregator) *Machine {
	return &Machine{agg: agg, now: time.Now}
}

// Transition moves the session to next and merges the data patch. The
// transition is permissive: adjacency violations are logged with a warning
// and counted, never rejected.
func (m *Machine) Transition(sess *model.SessionState, next model.State, patch map[string]string) *model.SessionState {
	from := sess.Current
	if !Allowed(from, next) && !declaredOverride(from, next) {
		logx.Warn().
			Str("from", from.String()).
			Str("to", next.String()).
			Msg("transition outside declared adjacency")
		m.agg.Inc(metrics.CounterAdjacencyViolations)
	}

	sess.Apply(patch)
	sess.Visit(next, m.now())
	return sess
}
