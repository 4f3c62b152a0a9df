package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/metrics"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
)

func TestTransitionAllowed(t *testing.T) {
	agg := metrics.NewAggregator()
	m := NewMachine(agg)
	sess := model.NewSessionState(time.Now())

	m.Transition(sess, model.StateMenu, nil)

	assert.Equal(t, model.StateMenu, sess.Current)
	assert.Equal(t, int64(0), agg.Get(metrics.CounterAdjacencyViolations))
	assert.Equal(t, []model.State{model.StateWelcome}, sess.History)
}

func TestTransitionViolationIsCountedNotRejected(t *testing.T) {
	agg := metrics.NewAggregator()
	m := NewMachine(agg)
	sess := model.NewSessionState(time.Now())

	// WELCOME -> BOOK_EMAIL is not in the adjacency table.
	m.Transition(sess, model.StateBookEmail, nil)

	assert.Equal(t, model.StateBookEmail, sess.Current, "violations still apply")
	assert.Equal(t, int64(1), agg.Get(metrics.CounterAdjacencyViolations))
}

func TestTransitionDeclaredOverrideNotCounted(t *testing.T) {
	agg := metrics.NewAggregator()
	m := NewMachine(agg)
	sess := model.NewSessionState(time.Now())
	sess.Current = model.StatePricingDetail

	// The booking override from any non-booking state is declared, not a violation.
	m.Transition(sess, model.StateBookName, nil)

	assert.Equal(t, model.StateBookName, sess.Current)
	assert.Equal(t, int64(0), agg.Get(metrics.CounterAdjacencyViolations))
}

func TestTransitionAppliesPatch(t *testing.T) {
	m := NewMachine(metrics.NewAggregator())
	sess := model.NewSessionState(time.Now())
	sess.Current = model.StateBookName

	m.Transition(sess, model.StateBookEmail, map[string]string{FieldName: "Ada"})

	assert.Equal(t, "Ada", sess.Data[FieldName])
	assert.Equal(t, model.StateBookEmail, sess.Current)
}
