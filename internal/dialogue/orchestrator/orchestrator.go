// Package orchestrator composes the dialogue core: it loads session state,
// applies the direct-intent override, drives the state machine, defers
// open-ended questions to retrieval + language model, gates drafts through
// the price guardrail and persists the updated state.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/flow"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/guardrail"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/metrics"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/notify"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/prompts"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/retrieval"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/session"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Deps are the collaborators the orchestrator composes. Transcripts and
// Confirmations are optional; Notifier defaults to a no-op.
type Deps struct {
	Sessions      *session.Manager
	Transcripts   model.TranscriptRepository
	Retriever     *retrieval.Retriever
	Model         model.LanguageModel
	Guardrail     *guardrail.Guardrail
	Notifier      model.Notifier
	Confirmations model.Confirmations
	Metrics       *metrics.Aggregator
}

// Config carries the prompt and transcript settings.
type Config struct {
	Prompt     model.PromptConfig
	Transcript model.TranscriptConfig
}

// Orchestrator handles one turn at a time per call. Turns for distinct
// sessions may run concurrently; same-session turns are read-modify-write
// without a lock (last write wins).
type Orchestrator struct {
	sessions      *session.Manager
	transcripts   model.TranscriptRepository
	machine       *flow.Machine
	retriever     *retrieval.Retriever
	llm           model.LanguageModel
	guard         *guardrail.Guardrail
	notifier      model.Notifier
	confirmations model.Confirmations
	agg           *metrics.Aggregator

	prompt        model.PromptConfig
	transcriptMax int
}

// New creates an orchestrator from its dependencies.
func New(deps Deps, cfg Config) *Orchestrator {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	agg := deps.Metrics
	if agg == nil {
		agg = metrics.NewAggregator()
	}
	maxTurns := cfg.Transcript.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &Orchestrator{
		sessions:      deps.Sessions,
		transcripts:   deps.Transcripts,
		machine:       flow.NewMachine(agg),
		retriever:     deps.Retriever,
		llm:           deps.Model,
		guard:         deps.Guardrail,
		notifier:      notifier,
		confirmations: deps.Confirmations,
		agg:           agg,
		prompt:        cfg.Prompt,
		transcriptMax: maxTurns,
	}
}

// HandleTurn processes one inbound message and returns the reply.
func (o *Orchestrator) HandleTurn(ctx context.Context, in model.TurnInput) (*model.Reply, error) {
	o.agg.Inc(metrics.CounterTurns)

	lang := strings.TrimSpace(in.Language)
	if lang == "" {
		lang = o.prompt.DefaultLanguage
	}

	sess, degraded, reset := o.sessions.GetOrInit(ctx, in.SessionID)
	if reset {
		// A discarded corrupt state invalidates the transcript with it.
		o.clearTranscript(ctx, in.SessionID)
	}

	reply := o.dispatch(ctx, in, sess, lang)

	if err := o.sessions.Save(ctx, in.SessionID, sess, degraded); err != nil {
		logx.Warn().Err(err).Str("sessionID", in.SessionID).Msg("failed to persist session state")
	}

	reply.NextState = sess.Current.String()
	reply.Language = lang

	logx.Debug().
		Str("session_id", in.SessionID).
		Str("state", reply.NextState).
		Bool("used_retrieval", reply.UsedRetrieval).
		Msg("turn completed")
	return reply, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, in model.TurnInput, sess *model.SessionState, lang string) *model.Reply {
	msg := strings.TrimSpace(in.Message)

	// Direct-intent override: booking keywords jump straight into BOOK_NAME
	// from any non-booking state, bypassing the per-state dispatch.
	if !sess.Current.IsBooking() && flow.MatchesBookingIntent(msg) {
		o.machine.Transition(sess, model.StateBookName, nil)
		return &model.Reply{Message: flow.Prompt(model.StateBookName)}
	}

	if sess.Current == model.StateBookAwait {
		return o.resolveConfirmation(ctx, in.SessionID, sess)
	}

	h, ok := flow.HandlerFor(sess.Current)
	if !ok {
		// Load-time checks normally catch this; recover anyway.
		logx.Warn().Str("state", sess.Current.String()).Msg("no handler for state, reinitializing session")
		o.agg.Inc(metrics.CounterCorruptSessions)
		*sess = *model.NewSessionState(time.Now())
		h, _ = flow.HandlerFor(sess.Current)
	}

	out := h(sess, msg)

	if out.Defer {
		return o.ragReply(ctx, in.SessionID, msg, lang)
	}

	if out.Next == model.StateNone {
		// Stay put. The MENU re-prompt is deliberately short: repeating the
		// full welcome text on every mismatch is the loop this avoids.
		reply := out.Reply
		if reply == "" {
			reply = flow.MenuReprompt()
		}
		return &model.Reply{Message: reply}
	}

	o.machine.Transition(sess, out.Next, out.Patch)
	if out.Event != "" {
		o.notifier.Notify(ctx, out.Event, o.leadPayload(in.SessionID, sess))
	}

	// Action states chain to their successor within the same turn.
	switch sess.Current {
	case model.StateBookStart:
		o.machine.Transition(sess, model.StateBookName, nil)
	case model.StateBookSendLink:
		o.notifier.Notify(ctx, flow.EventLeadCaptured, o.leadPayload(in.SessionID, sess))
		o.machine.Transition(sess, model.StateBookAwait, nil)
	}

	return &model.Reply{Message: out.Reply}
}

// resolveConfirmation enforces the confirmation discipline: a "confirmed"
// reply is emitted only for a complete record with status "confirmed".
// Anything less keeps the session awaiting.
func (o *Orchestrator) resolveConfirmation(ctx context.Context, sessionID string, sess *model.SessionState) *model.Reply {
	if o.confirmations == nil {
		return &model.Reply{Message: flow.AwaitingConfirmation()}
	}

	rec, err := o.confirmations.Lookup(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("confirmation lookup failed")
		return &model.Reply{Message: flow.AwaitingConfirmation()}
	}
	if !rec.Valid() {
		return &model.Reply{Message: flow.AwaitingConfirmation()}
	}

	o.machine.Transition(sess, model.StateBookConfirmed, map[string]string{
		"booking_id":        rec.BookingID,
		"booking_starts_at": rec.StartsAt.Format(time.RFC3339),
		"booking_timezone":  rec.Timezone,
	})
	o.agg.Inc(metrics.CounterConfirmations)

	msg := fmt.Sprintf(
		"You're booked! Your demo is on %s (%s). A calendar invite is on its way to %s.",
		rec.StartsAt.Format("Monday, 2 January at 15:04"),
		rec.Timezone,
		sess.Data[flow.FieldEmail],
	)
	return &model.Reply{Message: msg}
}

// ragReply runs the deferred turn: retrieve, prompt, complete, gate. Every
// failure degrades to a safe scripted reply; a failed guardrail check
// discards the draft and never retries generation.
func (o *Orchestrator) ragReply(ctx context.Context, sessionID, query, lang string) *model.Reply {
	o.agg.Inc(metrics.CounterRAGTurns)
	o.record(ctx, sessionID, schema.UserMessage(query))

	res, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		o.agg.Inc(metrics.CounterRetrievalFallbacks)
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("retrieval failed, degrading to generic reply")
		return &model.Reply{Message: flow.GenericFallback()}
	}

	if res.BelowThreshold {
		// Anti-hallucination gate: guide the user instead of guessing.
		return &model.Reply{Message: flow.Clarification(), UsedRetrieval: true}
	}

	sys, err := prompts.RenderAnswerSystem(ctx, o.prompt, res.Context, lang)
	if err != nil {
		logx.Error().Err(err).Msg("failed to render answer prompt")
		return &model.Reply{Message: flow.GenericFallback(), UsedRetrieval: true}
	}

	messages := append([]*schema.Message{schema.SystemMessage(sys)}, o.history(ctx, sessionID, query)...)

	draft, err := o.llm.Complete(ctx, messages)
	if err != nil || draft == nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("completion failed, degrading to generic reply")
		return &model.Reply{Message: flow.GenericFallback(), UsedRetrieval: true}
	}

	chk := o.guard.Check(draft.Content)
	if !chk.Passed {
		o.agg.Inc(metrics.CounterGuardrailBlocks)
		logx.Warn().
			Str("sessionID", sessionID).
			Str("reason", chk.Reason).
			Strs("invalid_prices", chk.InvalidPrices).
			Msg("draft reply blocked by price guardrail")
		return &model.Reply{Message: flow.GuardrailFallback(), UsedRetrieval: true}
	}

	o.record(ctx, sessionID, schema.AssistantMessage(draft.Content, nil))
	return &model.Reply{Message: draft.Content, UsedRetrieval: true}
}

// history returns the bounded transcript for model context, always ending
// with the current user message.
func (o *Orchestrator) history(ctx context.Context, sessionID, query string) []*schema.Message {
	if o.transcripts == nil {
		return []*schema.Message{schema.UserMessage(query)}
	}
	msgs, err := o.transcripts.Recent(ctx, sessionID, o.transcriptMax)
	if err != nil || len(msgs) == 0 {
		if err != nil {
			logx.Warn().Err(err).Str("sessionID", sessionID).Msg("failed to load transcript")
		}
		return []*schema.Message{schema.UserMessage(query)}
	}
	return msgs
}

func (o *Orchestrator) clearTranscript(ctx context.Context, sessionID string) {
	if o.transcripts == nil {
		return
	}
	if err := o.transcripts.Clear(ctx, sessionID); err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("failed to clear transcript")
	}
}

func (o *Orchestrator) record(ctx context.Context, sessionID string, msg *schema.Message) {
	if o.transcripts == nil {
		return
	}
	if err := o.transcripts.AddMessage(ctx, sessionID, msg); err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("failed to record transcript message")
	}
}

func (o *Orchestrator) leadPayload(sessionID string, sess *model.SessionState) map[string]any {
	payload := map[string]any{
		"session_id": sessionID,
		"state":      sess.Current.String(),
	}
	for k, v := range sess.Data {
		payload[k] = v
	}
	return payload
}
