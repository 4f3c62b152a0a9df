package flow

import "github.com/leadgate-ai/dialogue-core/internal/dialogue/model"

// Data field keys collected during the scripted flows.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldCompany      = "company"
	FieldEmployees    = "employees"
	FieldChannel      = "channel"
	FieldGoal         = "goal"
	FieldPlan         = "plan"
	FieldAgent        = "agent"
	FieldSupportIssue = "support_issue"
)

// Notifier event types fired as terminal side effects of transitions.
const (
	EventLeadCaptured     = "lead.captured"
	EventSupportEscalated = "support.escalated"
)

const welcomeText = `Hi! I'm the LeadGate assistant. I can help you with:

1. Pricing and plans
2. Our AI agents and what they can do
3. Support for an existing setup
4. Booking a demo call

What would you like to do?`

// menuReprompt is the short re-prompt for unmatched menu input. It
// deliberately does not repeat the full welcome text.
const menuReprompt = "Sorry, I didn't catch that. You can reply with 1 (pricing), 2 (agents), 3 (support) or 4 (book a demo)."

const clarificationText = `I want to make sure I give you an accurate answer. Could you tell me which of these you're asking about?

- Pricing and plans
- Our AI agents and their capabilities
- Support for an existing setup
- Booking a demo`

// guardrailFallback replaces a draft reply that failed the price check.
const guardrailFallback = "I'd rather not quote numbers I'm not certain about. For exact pricing, reply 1 to see our plans or 4 to book a call with the team."

// genericFallback is used when retrieval or the model is unavailable.
const genericFallback = "I'm having trouble looking that up right now. You can ask me about pricing, our agents, or book a demo with 4."

const awaitingConfirmationText = "I haven't seen your booking come through yet. Once you pick a slot via the link I sent, I'll confirm it here."

// entryPrompts are the scripted prompts emitted when a state is entered.
var entryPrompts = map[model.State]string{
	model.StateMenu:          welcomeText,
	model.StatePricingSelect: "We have three plans: Essential, Growth and Scale. Which one would you like to hear about? (1-3)",
	model.StateAgentsSelect:  "We offer a Lead Qualifier Agent, a Support Agent and a Booking Agent. Which one should I tell you about? (1-3)",
	model.StateSupportIssue:  "Sorry to hear you're running into trouble. Can you describe the issue in a sentence or two?",
	model.StateBookName:      "Great, let's get your demo booked. First off, what's your name?",
	model.StateBookEmail:     "Thanks! What's the best email to reach you on?",
	model.StateBookPhone:     "And a phone number, in case we need to reach you?",
	model.StateBookCompany:   "Which company are you with?",
	model.StateBookEmployees: "Roughly how many employees does your company have?",
	model.StateBookChannel:   "Which channel matters most for you: WhatsApp, web chat, Instagram or email?",
	model.StateBookGoal:      "Last one: what's the main thing you'd like the agent to do for you?",
	model.StateBookSendLink:  "Perfect, that's everything I need. Here's the scheduling link to pick a slot for your demo: https://cal.leadgate.ai/demo - I'll confirm here as soon as you've booked.",
	model.StateDone:          "You're all set! If anything else comes up, just ask.",
}

// Prompt returns the scripted entry prompt for a state.
func Prompt(state model.State) string {
	return entryPrompts[state]
}

// MenuReprompt is the anti-loop short re-prompt for the MENU state.
func MenuReprompt() string { return menuReprompt }

// Clarification is the guided fallback listing coarse menu categories,
// used when retrieval similarity is below the anti-hallucination threshold.
func Clarification() string { return clarificationText }

// GuardrailFallback is the fixed substitute for a blocked draft reply.
func GuardrailFallback() string { return guardrailFallback }

// GenericFallback is the degraded reply for retrieval or model failures.
func GenericFallback() string { return genericFallback }

// AwaitingConfirmation is the holding reply while no complete booking
// confirmation record exists.
func AwaitingConfirmation() string { return awaitingConfirmationText }

// planSummaries are scripted pricing answers. Amounts must stay literal
// matches of the guardrail's accepted display forms.
var planSummaries = map[string]string{
	"essential": "The Essential plan is €1,400 setup + €300/month. It includes one agent on one channel, our knowledge base tooling and standard support.",
	"growth":    "The Growth plan is €2,400 setup + €550/month. It includes two agents across two channels, CRM integration and priority support.",
	"scale":     "The Scale plan is €4,900 setup + €950/month. It includes unlimited agents, all channels, custom integrations and a dedicated success manager.",
}

var planAliases = map[string]string{
	"1": "essential", "essential": "essential",
	"2": "growth", "growth": "growth",
	"3": "scale", "scale": "scale",
}

var agentSummaries = map[string]string{
	"lead_qualifier": "The Lead Qualifier Agent is €350/month. It qualifies inbound leads on your site or WhatsApp, collects contact details and scores intent before handing off.",
	"support":        "The Support Agent is €400/month. It answers questions from your knowledge base and escalates anything it can't resolve to your team.",
	"booking":        "The Booking Agent is €300/month. It handles scheduling end to end: proposing slots, sending calendar links and confirming appointments.",
}

var agentAliases = map[string]string{
	"1": "lead_qualifier", "lead": "lead_qualifier", "qualifier": "lead_qualifier",
	"2": "support", "support": "support",
	"3": "booking", "booking": "booking",
}

// matchChoice resolves free-text input against an alias table.
func matchChoice(raw string, aliases map[string]string) (string, bool) {
	for _, w := range normalizeInput(raw) {
		if key, ok := aliases[w]; ok {
			return key, true
		}
	}
	return "", false
}
