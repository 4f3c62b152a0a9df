// Package guardrail validates price mentions in model-generated drafts
// against the authoritative price list. Only exact display forms pass; no
// numeric recomputation is ever considered valid.
package guardrail

// PriceFact is one authoritative price entry. AcceptedForms holds the exact
// literal strings a reply may use for this plan or agent.
type PriceFact struct {
	Key           string
	SetupAmount   float64
	MonthlyAmount float64
	Currency      string
	AcceptedForms []string
}

// defaultPriceFacts is the compiled-in price list for the LeadGate plans
// and per-agent subscriptions.
var defaultPriceFacts = []PriceFact{
	{
		Key:           "essential",
		SetupAmount:   1400,
		MonthlyAmount: 300,
		Currency:      "€",
		AcceptedForms: []string{
			"€1,400", "1,400 euros", "€1,400 setup",
			"€300", "€300/month", "€300 per month", "300 euros", "300/month",
		},
	},
	{
		Key:           "growth",
		SetupAmount:   2400,
		MonthlyAmount: 550,
		Currency:      "€",
		AcceptedForms: []string{
			"€2,400", "2,400 euros", "€2,400 setup",
			"€550", "€550/month", "€550 per month", "550 euros", "550/month",
		},
	},
	{
		Key:           "scale",
		SetupAmount:   4900,
		MonthlyAmount: 950,
		Currency:      "€",
		AcceptedForms: []string{
			"€4,900", "4,900 euros", "€4,900 setup",
			"€950", "€950/month", "€950 per month", "950 euros", "950/month",
		},
	},
	{
		Key:           "agent_lead_qualifier",
		MonthlyAmount: 350,
		Currency:      "€",
		AcceptedForms: []string{
			"€350", "€350/month", "€350 per month", "350 euros", "350/month",
		},
	},
	{
		Key:           "agent_support",
		MonthlyAmount: 400,
		Currency:      "€",
		AcceptedForms: []string{
			"€400", "€400/month", "€400 per month", "400 euros", "400/month",
		},
	},
	{
		Key:           "agent_booking",
		MonthlyAmount: 300,
		Currency:      "€",
		AcceptedForms: []string{
			"€300", "€300/month", "€300 per month", "300 euros", "300/month",
		},
	},
}

// DefaultPriceFacts returns the compiled-in authoritative price list.
func DefaultPriceFacts() []PriceFact {
	return defaultPriceFacts
}
