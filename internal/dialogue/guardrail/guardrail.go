package guardrail

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Check is the verdict for one draft reply. A reply passes only when zero
// prices were detected or every detected price is a valid, un-hedged match
// against the authoritative list.
type Check struct {
	Passed         bool
	DetectedPrices []string
	InvalidPrices  []string
	Reason         string
}

// hedgeWindow is the context radius, in characters, inspected around each
// detected price span.
const hedgeWindow = 50

var pricePatterns = []*regexp.Regexp{
	// currency-prefixed: €1,400  $99.50
	regexp.MustCompile(`[€$£]\s?\d+(?:[.,]\d+)*`),
	// currency-suffixed: 1400€
	regexp.MustCompile(`\d+(?:[.,]\d+)*\s?[€$£]`),
	// spelled out: 300 euros
	regexp.MustCompile(`(?i)\d+(?:[.,]\d+)*\s?(?:euros?|eur)\b`),
	// periodic: 300/month, 300 per month, 300 monthly
	regexp.MustCompile(`(?i)\d+(?:[.,]\d+)*\s?(?:/\s?(?:month|mo)\b|per\s+month\b|monthly\b)`),
}

// pricePhrasePattern catches "price/cost/fee ... N"; only the numeric group
// is the detected span.
var pricePhrasePattern = regexp.MustCompile(`(?i)\b(?:price|cost|fee)s?\b[^.\d]{0,30}?(\d+(?:[.,]\d+)*)`)

var hedgePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:approximately|around|about|roughly|estimated?)\b`),
	regexp.MustCompile(`(?i)\b(?:together|total|combined|sum)\b`),
	regexp.MustCompile(`(?i)\b(?:would|could|might)\s+be\b`),
	// unofficial plan names
	regexp.MustCompile(`(?i)\b(?:premium|basic|standard|starter|pro|plus|ultimate)\s+plan\b`),
}

// Guardrail validates drafts against a price list.
type Guardrail struct {
	forms   []string        // normalized accepted display forms
	amounts map[string]bool // bare numeric tokens of the accepted forms
}

// New creates a guardrail over the given price facts.
func New(facts []PriceFact) *Guardrail {
	g := &Guardrail{amounts: map[string]bool{}}
	for _, f := range facts {
		for _, form := range f.AcceptedForms {
			n := normalize(form)
			g.forms = append(g.forms, n)
			if amt := bareAmount(n); amt != "" {
				g.amounts[amt] = true
			}
		}
	}
	return g
}

// NewDefault creates a guardrail over the compiled-in price list.
func NewDefault() *Guardrail {
	return New(DefaultPriceFacts())
}

// Check inspects a draft reply for price mentions. On internal error the
// guardrail fails closed and blocks the reply.
func (g *Guardrail) Check(draft string) (res Check) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "price_guardrail").Msgf("panic recovered: %v", r)
			res = Check{Passed: false, Reason: "guardrail internal error"}
		}
	}()

	spans := detectSpans(draft)
	if len(spans) == 0 {
		return Check{Passed: true}
	}

	res = Check{}
	for _, sp := range spans {
		text := strings.TrimSpace(draft[sp.start:sp.end])
		res.DetectedPrices = append(res.DetectedPrices, text)

		if hedged(draft, sp) {
			res.InvalidPrices = append(res.InvalidPrices, text)
			continue
		}
		if !g.accepted(text) {
			res.InvalidPrices = append(res.InvalidPrices, text)
		}
	}

	if len(res.InvalidPrices) > 0 {
		res.Passed = false
		res.Reason = "price not in authoritative list or hedged context"
		logx.Warn().
			Strs("invalid_prices", res.InvalidPrices).
			Msg("draft reply blocked by price guardrail")
		return res
	}

	res.Passed = true
	return res
}

// accepted tests a detected span against the accepted forms: either the
// whole span equals a form, or the span reduces to a bare amount that some
// form carries. Substring matches are not accepted; "90" inside "€4,900" is
// not an authoritative price. A value the model computed itself (a sum, a
// rounding) is not in the list and therefore invalid even if arithmetically
// correct.
func (g *Guardrail) accepted(span string) bool {
	n := normalize(span)
	if n == "" {
		return false
	}
	for _, form := range g.forms {
		if form == n {
			return true
		}
	}
	if amt := bareAmount(n); amt != "" {
		return g.amounts[amt]
	}
	return false
}

var amountRe = regexp.MustCompile(`^\d+(?:[.,]\d+)*$`)

var currencyStripper = strings.NewReplacer("€", "", "$", "", "£", "")

var amountSuffixes = []string{
	"per month", "/ month", "/month", "/ mo", "/mo", "monthly",
	"euros", "euro", "eur", "setup",
}

// bareAmount reduces a normalized price string to its numeric token by
// stripping currency symbols and the standard periodic/unit suffixes.
// It returns "" when the remainder is not exactly one amount.
func bareAmount(n string) string {
	v := strings.TrimSpace(currencyStripper.Replace(n))
	for _, suffix := range amountSuffixes {
		v = strings.TrimSpace(strings.TrimSuffix(v, suffix))
	}
	if amountRe.MatchString(v) {
		return v
	}
	return ""
}

type span struct{ start, end int }

// detectSpans runs all price patterns and merges overlapping matches so a
// price is reported once.
func detectSpans(s string) []span {
	var all []span
	for _, re := range pricePatterns {
		for _, m := range re.FindAllStringIndex(s, -1) {
			all = append(all, span{m[0], m[1]})
		}
	}
	for _, m := range pricePhrasePattern.FindAllStringSubmatchIndex(s, -1) {
		// group 1 is the numeric span
		if len(m) >= 4 && m[2] >= 0 {
			all = append(all, span{m[2], m[3]})
		}
	}
	return mergeSpans(all)
}

func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start == spans[j].start {
			return spans[i].end > spans[j].end
		}
		return spans[i].start < spans[j].start
	})

	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// hedged reports whether the ±50 char window around the span matches any
// forbidden-hedge pattern. A hedged price is invalid regardless of value.
// The window counts runes, not bytes, so multi-byte currency symbols do not
// shrink it.
func hedged(s string, sp span) bool {
	lo := sp.start
	for n := 0; n < hedgeWindow && lo > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(s[:lo])
		lo -= size
	}
	hi := sp.end
	for n := 0; n < hedgeWindow && hi < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[hi:])
		hi += size
	}
	window := s[lo:hi]

	for _, re := range hedgePatterns {
		if re.MatchString(window) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
