package retrieval

import "strings"

// intentFamilies maps an intent tag to its keyword family. A query can
// match zero, one or several families.
var intentFamilies = []struct {
	tag      string
	keywords []string
}{
	{"pricing", []string{"price", "pricing", "cost", "costs", "fee", "fees", "plan", "plans", "monthly", "setup", "euro", "euros", "pay", "payment"}},
	{"agents", []string{"agent", "agents", "bot", "bots", "assistant", "qualifier", "capabilities", "channels", "whatsapp", "instagram"}},
	{"support", []string{"support", "help", "issue", "problem", "error", "broken", "bug", "down"}},
	{"limits", []string{"limit", "limits", "quota", "messages", "volume", "cap", "maximum"}},
	{"enterprise", []string{"enterprise", "sla", "security", "compliance", "gdpr", "custom", "dedicated"}},
	{"roadmap", []string{"roadmap", "upcoming", "future", "soon", "planned", "release"}},
	{"packs", []string{"pack", "packs", "bundle", "bundles", "addon", "addons", "extra", "extras"}},
}

// ClassifyIntents returns the intent tags whose keyword families match the
// query, in declaration order.
func ClassifyIntents(query string) []string {
	words := map[string]bool{}
	for _, w := range tokenize(query) {
		words[w] = true
	}

	var tags []string
	for _, fam := range intentFamilies {
		for _, kw := range fam.keywords {
			if words[kw] {
				tags = append(tags, fam.tag)
				break
			}
		}
	}
	return tags
}

func tokenize(s string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}
