package analysis

import "strings"

type categoryDef struct {
	name          string
	subcategories []string
}

// categories is the fixed category taxonomy, in prompt order.
var categories = []categoryDef{
	{"mentorship", []string{"seeking_mentor", "offering_mentorship", "peer_mentorship"}},
	{"career", []string{"job_seeking", "hiring", "career_transition", "networking"}},
	{"speaking", []string{"seeking_speaking_slots", "offering_speaking_opportunities", "panel_participation"}},
	{"learning", []string{"skill_development", "knowledge_sharing", "workshops", "courses"}},
	{"collaboration", []string{"project_collaboration", "partnership", "co_founding"}},
	{"investment", []string{"seeking_funding", "angel_investing", "vc_connections"}},
	{"community", []string{"event_organizing", "community_building", "introductions"}},
}

// Domains is the domain vocabulary with canonical spelling.
var Domains = []string{
	"DeFi", "CeFi", "Web3", "Blockchain", "Smart Contracts", "NFTs", "DAOs", "Tokenomics",
	"Engineering", "Product", "Marketing", "Design", "Operations", "Legal", "Compliance",
	"AI/ML", "Data Science", "Security", "Infrastructure",
}

var (
	categoryIndex = buildCategoryIndex()
	domainIndex   = buildDomainIndex()
)

func buildCategoryIndex() map[string]categoryDef {
	idx := make(map[string]categoryDef, len(categories))
	for _, c := range categories {
		idx[c.name] = c
	}
	return idx
}

func buildDomainIndex() map[string]string {
	idx := make(map[string]string, len(Domains))
	for _, d := range Domains {
		idx[foldKey(d)] = d
	}
	return idx
}

// CategoryNames lists the known category names.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// CanonicalCategory maps a category to its taxonomy name.
func CanonicalCategory(name string) (string, bool) {
	c, ok := categoryIndex[strings.ToLower(strings.TrimSpace(name))]
	return c.name, ok
}

// CanonicalDomain maps a domain to its vocabulary spelling, ignoring case
// and incidental whitespace.
func CanonicalDomain(name string) (string, bool) {
	d, ok := domainIndex[foldKey(name)]
	return d, ok
}

func hasSubcategory(category, sub string) bool {
	for _, s := range categoryIndex[category].subcategories {
		if s == sub {
			return true
		}
	}
	return false
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func taxonomyPrompt() string {
	var b strings.Builder
	b.WriteString("Categories (with subcategories):\n")
	for _, c := range categories {
		b.WriteString("- ")
		b.WriteString(c.name)
		b.WriteString(": ")
		b.WriteString(strings.Join(c.subcategories, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\nDomains:\n- ")
	b.WriteString(strings.Join(Domains, ", "))
	b.WriteString("\n")
	return b.String()
}
