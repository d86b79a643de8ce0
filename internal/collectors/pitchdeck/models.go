package pitchdeck

import "regexp"

// sectionPatterns maps canonical pitch-deck sections to the phrases
// that usually open them.
var sectionPatterns = map[string]*regexp.Regexp{
	"problem":               regexp.MustCompile(`(?i)(problem|challenge|market need)`),
	"solution":              regexp.MustCompile(`(?i)(solution|product|service)`),
	"market_size":           regexp.MustCompile(`(?i)(market size|market opportunity|addressable market)`),
	"business_model":        regexp.MustCompile(`(?i)(business model|revenue|monetization)`),
	"competitive_advantage": regexp.MustCompile(`(?i)(competitive advantage|moat|differentiation)`),
	"team":                  regexp.MustCompile(`(?i)(team|founders|management)`),
	"financials":            regexp.MustCompile(`(?i)(financials|funding|investment|use of funds)`),
	"traction":              regexp.MustCompile(`(?i)(traction|milestones|growth)`),
	"roadmap":               regexp.MustCompile(`(?i)(roadmap|future plans|vision)`),
}

// expectedSections drive the section_coverage quality indicator.
var expectedSections = []string{"problem", "solution", "market_size", "team", "financials"}

var businessKeywords = []string{
	"startup", "company", "business", "market", "revenue", "customers",
	"product", "service", "technology", "innovation", "growth", "funding",
}

var (
	headerPattern = regexp.MustCompile(`(?m)^#+\s`)
	bulletPattern = regexp.MustCompile(`[•\-\*]\s`)
)
