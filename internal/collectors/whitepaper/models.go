package whitepaper

import "regexp"

// terminologyPatterns categorize the technical vocabulary found in a
// paper by domain.
var terminologyPatterns = map[string][]*regexp.Regexp{
	"blockchain": {
		regexp.MustCompile(`\b(consensus|mining|hash|blockchain|distributed|ledger|decentralized|cryptocurrency)\b`),
		regexp.MustCompile(`\b(token|crypto|wallet|private key|public key|transaction|smart contract)\b`),
		regexp.MustCompile(`\b(ethereum|bitcoin|defi|nft|dao|web3)\b`),
	},
	"ai_ml": {
		regexp.MustCompile(`\b(machine learning|neural network|deep learning|algorithm|model|training)\b`),
		regexp.MustCompile(`\b(artificial intelligence|ml|ai|nlp|computer vision|classification)\b`),
		regexp.MustCompile(`\b(tensor|gradient|backpropagation|supervised|unsupervised|reinforcement)\b`),
	},
	"general_tech": {
		regexp.MustCompile(`\b(api|database|server|cloud|microservices|protocol)\b`),
		regexp.MustCompile(`\b(scalability|performance|optimization|architecture|framework)\b`),
		regexp.MustCompile(`\b(startup|vc|investment|funding|market|business model)\b`),
	},
}

var academicWords = []string{
	"analysis", "methodology", "framework", "algorithm", "implementation",
	"evaluation", "performance", "optimization", "architecture", "design",
}

var insightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:our|this) (?:\w+\s+)?(?:\w+\s+)?(?:approach|method|algorithm|solution)\s+(?:provides|delivers|achieves|enables)\s+([^.]+)`),
	regexp.MustCompile(`(?i)(?:results? show|we (?:find|show|demonstrate))\s+that\s+([^.]+)`),
	regexp.MustCompile(`(?i)(?:key finding|main contribution|significant result)\s+(?:is|:)\s+([^.]+)`),
	regexp.MustCompile(`(?i)(?:in conclusion|our work|this paper)\s+(?:demonstrates?|shows?|proves?|indicates?)\s+([^.]+)`),
}

var (
	abstractPattern   = regexp.MustCompile(`(?i)abstract|summary`)
	referencesPattern = regexp.MustCompile(`(?i)references|bibliography|citations?`)
	figuresPattern    = regexp.MustCompile(`(?i)figure|table|diagram`)
	sentenceSplit     = regexp.MustCompile(`[.!?]+`)
	wordPattern       = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	vowelGroups       = regexp.MustCompile(`[aeiouy]+`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	markdownHeader    = regexp.MustCompile(`^#+\s+(.+?)$`)
	numberedHeader    = regexp.MustCompile(`^\d+\.?\s+[^.]+$`)
	nonAlnum          = regexp.MustCompile(`[^a-z0-9]`)
)
