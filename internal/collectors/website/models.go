package website

import "regexp"

// blockedPatterns keep the crawler away from admin surfaces, assets
// and tracking links.
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/admin`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/signup`),
	regexp.MustCompile(`(?i)/register`),
	regexp.MustCompile(`(?i)/dashboard`),
	regexp.MustCompile(`(?i)/api/`),
	regexp.MustCompile(`(?i)/v1/`),
	regexp.MustCompile(`(?i)/v2/`),
	regexp.MustCompile(`(?i)/internal`),
	regexp.MustCompile(`(?i)/private`),
	regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|css|js|xml|json|rss|atom)$`),
	regexp.MustCompile(`(?i)/wp-admin`),
	regexp.MustCompile(`(?i)/wp-content`),
	regexp.MustCompile(`(?i)/wp-includes`),
	regexp.MustCompile(`(?i)/phpmyadmin`),
	regexp.MustCompile(`(?i)/cgi-bin`),
	regexp.MustCompile(`(?i)/search\?`),
	regexp.MustCompile(`(?i)\?.*utm_`),
	regexp.MustCompile(`(?i)\?.*ref=`),
}

// companyInfoPatterns extract company facts from page text.
var companyInfoPatterns = map[string]*regexp.Regexp{
	"founded_year": regexp.MustCompile(`(?i)(?:founded|established|since)\s+(\d{4})`),
	"employees":    regexp.MustCompile(`(?i)(\d+[,\d]*)\s+(?:employees|people|team members)`),
	"funding":      regexp.MustCompile(`(?i)(?:raised|funding|investment|series [a-z])\s+[\$£€]?(\d+(?:\.\d+)?[mkb]?)`),
	"valuation":    regexp.MustCompile(`(?i)(?:valued|valuation)\s+at\s+[\$£€]?(\d+(?:\.\d+)?[mkb]?)`),
	"location":     regexp.MustCompile(`(?i)(?:based|headquartered|located)\s+(?:in|at)\s+([^.,\n]+)`),
	"industry":     regexp.MustCompile(`(?i)(?:industry|sector|domain|field)\s+(?:is|of)\s+([^.,\n]+)`),
}

var teamPatterns = map[string]*regexp.Regexp{
	"ceo":       regexp.MustCompile(`(?:CEO|Chief Executive|Co-founder).*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	"cto":       regexp.MustCompile(`(?:CTO|Chief Technology).*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	"founder":   regexp.MustCompile(`(?i)(?:founder|co-founder).*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	"executive": regexp.MustCompile(`(?i)(?:executive|vp\b|director|manager).*?([A-Z][a-z]+ [A-Z][a-z]+)`),
}

// priorityPaths classify crawled paths for the site structure map.
var priorityPaths = map[string][]string{
	"about":   {"/about", "/about-us", "/company", "/team", "/founder", "/founders"},
	"product": {"/product", "/products", "/solution", "/solutions", "/services", "/platform"},
	"contact": {"/contact", "/contact-us", "/hello", "/info"},
	"legal":   {"/privacy", "/terms", "/legal", "/disclaimer"},
	"blog":    {"/blog", "/news", "/updates", "/posts"},
}

var keyTerms = []string{"product", "service", "solution", "platform", "technology"}
