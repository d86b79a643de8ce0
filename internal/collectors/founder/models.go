package founder

import "regexp"

// teamPagePaths are probed in order when founders must be discovered
// from a company site.
var teamPagePaths = []string{"/team", "/about", "/founders", "/leadership", "/people"}

// founderNamePatterns pull "Firstname Lastname" captures out of page
// text near founder and executive keywords.
var founderNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)founder.*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)co[- ]?founder.*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)ceo.*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)chief executive.*?([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+).*?(?i:founder|ceo|chief executive)`),
}

// nonNameTerms filter out captures that are company names rather than
// people.
var nonNameTerms = []string{"startup", "company", "inc", "llc"}

// Pools the deterministic profile builder draws from. Real profile
// data would come from people-search APIs; the pools keep fixture
// profiles plausible and stable per founder name.
var sampleCompanies = []string{
	"Google", "Microsoft", "Amazon", "Meta", "Apple", "Netflix", "Tesla",
	"Airbnb", "Uber", "Stripe", "Coinbase",
}

var sampleRoles = []string{
	"Senior Software Engineer", "Product Manager", "Engineering Manager",
	"CTO", "VP Engineering", "Director of Engineering", "Principal Engineer",
	"Startup Founder", "Co-founder", "Lead Developer", "Technical Lead",
}

var sampleInstitutions = []string{
	"Stanford University", "MIT", "Harvard University", "UC Berkeley",
	"Carnegie Mellon", "Cornell", "Princeton", "Yale", "Columbia",
	"Oxford", "Cambridge", "ETH Zurich", "Tsinghua University",
}

var topUniversities = []string{
	"Stanford University", "MIT", "Harvard University", "UC Berkeley",
	"Carnegie Mellon", "Cornell", "Princeton", "Yale", "Columbia",
	"Oxford", "Cambridge", "ETH Zurich",
}

type degreeTemplate struct {
	degreeType string
	field      string
}

var sampleDegrees = []degreeTemplate{
	{"Bachelor of Science", "Computer Science"},
	{"Bachelor of Science", "Electrical Engineering"},
	{"Bachelor of Science", "Mathematics"},
	{"Master of Science", "Computer Science"},
	{"Master of Business Administration", "General Management"},
	{"PhD", "Computer Science"},
	{"PhD", "Economics"},
}

var connectionTypes = []string{
	"Industry Executive", "Serial Entrepreneur", "VC Partner", "Technical Leader",
	"Former Colleague", "University Alumni", "Mentor", "Advisor",
}

var socialPlatforms = []string{"twitter", "github", "medium"}

var technicalRoleTerms = []string{"Engineer", "Developer", "CTO", "Technical"}
var businessRoleTerms = []string{"Manager", "Director", "VP", "CEO", "Product"}
var relevantFieldTerms = []string{"Computer Science", "Engineering", "Mathematics", "Business"}
