package registry

// CollectorSpec describes one registered collector role: its identity
// and the JSON schema its param bag must satisfy before dispatch.
type CollectorSpec struct {
	Role        string                 `json:"role"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	SourceKind  string                 `json:"sourceKind"`
	ParamSchema map[string]interface{} `json:"paramSchema"`
}

var urlArraySchema = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string", "format": "uri"},
}

var stringArraySchema = map[string]interface{}{
	"type":  "array",
	"items": map[string]interface{}{"type": "string"},
}

// builtinSpecs covers the five due-diligence roles. Params outside a
// role's schema keys are rejected so typos surface at dispatch time
// instead of silently collecting nothing.
var builtinSpecs = []CollectorSpec{
	{
		Role:        "pitch_deck",
		DisplayName: "Pitch Deck Collector",
		Description: "Downloads and sections investor pitch decks",
		SourceKind:  "pitch_deck",
		ParamSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"pitch_deck_urls":  urlArraySchema,
				"pitch_deck_paths": stringArraySchema,
			},
			"additionalProperties": false,
		},
	},
	{
		Role:        "whitepaper",
		DisplayName: "Whitepaper Collector",
		Description: "Fetches and analyzes project whitepapers",
		SourceKind:  "whitepaper",
		ParamSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"whitepaper_urls":  urlArraySchema,
				"whitepaper_paths": stringArraySchema,
			},
			"additionalProperties": false,
		},
	},
	{
		Role:        "website",
		DisplayName: "Website Crawler",
		Description: "Crawls the startup's public site for company signals",
		SourceKind:  "website",
		ParamSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"website_urls": urlArraySchema,
				"max_pages":    map[string]interface{}{"type": "integer", "minimum": 1},
				"crawl_depth":  map[string]interface{}{"type": "integer", "minimum": 0},
			},
			"additionalProperties": false,
		},
	},
	{
		Role:        "tokenomics",
		DisplayName: "Tokenomics Collector",
		Description: "Reads token supply, holders and market data from ledger explorers",
		SourceKind:  "tokenomics",
		ParamSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"token_addresses":     stringArraySchema,
				"use_ledger_fixtures": map[string]interface{}{"type": "boolean"},
			},
			"additionalProperties": false,
		},
	},
	{
		Role:        "founders",
		DisplayName: "Founder Profile Collector",
		Description: "Builds founder background assessments",
		SourceKind:  "founder_profile",
		ParamSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"founder_names": stringArraySchema,
				"website_urls":  urlArraySchema,
			},
			"additionalProperties": false,
		},
	},
}
