package collect

import (
	"time"
)

// SourceKind identifies which due-diligence surface a record came from.
type SourceKind string

const (
	SourcePitchDeck      SourceKind = "pitch_deck"
	SourceWhitepaper     SourceKind = "whitepaper"
	SourceWebsite        SourceKind = "website"
	SourceTokenomics     SourceKind = "tokenomics"
	SourceFounderProfile SourceKind = "founder_profile"
)

// Record is the normalized unit of evidence every collector produces.
// Downstream scoring consumes only this shape, so degraded records
// (len(Errors) > 0) stay schema-valid and flow through unchanged.
type Record struct {
	StartupName       string                 `json:"startup_name"`
	SourceKind        SourceKind             `json:"source_kind"`
	SourceURL         string                 `json:"source_url"`
	RawContent        string                 `json:"raw_content"`
	StructuredData    map[string]interface{} `json:"structured_data"`
	Confidence        float64                `json:"confidence"`
	QualityIndicators []string               `json:"quality_indicators"`
	ProcessingNotes   []string               `json:"processing_notes"`
	Errors            []string               `json:"errors"`
	RetryCount        int                    `json:"retry_count"`
	CollectedAt       time.Time              `json:"collected_at"`
	SearchKeywords    []string               `json:"search_keywords"`
	SearchStartupName string                 `json:"search_startup_name"`
}

// NewRecord builds a record with every map and slice initialized, so
// consumers never need nil checks.
func NewRecord(startupName string, kind SourceKind) Record {
	return Record{
		StartupName:       startupName,
		SourceKind:        kind,
		StructuredData:    map[string]interface{}{},
		QualityIndicators: []string{},
		ProcessingNotes:   []string{},
		Errors:            []string{},
		CollectedAt:       time.Now().UTC(),
		SearchKeywords:    []string{},
		SearchStartupName: startupName,
	}
}

// Degraded reports whether this record was produced by the failure
// path rather than a successful fetch.
func (r Record) Degraded() bool {
	return len(r.Errors) > 0
}

// Request carries one run's inputs. It is built once by the caller and
// passed by value to every collector.
type Request struct {
	StartupName string   `json:"startup_name"`
	Keywords    []string `json:"keywords"`
	// MaxResults caps normalized records per collector. Zero means
	// "unset": the runner falls back to its configured default rather
	// than treating it as a literal zero cap.
	MaxResults int                    `json:"max_results"`
	Params     map[string]interface{} `json:"params"`
}

// StringSliceParam reads a []string-ish value out of the open param
// bag, tolerating both []string and []interface{} shapes.
func (req Request) StringSliceParam(key string) []string {
	raw, ok := req.Params[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}

// IntParam reads an int-ish param with a fallback default.
func (req Request) IntParam(key string, def int) int {
	raw, ok := req.Params[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// BoolParam reads a bool param with a fallback default.
func (req Request) BoolParam(key string, def bool) bool {
	raw, ok := req.Params[key]
	if !ok {
		return def
	}
	if v, ok := raw.(bool); ok {
		return v
	}
	return def
}
