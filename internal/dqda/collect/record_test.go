package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRecordInitializesCollections(t *testing.T) {
	rec := NewRecord("ExampleAI", SourceTokenomics)

	assert.Equal(t, "ExampleAI", rec.StartupName)
	assert.Equal(t, "ExampleAI", rec.SearchStartupName)
	assert.Equal(t, SourceTokenomics, rec.SourceKind)
	assert.NotNil(t, rec.StructuredData)
	assert.NotNil(t, rec.QualityIndicators)
	assert.NotNil(t, rec.ProcessingNotes)
	assert.NotNil(t, rec.Errors)
	assert.NotNil(t, rec.SearchKeywords)
	assert.False(t, rec.Degraded())
	assert.WithinDuration(t, time.Now().UTC(), rec.CollectedAt, time.Minute)
}

func TestRequestStringSliceParam(t *testing.T) {
	req := Request{Params: map[string]interface{}{
		"website_urls":   []string{"https://a.example", "https://b.example"},
		"founder_names":  []interface{}{"Ada", "Grace", 42},
		"whitepaper_url": "https://c.example/wp.pdf",
	}}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, req.StringSliceParam("website_urls"))
	assert.Equal(t, []string{"Ada", "Grace"}, req.StringSliceParam("founder_names"), "non-strings are dropped")
	assert.Equal(t, []string{"https://c.example/wp.pdf"}, req.StringSliceParam("whitepaper_url"))
	assert.Nil(t, req.StringSliceParam("missing"))
}

func TestRequestScalarParams(t *testing.T) {
	req := Request{Params: map[string]interface{}{
		"max_pages":           10,
		"crawl_depth":         float64(2), // decoded from JSON
		"use_ledger_fixtures": true,
		"bad_type":            "nope",
	}}

	assert.Equal(t, 10, req.IntParam("max_pages", 1))
	assert.Equal(t, 2, req.IntParam("crawl_depth", 1))
	assert.Equal(t, 1, req.IntParam("missing", 1))
	assert.Equal(t, 1, req.IntParam("bad_type", 1))

	assert.True(t, req.BoolParam("use_ledger_fixtures", false))
	assert.False(t, req.BoolParam("missing", false))
	assert.False(t, req.BoolParam("bad_type", false))
}
