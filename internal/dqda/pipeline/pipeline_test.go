package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/config"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/scoring"
	"github.com/Oragnicveda/Blockchain-AI/pkg/registry"
)

type stubSource struct {
	kind      collect.SourceKind
	items     []collect.RawItem
	panics    bool
	seenParam map[string]interface{}
}

func (s *stubSource) Kind() collect.SourceKind { return s.kind }

func (s *stubSource) Fetch(_ context.Context, req collect.Request) ([]collect.RawItem, error) {
	s.seenParam = req.Params
	if s.panics {
		panic("collector blew up")
	}
	return s.items, nil
}

func item() collect.RawItem {
	return collect.RawItem{Content: "content body", URL: "https://example.com"}
}

func newTestPipeline(t *testing.T, sources map[string]*stubSource) *Pipeline {
	t.Helper()

	log := logger.NewNoOpLogger()
	runners := make(map[string]*collect.Runner, len(sources))
	for role, src := range sources {
		runners[role] = collect.NewRunner(src, collect.RunnerConfig{
			Name:      role,
			BaseDelay: time.Millisecond,
		}, log, nil)
	}
	engine := scoring.NewEngine(config.Default().Scoring, log)
	return New(runners, registry.New(), engine, Config{RunTimeout: 30 * time.Second}, log)
}

func fiveSources() map[string]*stubSource {
	return map[string]*stubSource{
		scoring.RolePitchDeck:  {kind: collect.SourcePitchDeck, items: []collect.RawItem{item()}},
		scoring.RoleWhitepaper: {kind: collect.SourceWhitepaper, items: []collect.RawItem{item()}},
		scoring.RoleWebsite:    {kind: collect.SourceWebsite, items: []collect.RawItem{item()}},
		scoring.RoleTokenomics: {kind: collect.SourceTokenomics, items: []collect.RawItem{item()}},
		scoring.RoleFounders:   {kind: collect.SourceFounderProfile, items: []collect.RawItem{item()}},
	}
}

func TestRunCollectsEveryRole(t *testing.T) {
	p := newTestPipeline(t, fiveSources())

	report := p.Run(context.Background(), collect.Request{StartupName: "ExampleAI"})

	require.NotNil(t, report)
	assert.Len(t, report.Records, 5)
	for _, role := range []string{
		scoring.RolePitchDeck, scoring.RoleWhitepaper, scoring.RoleWebsite,
		scoring.RoleTokenomics, scoring.RoleFounders,
	} {
		assert.Len(t, report.Records[role], 1, "role %s", role)
	}
}

func TestRunToleratesPanickingCollector(t *testing.T) {
	sources := fiveSources()
	sources[scoring.RoleWebsite].panics = true
	p := newTestPipeline(t, sources)

	report := p.Run(context.Background(), collect.Request{StartupName: "ExampleAI"})

	// The panicking collector contributes an empty list; siblings are
	// unaffected and the role key stays present.
	require.Len(t, report.Records, 5)
	assert.Empty(t, report.Records[scoring.RoleWebsite])
	assert.Len(t, report.Records[scoring.RolePitchDeck], 1)
	assert.Contains(t, report.Weaknesses, "No website crawl data collected")
}

func TestRunNarrowsParamsPerRole(t *testing.T) {
	sources := fiveSources()
	p := newTestPipeline(t, sources)

	p.Run(context.Background(), collect.Request{
		StartupName: "ExampleAI",
		Params: map[string]interface{}{
			"website_urls":    []interface{}{"https://example.com"},
			"token_addresses": []interface{}{"0xabc"},
			"max_pages":       5,
		},
	})

	assert.Equal(t, map[string]interface{}{
		"website_urls": []interface{}{"https://example.com"},
		"max_pages":    5,
	}, sources[scoring.RoleWebsite].seenParam)

	assert.Equal(t, map[string]interface{}{
		"token_addresses": []interface{}{"0xabc"},
	}, sources[scoring.RoleTokenomics].seenParam)

	// The pitch-deck schema declares none of these keys.
	assert.Empty(t, sources[scoring.RolePitchDeck].seenParam)
}

func TestRunStripsInvalidParams(t *testing.T) {
	sources := fiveSources()
	p := newTestPipeline(t, sources)

	p.Run(context.Background(), collect.Request{
		StartupName: "ExampleAI",
		Params: map[string]interface{}{
			"max_pages": "not a number",
		},
	})

	// The invalid bag is stripped, not fatal.
	assert.Empty(t, sources[scoring.RoleWebsite].seenParam)
}

func TestRunIsIdempotent(t *testing.T) {
	p := newTestPipeline(t, fiveSources())
	req := collect.Request{StartupName: "ExampleAI", Keywords: []string{"ai"}}

	first := p.Run(context.Background(), req)
	second := p.Run(context.Background(), req)

	assert.Equal(t, first.FounderScore, second.FounderScore)
	assert.Equal(t, first.Market.Score, second.Market.Score)
	assert.Equal(t, first.InvestorFit, second.InvestorFit)
	assert.NotEqual(t, first.RunID, second.RunID)
}
