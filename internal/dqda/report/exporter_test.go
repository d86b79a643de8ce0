package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/scoring"
)

func sampleReport() *scoring.Report {
	return &scoring.Report{
		RunID:        uuid.New(),
		StartupName:  "ExampleAI",
		Keywords:     []string{"ai", "defi"},
		GeneratedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		FounderScore: 76,
		Market:       scoring.SubReport{Score: 92, Signals: []string{"Pitch deck includes market sizing section"}},
		Competition:  scoring.SubReport{Score: 34},
		TokenUtility: scoring.SubReport{Score: 90},
		Weaknesses:   []string{"Limited competitive differentiation evidence"},
		InvestorFit:  scoring.InvestorFit{Score: 75, Rating: "strong"},
		Records:      map[string][]collect.Record{},
	}
}

func TestSummaryText(t *testing.T) {
	text := SummaryText(sampleReport())

	assert.Contains(t, text, "DQDA SCORING SUMMARY")
	assert.Contains(t, text, "Startup: ExampleAI")
	assert.Contains(t, text, "Founder score: 76 / 100")
	assert.Contains(t, text, "Market score: 92 / 100")
	assert.Contains(t, text, "Competition score: 34 / 100")
	assert.Contains(t, text, "Token utility score: 90 / 100")
	assert.Contains(t, text, "Investor fit: 75 / 100 (strong)")
	assert.Contains(t, text, "Top weaknesses:")
	assert.Contains(t, text, "  - Limited competitive differentiation evidence")
}

func TestSummaryTextTruncatesWeaknesses(t *testing.T) {
	r := sampleReport()
	r.Weaknesses = []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7"}

	text := SummaryText(r)
	assert.Contains(t, text, "  - w5")
	assert.NotContains(t, text, "  - w6", "only the top five weaknesses are listed")
}

func TestSummaryTextNoWeaknesses(t *testing.T) {
	r := sampleReport()
	r.Weaknesses = nil
	assert.NotContains(t, SummaryText(r), "Top weaknesses:")
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logger.NewNoOpLogger())

	path, err := e.Export(sampleReport(), "json", "run1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run1.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded scoring.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ExampleAI", decoded.StartupName)
	assert.Equal(t, 75, decoded.InvestorFit.Score)
}

func TestExportKeepsRequestedFilename(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logger.NewNoOpLogger())

	// a filename that already carries the extension must not grow a
	// second one
	path, err := e.Export(sampleReport(), "json", "report.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.json"), path)

	path, err = e.Export(sampleReport(), "csv", "Report.CSV")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Report.CSV"), path)

	_, err = os.Stat(filepath.Join(dir, "report.json.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logger.NewNoOpLogger())

	path, err := e.Export(sampleReport(), "csv", "run1")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "startup_name", rows[0][0])
	assert.Equal(t, "ExampleAI", rows[1][0])
	assert.Equal(t, "76", rows[1][2])
	assert.Contains(t, rows[1][3], `"score":92`, "nested sections are JSON cells")
}

func TestExportDerivedFilename(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, logger.NewNoOpLogger())

	r := sampleReport()
	r.StartupName = "Example AI"

	path, err := e.Export(r, "json", "")
	require.NoError(t, err)
	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "dqda_Example_AI_"), base)
	assert.True(t, strings.HasSuffix(base, ".json"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	e := NewExporter(t.TempDir(), logger.NewNoOpLogger())
	_, err := e.Export(sampleReport(), "xml", "run1")
	assert.Error(t, err)
}
