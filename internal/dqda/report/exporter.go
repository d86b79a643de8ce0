package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/scoring"
)

// SummaryText renders the CLI dashboard summary. Pure string building,
// no I/O.
func SummaryText(r *scoring.Report) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString("\n" + rule + "\n")
	b.WriteString("DQDA SCORING SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Startup: %s\n", r.StartupName)
	fmt.Fprintf(&b, "Founder score: %d / 100\n", r.FounderScore)
	fmt.Fprintf(&b, "Market score: %d / 100\n", r.Market.Score)
	fmt.Fprintf(&b, "Competition score: %d / 100\n", r.Competition.Score)
	fmt.Fprintf(&b, "Token utility score: %d / 100\n", r.TokenUtility.Score)
	fmt.Fprintf(&b, "Investor fit: %d / 100 (%s)\n", r.InvestorFit.Score, r.InvestorFit.Rating)

	if len(r.Weaknesses) > 0 {
		b.WriteString("\nTop weaknesses:\n")
		top := r.Weaknesses
		if len(top) > 5 {
			top = top[:5]
		}
		for _, w := range top {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

// Exporter writes reports to disk as JSON or a single-row CSV
// dashboard.
type Exporter struct {
	outputDir string
	logger    logger.Logger
}

func NewExporter(outputDir string, log logger.Logger) *Exporter {
	return &Exporter{outputDir: outputDir, logger: log}
}

// Export writes the report in the requested format and returns the
// output path. An empty filename derives one from the startup name and
// the current time; the format extension is only appended when the
// filename does not already carry it.
func (e *Exporter) Export(r *scoring.Report, format, filename string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	format = strings.ToLower(format)
	if filename == "" {
		name := strings.ReplaceAll(strings.TrimSpace(r.StartupName), " ", "_")
		if name == "" {
			name = "startup"
		}
		filename = fmt.Sprintf("dqda_%s_%s", name, time.Now().Format("20060102_150405"))
	}
	if !strings.HasSuffix(strings.ToLower(filename), "."+format) {
		filename += "." + format
	}
	path := filepath.Join(e.outputDir, filename)

	var err error
	switch format {
	case "json":
		err = e.writeJSON(r, path)
	case "csv":
		err = e.writeCSV(r, path)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return "", err
	}

	e.logger.Info("report exported", map[string]interface{}{
		"path":   path,
		"format": format,
	})
	return path, nil
}

func (e *Exporter) writeJSON(r *scoring.Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// writeCSV emits one dashboard row with the nested sections dumped as
// JSON cells.
func (e *Exporter) writeCSV(r *scoring.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	dump := func(v interface{}) string {
		data, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return string(data)
	}

	w := csv.NewWriter(f)
	header := []string{
		"startup_name", "generated_at", "founder_score",
		"market_analysis", "competition", "token_utility",
		"weaknesses", "investor_fit",
	}
	row := []string{
		r.StartupName,
		r.GeneratedAt.Format(time.RFC3339),
		fmt.Sprintf("%d", r.FounderScore),
		dump(r.Market),
		dump(r.Competition),
		dump(r.TokenUtility),
		dump(r.Weaknesses),
		dump(r.InvestorFit),
	}
	if err := w.WriteAll([][]string{header, row}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
