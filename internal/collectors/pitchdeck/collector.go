package pitchdeck

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// Collector extracts text and sections from startup pitch decks,
// supplied either as direct URLs or local file paths.
type Collector struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg *Config, client *httpclient.Client, log logger.Logger) *Collector {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return &Collector{config: cfg, client: client, logger: log}
}

func (c *Collector) Kind() collect.SourceKind {
	return collect.SourcePitchDeck
}

// Fetch gathers pitch-deck payloads from pitch_deck_urls and
// pitch_deck_paths. Individual sources that fail are skipped; Fetch
// errors only when a configured URL fetch fails outright, so the
// runner can retry it.
func (c *Collector) Fetch(ctx context.Context, req collect.Request) ([]collect.RawItem, error) {
	items := []collect.RawItem{}

	for _, url := range req.StringSliceParam("pitch_deck_urls") {
		item, err := c.fromURL(ctx, url, req.StartupName)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	for _, path := range req.StringSliceParam("pitch_deck_paths") {
		item, err := c.fromFile(path, req.StartupName)
		if err != nil {
			c.logger.WithError(err).Warn("skipping unreadable pitch deck file", map[string]interface{}{
				"path": path,
			})
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *Collector) fromURL(ctx context.Context, url, startupName string) (collect.RawItem, error) {
	c.logger.Info("extracting pitch deck", map[string]interface{}{"url": url})

	body, contentType, err := c.client.GetWithContentType(ctx, url)
	if err != nil {
		return collect.RawItem{}, err
	}

	if !strings.Contains(strings.ToLower(contentType), "pdf") && !strings.HasSuffix(strings.ToLower(url), ".pdf") {
		c.logger.Warn("url does not look like a pitch deck document", map[string]interface{}{
			"url":          url,
			"content_type": contentType,
		})
	}

	text := payloadText(body)
	item := c.analyze(text, startupName, map[string]interface{}{
		"content_type":   contentType,
		"content_length": len(body),
		"title":          filepath.Base(url),
	})
	item.URL = url
	item.Method = "pdf_extraction"
	return item, nil
}

func (c *Collector) fromFile(path, startupName string) (collect.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return collect.RawItem{}, err
	}

	text := payloadText(data)
	item := c.analyze(text, startupName, map[string]interface{}{
		"title":          filepath.Base(path),
		"content_length": len(data),
	})
	item.Method = "file_extraction"
	return item, nil
}

// analyze runs section identification, quality assessment and startup
// relevance over the extracted text.
func (c *Collector) analyze(text, startupName string, metadata map[string]interface{}) collect.RawItem {
	sections := c.identifySections(text)
	quality := c.assessQuality(text, metadata, sections)
	relevance := c.startupRelevance(text, startupName)

	metadata["startup_relevance_score"] = relevance
	metadata["section_count"] = len(sections)
	metadata["quality_score"] = meanOfValues(quality)

	title, _ := metadata["title"].(string)
	return collect.RawItem{
		Title:    title,
		Content:  text,
		Metadata: metadata,
		Fields: map[string]interface{}{
			"sections":           toInterfaceMap(sections),
			"quality_indicators": quality,
		},
	}
}

// identifySections scans for known section openers and captures the
// text up to the next opener. Short fragments are dropped.
func (c *Collector) identifySections(text string) map[string]string {
	sections := map[string]string{}

	for name, pattern := range sectionPatterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0]

		end := len(text)
		rest := text[start+1:]
		for _, other := range sectionPatterns {
			if next := other.FindStringIndex(rest); next != nil {
				if pos := start + 1 + next[0]; pos < end {
					end = pos
				}
			}
		}

		section := strings.TrimSpace(text[start:end])
		if len(section) > c.config.MinSectionLength {
			sections[name] = section
		}
	}

	return sections
}

func (c *Collector) assessQuality(text string, metadata map[string]interface{}, sections map[string]string) map[string]interface{} {
	quality := map[string]interface{}{}

	wordCount := len(strings.Fields(text))
	quality["text_length"] = minFloat(float64(wordCount)/1000, 1.0)

	metadataFields := []string{"title", "author", "creation_date"}
	present := 0
	for _, field := range metadataFields {
		if v, ok := metadata[field].(string); ok && v != "" {
			present++
		}
	}
	quality["metadata_completeness"] = float64(present) / float64(len(metadataFields))

	presentSections := 0
	for _, name := range expectedSections {
		if _, ok := sections[name]; ok {
			presentSections++
		}
	}
	quality["section_coverage"] = float64(presentSections) / float64(len(expectedSections))

	headers := len(headerPattern.FindAllString(text, -1))
	bullets := len(bulletPattern.FindAllString(text, -1))
	quality["structure_quality"] = minFloat(float64(headers+bullets)/20, 1.0)

	return quality
}

// startupRelevance blends name mentions with generic business
// vocabulary density.
func (c *Collector) startupRelevance(text, startupName string) float64 {
	if startupName == "" {
		return 0.5
	}

	namePattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(startupName))
	mentions := len(namePattern.FindAllString(text, -1))

	lower := strings.ToLower(text)
	matches := 0
	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}

	nameScore := minFloat(float64(mentions)/float64(c.config.MaxNameMentions), 1.0)
	keywordScore := minFloat(float64(matches)/float64(len(businessKeywords)), 1.0)
	return minFloat(nameScore*0.6+keywordScore*0.4, 1.0)
}

// payloadText treats the document payload as text, dropping whatever
// isn't printable so binary framing doesn't pollute analysis.
func payloadText(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, r := range string(data) {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0xFFFD) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toInterfaceMap(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func meanOfValues(m map[string]interface{}) float64 {
	if len(m) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m {
		if f, ok := v.(float64); ok {
			sum += f
		}
	}
	return sum / float64(len(m))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
