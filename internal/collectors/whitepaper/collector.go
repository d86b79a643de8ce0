package whitepaper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	stderrors "github.com/Oragnicveda/Blockchain-AI/internal/common/errors"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// Collector processes project whitepapers: document type detection,
// text extraction and cleanup, section identification, terminology
// categorization, and a writing-quality assessment.
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
	return collect.SourceWhitepaper
}

// Fetch processes whitepaper_paths then whitepaper_urls. Local files
// that fail are skipped; URL fetch failures propagate so the runner
// retries them.
func (c *Collector) Fetch(ctx context.Context, req collect.Request) ([]collect.RawItem, error) {
	items := []collect.RawItem{}

	for _, path := range req.StringSliceParam("whitepaper_paths") {
		item, err := c.fromFile(path, req.StartupName)
		if err != nil {
			c.logger.WithError(err).Warn("skipping whitepaper file", map[string]interface{}{
				"path": path,
			})
			continue
		}
		items = append(items, item)
	}

	for _, url := range req.StringSliceParam("whitepaper_urls") {
		item, err := c.fromURL(ctx, url, req.StartupName)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *Collector) fromURL(ctx context.Context, url, startupName string) (collect.RawItem, error) {
	c.logger.Info("processing whitepaper", map[string]interface{}{"url": url})

	body, contentType, err := c.client.GetWithContentType(ctx, url)
	if err != nil {
		return collect.RawItem{}, err
	}

	docType := documentType(url, contentType)
	if !c.formatAccepted(docType) {
		return collect.RawItem{}, stderrors.NewUnexpectedContentError(url, docType)
	}

	text, err := c.extractText(body, docType)
	if err != nil {
		return collect.RawItem{}, err
	}

	item := c.analyze(text, startupName, docType)
	item.URL = url
	item.Method = docType + "_processing"
	return item, nil
}

func (c *Collector) fromFile(path, startupName string) (collect.RawItem, error) {
	docType := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		docType = "pdf"
	case ".txt":
		docType = "txt"
	case ".html", ".htm":
		docType = "html"
	}
	if !c.formatAccepted(docType) {
		return collect.RawItem{}, fmt.Errorf("document type %s not accepted", docType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return collect.RawItem{}, err
	}

	text, err := c.extractText(data, docType)
	if err != nil {
		return collect.RawItem{}, err
	}

	item := c.analyze(text, startupName, docType)
	item.URL = "file://" + path
	item.Method = "local_" + docType + "_processing"
	return item, nil
}

func (c *Collector) formatAccepted(docType string) bool {
	for _, f := range c.config.Formats {
		if f == docType {
			return true
		}
	}
	return false
}

// documentType resolves a document format from the URL extension
// first, then the Content-Type, defaulting to html for web pages.
func documentType(url, contentType string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "pdf"
	case strings.HasSuffix(lower, ".txt"):
		return "txt"
	case strings.HasSuffix(lower, ".doc"), strings.HasSuffix(lower, ".docx"):
		return "doc"
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return "pdf"
	case strings.Contains(ct, "html"):
		return "html"
	case strings.Contains(ct, "text"):
		return "txt"
	}

	if strings.Contains(lower, "http") {
		return "html"
	}
	return "unknown"
}

func (c *Collector) extractText(data []byte, docType string) (string, error) {
	switch docType {
	case "html":
		return htmlText(data)
	case "txt":
		return string(data), nil
	case "pdf":
		return pdfText(data), nil
	}
	return "", fmt.Errorf("unsupported document type: %s", docType)
}

// htmlText strips scripts and styles and flattens the document text.
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return "", stderrors.NewParseFailedError("whitepaper html", err)
	}
	doc.Find("script, style").Remove()
	return doc.Text(), nil
}

var pdfTextPattern = regexp.MustCompile(`[A-Za-z0-9\s.,;:!?\-'"()]{20,}`)

// pdfText pulls readable runs out of a PDF payload without a PDF
// library: good enough for the textual decks and papers this pipeline
// scores.
func pdfText(data []byte) string {
	matches := pdfTextPattern.FindAllString(string(data), -1)
	return strings.Join(matches, " ")
}

func (c *Collector) analyze(rawText, startupName, docType string) collect.RawItem {
	cleaned := cleanText(rawText)
	sections := identifySections(rawText)
	terminology := c.extractTerminology(cleaned)
	quality := assessWritingQuality(cleaned)
	insights := c.extractKeyInsights(cleaned, terminology)

	return collect.RawItem{
		Content: cleaned,
		Metadata: map[string]interface{}{
			"document_type": docType,
			"text_length":   len(cleaned),
		},
		Fields: map[string]interface{}{
			"document_type":         docType,
			"sections":              sections,
			"technical_terminology": terminology,
			"writing_quality":       quality,
			"key_insights":          insights,
			"relevance_score":       c.startupRelevance(cleaned, startupName),
		},
	}
}

// cleanText collapses whitespace and drops characters outside basic
// punctuation.
func cleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(" .,;:!?-'\"()[]{}_", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// identifySections walks the raw lines looking for markdown headers,
// numbered headings, and short all-caps headings. Text before the
// first header lands in "introduction".
func identifySections(text string) map[string]interface{} {
	sections := map[string]interface{}{}
	current := "introduction"
	content := []string{}

	flush := func() {
		if len(content) > 0 {
			sections[current] = strings.Join(content, " ")
			content = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case markdownHeader.MatchString(line):
			flush()
			current = nonAlnum.ReplaceAllString(strings.ToLower(strings.Trim(line, "# ")), "_")
		case numberedHeader.MatchString(line):
			flush()
			current = nonAlnum.ReplaceAllString(strings.ToLower(line), "_")
		case len(line) < 50 && line == strings.ToUpper(line) && line != strings.ToLower(line) && len(strings.Fields(line)) < 8:
			flush()
			current = nonAlnum.ReplaceAllString(strings.ToLower(line), "_")
		default:
			content = append(content, line)
		}
	}
	flush()

	return sections
}

func (c *Collector) extractTerminology(text string) map[string]interface{} {
	terminology := map[string]interface{}{}
	lower := strings.ToLower(text)

	for domain, patterns := range terminologyPatterns {
		terms := []string{}
		seen := map[string]bool{}
		for _, pattern := range patterns {
			for _, m := range pattern.FindAllString(lower, -1) {
				if !seen[m] {
					seen[m] = true
					terms = append(terms, m)
				}
			}
		}
		if len(terms) > 0 {
			terminology[domain] = map[string]interface{}{
				"terms":     terms,
				"frequency": len(terms),
			}
		}
	}

	return terminology
}

// assessWritingQuality computes the structural indicators the scoring
// engine averages into its market signal: a normalized Flesch-style
// reading ease plus abstract/references/figures flags and academic
// vocabulary density.
func assessWritingQuality(text string) map[string]interface{} {
	quality := map[string]interface{}{}

	wordCount := len(strings.Fields(text))
	sentenceCount := len(sentenceSplit.Split(text, -1))

	quality["word_count"] = float64(wordCount)
	quality["sentence_count"] = float64(sentenceCount)
	if sentenceCount > 0 {
		quality["avg_words_per_sentence"] = float64(wordCount) / float64(sentenceCount)
	}

	if sentenceCount > 0 && wordCount > 0 {
		syllables := countSyllables(text)
		readingEase := 206.835 - 1.015*(float64(wordCount)/float64(sentenceCount)) - 84.6*(float64(syllables)/float64(wordCount))
		if readingEase < 0 {
			readingEase = 0
		}
		if readingEase > 100 {
			readingEase = 100
		}
		quality["reading_ease"] = readingEase / 100
	}

	head := text
	if len(head) > 500 {
		head = head[:500]
	}
	quality["has_abstract"] = boolScore(abstractPattern.MatchString(head))
	quality["has_references"] = boolScore(referencesPattern.MatchString(text))
	quality["has_figures"] = boolScore(figuresPattern.MatchString(text))

	lower := strings.ToLower(text)
	academicCount := 0
	for _, w := range academicWords {
		if strings.Contains(lower, w) {
			academicCount++
		}
	}
	quality["academic_language"] = minFloat(float64(academicCount)/float64(len(academicWords)), 1.0)

	return quality
}

func countSyllables(text string) int {
	count := 0
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		vowels := len(vowelGroups.FindAllString(word, -1))
		if strings.HasSuffix(word, "e") && vowels > 1 {
			vowels--
		}
		if vowels < 1 {
			vowels = 1
		}
		count += vowels
	}
	return count
}

func (c *Collector) extractKeyInsights(text string, terminology map[string]interface{}) []string {
	insights := []string{}

	for _, pattern := range insightPatterns {
		matches := pattern.FindAllStringSubmatch(text, 3)
		for _, m := range matches {
			insight := strings.TrimSpace(m[1])
			if len(insight) > 20 && len(insight) < 200 {
				insights = append(insights, insight)
			}
		}
	}

	if _, ok := terminology["blockchain"]; ok {
		insights = append(insights, blockchainInsights(text)...)
	}

	if len(insights) > c.config.MaxInsights {
		insights = insights[:c.config.MaxInsights]
	}
	return insights
}

var (
	consensusPattern   = regexp.MustCompile(`(?i)(?:uses?|implements?|based on)\s+(proof of [a-z]+)`)
	throughputPattern  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:tps|transactions per second|throughput)`)
	scalabilityPattern = regexp.MustCompile(`(?i)(?:scales to|can handle)\s+(\d+\.?\d*)\s*(?:transactions|users)`)
)

func blockchainInsights(text string) []string {
	insights := []string{}
	for _, m := range consensusPattern.FindAllStringSubmatch(text, -1) {
		insights = append(insights, "Consensus mechanism: "+strings.TrimSpace(m[1]))
	}
	for _, m := range throughputPattern.FindAllStringSubmatch(text, -1) {
		insights = append(insights, "Performance metric: "+m[1])
	}
	for _, m := range scalabilityPattern.FindAllStringSubmatch(text, -1) {
		insights = append(insights, "Performance metric: "+m[1])
	}
	return insights
}

func (c *Collector) startupRelevance(text, startupName string) float64 {
	if startupName == "" {
		return 0.5
	}

	lower := strings.ToLower(text)
	mentions := strings.Count(lower, strings.ToLower(startupName))

	businessKeywords := []string{
		"startup", "company", "business", "commercial", "enterprise",
		"market", "customers", "users", "revenue", "profit", "scalability",
		"implementation", "deployment", "production",
	}
	keywordMatches := 0
	for _, kw := range businessKeywords {
		if strings.Contains(lower, kw) {
			keywordMatches++
		}
	}

	technicalIndicators := []string{
		"algorithm", "implementation", "optimization", "performance",
		"architecture", "framework", "system", "platform",
	}
	technicalMatches := 0
	for _, ind := range technicalIndicators {
		if strings.Contains(lower, ind) {
			technicalMatches++
		}
	}

	nameScore := minFloat(float64(mentions)/float64(c.config.MaxNameMentions), 1.0)
	keywordScore := minFloat(float64(keywordMatches)/float64(len(businessKeywords)), 1.0)
	technicalScore := minFloat(float64(technicalMatches)/float64(len(technicalIndicators)), 1.0)

	return minFloat(nameScore*0.5+keywordScore*0.3+technicalScore*0.2, 1.0)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
