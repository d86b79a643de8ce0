package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/config"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// Collection role keys, matching the pipeline's result map.
const (
	RolePitchDeck  = "pitch_deck"
	RoleWhitepaper = "whitepaper"
	RoleWebsite    = "website"
	RoleTokenomics = "tokenomics"
	RoleFounders   = "founders"
)

// Engine turns collected records into the scored dashboard. Scoring is
// pure heuristics over structured data; malformed or missing fields
// read as absent signals, never as errors.
type Engine struct {
	cfg    config.ScoringConfig
	logger logger.Logger
}

func NewEngine(cfg config.ScoringConfig, log logger.Logger) *Engine {
	return &Engine{cfg: cfg, logger: log}
}

// Score builds the full report for one run. It never fails: every
// input shape, including five empty record lists, produces a valid
// report.
func (e *Engine) Score(startupName string, keywords []string, collected map[string][]collect.Record) *Report {
	founderScore := e.founderScore(collected[RoleFounders])
	market := e.marketAnalysis(collected[RolePitchDeck], collected[RoleWhitepaper], collected[RoleWebsite])
	competition := e.competition(collected[RolePitchDeck], collected[RoleWebsite])
	token := e.tokenUtility(collected[RoleTokenomics])
	weaknesses := e.identifyWeaknesses(founderScore, market, competition, token, collected)
	fit := e.investorFit(founderScore, market.Score, competition.Score, token.Score, weaknesses)

	e.logger.Info("scoring complete", map[string]interface{}{
		"startup_name":  startupName,
		"founder_score": founderScore,
		"market_score":  market.Score,
		"investor_fit":  fit.Score,
		"rating":        fit.Rating,
	})

	if keywords == nil {
		keywords = []string{}
	}
	return &Report{
		RunID:        uuid.New(),
		StartupName:  startupName,
		Keywords:     keywords,
		GeneratedAt:  time.Now().UTC(),
		FounderScore: founderScore,
		Market:       market,
		Competition:  competition,
		TokenUtility: token,
		Weaknesses:   weaknesses,
		InvestorFit:  fit,
		Records:      collected,
	}
}

// founderScore averages each founder record's overall assessment,
// falling back to the record's own confidence when the assessment is
// missing or malformed.
func (e *Engine) founderScore(founders []collect.Record) int {
	if len(founders) == 0 {
		return 0
	}

	sum := 0.0
	for _, rec := range founders {
		assessment := nestedMap(rec.StructuredData, "overall_assessment")
		if v, ok := numeric(assessment["overall_score"]); ok {
			sum += v
		} else {
			sum += rec.Confidence
		}
	}

	avg := sum / float64(len(founders))
	return int(math.Round(clamp01(avg) * 100))
}

func (e *Engine) marketAnalysis(pitchDecks, whitepapers, websites []collect.Record) SubReport {
	signals := []string{}

	hasMarketSection := false
	sectionCoverage := 0.0
	for _, rec := range pitchDecks {
		sections := nestedMap(rec.StructuredData, "sections")
		if truthy(sections["market_size"]) {
			hasMarketSection = true
		}
		qi := nestedMap(rec.StructuredData, "quality_indicators")
		if v, ok := numeric(qi["section_coverage"]); ok && v > sectionCoverage {
			sectionCoverage = v
		}
	}

	if hasMarketSection {
		signals = append(signals, "Pitch deck includes market sizing section")
	}
	if sectionCoverage > 0 {
		signals = append(signals, fmt.Sprintf("Pitch deck section coverage: %.2f", sectionCoverage))
	}

	wpQuality := 0.0
	for _, rec := range whitepapers {
		quality := nestedMap(rec.StructuredData, "writing_quality")
		if len(quality) == 0 {
			continue
		}
		parts := []float64{}
		for _, key := range []string{"reading_ease", "has_abstract", "has_references", "academic_language", "has_figures"} {
			if v, ok := numeric(quality[key]); ok {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			avg := mean(parts)
			if avg > wpQuality {
				wpQuality = avg
			}
		}
	}
	if wpQuality > 0 {
		signals = append(signals, fmt.Sprintf("Whitepaper writing quality: %.2f", wpQuality))
	}

	siteCompleteness := 0.0
	for _, rec := range websites {
		companyInfo := nestedMap(rec.StructuredData, "company_information")
		if len(companyInfo) == 0 {
			continue
		}
		present := 0
		for _, v := range companyInfo {
			if truthy(v) {
				present++
			}
		}
		ratio := float64(present) / float64(len(companyInfo))
		if ratio > siteCompleteness {
			siteCompleteness = ratio
		}
	}
	if siteCompleteness > 0 {
		signals = append(signals, fmt.Sprintf("Website company info completeness: %.2f", siteCompleteness))
	}

	score := e.cfg.MarketSectionBase
	if hasMarketSection {
		score = e.cfg.MarketSectionWeight
	}
	score += math.Min(sectionCoverage, 1.0) * e.cfg.MarketCoverageWeight
	score += math.Min(siteCompleteness, 1.0) * e.cfg.MarketWebsiteWeight
	score += math.Min(wpQuality, 1.0) * e.cfg.MarketPaperWeight

	return SubReport{
		Score:   int(math.Round(clamp01(score) * 100)),
		Signals: signals,
		Summary: "Heuristic market signal score derived from pitch deck/website/whitepaper coverage.",
	}
}

func (e *Engine) competition(pitchDecks, websites []collect.Record) SubReport {
	signals := []string{}

	hasCompetitiveSection := false
	for _, rec := range pitchDecks {
		sections := nestedMap(rec.StructuredData, "sections")
		if truthy(sections["competitive_advantage"]) {
			hasCompetitiveSection = true
		}
	}
	if hasCompetitiveSection {
		signals = append(signals, "Pitch deck discusses competitive advantage")
	}

	pagesCrawled := 0
	for _, rec := range websites {
		pages := nestedMap(rec.StructuredData, "crawled_pages")
		if len(pages) > pagesCrawled {
			pagesCrawled = len(pages)
		}
	}
	if pagesCrawled > 0 {
		signals = append(signals, fmt.Sprintf("Website pages crawled: %d", pagesCrawled))
	}

	score := e.cfg.CompetitionSectionBase
	if hasCompetitiveSection {
		score = e.cfg.CompetitionSectionWeight
	}
	score += math.Min(float64(pagesCrawled)/e.cfg.CompetitionPagesScale, 1.0) * e.cfg.CompetitionPagesWeight

	return SubReport{
		Score:   int(math.Round(clamp01(score) * 100)),
		Signals: signals,
		Summary: "Competition analysis is inferred from presence of competitive sections and website coverage.",
	}
}

func (e *Engine) tokenUtility(tokens []collect.Record) SubReport {
	if len(tokens) == 0 {
		return SubReport{
			Score:   0,
			Signals: []string{"No tokenomics data available"},
			Summary: "Token utility score could not be computed due to missing token data.",
		}
	}

	sum := 0.0
	for _, rec := range tokens {
		if v, ok := numeric(rec.StructuredData["quality_score"]); ok {
			sum += v
		} else {
			sum += rec.Confidence
		}
	}
	avg := clamp01(sum / float64(len(tokens)))

	return SubReport{
		Score:   int(math.Round(avg * 100)),
		Signals: []string{"Derived from tokenomics collector quality/confidence"},
		Summary: "Heuristic token utility proxy based on available tokenomics data quality.",
	}
}

func (e *Engine) identifyWeaknesses(founderScore int, market, competition, token SubReport, collected map[string][]collect.Record) []string {
	weaknesses := []string{}
	threshold := e.cfg.WeaknessThreshold

	if founderScore < threshold {
		weaknesses = append(weaknesses, "Low founder/team signal score")
	}
	if market.Score < threshold {
		weaknesses = append(weaknesses, "Weak market evidence (limited market sizing / positioning signals)")
	}
	if competition.Score < threshold {
		weaknesses = append(weaknesses, "Limited competitive differentiation evidence")
	}
	if token.Score < threshold {
		weaknesses = append(weaknesses, "Token utility/quality signal is weak or missing")
	}

	if len(collected[RolePitchDeck]) == 0 {
		weaknesses = append(weaknesses, "No pitch deck data collected")
	}
	if len(collected[RoleWhitepaper]) == 0 {
		weaknesses = append(weaknesses, "No whitepaper data collected")
	}
	if len(collected[RoleWebsite]) == 0 {
		weaknesses = append(weaknesses, "No website crawl data collected")
	}
	if len(collected[RoleTokenomics]) == 0 {
		weaknesses = append(weaknesses, "No tokenomics data collected")
	}
	if len(collected[RoleFounders]) == 0 {
		weaknesses = append(weaknesses, "No founder background data collected")
	}

	return weaknesses
}

func (e *Engine) investorFit(founderScore, marketScore, competitionScore, tokenScore int, weaknesses []string) InvestorFit {
	normalized := float64(founderScore)/100*e.cfg.FounderWeight +
		float64(marketScore)/100*e.cfg.MarketWeight +
		float64(competitionScore)/100*e.cfg.CompetitionWeight +
		float64(tokenScore)/100*e.cfg.TokenWeight

	penalty := math.Min(float64(len(weaknesses))*e.cfg.WeaknessPenalty, e.cfg.WeaknessPenaltyCap)
	normalized = clamp01(normalized - penalty)

	score := int(math.Round(normalized * 100))

	rating := "weak"
	switch {
	case score >= e.cfg.StrongThreshold:
		rating = "strong"
	case score >= e.cfg.ModerateThreshold:
		rating = "moderate"
	}

	return InvestorFit{
		Score:     score,
		Rating:    rating,
		Rationale: "Weighted composite of founder/market/competition/token signals with a small penalty for flagged weaknesses.",
	}
}

// nestedMap digs one map level out of structured data, returning nil
// for missing or differently typed values.
func nestedMap(data map[string]interface{}, key string) map[string]interface{} {
	if data == nil {
		return nil
	}
	if m, ok := data[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// truthy mirrors loose truthiness over structured-data values.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
