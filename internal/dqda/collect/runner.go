package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	stderrors "github.com/Oragnicveda/Blockchain-AI/internal/common/errors"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/observability"
)

// RunnerConfig is the reliability envelope one runner applies to its
// collector. Zero values fall back to sane defaults in NewRunner.
type RunnerConfig struct {
	Name           string
	MaxAttempts    int
	BaseDelay      time.Duration
	RateLimitDelay time.Duration
	MaxResults     int
}

// Runner wraps one Source with retries, normalization, rate limiting,
// and graceful degradation. Collect never returns an error; every
// failure mode degrades into schema-valid records.
type Runner struct {
	source  Source
	cfg     RunnerConfig
	logger  logger.Logger
	metrics *observability.Metrics
}

func NewRunner(source Source, cfg RunnerConfig, log logger.Logger, metrics *observability.Metrics) *Runner {
	if cfg.Name == "" {
		cfg.Name = string(source.Kind())
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &Runner{
		source:  source,
		cfg:     cfg,
		logger:  log,
		metrics: metrics,
	}
}

// Kind exposes the wrapped collector's source kind.
func (r *Runner) Kind() SourceKind {
	return r.source.Kind()
}

// Collect runs the wrapped collector once and returns normalized
// records. On total fetch failure it returns exactly one degraded
// record instead of erroring out.
func (r *Runner) Collect(ctx context.Context, req Request) []Record {
	start := time.Now()
	r.logger.Info("starting data collection", map[string]interface{}{
		"collector":    r.cfg.Name,
		"startup_name": req.StartupName,
	})

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = r.cfg.MaxResults
	}

	items, retries, err := r.fetchWithRetry(ctx, req)
	if err != nil {
		r.logger.WithError(err).Error("data collection failed", map[string]interface{}{
			"collector":    r.cfg.Name,
			"startup_name": req.StartupName,
			"attempts":     retries + 1,
		})
		r.metrics.RecordRun(r.cfg.Name, "degraded")
		r.metrics.RecordDegraded(r.cfg.Name)
		r.metrics.RecordDuration(r.cfg.Name, time.Since(start))
		return []Record{r.degradedRecord(req, retries, err)}
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		record, err := r.normalize(item, req, retries)
		if err != nil {
			r.logger.WithError(err).Warn("skipping item that failed normalization", map[string]interface{}{
				"collector": r.cfg.Name,
				"url":       item.URL,
			})
			continue
		}
		records = append(records, record)
		r.rateLimitWait(ctx)
	}

	if len(records) > maxResults {
		records = records[:maxResults]
	}

	r.logger.Info("data collection complete", map[string]interface{}{
		"collector":    r.cfg.Name,
		"startup_name": req.StartupName,
		"records":      len(records),
	})
	r.metrics.RecordRun(r.cfg.Name, "success")
	r.metrics.RecordCollected(r.cfg.Name, len(records))
	r.metrics.RecordDuration(r.cfg.Name, time.Since(start))
	return records
}

// backoff builds the retry schedule: base, 2x base, 4x base and so on,
// capped at MaxAttempts total tries.
func (r *Runner) backoff() retry.Backoff {
	return retry.WithMaxRetries(uint64(r.cfg.MaxAttempts-1), retry.NewExponential(r.cfg.BaseDelay))
}

func (r *Runner) fetchWithRetry(ctx context.Context, req Request) ([]RawItem, int, error) {
	var items []RawItem
	attempt := 0

	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		attempt++
		fetched, err := r.source.Fetch(ctx, req)
		if err != nil {
			if attempt < r.cfg.MaxAttempts {
				r.metrics.RecordRetry(r.cfg.Name)
				r.logger.WithError(err).Warn("fetch attempt failed, retrying", map[string]interface{}{
					"collector": r.cfg.Name,
					"attempt":   attempt,
				})
			}
			if stderrors.IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		items = fetched
		return nil
	})
	return items, attempt - 1, err
}

func (r *Runner) normalize(item RawItem, req Request, retries int) (Record, error) {
	if item.Content == "" && item.URL == "" && item.Title == "" && len(item.Fields) == 0 {
		return Record{}, stderrors.NewNormalizeFailedError(r.cfg.Name, fmt.Errorf("item carries no usable content"))
	}

	record := NewRecord(req.StartupName, r.source.Kind())
	record.SourceURL = item.URL
	record.RawContent = item.Content
	record.RetryCount = retries
	record.SearchKeywords = append(record.SearchKeywords, req.Keywords...)

	record.Confidence = confidenceScore(item)
	record.QualityIndicators = qualityIndicators(item)

	for k, v := range item.Fields {
		record.StructuredData[k] = v
	}
	if item.Title != "" {
		record.StructuredData["title"] = item.Title
	}
	if len(item.Metadata) > 0 {
		record.StructuredData["metadata"] = item.Metadata
	}

	record.ProcessingNotes = append(record.ProcessingNotes, fmt.Sprintf("Collected via %s", r.cfg.Name))
	if item.Method != "" {
		record.ProcessingNotes = append(record.ProcessingNotes, fmt.Sprintf("Method: %s", item.Method))
	}

	return record, nil
}

func (r *Runner) degradedRecord(req Request, retries int, err error) Record {
	record := NewRecord(req.StartupName, r.source.Kind())
	record.Confidence = 0.1
	record.RetryCount = retries
	record.Errors = append(record.Errors, err.Error())
	record.ProcessingNotes = append(record.ProcessingNotes, fmt.Sprintf("Graceful degradation for %s", r.cfg.Name))
	record.SearchKeywords = append(record.SearchKeywords, req.Keywords...)
	return record
}

// rateLimitWait pauses between normalized items without outliving the
// run context.
func (r *Runner) rateLimitWait(ctx context.Context) {
	if r.cfg.RateLimitDelay <= 0 {
		return
	}
	timer := time.NewTimer(r.cfg.RateLimitDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// confidenceScore starts at 0.5 and rewards completeness of the raw
// item, clamped to 1.0.
func confidenceScore(item RawItem) float64 {
	score := 0.5
	if item.Content != "" {
		score += 0.2
	}
	if item.URL != "" {
		score += 0.1
	}
	if len(item.Metadata) > 0 {
		score += 0.1
	}
	if item.Title != "" {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func qualityIndicators(item RawItem) []string {
	indicators := []string{}
	if len(item.Content) > 100 {
		indicators = append(indicators, "substantial_content")
	}
	if item.URL != "" {
		indicators = append(indicators, "has_source_url")
	}
	if len(item.Metadata) > 0 {
		indicators = append(indicators, "has_metadata")
	}
	if item.Title != "" {
		indicators = append(indicators, "has_title")
	}
	return indicators
}
