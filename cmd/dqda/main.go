// cmd/dqda/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Oragnicveda/Blockchain-AI/internal/collectors/founder"
	"github.com/Oragnicveda/Blockchain-AI/internal/collectors/pitchdeck"
	"github.com/Oragnicveda/Blockchain-AI/internal/collectors/tokenomics"
	"github.com/Oragnicveda/Blockchain-AI/internal/collectors/website"
	"github.com/Oragnicveda/Blockchain-AI/internal/collectors/whitepaper"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/cache"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/config"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/observability"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/pipeline"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/report"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/scoring"
	"github.com/Oragnicveda/Blockchain-AI/pkg/registry"
)

func main() {
	var (
		pitchDeckFlag   = flag.String("pitch-deck", "", "comma-separated pitch deck URLs or local paths")
		whitepaperFlag  = flag.String("whitepaper", "", "comma-separated whitepaper URLs or local paths")
		websiteFlag     = flag.String("website", "", "comma-separated company website URLs")
		tokenFlag       = flag.String("token", "", "comma-separated token contract addresses")
		founderFlag     = flag.String("founder", "", "comma-separated founder names")
		keywordsFlag    = flag.String("keywords", "", "comma-separated search keywords")
		maxResults      = flag.Int("max-results", 0, "cap on records per collector (0 uses config)")
		ledgerFixtures  = flag.Bool("ledger-fixtures", false, "use deterministic ledger fixtures instead of explorer APIs")
		outputFormat    = flag.String("output-format", "text", "output format: text or json")
		outputFile      = flag.String("output-file", "", "export the report to this file (.json or .csv)")
		metricsOverride = flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dqda [flags] <startup name>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	startupName := strings.Join(flag.Args(), " ")

	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting dqda",
		zap.String("startup", startupName),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)

	metricsAddr := cfg.Metrics.Address
	if *metricsOverride != "" {
		metricsAddr = *metricsOverride
	}
	if cfg.Metrics.Enabled || *metricsOverride != "" {
		go func() {
			zapLog.Info("serving metrics", zap.String("addr", metricsAddr))
			if err := http.ListenAndServe(metricsAddr, obs.Handler()); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageCache := cache.New(cfg.Cache, "dqda")
	if pageCache != nil {
		if err := pageCache.Ping(ctx); err != nil {
			zapLog.Warn("redis unreachable, running without cache", zap.Error(err))
			pageCache = nil
		} else {
			defer pageCache.Close()
		}
	}

	client := httpclient.New(time.Duration(cfg.HTTP.Timeout)*time.Millisecond, httpclient.WithUserAgent(cfg.HTTP.UserAgent))

	// --- Register the five collectors behind runners ---
	sources := map[string]collect.Source{
		scoring.RolePitchDeck:  pitchdeck.New(nil, client, log),
		scoring.RoleWhitepaper: whitepaper.New(nil, client, log),
		scoring.RoleWebsite:    website.New(nil, client, pageCache, log),
		scoring.RoleTokenomics: tokenomics.New(nil, client, log),
		scoring.RoleFounders:   founder.New(nil, client, log),
	}

	runners := make(map[string]*collect.Runner, len(sources))
	for role, source := range sources {
		roleCfg := cfg.Collectors[role]
		if !roleCfg.Enabled {
			zapLog.Info("collector disabled", zap.String("role", role))
			continue
		}

		rc := collect.RunnerConfig{
			Name:           role,
			MaxAttempts:    cfg.Collection.MaxAttempts,
			BaseDelay:      cfg.Collection.BaseDelayDuration(),
			RateLimitDelay: cfg.Collection.RateLimitDelayDuration(),
			MaxResults:     cfg.Collection.MaxResults,
		}
		if roleCfg.MaxResults > 0 {
			rc.MaxResults = roleCfg.MaxResults
		}
		if roleCfg.RateLimitDelay > 0 {
			rc.RateLimitDelay = time.Duration(roleCfg.RateLimitDelay) * time.Millisecond
		}
		runners[role] = collect.NewRunner(source, rc, log, obs)
	}

	engine := scoring.NewEngine(cfg.Scoring, log)
	pipe := pipeline.New(runners, registry.New(), engine, pipeline.Config{
		CollectorTimeout: cfg.Collection.TimeoutDuration(),
		RunTimeout:       cfg.Collection.RunTimeoutDuration(),
	}, log)

	req := collect.Request{
		StartupName: startupName,
		Keywords:    splitList(*keywordsFlag),
		MaxResults:  *maxResults,
		Params:      buildParams(*pitchDeckFlag, *whitepaperFlag, *websiteFlag, *tokenFlag, *founderFlag, *ledgerFixtures),
	}

	rep := pipe.Run(ctx, req)

	switch *outputFormat {
	case "json":
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			zapLog.Fatal("report encoding failed", zap.Error(err))
		}
		fmt.Println(string(out))
	default:
		fmt.Print(report.SummaryText(rep))
	}

	if *outputFile != "" {
		format := "json"
		if strings.EqualFold(filepath.Ext(*outputFile), ".csv") {
			format = "csv"
		}
		exporter := report.NewExporter(filepath.Dir(*outputFile), log)
		path, err := exporter.Export(rep, format, filepath.Base(*outputFile))
		if err != nil {
			zapLog.Fatal("report export failed", zap.Error(err))
		}
		zapLog.Info("report exported", zap.String("path", path))
	}
}

// buildParams assembles the open param bag from the CLI flags. Deck
// and whitepaper inputs are split into URL and local-path lists.
func buildParams(pitchDeck, whitepaper, website, token, founderNames string, ledgerFixtures bool) map[string]interface{} {
	params := map[string]interface{}{}

	urls, paths := splitSources(pitchDeck)
	if len(urls) > 0 {
		params["pitch_deck_urls"] = urls
	}
	if len(paths) > 0 {
		params["pitch_deck_paths"] = paths
	}

	urls, paths = splitSources(whitepaper)
	if len(urls) > 0 {
		params["whitepaper_urls"] = urls
	}
	if len(paths) > 0 {
		params["whitepaper_paths"] = paths
	}

	if sites := splitList(website); len(sites) > 0 {
		params["website_urls"] = sites
	}
	if tokens := splitList(token); len(tokens) > 0 {
		params["token_addresses"] = tokens
	}
	if names := splitList(founderNames); len(names) > 0 {
		params["founder_names"] = names
	}
	if ledgerFixtures {
		params["use_ledger_fixtures"] = true
	}

	return params
}

func splitSources(raw string) (urls, paths []string) {
	for _, entry := range splitList(raw) {
		if strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://") {
			urls = append(urls, entry)
		} else {
			paths = append(paths, entry)
		}
	}
	return urls, paths
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
