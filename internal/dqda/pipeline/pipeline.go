package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/scoring"
	"github.com/Oragnicveda/Blockchain-AI/pkg/registry"
)

// Config bounds one pipeline run.
type Config struct {
	CollectorTimeout time.Duration
	RunTimeout       time.Duration
}

// Pipeline fans a collection request out to every registered runner,
// tolerates partial failure, and scores whatever came back. The runner
// set is fixed at construction.
type Pipeline struct {
	runners  map[string]*collect.Runner
	registry *registry.Registry
	engine   *scoring.Engine
	cfg      Config
	logger   logger.Logger
}

func New(runners map[string]*collect.Runner, reg *registry.Registry, engine *scoring.Engine, cfg Config, log logger.Logger) *Pipeline {
	return &Pipeline{
		runners:  runners,
		registry: reg,
		engine:   engine,
		cfg:      cfg,
		logger:   log,
	}
}

// Run executes every collector concurrently and returns the scored
// report. A panicking or failing collector contributes an empty record
// list; siblings are never aborted. The result map always holds one
// key per registered runner.
func (p *Pipeline) Run(ctx context.Context, req collect.Request) *scoring.Report {
	if p.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RunTimeout)
		defer cancel()
	}

	p.logger.Info("starting collection pipeline", map[string]interface{}{
		"startup_name": req.StartupName,
		"collectors":   len(p.runners),
	})

	var mu sync.Mutex
	collected := make(map[string][]collect.Record, len(p.runners))

	g, gctx := errgroup.WithContext(ctx)
	for role, runner := range p.runners {
		role, runner := role, runner
		g.Go(func() error {
			records := p.runCollector(gctx, role, runner, req)
			mu.Lock()
			collected[role] = records
			mu.Unlock()
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	return p.engine.Score(req.StartupName, req.Keywords, collected)
}

// runCollector isolates one collector: param validation, per-role
// timeout, and panic containment.
func (p *Pipeline) runCollector(ctx context.Context, role string, runner *collect.Runner, req collect.Request) (records []collect.Record) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("collector panicked", map[string]interface{}{
				"collector": role,
				"panic":     fmt.Sprint(r),
			})
			records = []collect.Record{}
		}
	}()

	if p.cfg.CollectorTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.CollectorTimeout)
		defer cancel()
	}

	roleReq := req
	roleReq.Params = p.roleParams(role, req.Params)

	records = runner.Collect(ctx, roleReq)
	if records == nil {
		records = []collect.Record{}
	}
	return records
}

// roleParams narrows the shared param bag to the role's schema. A bag
// that fails validation is stripped rather than failing the run.
func (p *Pipeline) roleParams(role string, params map[string]interface{}) map[string]interface{} {
	if p.registry == nil {
		return params
	}
	filtered := p.registry.FilterParams(role, params)
	if err := p.registry.ValidateParams(role, filtered); err != nil {
		p.logger.WithError(err).Warn("invalid collector params, dispatching without them", map[string]interface{}{
			"collector": role,
		})
		return map[string]interface{}{}
	}
	return filtered
}
