package main

import (
	"context"
	"net/http"
	"time"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-ingest/internal/enrich"
	"github.com/sells-group/lead-ingest/internal/ingest"
	"github.com/sells-group/lead-ingest/internal/resolve"
	"github.com/sells-group/lead-ingest/internal/store"
	"github.com/sells-group/lead-ingest/internal/validate"
	sfpkg "github.com/sells-group/lead-ingest/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemory(), nil
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leads.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initLeadSink builds the optional Salesforce sink; nil when unconfigured.
func initLeadSink() (store.LeadSink, error) {
	if !cfg.Salesforce.Enabled() {
		return nil, nil
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.Domain,
		Username:       cfg.Salesforce.Username,
		Password:       cfg.Salesforce.Password,
		SecurityToken:  cfg.Salesforce.SecurityToken,
		ConsumerKey:    cfg.Salesforce.ConsumerKey,
		ConsumerSecret: cfg.Salesforce.ConsumerSecret,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewSink(sfpkg.NewClient(sf, sfpkg.WithRateLimit(5))), nil
}

// pipelineEnv bundles the wired components for one command invocation.
type pipelineEnv struct {
	Store  store.Store
	Runner *ingest.Runner
	Enrich *enrich.Dispatcher
}

// Close flushes in-flight enrichment calls and releases the store.
func (e *pipelineEnv) Close() {
	if e.Enrich != nil {
		e.Enrich.Wait()
	}
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

// initPipeline wires store, lead sink, website gate, enrichment, resolver, and
// runner from config. dryRun swaps in the in-memory store.
func initPipeline(ctx context.Context, dryRun bool) (*pipelineEnv, error) {
	var st store.Store
	if dryRun {
		st = store.NewMemory()
	} else {
		s, err := initStore(ctx)
		if err != nil {
			return nil, err
		}
		st = s
	}

	if !dryRun {
		sink, err := initLeadSink()
		if err != nil {
			st.Close()
			return nil, err
		}
		st = store.WithLeadSink(st, sink)
	}

	scoreCfg := validate.DefaultScoreConfig()
	scoreCfg.ValidThreshold = cfg.Validation.ScoreThreshold
	scorer := validate.NewWebsiteScorer(
		&http.Client{Timeout: time.Duration(cfg.Validation.FetchTimeoutSecs) * time.Second},
		scoreCfg,
		time.Duration(cfg.Validation.CacheTTLMins)*time.Minute,
		validate.WithRequestRate(cfg.Validation.RequestsPerSec),
	)

	var dispatcher *enrich.Dispatcher
	if cfg.Enrich.WebhookURL != "" && !dryRun {
		dispatcher = enrich.NewDispatcher(cfg.Enrich.WebhookURL, nil, int64(cfg.Enrich.MaxConcurrent))
	}

	resolver := resolve.NewResolver(st, scorer, triggerOrNil(dispatcher), resolve.Options{
		SynthesizeWebsite: cfg.Ingest.SynthesizeWebsite,
		PhoneCountryCode:  cfg.Ingest.DefaultCountryCode,
	})

	runner := ingest.NewRunner(resolver, ingest.RunnerOptions{
		BatchSize:       cfg.Ingest.BatchSize,
		InterChunkDelay: time.Duration(cfg.Ingest.InterChunkDelaySecs) * time.Second,
	})

	return &pipelineEnv{Store: st, Runner: runner, Enrich: dispatcher}, nil
}

// triggerOrNil avoids handing the resolver a typed-nil interface.
func triggerOrNil(d *enrich.Dispatcher) enrich.Trigger {
	if d == nil {
		return nil
	}
	return d
}
