// Package enrich issues best-effort enrichment triggers for newly created
// companies. Triggers are detached tasks: their errors are logged, never
// joined into the pipeline outcome.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Trigger requests enrichment for a company. Implementations must never block
// the caller on the result.
type Trigger interface {
	TriggerCompanyEnrichment(ctx context.Context, companyID, domain string)
}

// Dispatcher posts enrichment requests to a webhook. In-flight requests are
// bounded; when the bound is reached new triggers are dropped (and logged)
// rather than queued, keeping the ingest path non-blocking.
type Dispatcher struct {
	url    string
	client *http.Client
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
}

// NewDispatcher creates a webhook dispatcher. An empty URL yields a no-op
// dispatcher. A nil client gets a 10s-timeout default.
func NewDispatcher(url string, client *http.Client, maxInFlight int64) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	return &Dispatcher{
		url:    url,
		client: client,
		sem:    semaphore.NewWeighted(maxInFlight),
	}
}

// TriggerCompanyEnrichment fires the webhook without waiting for the result.
func (d *Dispatcher) TriggerCompanyEnrichment(ctx context.Context, companyID, domain string) {
	if d.url == "" {
		return
	}
	if !d.sem.TryAcquire(1) {
		zap.L().Debug("enrich: trigger dropped, too many in flight",
			zap.String("company_id", companyID),
		)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.sem.Release(1)
		d.post(ctx, companyID, domain)
	}()
}

// Wait blocks until all in-flight triggers finish; used on shutdown and in
// tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) post(ctx context.Context, companyID, domain string) {
	body, err := json.Marshal(map[string]string{
		"company_id": companyID,
		"domain":     domain,
	})
	if err != nil {
		zap.L().Warn("enrich: marshal trigger", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		zap.L().Warn("enrich: build trigger request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		zap.L().Warn("enrich: trigger failed",
			zap.String("company_id", companyID),
			zap.String("domain", domain),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		zap.L().Warn("enrich: trigger rejected",
			zap.String("company_id", companyID),
			zap.Int("status", resp.StatusCode),
		)
		return
	}

	zap.L().Debug("enrich: trigger accepted",
		zap.String("company_id", companyID),
		zap.String("domain", domain),
	)
}
