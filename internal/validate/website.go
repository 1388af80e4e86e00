package validate

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-ingest/internal/normalize"
)

// ScoreConfig holds the point values for each website quality signal. Kept as
// data so thresholds can be tuned and tested independently.
type ScoreConfig struct {
	Reachable          int `yaml:"reachable" mapstructure:"reachable"`
	HasTitle           int `yaml:"has_title" mapstructure:"has_title"`
	HasContact         int `yaml:"has_contact" mapstructure:"has_contact"`
	HasAbout           int `yaml:"has_about" mapstructure:"has_about"`
	HasEmailPattern    int `yaml:"has_email_pattern" mapstructure:"has_email_pattern"`
	HasLinkedIn        int `yaml:"has_linkedin" mapstructure:"has_linkedin"`
	HasPrivacy         int `yaml:"has_privacy" mapstructure:"has_privacy"`
	HasNav             int `yaml:"has_nav" mapstructure:"has_nav"`
	Over500Words       int `yaml:"over_500_words" mapstructure:"over_500_words"`
	Over1000Words      int `yaml:"over_1000_words" mapstructure:"over_1000_words"`
	NotFoundPenalty    int `yaml:"not_found_penalty" mapstructure:"not_found_penalty"`
	PlaceholderPenalty int `yaml:"placeholder_penalty" mapstructure:"placeholder_penalty"`
	ValidThreshold     int `yaml:"valid_threshold" mapstructure:"valid_threshold"`
}

// DefaultScoreConfig returns the standard signal weights. A site is valid
// when its score strictly exceeds ValidThreshold.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		Reachable:          20,
		HasTitle:           10,
		HasContact:         10,
		HasAbout:           10,
		HasEmailPattern:    10,
		HasLinkedIn:        5,
		HasPrivacy:         5,
		HasNav:             10,
		Over500Words:       15,
		Over1000Words:      10,
		NotFoundPenalty:    -30,
		PlaceholderPenalty: -40,
		ValidThreshold:     60,
	}
}

// WebsiteResult is the outcome of one quality check.
type WebsiteResult struct {
	Valid bool `json:"valid"`
	Score int  `json:"score"`
}

var emailPatternRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// WebsiteScorer fetches a site and scores textual signals to filter
// placeholder or broken sites. A heuristic gate, not a crawler.
type WebsiteScorer struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *gocache.Cache
	cfg     ScoreConfig
	maxBody int64
}

// ScorerOption configures the website scorer.
type ScorerOption func(*WebsiteScorer)

// WithRequestRate sets the outbound fetch rate in requests per second.
func WithRequestRate(rps float64) ScorerOption {
	return func(ws *WebsiteScorer) {
		if rps > 0 {
			ws.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

// NewWebsiteScorer creates a scorer. A nil client gets a 15s-timeout default.
// Results are cached per domain so repeated entries for the same company in a
// batch cost one fetch.
func NewWebsiteScorer(client *http.Client, cfg ScoreConfig, cacheTTL time.Duration, opts ...ScorerOption) *WebsiteScorer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	ws := &WebsiteScorer{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		cfg:     cfg,
		maxBody: 1 << 20,
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

// Check fetches the URL and scores it. Network failures and non-2xx responses
// yield an invalid result with score 0, not an error; the error return is
// reserved for context cancellation.
func (ws *WebsiteScorer) Check(ctx context.Context, rawURL string) (WebsiteResult, error) {
	key := normalize.Domain(rawURL)
	if key == "" {
		key = rawURL
	}
	if cached, ok := ws.cache.Get(key); ok {
		return cached.(WebsiteResult), nil
	}

	if err := ws.limiter.Wait(ctx); err != nil {
		return WebsiteResult{}, eris.Wrap(err, "validate: rate limit wait")
	}

	result := ws.fetch(ctx, rawURL)
	if err := ctx.Err(); err != nil {
		// An aborted fetch says nothing about the site; caching the zero
		// verdict would mark the domain invalid for the full TTL.
		return WebsiteResult{}, eris.Wrap(err, "validate: fetch cancelled")
	}
	ws.cache.Set(key, result, gocache.DefaultExpiration)
	return result, nil
}

func (ws *WebsiteScorer) fetch(ctx context.Context, rawURL string) WebsiteResult {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return WebsiteResult{}
	}
	req.Header.Set("User-Agent", "lead-ingest/1.0")

	resp, err := ws.client.Do(req)
	if err != nil {
		zap.L().Debug("validate: website unreachable",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return WebsiteResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return WebsiteResult{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, ws.maxBody))
	if err != nil {
		return WebsiteResult{}
	}

	score := ws.score(string(body))
	return WebsiteResult{Valid: score > ws.cfg.ValidThreshold, Score: score}
}

// score evaluates the configured signals against the page body.
func (ws *WebsiteScorer) score(body string) int {
	lower := strings.ToLower(body)
	hasTitle, hasNav := scanStructure(body)

	score := ws.cfg.Reachable
	if hasTitle {
		score += ws.cfg.HasTitle
	}
	if strings.Contains(lower, "contact") {
		score += ws.cfg.HasContact
	}
	if strings.Contains(lower, "about") {
		score += ws.cfg.HasAbout
	}
	if emailPatternRe.MatchString(body) {
		score += ws.cfg.HasEmailPattern
	}
	if strings.Contains(lower, "linkedin") {
		score += ws.cfg.HasLinkedIn
	}
	if strings.Contains(lower, "privacy") {
		score += ws.cfg.HasPrivacy
	}
	if hasNav {
		score += ws.cfg.HasNav
	}

	words := len(strings.Fields(lower))
	if words > 500 {
		score += ws.cfg.Over500Words
	}
	if words > 1000 {
		score += ws.cfg.Over1000Words
	}

	if strings.Contains(lower, "404") || strings.Contains(lower, "not found") {
		score += ws.cfg.NotFoundPenalty
	}
	if strings.Contains(lower, "under construction") || strings.Contains(lower, "coming soon") {
		score += ws.cfg.PlaceholderPenalty
	}

	return score
}

// scanStructure tokenizes the document looking for a non-empty <title> and a
// <nav> element.
func scanStructure(body string) (hasTitle, hasNav bool) {
	tk := html.NewTokenizer(strings.NewReader(body))
	inTitle := false
	for {
		tt := tk.Next()
		switch tt {
		case html.ErrorToken:
			return hasTitle, hasNav
		case html.StartTagToken:
			name, _ := tk.TagName()
			switch string(name) {
			case "title":
				inTitle = true
			case "nav":
				hasNav = true
			}
		case html.EndTagToken:
			name, _ := tk.TagName()
			if string(name) == "title" {
				inTitle = false
			}
		case html.TextToken:
			if inTitle && strings.TrimSpace(string(tk.Text())) != "" {
				hasTitle = true
			}
		}
		if hasTitle && hasNav {
			return true, true
		}
	}
}
