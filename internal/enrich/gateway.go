package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"unicode"

	"github.com/rbaumann/culpa/internal/model"
	"github.com/rbaumann/culpa/internal/util"
	"github.com/rbaumann/culpa/internal/worker"
)

// Gateway looks up external knowledge (summary text plus canonical link)
// for extracted concepts. It is the only pipeline component allowed to
// perform outbound network I/O. Construct one Gateway per analysis run:
// its cache is run-scoped, so concurrent runs never share lookups.
type Gateway struct {
	cfg        model.EnrichConfig
	httpClient *http.Client
	cache      *RunCache
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
}

// NewGateway creates a gateway for one run.
func NewGateway(cfg model.EnrichConfig, httpCfg model.HTTPConfig) *Gateway {
	g := &Gateway{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		cache:   NewRunCache(cfg.CacheTTL),
		limiter: worker.NewLimiter(cfg.RatePerSecond, cfg.FanoutLimit),
	}
	if cfg.RespectRobots {
		g.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return g
}

// EnrichAll looks up every concept with bounded fan-out. Results come back
// in input order. Failures degrade to status "failed"; they never abort
// the run. Cancelling ctx abandons in-flight lookups.
func (g *Gateway) EnrichAll(ctx context.Context, concepts []string) []model.EnrichmentRecord {
	if len(concepts) == 0 {
		return nil
	}

	fanout := g.cfg.FanoutLimit
	if fanout <= 0 {
		fanout = 4
	}

	records := make([]model.EnrichmentRecord, len(concepts))
	semaphore := make(chan struct{}, fanout)
	var wg sync.WaitGroup

	for i, concept := range concepts {
		wg.Add(1)
		go func(idx int, c string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				records[idx] = model.EnrichmentRecord{
					Concept: c,
					Status:  model.EnrichFailed,
					Error:   "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			records[idx] = g.Lookup(ctx, c)
		}(i, concept)
	}
	wg.Wait()

	return records
}

// Lookup returns the enrichment record for one normalized concept,
// memoized for the run: a second lookup of the same string never issues
// another external call, whatever the first outcome was.
func (g *Gateway) Lookup(ctx context.Context, concept string) model.EnrichmentRecord {
	if rec, ok := g.cache.Get(concept); ok {
		return rec
	}

	rec := g.fetch(ctx, concept)
	g.cache.Set(concept, rec)
	return rec
}

// summaryResponse is the subset of the summary endpoint's JSON we consume.
type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (g *Gateway) fetch(parent context.Context, concept string) model.EnrichmentRecord {
	rec := model.EnrichmentRecord{Concept: concept}

	ctx, cancel := context.WithTimeout(parent, g.cfg.Timeout)
	defer cancel()

	lookupURL := g.lookupURL(concept)

	if g.robots != nil && !g.robots.IsAllowed(ctx, lookupURL) {
		rec.Status = model.EnrichFailed
		rec.Error = "disallowed by robots.txt"
		return rec
	}

	if err := g.limiter.Wait(ctx, lookupURL); err != nil {
		rec.Status = model.EnrichFailed
		rec.Error = fmt.Sprintf("rate limit wait: %v", err)
		return rec
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		rec.Status = model.EnrichFailed
		rec.Error = fmt.Sprintf("create request: %v", err)
		return rec
	}
	req.Header.Set("User-Agent", g.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		rec.Status = model.EnrichFailed
		rec.Error = fmt.Sprintf("lookup: %v", err)
		return rec
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// The service answered; there is simply no entry.
		rec.Status = model.EnrichNotFound
		rec.URL = g.articleURL(concept)
		return rec
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		rec.Status = model.EnrichFailed
		rec.Error = fmt.Sprintf("unexpected status: %d", resp.StatusCode)
		return rec
	}

	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		rec.Status = model.EnrichFailed
		rec.Error = fmt.Sprintf("decode response: %v", err)
		return rec
	}

	rec.Status = model.EnrichResolved
	rec.Summary = summary.Extract
	rec.URL = summary.ContentURLs.Desktop.Page
	if rec.URL == "" {
		rec.URL = g.articleURL(concept)
	}
	return rec
}

// lookupURL builds the summary endpoint URL for a concept.
func (g *Gateway) lookupURL(concept string) string {
	return strings.TrimSuffix(g.cfg.BaseURL, "/") + "/" + url.PathEscape(titleForm(concept))
}

// articleURL builds the canonical article link used when the endpoint does
// not supply one.
func (g *Gateway) articleURL(concept string) string {
	base, err := url.Parse(g.cfg.BaseURL)
	if err != nil || base.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s/wiki/%s", base.Scheme, base.Host, url.PathEscape(titleForm(concept)))
}

// titleForm converts a normalized concept into article-title shape:
// spaces become underscores, first letter upper-cased.
func titleForm(concept string) string {
	title := strings.ReplaceAll(strings.TrimSpace(concept), " ", "_")
	r := []rune(title)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}
