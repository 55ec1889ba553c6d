package sourcing

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/wearloom/stylist-backend/config"
)

// FetchStrategy is one way to retrieve a retailer URL. Strategies are
// evaluated in order until one succeeds; adding a tier is a data change.
type FetchStrategy interface {
	Name() string
	Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error)
}

// Fetcher runs the ordered strategy chain with a shared outbound rate
// limit, so sourcing never hammers a rate-limited third party.
type Fetcher struct {
	strategies []FetchStrategy
	limiter    *rate.Limiter
}

// NewFetcher assembles the strategy chain from configuration: direct
// always, proxy render when credentials are configured, headless render
// when enabled.
func NewFetcher() *Fetcher {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			ForceAttemptHTTP2:     false,
			TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	strategies := []FetchStrategy{&directStrategy{client: client}}
	if config.ScraperProxyURL != "" && config.ScraperProxyUser != "" {
		strategies = append(strategies, &proxyStrategy{
			client:   client,
			endpoint: config.ScraperProxyURL,
			user:     config.ScraperProxyUser,
			pass:     config.ScraperProxyPass,
		})
	}
	if config.HeadlessFallback {
		strategies = append(strategies, &headlessStrategy{})
	}

	return &Fetcher{
		strategies: strategies,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// NewFetcherWithStrategies is used by tests to inject stub strategies.
func NewFetcherWithStrategies(strategies ...FetchStrategy) *Fetcher {
	return &Fetcher{strategies: strategies, limiter: rate.NewLimiter(rate.Inf, 1)}
}

// Fetch tries each strategy in order and returns the first successful
// payload. Transport failures are absorbed here; only the final miss
// surfaces to the caller, and only as an error it can treat as "no match".
func (f *Fetcher) Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	var lastErr error
	for _, strategy := range f.strategies {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		body, err := strategy.Fetch(ctx, url, headers)
		if err == nil {
			return body, nil
		}
		fmt.Printf("[Fetcher] %s failed for %s: %v\n", strategy.Name(), url, err)
		lastErr = err
	}
	return nil, fmt.Errorf("all fetch strategies failed for %s: %v", url, lastErr)
}

// directStrategy hits the retailer endpoint with the adapter's headers
type directStrategy struct {
	client *http.Client
}

func (d *directStrategy) Name() string { return "direct" }

func (d *directStrategy) Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	res, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return io.ReadAll(res.Body)
}

// proxyStrategy retries the same URL through a universal scraping-proxy
// render API authenticated with basic credentials.
type proxyStrategy struct {
	client   *http.Client
	endpoint string
	user     string
	pass     string
}

func (p *proxyStrategy) Name() string { return "proxy" }

func (p *proxyStrategy) Fetch(ctx context.Context, url string, _ http.Header) ([]byte, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"url":    url,
		"render": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.user, p.pass)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("proxy status code error: %d %s", res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return extractPayload(body)
}

// extractPayload unwraps rendered HTML around a JSON payload. Rendered
// views of JSON endpoints wrap the document in <pre> tags; raw JSON
// passes through untouched.
func extractPayload(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return trimmed, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if pre := strings.TrimSpace(doc.Find("pre").First().Text()); pre != "" {
		return []byte(pre), nil
	}
	if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
		return []byte(text), nil
	}
	return nil, fmt.Errorf("rendered page contained no payload")
}
