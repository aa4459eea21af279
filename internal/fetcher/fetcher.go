// Package fetcher is the PageSpeed Insights API client. One request per
// (URL, strategy) pair; no internal retries, retry policy belongs to the
// caller.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/amarghioali/psi-testing-tool/internal/apperr"
	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// DefaultEndpoint is the public PSI v5 scoring endpoint.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

const maxLayoutShiftElements = 3

type ClientConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// Detailed additionally captures the top layout-shift contributing
	// elements from the CLS audit.
	Detailed bool
}

type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func New(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Fetch performs one measurement request and extracts the metric set. The
// returned error is a RemoteError (API-reported failure), ParseError
// (unexpected response shape) or TransportError (network failure).
func (c *Client) Fetch(ctx context.Context, target models.URLConfig, run int) (models.MetricSample, error) {
	var sample models.MetricSample

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(target), nil)
	if err != nil {
		return sample, &apperr.TransportError{URL: target.URL, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return sample, &apperr.TransportError{URL: target.URL, Err: err}
	}
	defer resp.Body.Close()

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return sample, &apperr.ParseError{URL: target.URL, Reason: "decode response body", Err: err}
	}

	if body.Error != nil {
		return sample, &apperr.RemoteError{URL: target.URL, Code: body.Error.Code, Message: body.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return sample, &apperr.RemoteError{URL: target.URL, Code: resp.StatusCode, Message: resp.Status}
	}

	return c.extract(target, run, &body)
}

func (c *Client) requestURL(target models.URLConfig) string {
	q := url.Values{}
	q.Set("url", target.URL)
	q.Set("strategy", string(target.Strategy))
	q.Set("category", "performance")
	q.Set("key", c.cfg.APIKey)
	return c.cfg.Endpoint + "?" + q.Encode()
}

func (c *Client) extract(target models.URLConfig, run int, body *apiResponse) (models.MetricSample, error) {
	var sample models.MetricSample

	lr := body.LighthouseResult
	if lr == nil || lr.Categories == nil || lr.Categories.Performance == nil || lr.Categories.Performance.Score == nil {
		return sample, &apperr.ParseError{URL: target.URL, Reason: "missing performance category score"}
	}

	sample = models.MetricSample{
		URL:         target.URL,
		Strategy:    target.Strategy,
		Timestamp:   time.Now().UTC(),
		Run:         run,
		Performance: int(math.Round(*lr.Categories.Performance.Score * 100)),
	}

	required := []struct {
		id   string
		dest *float64
	}{
		{auditCLS, &sample.CLS},
		{auditLCP, &sample.LCP},
		{auditFCP, &sample.FCP},
		{auditSI, &sample.SI},
		{auditTBT, &sample.TBT},
		{auditTTI, &sample.TTI},
	}
	for _, r := range required {
		a := lr.Audits[r.id]
		if a == nil || a.NumericValue == nil {
			return models.MetricSample{}, &apperr.ParseError{
				URL:    target.URL,
				Reason: fmt.Sprintf("missing audit %q", r.id),
			}
		}
		*r.dest = *a.NumericValue
	}

	// max-potential-fid is optional upstream; absence is zero, not an error.
	if a := lr.Audits[auditFID]; a != nil && a.NumericValue != nil {
		sample.FID = *a.NumericValue
	}

	if c.cfg.Detailed {
		sample.LayoutShifts = layoutShiftElements(lr.Audits[auditCLS])
	}

	return sample, nil
}

func layoutShiftElements(a *audit) []models.LayoutShiftElement {
	if a == nil || a.Details == nil {
		return nil
	}
	var out []models.LayoutShiftElement
	for _, item := range a.Details.Items {
		if item.Node == nil {
			continue
		}
		out = append(out, models.LayoutShiftElement{
			Selector: item.Node.Selector,
			Score:    item.Score,
		})
		if len(out) == maxLayoutShiftElements {
			break
		}
	}
	return out
}
