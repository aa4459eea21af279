package models

import "time"

// Strategy is the simulated device class used for a measurement.
type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// URLConfig is one measurement target. Built once at startup, immutable after.
type URLConfig struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Strategy Strategy `json:"strategy"`
}

// LayoutShiftElement is one DOM node contributing to the layout-shift score,
// captured only when detailed output is requested.
type LayoutShiftElement struct {
	Selector string  `json:"selector"`
	Score    float64 `json:"score"`
}

// MetricSample is one fetch result. Either the metric fields are populated or
// Err carries the failure reason; never both. Samples are never mutated after
// the fetcher returns them.
type MetricSample struct {
	URL       string    `json:"url"`
	Strategy  Strategy  `json:"strategy"`
	Timestamp time.Time `json:"timestamp"`
	Run       int       `json:"run"`

	// Performance is the lighthouse category score rescaled to 0-100.
	Performance int     `json:"performance"`
	CLS         float64 `json:"cls"`
	LCP         float64 `json:"lcp"`
	FCP         float64 `json:"fcp"`
	SI          float64 `json:"si"`
	TBT         float64 `json:"tbt"`
	TTI         float64 `json:"tti"`
	// FID is max-potential-first-input-delay. The audit is optional upstream;
	// zero means it was absent from the report.
	FID float64 `json:"fid"`

	LayoutShifts []LayoutShiftElement `json:"layoutShifts,omitempty"`

	Err string `json:"error,omitempty"`
}

// Failed reports whether the sample records a fetch failure instead of metrics.
func (s MetricSample) Failed() bool {
	return s.Err != ""
}

// RunSet is the ordered sequence of samples from one full pass over all
// configured URLs.
type RunSet []MetricSample

// Thresholds holds the pass bounds. CLS, LCP and FID are upper bounds
// (lower is better); Performance is a lower bound (higher is better).
type Thresholds struct {
	CLS         float64 `json:"cls" yaml:"cls"`
	LCP         float64 `json:"lcp" yaml:"lcp"`
	FID         float64 `json:"fid" yaml:"fid"`
	Performance float64 `json:"performance" yaml:"performance"`
}

// MetricStats are min/max/average of one metric across the successful samples
// of an aggregation bucket.
type MetricStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// BucketSummary is the aggregated outcome for one (url, strategy) bucket
// after all validation runs completed.
type BucketSummary struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Strategy Strategy `json:"strategy,omitempty"`

	Runs      int `json:"runs"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`

	CLS         MetricStats `json:"cls"`
	Performance MetricStats `json:"performance"`

	// Passed is max(CLS) < thresholds.CLS && min(performance) >= thresholds.Performance,
	// evaluated over the successful subset only. A bucket with zero successes
	// never passes.
	Passed bool     `json:"passed"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationSummary is the outcome of a whole validation session.
type ValidationSummary struct {
	Buckets []BucketSummary `json:"buckets"`
	// AllPassed is the logical AND of Passed over every bucket.
	AllPassed bool `json:"allPassed"`
}

// ResultDocument is the JSON snapshot persisted after a single pass.
type ResultDocument struct {
	Timestamp time.Time      `json:"timestamp"`
	Config    ResultConfig   `json:"config"`
	Results   []MetricSample `json:"results"`
}

// ResultConfig is the configuration snapshot embedded in a ResultDocument.
// Only name+url pairs are kept for the targets; the API key is never written.
type ResultConfig struct {
	Thresholds Thresholds `json:"thresholds"`
	URLs       []NamedURL `json:"urls"`
}

type NamedURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
