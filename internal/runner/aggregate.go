package runner

import (
	"github.com/amarghioali/psi-testing-tool/internal/models"
)

// bucketKey identifies one aggregation bucket. With byURLOnly the Strategy
// field stays empty and mobile/desktop samples for the same URL merge.
type bucketKey struct {
	url      string
	strategy models.Strategy
}

// Aggregate is a pure function of the collected samples. For each bucket it
// takes the subset without errors and computes min/max/average of CLS and
// performance. A bucket passes iff max(CLS) is below the CLS threshold and
// min(performance) reaches the performance threshold, so every individual
// run has to hold, not merely the average. A bucket with zero successful
// samples always fails.
func Aggregate(runs []models.RunSet, targets []models.URLConfig, th models.Thresholds, byURLOnly bool) *models.ValidationSummary {
	order := make([]bucketKey, 0, len(targets))
	names := make(map[bucketKey]string, len(targets))
	seen := make(map[bucketKey]bool, len(targets))
	for _, t := range targets {
		k := keyFor(t.URL, t.Strategy, byURLOnly)
		if seen[k] {
			continue
		}
		seen[k] = true
		order = append(order, k)
		names[k] = t.Name
	}

	samples := make(map[bucketKey][]models.MetricSample, len(order))
	for _, set := range runs {
		for _, s := range set {
			k := keyFor(s.URL, s.Strategy, byURLOnly)
			samples[k] = append(samples[k], s)
		}
	}

	summary := &models.ValidationSummary{AllPassed: true}
	for _, k := range order {
		b := summarizeBucket(k, names[k], samples[k], th)
		if !b.Passed {
			summary.AllPassed = false
		}
		summary.Buckets = append(summary.Buckets, b)
	}
	return summary
}

func keyFor(url string, strategy models.Strategy, byURLOnly bool) bucketKey {
	if byURLOnly {
		return bucketKey{url: url}
	}
	return bucketKey{url: url, strategy: strategy}
}

func summarizeBucket(k bucketKey, name string, samples []models.MetricSample, th models.Thresholds) models.BucketSummary {
	b := models.BucketSummary{
		Name:     name,
		URL:      k.url,
		Strategy: k.strategy,
		Runs:     len(samples),
	}

	var cls, perf []float64
	for _, s := range samples {
		if s.Failed() {
			b.Failures++
			b.Errors = append(b.Errors, s.Err)
			continue
		}
		b.Successes++
		cls = append(cls, s.CLS)
		perf = append(perf, float64(s.Performance))
	}

	if b.Successes == 0 {
		return b
	}

	b.CLS = stats(cls)
	b.Performance = stats(perf)
	b.Passed = b.CLS.Max < th.CLS && b.Performance.Min >= th.Performance
	return b
}

func stats(values []float64) models.MetricStats {
	s := models.MetricStats{Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Avg = sum / float64(len(values))
	return s
}
