// Package report renders samples and validation summaries for the console
// and persists JSON snapshots.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/amarghioali/psi-testing-tool/internal/models"
	"github.com/amarghioali/psi-testing-tool/internal/threshold"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

func colorize(r threshold.Rating) string {
	if os.Getenv("NO_COLOR") != "" {
		return string(r)
	}
	switch r {
	case threshold.Good:
		return ansiGreen + string(r) + ansiReset
	case threshold.NeedsImprovement:
		return ansiYellow + string(r) + ansiReset
	default:
		return ansiRed + string(r) + ansiReset
	}
}

// WriteSamples renders one pass in single-run mode: a block per target with
// every extracted metric and, where a threshold exists, its rating.
func WriteSamples(w io.Writer, set models.RunSet, th models.Thresholds, detailed bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== PageSpeed Insights Results ===\n")

	for _, s := range set {
		fmt.Fprintf(tw, "\n--- %s (%s) ---\n\n", s.URL, s.Strategy)

		if s.Failed() {
			fmt.Fprintf(tw, "ERROR\t%s\n", s.Err)
			continue
		}

		fmt.Fprintln(tw, "Metric\tValue\tRating")
		fmt.Fprintln(tw, "---\t---\t---")
		fmt.Fprintf(tw, "Performance\t%d\t%s\n",
			s.Performance, colorize(threshold.Classify(float64(s.Performance), th.Performance, true)))
		fmt.Fprintf(tw, "CLS\t%.3f\t%s\n",
			s.CLS, colorize(threshold.Classify(s.CLS, th.CLS, false)))
		fmt.Fprintf(tw, "LCP\t%s\t%s\n",
			fmtMillis(s.LCP), colorize(threshold.Classify(s.LCP, th.LCP, false)))
		fmt.Fprintf(tw, "FID\t%s\t%s\n",
			fmtMillis(s.FID), colorize(threshold.Classify(s.FID, th.FID, false)))
		fmt.Fprintf(tw, "FCP\t%s\t\n", fmtMillis(s.FCP))
		fmt.Fprintf(tw, "Speed Index\t%s\t\n", fmtMillis(s.SI))
		fmt.Fprintf(tw, "TBT\t%s\t\n", fmtMillis(s.TBT))
		fmt.Fprintf(tw, "TTI\t%s\t\n", fmtMillis(s.TTI))

		if detailed && len(s.LayoutShifts) > 0 {
			fmt.Fprintf(tw, "\nTop layout shift elements:\n")
			for _, e := range s.LayoutShifts {
				fmt.Fprintf(tw, "  %s\t%.4f\t\n", e.Selector, e.Score)
			}
		}
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

// WriteValidation renders the aggregated summary after a validation session.
func WriteValidation(w io.Writer, summary *models.ValidationSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Validation Summary ===\n\n")

	header := []string{"Target", "Strategy", "Runs", "OK", "CLS min/avg/max", "Perf min/avg/max", "Result"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, b := range summary.Buckets {
		result := ansiRed + "FAIL" + ansiReset
		if b.Passed {
			result = ansiGreen + "PASS" + ansiReset
		}
		if os.Getenv("NO_COLOR") != "" {
			result = "FAIL"
			if b.Passed {
				result = "PASS"
			}
		}

		clsCol := "-"
		perfCol := "-"
		if b.Successes > 0 {
			clsCol = fmt.Sprintf("%.3f/%.3f/%.3f", b.CLS.Min, b.CLS.Avg, b.CLS.Max)
			perfCol = fmt.Sprintf("%.0f/%.1f/%.0f", b.Performance.Min, b.Performance.Avg, b.Performance.Max)
		}

		row := []string{
			b.URL,
			string(b.Strategy),
			fmt.Sprintf("%d", b.Runs),
			fmt.Sprintf("%d/%d", b.Successes, b.Runs),
			clsCol,
			perfCol,
			result,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))

		for _, e := range b.Errors {
			fmt.Fprintf(tw, "  error:\t%s\n", e)
		}
	}

	if summary.AllPassed {
		fmt.Fprintf(tw, "\nAll targets passed.\n")
	} else {
		fmt.Fprintf(tw, "\nOne or more targets failed validation.\n")
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func fmtMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", ms/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}
