// Package threshold classifies metric values against configured bounds.
package threshold

// Rating is the classification of a single metric value.
type Rating string

const (
	Good             Rating = "GOOD"
	NeedsImprovement Rating = "NEEDS IMPROVEMENT"
	Poor             Rating = "POOR"
)

// Classify rates value against threshold.
//
// With inverse false the metric is lower-is-better: GOOD below the threshold,
// POOR at or above 1.5x the threshold, NEEDS IMPROVEMENT in between.
//
// With inverse true the metric is higher-is-better (the performance score):
// GOOD above the threshold, POOR at or below 0.8x the threshold,
// NEEDS IMPROVEMENT in between.
func Classify(value, threshold float64, inverse bool) Rating {
	if inverse {
		switch {
		case value > threshold:
			return Good
		case value > threshold*0.8:
			return NeedsImprovement
		default:
			return Poor
		}
	}
	switch {
	case value < threshold:
		return Good
	case value < threshold*1.5:
		return NeedsImprovement
	default:
		return Poor
	}
}
