package mood

import "math"

// Category is an ordinal bucket for a [0, 1] audio feature.
type Category string

const (
	Low    Category = "Low"
	Medium Category = "Medium"
	High   Category = "High"
)

// Category thresholds. A value equal to a threshold belongs to the upper bucket.
const (
	mediumThreshold = 0.4
	highThreshold   = 0.7
)

// Categories returns every category from lowest to highest.
func Categories() []Category {
	return []Category{Low, Medium, High}
}

// Categorize buckets a feature value into Low, Medium or High.
//
// Values outside [0, 1] are bucketed by the same thresholds. NaN is Low.
func Categorize(value float64) Category {
	switch {
	case math.IsNaN(value):
		return Low
	case value < mediumThreshold:
		return Low
	case value < highThreshold:
		return Medium
	default:
		return High
	}
}
