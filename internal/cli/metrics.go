package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/arborix/vpdbscan"
)

// LevenshteinMetric returns a string edit-distance metric backed by
// agext/levenshtein, suitable for clustering short free-text items like
// tags or log lines.
func LevenshteinMetric() vpdbscan.Metric[string] {
	return vpdbscan.FromFunc(func(a, b string) float64 {
		return float64(levenshtein.Distance(a, b, nil))
	})
}

// NumericMetric parses each item as a float64 and returns their absolute
// difference. Items that fail to parse produce a metric failure rather than
// a silent zero distance.
func NumericMetric() vpdbscan.Metric[string] {
	return func(a, b string) (float64, error) {
		av, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q as a number: %w", a, err)
		}
		bv, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %q as a number: %w", b, err)
		}
		if av > bv {
			return av - bv, nil
		}
		return bv - av, nil
	}
}

// ResolveMetric looks up a named metric for the cluster command's --metric flag.
func ResolveMetric(name string) (vpdbscan.Metric[string], error) {
	switch name {
	case "levenshtein":
		return LevenshteinMetric(), nil
	case "numeric":
		return NumericMetric(), nil
	default:
		return nil, fmt.Errorf("unknown metric %q (want \"levenshtein\" or \"numeric\")", name)
	}
}
