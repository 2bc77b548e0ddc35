package vpdbscan

import "errors"

// Sentinel errors returned by this package. Wrap them with fmt.Errorf("%w: ...")
// so callers can distinguish them with errors.Is while still getting a
// specific message.
var (
	// ErrInvalidParameter is returned when a caller-supplied parameter
	// (MinClusterSize, Epsilon, Effort, a query index, ...) is out of
	// range.
	ErrInvalidParameter = errors.New("vpdbscan: invalid parameter")

	// ErrInvalidMetric is returned when a metric call produced a negative,
	// NaN, or infinite distance.
	ErrInvalidMetric = errors.New("vpdbscan: invalid metric result")

	// ErrMetricFailure is returned when the metric function itself reports
	// an error; the underlying error is wrapped alongside it and reachable via
	// errors.Is and errors.As.
	ErrMetricFailure = errors.New("vpdbscan: metric failure")

	// ErrCancelled is returned when the caller's context is done.
	ErrCancelled = errors.New("vpdbscan: cancelled")
)
