package vpdbscan

// settings holds the tunable knobs shared by BuildTree and Cluster.
// Cluster's progress field is simply unused by BuildTree.
type settings[T any] struct {
	effort   int
	seed     uint64
	progress ProgressFunc
}

func defaultSettings[T any]() settings[T] {
	return settings[T]{
		effort: 8,
		seed:   1,
	}
}

// Option configures BuildTree or Cluster. Affects performance and tree
// shape, never the correctness of results (WithSeed and WithEffort change
// vantage selection, not which items end up in which cluster).
type Option[T any] func(*settings[T])

// WithEffort sets how much work gonum's vptree.New puts into choosing each
// vantage point when building the tree: 0 or 1 picks vantages at random,
// higher values sample more candidates for a better-balanced tree at the
// cost of build time. Must be >= 0. Default: 8.
func WithEffort[T any](n int) Option[T] {
	return func(s *settings[T]) { s.effort = n }
}

// WithSeed sets the seed for the pseudo-random generator used to choose
// vantage points during tree construction. Builds with the same seed and
// the same input order produce identical tree shapes. Default: 1.
func WithSeed[T any](seed uint64) Option[T] {
	return func(s *settings[T]) { s.seed = seed }
}

// WithProgress registers a sink for coarse progress events during Cluster.
// Ignored by BuildTree.
func WithProgress[T any](fn ProgressFunc) Option[T] {
	return func(s *settings[T]) { s.progress = fn }
}
