package vpdbscan

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/spatial/vptree"
	"gonum.org/v1/gonum/stat"
)

// itemComparable adapts one item into gonum's vptree.Comparable, deferring
// the actual distance computation to a Metric[T] rather than assuming
// coordinates. gonum's Distance has no error return, so a metric failure or
// invalid result is stashed in errPtr and the pair reported as coincident;
// BuildTree checks errPtr once construction finishes.
type itemComparable[T any] struct {
	idx    int
	items  []T
	metric Metric[T]
	errPtr *error
}

func (c itemComparable[T]) Distance(other vptree.Comparable) float64 {
	o, ok := other.(itemComparable[T])
	if !ok {
		return 0
	}
	d, err := evalMetric(c.metric, c.items[c.idx], c.items[o.idx])
	if err != nil {
		if *c.errPtr == nil {
			*c.errPtr = err
		}
		return 0
	}
	return d
}

// Tree is a vantage-point index over a fixed collection of items, built
// once and queried by radius. It never copies or stores references to
// items beyond the slice it was built from; everything internal is
// addressed by index. Construction and vantage selection are delegated to
// gonum.org/v1/gonum/spatial/vptree; Tree adds the radius query (§4.2's
// pruned descent) that package doesn't itself expose.
type Tree[T any] struct {
	items  []T
	metric Metric[T]
	n      int
	inner  *vptree.Tree
}

// TreeStats summarizes a built Tree's shape: node/leaf counts, max depth,
// and the mean/stddev of leaf depth. gonum's vptree keeps exactly one item
// per node (no leaf buckets), so depth variance is what signals a metric
// producing a lopsided tree, not bucket occupancy.
type TreeStats struct {
	NumNodes        int
	LeafCount       int
	MaxDepth        int
	MeanLeafDepth   float64
	StdDevLeafDepth float64
}

// BuildTree indexes items using metric, so that Neighbors can answer radius
// queries in expected sub-linear time. It invokes metric only as needed to
// build the tree.
//
// BuildTree returns an empty tree (not an error) when items is empty.
func BuildTree[T any](ctx context.Context, items []T, metric Metric[T], opts ...Option[T]) (*Tree[T], error) {
	s := defaultSettings[T]()
	for _, opt := range opts {
		opt(&s)
	}
	if s.effort < 0 {
		return nil, fmt.Errorf("%w: effort must be >= 0, got %d", ErrInvalidParameter, s.effort)
	}

	n := len(items)
	t := &Tree[T]{items: items, metric: metric, n: n}
	if n == 0 {
		return t, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w", ErrCancelled)
	}

	var buildErr error
	points := make([]vptree.Comparable, n)
	for i := range points {
		points[i] = itemComparable[T]{idx: i, items: items, metric: metric, errPtr: &buildErr}
	}

	inner, err := vptree.New(points, s.effort, rand.NewPCG(s.seed, s.seed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if buildErr != nil {
		return nil, buildErr
	}

	t.inner = inner
	return t, nil
}

// Neighbors returns every index i such that d(items[queryIndex], items[i])
// <= eps, including queryIndex itself. The returned slice is sorted by
// index for determinism; DBSCAN's correctness does not depend on the order,
// but reproducible tests do.
func (t *Tree[T]) Neighbors(ctx context.Context, queryIndex int, eps float64) ([]int, error) {
	if eps < 0 {
		return nil, fmt.Errorf("%w: epsilon must be >= 0, got %v", ErrInvalidParameter, eps)
	}
	if queryIndex < 0 || queryIndex >= t.n {
		return nil, fmt.Errorf("%w: query index %d out of range [0, %d)", ErrInvalidParameter, queryIndex, t.n)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w", ErrCancelled)
	}
	if t.n == 0 {
		return nil, nil
	}

	found := make(map[int]struct{})
	q := t.items[queryIndex]
	if t.inner != nil {
		if err := t.search(ctx, t.inner.Root, q, eps, found); err != nil {
			return nil, err
		}
	}

	out := make([]int, 0, len(found))
	for idx := range found {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}

// search performs the recursive triangle-inequality-pruned descent of
// §4.2 over gonum's *vptree.Node: evaluate the vantage, then descend into
// whichever children could still contain a point within eps of q. Closer
// holds items at distance strictly less than the node's Radius from the
// vantage, Further holds items at distance >= Radius, per gonum's own
// construction (spatial/vptree's builder.partition).
func (t *Tree[T]) search(ctx context.Context, node *vptree.Node, q T, eps float64, found map[int]struct{}) error {
	if node == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w", ErrCancelled)
	}

	vantage, ok := node.Point.(itemComparable[T])
	if !ok {
		return fmt.Errorf("%w: vantage-point tree node holds an unrecognized point type", ErrInvalidMetric)
	}

	dv, err := evalMetric(t.metric, q, t.items[vantage.idx])
	if err != nil {
		return err
	}
	if dv <= eps {
		found[vantage.idx] = struct{}{}
	}

	if dv-eps < node.Radius {
		if err := t.search(ctx, node.Closer, q, eps, found); err != nil {
			return err
		}
	}
	if dv+eps >= node.Radius {
		if err := t.search(ctx, node.Further, q, eps, found); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes the tree's shape: node/leaf counts, max depth, and the
// mean/stddev of leaf depth. Useful when a metric's distance distribution
// is degenerate enough to produce a lopsided tree.
func (t *Tree[T]) Stats() TreeStats {
	if t.inner == nil || t.inner.Root == nil {
		return TreeStats{}
	}

	var nodes, leaves, maxDepth int
	var leafDepths []float64

	var walk func(n *vptree.Node, depth int)
	walk = func(n *vptree.Node, depth int) {
		if n == nil {
			return
		}
		nodes++
		if depth > maxDepth {
			maxDepth = depth
		}
		if n.Closer == nil && n.Further == nil {
			leaves++
			leafDepths = append(leafDepths, float64(depth))
			return
		}
		walk(n.Closer, depth+1)
		walk(n.Further, depth+1)
	}
	walk(t.inner.Root, 0)

	return TreeStats{
		NumNodes:        nodes,
		LeafCount:       leaves,
		MaxDepth:        maxDepth,
		MeanLeafDepth:   stat.Mean(leafDepths, nil),
		StdDevLeafDepth: stat.StdDev(leafDepths, nil),
	}
}
