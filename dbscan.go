package vpdbscan

import (
	"context"
	"fmt"
)

// Outlier is the label assigned to points classified as noise: not
// reachable from any core point.
const Outlier = -1

// pointState tracks a point's progress through the DBSCAN scan, distinct
// from its final cluster label. A point can be provisionally marked noise
// and later absorbed into a cluster as a border point.
type pointState int

const (
	stateUnvisited pointState = iota
	stateVisitedNoise
	stateAssigned
)

// Cluster runs DBSCAN over items using metric for distances, epsilon as the
// neighborhood radius, and minClusterSize as the minimum neighborhood size
// (including the point itself) for a point to seed or extend a cluster.
//
// It returns one label per item: a cluster ID starting at 0 and assigned in
// order of first discovery, or Outlier for noise points. An empty items
// returns an empty, non-nil label slice and no error.
//
// Cluster builds its own vantage-point tree internally; pass WithEffort
// or WithSeed to tune that tree, or WithProgress to observe scan progress.
func Cluster[T any](ctx context.Context, items []T, metric Metric[T], minClusterSize int, epsilon float64, opts ...Option[T]) ([]int, error) {
	if minClusterSize < 2 {
		return nil, fmt.Errorf("%w: minClusterSize must be >= 2, got %d", ErrInvalidParameter, minClusterSize)
	}
	if epsilon < 0 {
		return nil, fmt.Errorf("%w: epsilon must be >= 0, got %v", ErrInvalidParameter, epsilon)
	}

	n := len(items)
	if n == 0 {
		return []int{}, nil
	}

	s := defaultSettings[T]()
	for _, opt := range opts {
		opt(&s)
	}

	tree, err := BuildTree(ctx, items, metric, WithEffort[T](s.effort), WithSeed[T](s.seed))
	if err != nil {
		return nil, err
	}

	state := make([]pointState, n)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Outlier
	}

	nextCluster := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w", ErrCancelled)
		}

		if state[i] == stateUnvisited {
			neighbors, err := tree.Neighbors(ctx, i, epsilon)
			if err != nil {
				return nil, err
			}

			if len(neighbors) < minClusterSize {
				state[i] = stateVisitedNoise
			} else {
				clusterID := nextCluster
				nextCluster++

				queue := append([]int(nil), neighbors...)
				labels[i] = clusterID
				state[i] = stateAssigned

				for len(queue) > 0 {
					j := queue[0]
					queue = queue[1:]

					switch state[j] {
					case stateVisitedNoise:
						labels[j] = clusterID
						state[j] = stateAssigned
					case stateUnvisited:
						labels[j] = clusterID
						state[j] = stateAssigned

						jNeighbors, err := tree.Neighbors(ctx, j, epsilon)
						if err != nil {
							return nil, err
						}
						if len(jNeighbors) >= minClusterSize {
							queue = append(queue, jNeighbors...)
						}
					case stateAssigned:
						// already belongs to a cluster (this one, or an
						// earlier one that claimed it as a border point);
						// it keeps its label.
					}
				}
			}
		}

		if s.progress != nil {
			s.progress(i+1, n)
		}
	}

	return labels, nil
}
