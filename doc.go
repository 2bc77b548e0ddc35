// Package vpdbscan implements DBSCAN density-based clustering over an
// abstract metric space: items are opaque and the only thing known about
// them is a caller-supplied distance function.
//
// Because items carry no coordinates, neighbor queries can't rely on a
// coordinate-indexed spatial structure like a k-d tree. Instead the package
// builds a vantage-point tree ([Tree]) that prunes candidates using only the
// triangle inequality, and drives DBSCAN's core/border/noise expansion on
// top of it.
//
// Basic usage:
//
//	labels, err := vpdbscan.Cluster(ctx, items, vpdbscan.FromFunc(distance), minClusterSize, epsilon)
//	// labels[i] is the cluster ID for item i, or vpdbscan.Outlier (-1)
//
// The vantage-point tree can also be used on its own for radius queries:
//
//	tree, err := vpdbscan.BuildTree(ctx, items, metric)
//	neighbors, err := tree.Neighbors(ctx, queryIndex, epsilon)
package vpdbscan
