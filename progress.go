package vpdbscan

// ProgressFunc receives coarse progress events from Cluster: itemsProcessed
// out of itemsTotal. It is invoked once per point dequeued from the outer
// DBSCAN scan, never per seed-set expansion. A nil ProgressFunc (the
// default) is a no-op; Cluster's behavior is identical with or without one.
type ProgressFunc func(itemsProcessed, itemsTotal int)
