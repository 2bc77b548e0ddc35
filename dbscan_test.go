package vpdbscan

import (
	"context"
	"testing"
)

// --- Parameter validation ---

func TestCluster_InvalidMinClusterSize(t *testing.T) {
	_, err := Cluster(context.Background(), []float64{1, 2, 3}, FromFunc(absDist), 1, 1.0)
	if err == nil {
		t.Fatal("expected error for minClusterSize < 2")
	}
}

func TestCluster_InvalidEpsilon(t *testing.T) {
	_, err := Cluster(context.Background(), []float64{1, 2, 3}, FromFunc(absDist), 2, -1)
	if err == nil {
		t.Fatal("expected error for negative epsilon")
	}
}

func TestCluster_EmptyItems(t *testing.T) {
	labels, err := Cluster[float64](context.Background(), nil, FromFunc(absDist), 2, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 0 {
		t.Errorf("expected empty labels, got %v", labels)
	}
}

// --- S1: 1D toy dataset with two dense groups ---

func TestCluster_TwoDenseGroups(t *testing.T) {
	items := []float64{0, 0.1, 0.2, 0.15, 10, 10.1, 10.2, 10.15}
	labels, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := labels[0]
	second := labels[4]
	if first == Outlier || second == Outlier {
		t.Fatalf("expected both groups clustered, got labels %v", labels)
	}
	if first == second {
		t.Fatalf("expected two distinct clusters, both groups got %d", first)
	}
	for i := 0; i < 4; i++ {
		if labels[i] != first {
			t.Errorf("labels[%d] = %d, want %d (same cluster as index 0)", i, labels[i], first)
		}
	}
	for i := 4; i < 8; i++ {
		if labels[i] != second {
			t.Errorf("labels[%d] = %d, want %d (same cluster as index 4)", i, labels[i], second)
		}
	}
}

// S1 also checks cluster IDs are assigned in discovery order: since index 0
// is scanned before index 3, its cluster must be ID 0.
func TestCluster_DiscoveryOrderIDs(t *testing.T) {
	items := []float64{10, 10.1, 10.2, 0, 0.1, 0.2}
	labels, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[0] != 0 {
		t.Errorf("first-discovered cluster should have ID 0, got %d", labels[0])
	}
	if labels[3] != 1 {
		t.Errorf("second-discovered cluster should have ID 1, got %d", labels[3])
	}
}

// --- S2: outliers among a dense group ---

func TestCluster_Outliers(t *testing.T) {
	items := []float64{0, 0.1, 0.2, 0.15, 0.05, 50, 100}
	labels, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 5; i < 7; i++ {
		if labels[i] != Outlier {
			t.Errorf("labels[%d] = %d, want Outlier", i, labels[i])
		}
	}
	for i := 0; i < 5; i++ {
		if labels[i] == Outlier {
			t.Errorf("labels[%d] = Outlier, want a cluster member", i)
		}
	}
}

// --- S3: Levenshtein string metric ---

func levenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return float64(prev[len(rb)])
}

func TestCluster_LevenshteinStrings(t *testing.T) {
	items := []string{"cat", "cats", "car", "dog", "dogs", "hound"}
	labels, err := Cluster(context.Background(), items, FromFunc(levenshtein), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[0] == Outlier {
		t.Error("\"cat\" should join a cluster with \"cats\"/\"car\"")
	}
	if labels[0] != labels[1] || labels[0] != labels[2] {
		t.Errorf("cat/cats/car should share a cluster, got %v", labels[:3])
	}
	if labels[5] != Outlier {
		t.Errorf("\"hound\" should be an outlier, got cluster %d", labels[5])
	}
}

// --- S4: duplicate points ---

func TestCluster_DuplicatePoints(t *testing.T) {
	items := []float64{1, 1, 1, 1, 1}
	labels, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := labels[0]
	if first == Outlier {
		t.Fatal("identical points should form a cluster")
	}
	for i, l := range labels {
		if l != first {
			t.Errorf("labels[%d] = %d, want %d", i, l, first)
		}
	}
}

// --- S5: determinism across repeated runs with the same seed ---

func TestCluster_Deterministic(t *testing.T) {
	items := make([]float64, 200)
	for i := range items {
		items[i] = float64(i%17) * 1.3
	}

	first, err := Cluster(context.Background(), items, FromFunc(absDist), 4, 0.7, WithSeed[float64](99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for run := 0; run < 5; run++ {
		got, err := Cluster(context.Background(), items, FromFunc(absDist), 4, 0.7, WithSeed[float64](99))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !intSlicesEqual(first, got) {
			t.Fatalf("run %d: labels differ from first run\n first: %v\n got:   %v", run, first, got)
		}
	}
}

// --- S6: VP-tree-backed clustering matches a naive-linear-scan DBSCAN ---

func naiveCluster(items []float64, minClusterSize int, eps float64) []int {
	n := len(items)
	state := make([]pointState, n)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Outlier
	}
	next := 0
	for i := 0; i < n; i++ {
		if state[i] != stateUnvisited {
			continue
		}
		neighbors := naiveNeighbors(items, i, eps)
		if len(neighbors) < minClusterSize {
			state[i] = stateVisitedNoise
			continue
		}
		clusterID := next
		next++
		labels[i] = clusterID
		state[i] = stateAssigned
		queue := append([]int(nil), neighbors...)
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
				jn := naiveNeighbors(items, j, eps)
				if len(jn) >= minClusterSize {
					queue = append(queue, jn...)
				}
			case stateAssigned:
			}
		}
	}
	return labels
}

func TestCluster_MatchesNaiveScan(t *testing.T) {
	items := make([]float64, 60)
	for i := range items {
		items[i] = float64((i * 37) % 100)
	}

	got, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 4, WithEffort[float64](2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := naiveCluster(items, 3, 4)
	if !intSlicesEqual(got, want) {
		t.Errorf("tree-backed clustering differs from naive scan\n got:  %v\n want: %v", got, want)
	}
}

// --- Progress reporting ---

func TestCluster_ProgressCallback(t *testing.T) {
	items := []float64{0, 1, 2, 3, 4}
	var calls []int
	_, err := Cluster(context.Background(), items, FromFunc(absDist), 2, 1.5, WithProgress[float64](func(processed, total int) {
		calls = append(calls, processed)
		if total != len(items) {
			t.Errorf("progress total = %d, want %d", total, len(items))
		}
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != len(items) {
		t.Fatalf("expected one progress call per item, got %d calls", len(calls))
	}
	for i, c := range calls {
		if c != i+1 {
			t.Errorf("calls[%d] = %d, want %d", i, c, i+1)
		}
	}
}

// --- Cancellation ---

func TestCluster_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Cluster(ctx, []float64{1, 2, 3, 4}, FromFunc(absDist), 2, 1)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

// --- Border point promotion ---

func TestCluster_BorderPointJoinsSingleCluster(t *testing.T) {
	// A single point equidistant-reachable from a dense core group but not
	// itself a core point: it becomes a border member of the first cluster
	// that reaches it and is never relabeled afterward.
	items := []float64{0, 0.2, 0.4, 1.4}
	labels, err := Cluster(context.Background(), items, FromFunc(absDist), 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels[3] != labels[0] {
		t.Errorf("border point should join the reaching cluster: labels=%v", labels)
	}
}
