// Command vpdbscan clusters newline-delimited items from a file or stdin
// using DBSCAN over a chosen metric, and prints per-cluster membership.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arborix/vpdbscan"
	"github.com/arborix/vpdbscan/internal/cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const longDesc = `vpdbscan clusters lines of text (or numbers) using DBSCAN over a
vantage-point tree, without assuming the items live in a vector space.

Example:
  vpdbscan cluster tags.txt --metric levenshtein --epsilon 2 --min-cluster-size 2
  cat measurements.txt | vpdbscan cluster --metric numeric --epsilon 0.5`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vpdbscan",
		Short: "Density-based clustering over an abstract metric space",
		Long:  longDesc,
	}
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newClusterCmd())
	return cmd
}

type clusterOptions struct {
	metric         string
	epsilon        float64
	minClusterSize int
	seed           uint64
	effort         int
	quiet          bool
}

func newClusterCmd() *cobra.Command {
	opts := &clusterOptions{}

	cmd := &cobra.Command{
		Use:   "cluster [file]",
		Short: "Cluster newline-delimited items read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger := cli.NewLogger(debug)
			defer func() { _ = logger.Sync() }()

			var r *os.File
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			} else {
				r = os.Stdin
			}

			return runCluster(cmd.Context(), logger, r, opts)
		},
	}

	cmd.Flags().StringVar(&opts.metric, "metric", "levenshtein", `metric to use ("levenshtein" or "numeric")`)
	cmd.Flags().Float64Var(&opts.epsilon, "epsilon", 2, "neighborhood radius")
	cmd.Flags().IntVar(&opts.minClusterSize, "min-cluster-size", 2, "minimum neighborhood size to seed or extend a cluster")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed for vantage-point selection")
	cmd.Flags().IntVar(&opts.effort, "effort", 8, "vantage-point selection effort per split (0 or 1 = random choice)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only cluster IDs, one per non-empty input line")

	return cmd
}

func runCluster(ctx context.Context, logger *zap.Logger, r *os.File, opts *clusterOptions) error {
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	items, err := readLines(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Debug("loaded items", zap.Int("count", len(items)))

	metric, err := cli.ResolveMetric(opts.metric)
	if err != nil {
		return err
	}

	labels, err := vpdbscan.Cluster(
		ctx, items, metric, opts.minClusterSize, opts.epsilon,
		vpdbscan.WithSeed[string](opts.seed),
		vpdbscan.WithEffort[string](opts.effort),
		vpdbscan.WithProgress[string](func(processed, total int) {
			logger.Debug("progress", zap.Int("processed", processed), zap.Int("total", total))
		}),
	)
	if err != nil {
		return fmt.Errorf("clustering: %w", err)
	}

	if opts.quiet {
		for _, l := range labels {
			fmt.Println(l)
		}
		return nil
	}

	printResults(items, labels)
	return nil
}

func printResults(items []string, labels []int) {
	byCluster := make(map[int][]string)
	var outliers []string
	for i, l := range labels {
		if l == vpdbscan.Outlier {
			outliers = append(outliers, items[i])
			continue
		}
		byCluster[l] = append(byCluster[l], items[i])
	}

	fmt.Printf("%s\n\n", cli.HeaderStyle.Render(fmt.Sprintf("Clustered %d items", len(items))))

	for id := 0; id < len(byCluster); id++ {
		members := byCluster[id]
		fmt.Printf("%s %s\n", cli.ClusterStyle.Render(fmt.Sprintf("cluster %d", id)), cli.CountStyle.Render(fmt.Sprintf("(%d items)", len(members))))
		for _, m := range members {
			fmt.Printf("  %s\n", cli.ItemStyle.Render(m))
		}
		fmt.Println()
	}

	if len(outliers) > 0 {
		fmt.Printf("%s %s\n", cli.OutlierStyle.Render("outliers"), cli.CountStyle.Render(fmt.Sprintf("(%d items)", len(outliers))))
		for _, m := range outliers {
			fmt.Printf("  %s\n", cli.DimStyle.Render(m))
		}
	}
}

func readLines(r *os.File) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
