package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/observability"
	"github.com/annvec/annvec/internal/record"
)

var testqueriesCmd = &cobra.Command{
	Use:   "testqueries <file>",
	Short: "Replay a prepared query file against the local index and report latency",
	Args:  cobra.ExactArgs(1),
	RunE:  runTestqueries,
}

func runTestqueries(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	queries, err := record.ReadQueryFile(f)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := observability.NewDefaultLogger()
	k, closeStore, err := buildKernel(cfg, log, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := k.Load(ctx); err != nil {
		return err
	}

	for _, q := range queries {
		if _, err := k.SearchBinaryIDs(ctx, q.Embedding, cfg.Search.DefaultK, cfg.Search.DefaultReorder, cfg.Search.DefaultOvershoot); err != nil {
			printWarning(cmd.OutOrStdout(), "query %q failed: %v", q.QueryString, err)
		}
	}

	snapshots := k.LatencySnapshots()
	headers := []string{"stage", "count", "mean(ns)", "p50(ns)", "p90(ns)", "p99(ns)"}
	var rows [][]string
	for _, stage := range []string{"embed", "search_full", "search_binary", "read_back", "re_rank"} {
		s := snapshots[stage]
		rows = append(rows, []string{
			stage,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.0f", s.Mean),
			fmt.Sprintf("%.0f", s.P50),
			fmt.Sprintf("%.0f", s.P90),
			fmt.Sprintf("%.0f", s.P99),
		})
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
	return nil
}
