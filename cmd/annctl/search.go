package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/observability"
)

var (
	searchBinary    bool
	searchReorder   bool
	searchOvershoot int
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [k]",
	Short: "Run an ad hoc search against the local index",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchBinary, "binary", false, "use the binary (Hamming) coarse path")
	searchCmd.Flags().BoolVar(&searchReorder, "reorder", true, "re-rank binary candidates with full precision")
	searchCmd.Flags().IntVar(&searchOvershoot, "overshoot", 30, "extra binary candidates to widen the re-rank pool")
}

func runSearch(cmd *cobra.Command, args []string) error {
	k := 10
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		k = parsed
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := observability.NewDefaultLogger()
	kern, closeStore, err := buildKernel(cfg, log, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := kern.Load(ctx); err != nil {
		return err
	}

	if searchBinary {
		rows, err := kern.SearchBinaryTextResults(ctx, args[0], k, searchReorder, searchOvershoot)
		if err != nil {
			return err
		}
		printResultTable(cmd.OutOrStdout(), rows)
		return nil
	}

	rows, err := kern.SearchFullTextResults(ctx, args[0], k)
	if err != nil {
		return err
	}
	printResultTable(cmd.OutOrStdout(), rows)
	return nil
}
