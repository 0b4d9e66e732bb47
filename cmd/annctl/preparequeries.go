package main

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/embed"
	"github.com/annvec/annvec/internal/record"
)

var preparequeriesCmd = &cobra.Command{
	Use:   "preparequeries <in> <out>",
	Short: "Embed one query per line of <in> and write a query file to <out>",
	Long: `preparequeries embeds each line of a plain-text query file and
writes the length-prefixed query-file format (spec §6.4) so the offline
latency harness can replay queries without re-invoking the embedder.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreparequeries,
}

func runPreparequeries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	emb, err := buildEmbedder(cfg.Embedder, cfg.Dims)
	if err != nil {
		return err
	}

	lines, err := readLines(args[0])
	if err != nil {
		return err
	}

	queries, err := embedQueries(emb, lines)
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	if err := record.WriteQueryFile(out, queries); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "wrote %d queries to %s", len(queries), args[1])
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func embedQueries(emb embed.Embedder, texts []string) ([]record.Query, error) {
	ctx := context.Background()
	vecs, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	queries := make([]record.Query, len(texts))
	for i, text := range texts {
		queries[i] = record.Query{QueryString: text, Embedding: vecs[i]}
	}
	return queries, nil
}
