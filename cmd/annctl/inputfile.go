package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/observability"
	"github.com/annvec/annvec/internal/record"
)

var inputfileCmd = &cobra.Command{
	Use:   "inputfile <path>",
	Short: "Load items from a newline-delimited JSON file into the store and index",
	Args:  cobra.ExactArgs(1),
	RunE:  runInputfile,
}

// inputLine is one line of the input file: an item awaiting an id and
// possibly an embedding, to be filled in by the embedder if absent.
type inputLine struct {
	ID          int32     `json:"id"`
	SemanticKey string    `json:"semantic_key"`
	Payload     string    `json:"payload"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

func runInputfile(cmd *cobra.Command, args []string) error {
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

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	var items []record.Item
	for {
		var line inputLine
		if err := dec.Decode(&line); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if line.ID == 0 {
			line.ID = k.MaxID() + int32(len(items)) + 1
		}
		items = append(items, record.Item{
			ID:          line.ID,
			SemanticKey: line.SemanticKey,
			Payload:     line.Payload,
			Embedding:   line.Embedding,
		})
	}

	saved, err := k.SaveBatch(ctx, items)
	if err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "loaded %d items", len(saved))
	return nil
}
