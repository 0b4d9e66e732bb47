package main

import (
	"fmt"

	"github.com/annvec/annvec/internal/config"
	"github.com/annvec/annvec/internal/embed"
	"github.com/annvec/annvec/internal/kernel"
	"github.com/annvec/annvec/internal/observability"
	"github.com/annvec/annvec/internal/store"
)

// buildKernel wires a Kernel's collaborators from configuration. It does
// not load the items already in the store; callers run Kernel.Load.
func buildKernel(cfg config.Config, log *observability.Logger, metrics *observability.Metrics) (*kernel.Kernel, func() error, error) {
	st, err := buildStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	emb, err := buildEmbedder(cfg.Embedder, cfg.Dims)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	k := kernel.New(cfg.Dims, st, emb, log, metrics)
	return k, st.Close, nil
}

func buildStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Kind {
	case "badger":
		return store.NewBadger(store.BadgerOptions{Dir: cfg.Dir})
	case "mem":
		return store.NewMem(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

func buildEmbedder(cfg config.EmbedderConfig, dims int) (embed.Embedder, error) {
	switch cfg.Kind {
	case "openai":
		opts := []embed.Option{embed.WithDimension(dims)}
		if cfg.Model != "" {
			opts = append(opts, embed.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, embed.WithBaseURL(cfg.BaseURL))
		}
		return embed.NewOpenAI(cfg.APIKey, opts...), nil
	case "hash":
		return embed.NewHash(dims), nil
	default:
		return nil, fmt.Errorf("unknown embedder kind %q", cfg.Kind)
	}
}
