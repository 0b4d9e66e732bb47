package main

import (
	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "annctl",
	Short: "annctl - ANN search engine operator CLI",
	Long: `annctl serves and operates the binary-quantized ANN search engine.

It can run the HTTP service, load items from a file, run ad hoc
searches against a local index, and prepare/replay offline
latency query files.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to JSON configuration file (default: built-in dev config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inputfileCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(preparequeriesCmd)
	rootCmd.AddCommand(testqueriesCmd)
}

func loadConfig() (config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}
