// Command annctl is the operator CLI for the search engine (spec §6.5):
// it serves the HTTP surface, loads items from a file, runs ad hoc
// searches, and prepares/replays offline latency query files.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
