package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/spatialviz/spatialprep/internal/config"
	"github.com/spatialviz/spatialprep/internal/schema"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "spatialprep",
	Short: "spatialprep: prepare spatial-transcriptomics CSVs for the viewer",
	Long: `spatialprep normalizes spatial-transcriptomics CSV exports onto a canonical
schema and regenerates the JSON artifacts the static visualization front end
consumes: per-dataset overview samples, exact per-region statistics, a
dataset manifest, and a run summary.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.spatialprep/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands re-resolve config and surface the error then
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the configuration loaded at startup, retrying the
// load for commands that run before/without initialization (tests).
func activeConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	return cfgpkg.Load(cfgFile)
}

// activeAliases merges config overrides over the built-in alias table.
func activeAliases(c *cfgpkg.Global) schema.AliasTable {
	return schema.DefaultAliases().Merge(c.Aliases)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
