package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spatialviz/spatialprep/internal/artifact"
	"github.com/spatialviz/spatialprep/internal/manifest"
)

var manifestDataDir string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate the dataset manifest only",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			c.DataDir = manifestDataDir
		}
		entries, err := manifest.Build(c.DataDir, c.FileExt, c.LabelTrimSuffixes)
		if err != nil {
			return err
		}
		path := filepath.Join(c.DataDir, manifest.FileName)
		if err := artifact.WriteJSON(path, entries, true, false); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s\n", e.Label, e.File)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s with %d entry(ies)\n", path, len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVar(&manifestDataDir, "data-dir", "", "directory of dataset CSVs (overrides config)")
}
