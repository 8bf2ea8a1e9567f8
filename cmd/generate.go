package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialviz/spatialprep/internal/pipeline"
)

var (
	genDataDir string
	genOutDir  string
	genStride  int
	genGzip    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full preparation pipeline over the data directory",
	Long: `generate reads every dataset CSV in the data directory and regenerates all
viewer artifacts: a downsampled overview and exact per-region statistics per
dataset, the dataset manifest, and a run summary with data-quality warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("data-dir") {
			c.DataDir = genDataDir
		}
		if f.Changed("out-dir") {
			c.OutDir = genOutDir
		}
		if f.Changed("stride") {
			c.Stride = genStride
		}
		if f.Changed("gzip") {
			c.Gzip = genGzip
		}
		if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		debugf("data-dir=%s out-dir=%s stride=%d\n", c.DataDir, c.OutDir, c.Stride)

		sum, err := pipeline.Run(pipeline.Options{
			DataDir:      c.DataDir,
			OutDir:       c.OutDir,
			FileExt:      c.FileExt,
			Stride:       c.Stride,
			Gzip:         c.Gzip,
			TrimSuffixes: c.LabelTrimSuffixes,
			Aliases:      activeAliases(c),
			Progress:     cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		for _, w := range sum.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Run %s complete: %d dataset(s), stride %d\n",
			sum.RunID, len(sum.Datasets), sum.Stride)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genDataDir, "data-dir", "", "directory of dataset CSVs (overrides config)")
	generateCmd.Flags().StringVar(&genOutDir, "out-dir", "", "directory for JSON artifacts (overrides config)")
	generateCmd.Flags().IntVar(&genStride, "stride", 0, "downsampling stride K, keep every Kth row (overrides config)")
	generateCmd.Flags().BoolVar(&genGzip, "gzip", false, "also gzip overview artifacts for static hosting")
}
