package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialviz/spatialprep/internal/aggregate"
	"github.com/spatialviz/spatialprep/internal/artifact"
	"github.com/spatialviz/spatialprep/internal/dataset"
)

var statsOutPath string

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Compute per-region statistics for one dataset CSV",
	Long: `stats reads a single dataset CSV and prints one line per region with exact
row, unique-gene, and unique-cell counts over the full file. Statistics are
never computed from the downsampled overview.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		ds, err := dataset.Read(args[0], activeAliases(c))
		if err != nil {
			return err
		}
		for _, w := range ds.Report.Warnings(ds.Name) {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
		}

		stats := aggregate.ByRegion(ds.Rows)
		for _, s := range stats {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s: %d rows, %d genes, %d cells\n",
				s.Region, s.Count, s.UniqueGenes, s.UniqueCells)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d rows across %d region(s)\n",
			ds.Name, ds.Report.Rows, len(stats))

		if statsOutPath != "" {
			if err := artifact.WriteJSON(statsOutPath, stats, true, false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", statsOutPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsOutPath, "out", "o", "", "also write the statistics as JSON to this path")
}
