package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spatialviz/spatialprep/internal/celltype"
)

var (
	ctDataDir  string
	ctTypesDir string
)

var celltypesCmd = &cobra.Command{
	Use:   "celltypes",
	Short: "Merge cell-type assignments into the dataset CSVs",
	Long: `celltypes joins each configured dataset against its cell-typing CSV and
writes a *_regions_genes_with_cell_types.csv next to the original. Cells
without an assignment are marked "unassigned". The sample-to-assignment
mapping comes from cell_type_samples in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := activeConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("data-dir") {
			c.DataDir = ctDataDir
		}
		if f.Changed("cell-types-dir") {
			c.CellTypesDir = ctTypesDir
		}
		if len(c.CellTypeSamples) == 0 {
			return fmt.Errorf("no cell_type_samples configured; add the sample mapping to the config file")
		}

		samples := make([]string, 0, len(c.CellTypeSamples))
		for s := range c.CellTypeSamples {
			samples = append(samples, s)
		}
		sort.Strings(samples)

		aliases := activeAliases(c)
		ok := 0
		for _, sample := range samples {
			src := filepath.Join(c.DataDir, sample+"_regions_genes.csv")
			assign := filepath.Join(c.CellTypesDir, "cell_type_"+c.CellTypeSamples[sample]+".csv")
			dst := filepath.Join(c.DataDir, sample+"_regions_genes_with_cell_types.csv")

			rep, err := celltype.MergeFile(src, assign, dst, aliases)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ %s: %v\n", sample, err)
				continue
			}
			ok++
			if rep.Skipped > 0 {
				fmt.Fprintf(os.Stderr, "⚠ %s: skipped %d malformed row(s)\n", sample, rep.Skipped)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d rows (%d assigned, %d unassigned)\n",
				sample, rep.Rows, rep.Assigned, rep.Unassigned)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Merged %d/%d sample(s)\n", ok, len(samples))
		if ok == 0 {
			return fmt.Errorf("no samples merged")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(celltypesCmd)
	celltypesCmd.Flags().StringVar(&ctDataDir, "data-dir", "", "directory of dataset CSVs (overrides config)")
	celltypesCmd.Flags().StringVar(&ctTypesDir, "cell-types-dir", "", "directory of cell-typing CSVs (overrides config)")
}
