package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradezilla/journal"
	"github.com/rustyeddy/tradezilla/pkg/id"
)

var exportCmd = &cobra.Command{
	Use:       "export csv|org",
	Short:     "Export the ledger as CSV or org-mode",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"csv", "org"},
	RunE:      runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE.csv",
	Short: "Import trades from a CSV ledger",
	Long: `Import trades from a CSV file in the format written by "export csv".

Derived columns (pnl, roi, rr_ratio, status) are recomputed from the prices.
Rows without an id get a new one. Importing a trade whose id already exists
in the journal is an error and nothing is imported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	trades := a.journal.Chronological()
	switch args[0] {
	case "csv":
		if err := journal.WriteCSV(w, trades); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	case "org":
		if _, err := io.WriteString(w, journal.FormatTradesOrg(trades)); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(trades), exportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	recs, err := journal.ReadCSV(f, id.New)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.journal.Import(cmd.Context(), recs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", n, args[0])
	return nil
}
