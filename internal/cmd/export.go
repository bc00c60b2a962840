package cmd

import (
	"fmt"

	"pollos-backend/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportDate string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a day's orders to an Excel file",
	Example: `  pollos export --date 01-01-2024
  pollos export --out hoy.xlsx`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "day key DD-MM-YYYY (default today)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default pedidos-<date>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	key := exportDate
	if key == "" {
		today, err := rt.board.Today()
		if err != nil {
			return err
		}
		key = today.Key
	}

	day, l, err := rt.board.Ledger(key)
	if err != nil {
		return err
	}

	f, err := export.Workbook(day, l, rt.board.Prices())
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	out := exportOut
	if out == "" {
		out = export.FileName(day)
	}
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d orders written to %s\n", day.DateLabel, len(l.All(false)), out)
	return nil
}
