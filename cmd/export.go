package cmd

import (
	"fmt"
	"time"

	"github.com/example/drillbot/internal/excel"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export card schedules and the SM5 matrix to a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.items.List(cmd.Context())
		if err != nil {
			return err
		}
		if err := excel.Export(args[0], items, a.drill.Matrix(), a.drill.Config(), time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", len(items), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
