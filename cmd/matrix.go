package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Inspect or move the SM5 optimal-factor matrix",
}

var matrixShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		m := a.drill.Matrix()
		fmt.Fprintf(out, "%d entries\n", m.Len())
		for _, e := range m.Entries() {
			fmt.Fprintf(out, "n=%d\tef=%g\tof=%g\n", e.Repetition, e.EaseFactor, e.OptimalFactor)
		}
		return nil
	},
}

var matrixExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write the stored matrix as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := json.MarshalIndent(a.drill.Matrix(), "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var matrixImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace the stored matrix with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var m sr.Matrix
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.matrices.Save(cmd.Context(), m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d matrix entries\n", m.Len())
		return nil
	},
}

func init() {
	matrixCmd.AddCommand(matrixShowCmd, matrixExportCmd, matrixImportCmd)
	rootCmd.AddCommand(matrixCmd)
}
