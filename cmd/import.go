package cmd

import (
	"fmt"

	"github.com/example/drillbot/internal/excel"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import cards from a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		flags := cmd.Flags()
		cfg := excel.DefaultImportConfig()
		cfg.FilePath = args[0]
		cfg.QuestionColumn, _ = flags.GetString("question-col")
		cfg.AnswerColumn, _ = flags.GetString("answer-col")
		cfg.DeckColumn, _ = flags.GetString("deck-col")
		cfg.DefaultDeck, _ = flags.GetString("deck")
		cfg.SheetName, _ = flags.GetString("sheet")
		cfg.StartRow, _ = flags.GetInt("start-row")

		result, err := excel.ImportItems(cmd.Context(), a.items, cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Processed %d rows: %d imported, %d skipped, %d errors\n",
			result.TotalProcessed, result.Imported, result.Skipped, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintln(out, "  "+e)
		}
		return nil
	},
}

func init() {
	defaults := excel.DefaultImportConfig()
	flags := importCmd.Flags()
	flags.String("question-col", defaults.QuestionColumn, "column holding the question")
	flags.String("answer-col", defaults.AnswerColumn, "column holding the answer")
	flags.String("deck-col", defaults.DeckColumn, "column holding the deck name, empty to use --deck")
	flags.String("deck", defaults.DefaultDeck, "deck for rows without one")
	flags.String("sheet", "", "sheet to import, defaults to the first sheet")
	flags.Int("start-row", defaults.StartRow, "first row to import (1-based)")
	rootCmd.AddCommand(importCmd)
}
