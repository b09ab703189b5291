package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/example/drillbot/internal/drill"
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the cards due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		q, err := a.drill.Queue(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printGroup(out, "failed", q.Failed)
		printGroup(out, "overdue", q.Overdue)
		printGroup(out, "young", q.Young)
		printGroup(out, "old", q.Old)
		printGroup(out, "new", q.New)
		printGroup(out, "skipped leeches", q.Skipped)
		fmt.Fprintf(out, "%d cards due\n", q.Len())
		return nil
	},
}

func printGroup(out io.Writer, name string, entries []drill.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(out, "%s (%d)\n", name, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  %d\t%s\t%s", e.Item.ID, e.Item.Deck, e.Item.Question)
		if e.Class.DaysOverdue > 0 {
			line += fmt.Sprintf("\t%dd late", e.Class.DaysOverdue)
		}
		if e.Class.Leech {
			line += "\tleech"
		}
		fmt.Fprintln(out, line)
	}
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
