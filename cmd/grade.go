package cmd

import (
	"fmt"
	"strconv"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <item-id> <quality>",
	Short: "Record a review of one card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item ID %q: %w", args[0], err)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quality %q: %w", args[1], err)
		}
		q, err := sr.ParseQuality(v)
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.drill.Review(cmd.Context(), id, q, time.Now())
		if err != nil {
			return err
		}
		if err := a.drill.Flush(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d: interval %.2f -> %.2f days, due %s\n",
			id, res.Before.LastInterval, res.Item.LastInterval, res.Item.DueAt.Format("2006-01-02"))
		if res.Leech {
			fmt.Fprintln(cmd.OutOrStdout(), "warning: this card is a leech")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}
