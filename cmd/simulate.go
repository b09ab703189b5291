package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/example/drillbot/internal/config"
	"github.com/example/drillbot/internal/drill"
	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/spf13/cobra"
)

var defaultSimulationDeck = []string{
	"False", "None", "True", "and", "as", "assert", "break", "class",
	"continue", "def", "del", "elif", "else", "except", "finally", "for",
	"from", "global",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [name...]",
	Short: "Drill an in-memory deck with synthetic grades",
	Long:  "Drill an in-memory deck with synthetic grades and print the state after each review. Nothing is stored.",
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		core, alg, err := cfg.Drill.Core()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if name, _ := flags.GetString("algorithm"); name != "" {
			if alg, err = sr.ParseAlgorithm(name); err != nil {
				return err
			}
		}
		steps, _ := flags.GetInt("steps")
		seed, _ := flags.GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		calc, err := sr.NewCalculator(core, sr.WithRand(rng))
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = defaultSimulationDeck
		}
		sim := &drill.Simulation{Calc: calc, Algorithm: alg, Rand: rng}
		results, err := sim.Run(names, steps)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, step := range results {
			fmt.Fprintf(out, "%q q=%d [%g, %g, %g]\n",
				step.Name, step.Quality, step.State.LastInterval, step.State.Ease(), *step.State.MeanQuality)
		}
		if alg == sr.SM5 {
			fmt.Fprintf(out, "matrix entries: %d\n", sim.Matrix.Len())
		}
		return nil
	},
}

func init() {
	flags := simulateCmd.Flags()
	flags.String("algorithm", "", "algorithm to simulate, defaults to the configured one")
	flags.Int("steps", 50, "number of reviews after the initial pass")
	flags.Int64("seed", 0, "random seed, 0 for a time-based seed")
	rootCmd.AddCommand(simulateCmd)
}
