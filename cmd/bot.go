package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/drillbot/internal/bot"
	"github.com/example/drillbot/internal/scheduler"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with reminders and matrix checkpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		botCfg := bot.DefaultConfig(a.cfg.Telegram.ChatID)
		botCfg.SessionSize = a.cfg.Drill.SessionSize
		b, err := bot.New(a.cfg.Telegram.Token, botCfg, a.drill, a.items, a.log)
		if err != nil {
			return err
		}
		jobs, err := scheduler.New(a.cfg.Scheduler, b, a.items, a.drill, a.log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return b.Start(ctx) })
		g.Go(func() error {
			if err := jobs.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			// Give the final checkpoint time to finish after cancellation.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return jobs.Stop(shutdownCtx)
		})

		a.log.Info("Bot started. Press Ctrl+C to stop.")
		if err := g.Wait(); err != nil {
			return err
		}
		a.log.Info("Bot stopped successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
