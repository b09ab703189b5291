package cmd

import (
	"fmt"

	"github.com/example/drillbot/internal/config"
	"github.com/example/drillbot/internal/database"
	"github.com/example/drillbot/internal/drill"
	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app bundles the dependencies shared by the subcommands
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *sqlx.DB
	items    *database.ItemRepository
	matrices *database.MatrixRepository
	reviews  *database.ReviewLogRepository
	drill    *drill.Scheduler
}

func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	core, alg, err := cfg.Drill.Core()
	if err != nil {
		return nil, fmt.Errorf("drill config: %w", err)
	}
	calc, err := sr.NewCalculator(core)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		items:    database.NewItemRepository(db),
		matrices: database.NewMatrixRepository(db),
		reviews:  database.NewReviewLogRepository(db),
	}
	a.drill = drill.NewScheduler(calc, alg, a.items, a.matrices, a.reviews, logger)
	if err := a.drill.Load(cmd.Context()); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
