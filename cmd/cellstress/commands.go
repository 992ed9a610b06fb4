package main

import (
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/llxisdsh/atomcell/internal/stress"
)

type inputParams struct {
	cfg      stress.Config
	mode     string
	logLevel string
	json     bool
}

func bindFlags(fs *pflag.FlagSet, p *inputParams) {
	def := stress.DefaultConfig()
	fs.IntVarP(&p.cfg.Workers, "workers", "w", 0, "number of concurrent workers (0 = one per CPU)")
	fs.IntVarP(&p.cfg.OpsPerWorker, "ops", "n", def.OpsPerWorker, "operations per worker")
	fs.Int32Var(&p.cfg.Base, "base", def.Base, "initial cell value")
	fs.Int32Var(&p.cfg.Delta, "delta", def.Delta, "operand of every add/sub")
	fs.StringVarP(&p.mode, "mode", "m", def.Mode.String(), "operation: add, sub or mixed")
	fs.DurationVar(&p.cfg.Delay, "delay", 0, "sleep before each worker's first operation")
	fs.StringVar(&p.logLevel, "log-level", zerolog.LevelInfoValue, "log level")
	fs.BoolVar(&p.json, "json", false, "log as JSON instead of console text")
}

func newLogger(w io.Writer, p *inputParams) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(p.logLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "bad --log-level")
	}
	if !p.json {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func newRootCommand() *cobra.Command {
	var p inputParams
	cmd := &cobra.Command{
		Use:          "cellstress",
		Short:        "Hammer an atomic cell from many goroutines and verify the result",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), &p)
			if err != nil {
				return err
			}
			if p.cfg.Mode, err = stress.ParseMode(p.mode); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := stress.Run(ctx, p.cfg, logger)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, stress.ErrInvalidConfig):
				return err
			default:
				// cobra prints err itself; the log carries the observed values
				logger.Error().
					Int32("got", report.Got).
					Int32("reference", report.Reference).
					Int32("expected", report.Expected).
					Msg("stress run failed")
				return err
			}
		},
	}
	bindFlags(cmd.Flags(), &p)
	return cmd
}
