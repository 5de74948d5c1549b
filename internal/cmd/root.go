// Package cmd implements the qqplot command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khx0/statistics/internal/config"
	"github.com/khx0/statistics/internal/logging"
	"github.com/khx0/statistics/internal/pipeline"
)

// NewRootCommand builds the command tree. Without a subcommand the root
// command performs a full run.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "qqplot",
		Short: "Normal QQ plots from seeded samples",
		Long: `qqplot draws seeded samples from the standard normal distribution for
a list of sample sizes, stores the quantile pairs as .npy files and renders
one QQ plot per sample size.

Configuration is read from QQPLOT_* environment variables and an optional
TOML style file named by QQPLOT_STYLE_FILE.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, (*pipeline.Pipeline).Run)
		},
	}

	root.AddCommand(newGenerateCommand(), newRenderCommand(), newRunCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// stage is one of the pipeline entry points.
type stage func(*pipeline.Pipeline, context.Context) (*pipeline.Result, error)

// execute loads the configuration, runs the stage and prints the summary.
func execute(cmd *cobra.Command, run stage) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(loggerConfig(cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		log.Error("Invalid configuration", zap.Error(err))
		return err
	}

	result, err := run(p, cmd.Context())
	if err != nil {
		log.Error("Run failed", zap.String("command", cmd.Name()), zap.Error(err))
		return err
	}
	return result.Table.Draw(cmd.OutOrStdout())
}

// loggerConfig picks the production or development preset and applies the
// configured level to it.
func loggerConfig(cfg config.LogConfig) logging.Config {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}
	return logCfg
}
