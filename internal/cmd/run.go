package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khx0/statistics/internal/pipeline"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate, then render (default)",
		Long:  `Generate every sample set, then render every sample set from the raw directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, (*pipeline.Pipeline).Run)
		},
	}
}
