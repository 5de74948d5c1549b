package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khx0/statistics/internal/pipeline"
)

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Plot the stored sample sets",
		Long:  `Read the sample set of every configured sample size from the raw directory and render its QQ plot.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, (*pipeline.Pipeline).Render)
		},
	}
}
