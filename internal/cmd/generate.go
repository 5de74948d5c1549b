package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khx0/statistics/internal/pipeline"
)

func newGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Draw and store the sample sets",
		Long:  `Draw one seeded sample set per configured sample size and write it to the raw directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, (*pipeline.Pipeline).Generate)
		},
	}
}
