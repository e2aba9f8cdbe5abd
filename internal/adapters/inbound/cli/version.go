package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show samplereport version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "samplereport %s (%s)\n", version, commit)
			return nil
		},
	}
}

func generatorName() string {
	return "samplereport " + version
}
