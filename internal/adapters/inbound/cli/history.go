package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/cache"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/history"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/tui"
	"github.com/unityconverters/samplereport/internal/application"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
		clearState bool
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show past runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectPath(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			state := stateDir(v, absPath)
			rec := application.NewRunRecorder(history.New(), cache.New())
			if clearState {
				if err := rec.Clear(state); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Run history and cached report cleared.")
				return nil
			}

			entries, err := rec.History(state, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many recent runs (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().BoolVar(&clearState, "clear", false, "Delete the run history and the cached report")

	return cmd
}
