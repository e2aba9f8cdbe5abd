package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/markdown"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/tui"
	"github.com/unityconverters/samplereport/internal/domain"
)

func newSummaryCmd(v *viper.Viper) *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "summary [report.md]",
		Short: "Summarize a rendered report",
		Long: "Read a markdown report written by run and print its counters and failing scripts. " +
			"Without an argument the report path from the project config is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				absPath, err := projectPath(nil)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				cfg, err := loadConfig(v, absPath)
				if err != nil {
					return err
				}
				path = cfg.ResolveReportPath(absPath)
			}

			data, err := os.ReadFile(filepath.Clean(path))
			if err != nil {
				return fmt.Errorf("reading report: %w", err)
			}
			digest, err := markdown.ParseDigest(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, digest); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDigest(digest))
			}

			if strict && digest.Summary.RequiredFailures > 0 {
				return fmt.Errorf("%w: %d required failure(s) in %s",
					domain.ErrRequiredChecksFailed, digest.Summary.RequiredFailures, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the digest as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the report records failures")

	return cmd
}
