package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/cache"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/filelock"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/gitinfo"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/history"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/markdown"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/scanner"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/tui"
	"github.com/unityconverters/samplereport/internal/application"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	var (
		output     string
		samples    []string
		jsonOutput bool
		noState    bool
	)

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Check every sample folder and write the report",
		Long: "Discover sample folders under the Unity project at [path], check their scripts, " +
			"write the markdown report and exit non-zero when a required check failed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectPath(args)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			log := newLogger(cmd, v)

			cfg, err := loadConfig(v, absPath)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.ReportPath = output
			}
			if len(samples) > 0 {
				cfg.Samples = samples
			}

			state := stateDir(v, absPath)
			lockDir := state
			if noState {
				lockDir = ""
			}

			fs := scanner.New()
			svc := application.NewReportService(fs, fs, markdown.New(), filelock.NewWriter(lockDir),
				application.WithLogger(log),
				application.WithGitInfo(gitinfo.New()),
				application.WithGenerator(generatorName()),
			)

			report, err := svc.Run(absPath, cfg)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			if !noState {
				rec := application.NewRunRecorder(history.New(), cache.New())
				if _, err := rec.Record(state, report); err != nil {
					log.Warnf("state not saved: %v", err)
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			return report.Verdict()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Report path, relative to the project (default from config)")
	cmd.Flags().StringArrayVar(&samples, "sample", nil, "Sample folder to check instead of discovering them (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full report as JSON")
	cmd.Flags().BoolVar(&noState, "no-state", false, "Do not record the run in the state directory")

	return cmd
}
