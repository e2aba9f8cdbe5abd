package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/config"
	"github.com/unityconverters/samplereport/internal/domain"
	"github.com/unityconverters/samplereport/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

const envPrefix = "SAMPLEREPORT"

// Settings shared by every command. Each can also come from the environment,
// e.g. SAMPLEREPORT_LOG_LEVEL or SAMPLEREPORT_STATE_DIR.
const (
	keyConfig   = "config"
	keyLogLevel = "log-level"
	keyStateDir = "state-dir"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "samplereport",
		Short: "Check Unity sample folders and write a markdown report",
		Long: "samplereport finds the sample folders of a Unity project, runs lightweight " +
			"textual checks on their C# scripts and writes a markdown report with a pass/fail verdict.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String(keyConfig, "", "Path to the config file (default <path>/"+config.FileName+")")
	pf.String(keyLogLevel, "info", "Log level: trace, debug, info, warn, error")
	pf.String(keyStateDir, domain.DefaultStateDir, "Directory for run history and the cached report, relative to the project")
	for _, key := range []string{keyConfig, keyLogLevel, keyStateDir} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd(v))
	cmd.AddCommand(newSummaryCmd(v))
	cmd.AddCommand(newHistoryCmd(v))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newConvertersCmd(v))
	cmd.AddCommand(newMCPCmd(v))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newLogger(cmd *cobra.Command, v *viper.Viper) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), v.GetString(keyLogLevel))
}

// projectPath resolves the optional [path] argument.
func projectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return filepath.Abs(path)
}

func loadConfig(v *viper.Viper, absPath string) (domain.ProjectConfig, error) {
	if p := v.GetString(keyConfig); p != "" {
		return config.NewWithPath(p).Load(absPath)
	}
	return config.New().Load(absPath)
}

func stateDir(v *viper.Viper, absPath string) string {
	dir := v.GetString(keyStateDir)
	if dir == "" {
		dir = domain.DefaultStateDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(absPath, dir)
}

func renderJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
