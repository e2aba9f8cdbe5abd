package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/config"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/filelock"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/tui"
	"github.com/unityconverters/samplereport/internal/domain"
)

func newConvertersCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converters",
		Short: "Manage the JSON converters settings file",
		Long: "The converters file selects which JSON converters a Unity project registers " +
			"and the default serializer settings used with them.",
	}
	cmd.AddCommand(newConvertersInitCmd(v))
	cmd.AddCommand(newConvertersShowCmd(v))
	return cmd
}

func convertersPath(v *viper.Viper, args []string) (string, error) {
	absPath, err := projectPath(args)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := loadConfig(v, absPath)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(cfg.ConvertersFile) {
		return cfg.ConvertersFile, nil
	}
	return filepath.Join(absPath, filepath.FromSlash(cfg.ConvertersFile)), nil
}

func newConvertersInitCmd(v *viper.Viper) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default converters file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := convertersPath(v, args)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
				}
			}

			data, err := config.MarshalConverters(domain.DefaultConvertersConfig())
			if err != nil {
				return fmt.Errorf("encoding converters: %w", err)
			}
			if err := filelock.AtomicWrite(dest, data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing converters file")

	return cmd
}

func newConvertersShowCmd(v *viper.Viper) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Validate and print the converters settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := convertersPath(v, args)
			if err != nil {
				return err
			}
			cfg, err := config.LoadConverters(path)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, cfg)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderConverters(cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output settings as JSON")

	return cmd
}
