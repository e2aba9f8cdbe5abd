package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcpadapter "github.com/unityconverters/samplereport/internal/adapters/inbound/mcp"
)

func newMCPCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the samplereport MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(v))
	return cmd
}

func newMCPServeCmd(v *viper.Viper) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start samplereport MCP server (stdio)",
		Long:  "Start the MCP server using stdio transport so coding assistants can run the sample checks and read the last report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			s := mcpadapter.NewSampleReportMCPServer(newMCPProject(v, absPath))
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Unity project path")

	return cmd
}

func newMCPProject(v *viper.Viper, absPath string) mcpadapter.Project {
	return mcpadapter.Project{
		Path:       absPath,
		ConfigFile: v.GetString(keyConfig),
		StateDir:   stateDir(v, absPath),
		Version:    version,
	}
}
