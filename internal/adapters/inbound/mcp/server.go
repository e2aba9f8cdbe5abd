package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/cache"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/config"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/filelock"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/gitinfo"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/history"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/markdown"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/scanner"
	"github.com/unityconverters/samplereport/internal/application"
	"github.com/unityconverters/samplereport/internal/domain"
)

// Project identifies what the server inspects.
type Project struct {
	Path       string
	ConfigFile string // optional, defaults to <Path>/.samplereport.yaml
	StateDir   string
	Version    string
}

func (p Project) loadConfig() (domain.ProjectConfig, error) {
	if p.ConfigFile != "" {
		return config.NewWithPath(p.ConfigFile).Load(p.Path)
	}
	return config.New().Load(p.Path)
}

func (p Project) reportService() *application.ReportService {
	fs := scanner.New()
	return application.NewReportService(fs, fs, markdown.New(), filelock.NewWriter(p.StateDir),
		application.WithGitInfo(gitinfo.New()),
		application.WithGenerator("samplereport "+p.Version),
	)
}

func (p Project) recorder() *application.RunRecorder {
	return application.NewRunRecorder(history.New(), cache.New())
}

// NewSampleReportMCPServer creates an MCP server with all samplereport tools
// and resources registered for one Unity project.
func NewSampleReportMCPServer(project Project) *server.MCPServer {
	if project.Version == "" {
		project.Version = "dev"
	}

	s := server.NewMCPServer(
		"samplereport",
		project.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, project)
	registerResources(s, project)

	return s
}
