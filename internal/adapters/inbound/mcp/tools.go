package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/scanner"
	"github.com/unityconverters/samplereport/internal/domain"
	"github.com/unityconverters/samplereport/internal/domain/check"
)

func registerTools(s *server.MCPServer, project Project) {
	s.AddTool(
		mcplib.NewTool("samplereport_run",
			mcplib.WithDescription("Check every sample folder and return the full report as JSON"),
			mcplib.WithBoolean("write",
				mcplib.Description("Write the markdown report and record the run (default true)"),
			),
		),
		handleRun(project),
	)

	s.AddTool(
		mcplib.NewTool("samplereport_list_samples",
			mcplib.WithDescription("List the sample folders a run would check"),
		),
		handleListSamples(project),
	)

	s.AddTool(
		mcplib.NewTool("samplereport_check_file",
			mcplib.WithDescription("Run the script checks on a single file and return its result"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Script path, relative to the project root or absolute"),
			),
		),
		handleCheckFile(project),
	)
}

func handleRun(project Project) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := project.loadConfig()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		svc := project.reportService()

		if !request.GetBool("write", true) {
			roots, err := svc.ListSamples(project.Path, cfg)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			report, err := svc.Evaluate(project.Path, cfg, roots)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			return jsonResult(report)
		}

		report, err := svc.Run(project.Path, cfg)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		result, err := jsonResult(report)
		if err != nil {
			return nil, err
		}
		// State is best-effort; a failure only adds a warning.
		if _, err := project.recorder().Record(project.StateDir, report); err != nil {
			result.Content = append(result.Content,
				mcplib.NewTextContent(fmt.Sprintf("warning: run state not saved: %v", err)))
		}
		return result, nil
	}
}

func handleListSamples(project Project) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := project.loadConfig()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		roots, err := project.reportService().ListSamples(project.Path, cfg)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(roots)
	}
}

func handleCheckFile(project Project) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		cfg, err := project.loadConfig()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(project.Path, filepath.FromSlash(file))
		}
		fs := scanner.New()
		content, err := fs.ReadSource(path)
		if err != nil {
			return errorResult(fmt.Sprintf("reading %s: %v", file, err)), nil
		}
		if resolved, err := scanner.Canonical(path); err == nil {
			path = resolved
		}

		// Outside any sample the file's own directory is the root.
		sampleRoot := filepath.Dir(path)
		if roots, err := project.reportService().ListSamples(project.Path, cfg); err == nil {
			if r, ok := enclosingSample(roots, path); ok {
				sampleRoot = r.Path
			}
		}

		return jsonResult(check.Evaluate(sampleRoot, path, content, cfg.SourceExtension))
	}
}

func enclosingSample(roots []domain.SampleRoot, path string) (domain.SampleRoot, bool) {
	lower := strings.ToLower(path)
	var best domain.SampleRoot
	found := false
	for _, r := range roots {
		prefix := strings.ToLower(r.Path) + string(filepath.Separator)
		if strings.HasPrefix(lower, prefix) && len(r.Path) > len(best.Path) {
			best, found = r, true
		}
	}
	return best, found
}

// jsonResult marshals v to indented JSON and returns it as text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
