package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/config"
)

const (
	lastReportURI = "samplereport://last-report"
	convertersURI = "samplereport://converters"
)

var errNoCachedReport = errors.New("no cached report: run samplereport first")

func registerResources(s *server.MCPServer, project Project) {
	s.AddResource(
		mcplib.NewResource(
			lastReportURI,
			"Last Report",
			mcplib.WithResourceDescription("Full report of the most recent recorded run"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLastReportResource(project),
	)

	s.AddResource(
		mcplib.NewResource(
			convertersURI,
			"Converters",
			mcplib.WithResourceDescription("Validated JSON converters settings of the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConvertersResource(project),
	)
}

func handleLastReportResource(project Project) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := project.recorder().LastReport(project.StateDir)
		if err != nil {
			return nil, fmt.Errorf("loading cached report: %w", err)
		}
		if report == nil {
			return nil, errNoCachedReport
		}
		return jsonContents(lastReportURI, report)
	}
}

func handleConvertersResource(project Project) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := project.loadConfig()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		path := cfg.ConvertersFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(project.Path, filepath.FromSlash(path))
		}
		converters, err := config.LoadConverters(path)
		if err != nil {
			return nil, err
		}
		return jsonContents(convertersURI, converters)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
