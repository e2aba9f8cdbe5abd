package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityconverters/samplereport/internal/domain"
)

func testProject(t *testing.T) Project {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Assets/Samples/Basic/" + domain.DefaultMarkerFile: "{}",
		"Assets/Samples/Basic/Scripts/Widget.cs":           "public class Widget {}",
		"Assets/Samples/Basic/Tests/WidgetTests.cs":        "public class WidgetTests { }",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return Project{Path: dir, StateDir: filepath.Join(dir, domain.DefaultStateDir), Version: "test"}
}

func callTool(t *testing.T, project Project, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	s := NewSampleReportMCPServer(project)
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q should be registered", name)

	req := mcplib.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHasTools(t *testing.T) {
	s := NewSampleReportMCPServer(Project{Path: "."})
	tools := s.ListTools()

	expected := []string{
		"samplereport_run",
		"samplereport_list_samples",
		"samplereport_check_file",
	}
	for _, name := range expected {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expected))
}

func TestRunTool_WritesReportAndState(t *testing.T) {
	project := testProject(t)

	result := callTool(t, project, "samplereport_run", nil)
	require.False(t, result.IsError, resultText(t, result))

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	assert.Equal(t, 2, report.Summary.Scripts)
	assert.Equal(t, 2, report.Summary.Passed)
	assert.FileExists(t, filepath.Join(project.Path, filepath.FromSlash(domain.DefaultReportPath)))

	contents, err := handleLastReportResource(project)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, lastReportURI, text.URI)
	assert.Contains(t, text.Text, "Assets/Samples/Basic")
}

func TestRunTool_WarnsWhenStateNotSaved(t *testing.T) {
	project := testProject(t)
	// A regular file where the history directory belongs.
	require.NoError(t, os.MkdirAll(project.StateDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project.StateDir, "history"), []byte("x"), 0644))

	result := callTool(t, project, "samplereport_run", nil)
	require.False(t, result.IsError, resultText(t, result))
	assert.FileExists(t, filepath.Join(project.Path, filepath.FromSlash(domain.DefaultReportPath)))

	require.Len(t, result.Content, 2)
	warning, ok := result.Content[1].(mcplib.TextContent)
	require.True(t, ok)
	assert.Contains(t, warning.Text, "warning: run state not saved")
}

func TestRunTool_DryRun(t *testing.T) {
	project := testProject(t)

	result := callTool(t, project, "samplereport_run", map[string]any{"write": false})
	require.False(t, result.IsError)
	assert.NoFileExists(t, filepath.Join(project.Path, filepath.FromSlash(domain.DefaultReportPath)))

	_, err := handleLastReportResource(project)(context.Background(), mcplib.ReadResourceRequest{})
	assert.ErrorIs(t, err, errNoCachedReport)
}

func TestListSamplesTool(t *testing.T) {
	project := testProject(t)

	result := callTool(t, project, "samplereport_list_samples", nil)
	require.False(t, result.IsError)

	var roots []domain.SampleRoot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "Assets/Samples/Basic", roots[0].RelativePath)
}

func TestListSamplesTool_NoSamples(t *testing.T) {
	result := callTool(t, Project{Path: t.TempDir()}, "samplereport_list_samples", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "no sample folders found")
}

func TestCheckFileTool(t *testing.T) {
	project := testProject(t)

	result := callTool(t, project, "samplereport_check_file",
		map[string]any{"file": "Assets/Samples/Basic/Tests/WidgetTests.cs"})
	require.False(t, result.IsError, resultText(t, result))

	var sc domain.ScriptReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &sc))
	assert.Equal(t, "WidgetTests.cs", sc.FileName)
	assert.Equal(t, "Tests", sc.Folder)
	assert.True(t, sc.Passed)
	require.Len(t, sc.Checks, 3)
	assert.False(t, sc.Checks[2].Passed)
	assert.False(t, sc.Checks[2].Required)
}

func TestCheckFileTool_MissingArgument(t *testing.T) {
	result := callTool(t, testProject(t), "samplereport_check_file", map[string]any{})
	assert.True(t, result.IsError)
}

func TestCheckFileTool_MissingFile(t *testing.T) {
	result := callTool(t, testProject(t), "samplereport_check_file", map[string]any{"file": "Nope.cs"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Nope.cs")
}

func TestConvertersResource_Defaults(t *testing.T) {
	project := testProject(t)

	contents, err := handleConvertersResource(project)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcplib.TextResourceContents)

	var cfg domain.ConvertersConfig
	require.NoError(t, json.Unmarshal([]byte(text.Text), &cfg))
	assert.Equal(t, domain.DefaultConvertersConfig().JSONNetConverters, cfg.JSONNetConverters)
}
