package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unityconverters/samplereport/internal/domain"
)

func TestDefaultConfig_UnityLayout(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, []string{"Assets", "Packages"}, cfg.SearchRoots)
	assert.Equal(t, "Library/PackageCache", cfg.FallbackRoot)
	assert.Equal(t, "Newtonsoft.Json.UnityConverters.Tests.asmdef", cfg.MarkerFile)
	assert.Equal(t, ".cs", cfg.SourceExtension)
	assert.Equal(t, "Assets/Samples-Content-Test-Report.md", cfg.ReportPath)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_SearchRootsNotShared(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.SearchRoots[0] = "Changed"
	assert.Equal(t, "Assets", domain.DefaultSearchRoots[0])
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := domain.ProjectConfig{MarkerFile: "Custom.asmdef"}.WithDefaults()
	assert.Equal(t, "Custom.asmdef", cfg.MarkerFile)
	assert.Equal(t, ".cs", cfg.SourceExtension)
	assert.Equal(t, []string{"Assets", "Packages"}, cfg.SearchRoots)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"extension without dot", domain.ProjectConfig{SourceExtension: "cs"}, "must start with a dot"},
		{"marker is a path", domain.ProjectConfig{MarkerFile: "a/b.asmdef"}, "must be a file name"},
		{"empty search root", domain.ProjectConfig{SearchRoots: []string{"Assets", " "}}, "search_roots[1]"},
		{"absolute search root", domain.ProjectConfig{SearchRoots: []string{"/abs"}}, "must be relative"},
		{"absolute fallback", domain.ProjectConfig{FallbackRoot: "/abs"}, "fallback_root"},
		{"empty sample", domain.ProjectConfig{Samples: []string{""}}, "samples[0]"},
		{"exclude path", domain.ProjectConfig{ExcludeDirs: []string{"a/b"}}, "exclude_dirs[0]"},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if assert.Error(t, err, tt.name) {
			assert.Contains(t, err.Error(), tt.want, tt.name)
		}
	}
}

func TestIsExcludedDir(t *testing.T) {
	cfg := domain.ProjectConfig{ExcludeDirs: []string{"Editor", "obj"}}
	assert.True(t, cfg.IsExcludedDir("editor"))
	assert.True(t, cfg.IsExcludedDir("obj"))
	assert.False(t, cfg.IsExcludedDir("Scripts"))
}

func TestResolveReportPath(t *testing.T) {
	cfg := domain.DefaultConfig()
	root := filepath.Join("/", "project")
	assert.Equal(t, filepath.Join(root, "Assets", "Samples-Content-Test-Report.md"), cfg.ResolveReportPath(root))

	abs := filepath.Join("/", "tmp", "report.md")
	cfg.ReportPath = abs
	assert.Equal(t, abs, cfg.ResolveReportPath(root))
}
