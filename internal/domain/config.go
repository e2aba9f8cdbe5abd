package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Defaults used when .samplereport.yaml is absent or leaves a field empty.
const (
	DefaultMarkerFile      = "Newtonsoft.Json.UnityConverters.Tests.asmdef"
	DefaultSourceExtension = ".cs"
	DefaultReportPath      = "Assets/Samples-Content-Test-Report.md"
	DefaultFallbackRoot    = "Library/PackageCache"
	DefaultStateDir        = ".samplereport"
)

// DefaultSearchRoots are the candidate top-level directories searched first.
var DefaultSearchRoots = []string{"Assets", "Packages"}

// ProjectConfig holds project-level configuration loaded from .samplereport.yaml.
type ProjectConfig struct {
	SearchRoots     []string `yaml:"search_roots"             json:"search_roots,omitempty"`
	FallbackRoot    string   `yaml:"fallback_root"            json:"fallback_root,omitempty"`
	MarkerFile      string   `yaml:"marker_file"              json:"marker_file,omitempty"`
	SourceExtension string   `yaml:"source_extension"         json:"source_extension,omitempty"`
	ReportPath      string   `yaml:"report_path"              json:"report_path,omitempty"`
	Samples         []string `yaml:"samples,omitempty"        json:"samples,omitempty"`
	ExcludeDirs     []string `yaml:"exclude_dirs,omitempty"   json:"exclude_dirs,omitempty"`
	ConvertersFile  string   `yaml:"converters_file"          json:"converters_file,omitempty"`
}

// DefaultConfig returns the configuration matching the Unity package layout.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SearchRoots:     append([]string(nil), DefaultSearchRoots...),
		FallbackRoot:    DefaultFallbackRoot,
		MarkerFile:      DefaultMarkerFile,
		SourceExtension: DefaultSourceExtension,
		ReportPath:      DefaultReportPath,
		ConvertersFile:  DefaultConvertersFile,
	}
}

// WithDefaults fills every empty field from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if len(c.SearchRoots) == 0 {
		c.SearchRoots = d.SearchRoots
	}
	if c.FallbackRoot == "" {
		c.FallbackRoot = d.FallbackRoot
	}
	if c.MarkerFile == "" {
		c.MarkerFile = d.MarkerFile
	}
	if c.SourceExtension == "" {
		c.SourceExtension = d.SourceExtension
	}
	if c.ReportPath == "" {
		c.ReportPath = d.ReportPath
	}
	if c.ConvertersFile == "" {
		c.ConvertersFile = d.ConvertersFile
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.SourceExtension != "" && !strings.HasPrefix(c.SourceExtension, ".") {
		return fmt.Errorf("source_extension %q must start with a dot", c.SourceExtension)
	}

	if strings.ContainsAny(c.MarkerFile, `/\`) {
		return fmt.Errorf("marker_file %q must be a file name, not a path", c.MarkerFile)
	}

	for i, r := range c.SearchRoots {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("search_roots[%d] must not be empty", i)
		}
		if filepath.IsAbs(r) {
			return fmt.Errorf("search_roots[%d] %q must be relative to the project root", i, r)
		}
	}

	if filepath.IsAbs(c.FallbackRoot) {
		return fmt.Errorf("fallback_root %q must be relative to the project root", c.FallbackRoot)
	}

	for i, s := range c.Samples {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("samples[%d] must not be empty", i)
		}
	}

	for i, d := range c.ExcludeDirs {
		if strings.ContainsAny(d, `/\`) {
			return fmt.Errorf("exclude_dirs[%d] %q must be a directory name", i, d)
		}
	}

	return nil
}

// IsExcludedDir reports whether a directory name is listed in exclude_dirs.
func (c ProjectConfig) IsExcludedDir(name string) bool {
	for _, d := range c.ExcludeDirs {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}

// ResolveReportPath returns the absolute report location for a project root.
func (c ProjectConfig) ResolveReportPath(projectRoot string) string {
	if filepath.IsAbs(c.ReportPath) {
		return c.ReportPath
	}
	return filepath.Join(projectRoot, filepath.FromSlash(c.ReportPath))
}
