package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityconverters/samplereport/internal/adapters/inbound/cli"
	"github.com/unityconverters/samplereport/internal/adapters/outbound/config"
	"github.com/unityconverters/samplereport/internal/domain"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetOut(new(nopWriter))
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".samplereport.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "marker_file: Newtonsoft.Json.UnityConverters.Tests.asmdef")
	assert.Contains(t, string(data), "report_path: Assets/Samples-Content-Test-Report.md")

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".samplereport.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".samplereport.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetOut(new(nopWriter))
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".samplereport.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "search_roots:")
	assert.NotEqual(t, "old", string(data))
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }
