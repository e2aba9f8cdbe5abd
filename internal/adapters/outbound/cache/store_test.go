package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/cache"
	"github.com/unityconverters/samplereport/internal/domain"
)

func cachedReport() *domain.Report {
	sc := domain.NewScriptReport("Widget.cs", "Scripts", []domain.CheckResult{
		{Name: "file is not empty", Required: true, Passed: true, Detail: "ok"},
	})
	return &domain.Report{
		GeneratedAt:     time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Generator:       "samplereport dev",
		ProjectRoot:     "/project",
		ReportPath:      "Assets/Samples-Content-Test-Report.md",
		SourceExtension: ".cs",
		Summary:         domain.Summary{SampleFolders: 1, Folders: 1, Scripts: 1, Passed: 1},
		Samples: []domain.SampleReport{{
			SamplePath: "Assets/Samples/Basic",
			Folders:    []domain.FolderReport{{Folder: "Scripts", Scripts: []domain.ScriptReport{sc}}},
		}},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	dir := t.TempDir()
	original := cachedReport()

	require.NoError(t, store.Save(dir, original))

	loaded, err := store.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, original.GeneratedAt.Equal(loaded.GeneratedAt))
	assert.Equal(t, original.Summary, loaded.Summary)
	assert.Equal(t, original.Samples, loaded.Samples)
	assert.Equal(t, original.ReportPath, loaded.ReportPath)
}

func TestStore_LoadNonExistent(t *testing.T) {
	loaded, err := cache.New().Load(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	dir := t.TempDir()

	require.NoError(t, store.Save(dir, cachedReport()))
	require.NoError(t, store.Invalidate(dir))
	require.NoError(t, store.Invalidate(dir))

	loaded, err := store.Load(dir)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".samplereport")
	cacheDir := filepath.Join(dir, "cache")
	_, err := os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, cache.New().Save(dir, cachedReport()))

	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
