package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/scanner"
	"github.com/unityconverters/samplereport/internal/domain"
)

const marker = domain.DefaultMarkerFile

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func newProject(t *testing.T) string {
	t.Helper()
	root, err := scanner.Canonical(t.TempDir())
	require.NoError(t, err)
	return root
}

func relPaths(roots []domain.SampleRoot) []string {
	var out []string
	for _, r := range roots {
		out = append(out, r.RelativePath)
	}
	return out
}

func TestLocate_FindsMarkerInBothSearchRoots(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Assets/Samples/Basic/"+marker, "{}")
	writeFile(t, root, "Packages/com.example/Tests/"+marker, "{}")
	writeFile(t, root, "Library/PackageCache/cached/"+marker, "{}")

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Assets/Samples/Basic", "Packages/com.example/Tests"}, relPaths(roots))
	for _, r := range roots {
		assert.True(t, filepath.IsAbs(r.Path))
	}
}

func TestLocate_FallbackOnlyWhenPrimaryFindsNothing(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Library/PackageCache/com.example@1.0.0/Samples/"+marker, "{}")

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Library/PackageCache/com.example@1.0.0/Samples"}, relPaths(roots))
}

func TestLocate_FallbackIsNotPerDirectory(t *testing.T) {
	// Packages is empty but Assets has a sample, so the fallback stays unused.
	root := newProject(t)
	writeFile(t, root, "Assets/Samples/"+marker, "{}")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Packages"), 0755))
	writeFile(t, root, "Library/PackageCache/other/"+marker, "{}")

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Samples"}, relPaths(roots))
}

func TestLocate_MissingCandidatesAreSkipped(t *testing.T) {
	root := newProject(t)

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestLocate_DeduplicatesOverlappingRoots(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Assets/Samples/Basic/"+marker, "{}")

	roots, err := scanner.New().Locate(root, domain.ProjectConfig{
		SearchRoots: []string{"Assets", "Assets/Samples"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Samples/Basic"}, relPaths(roots))
}

func TestLocate_DeduplicatesIgnoringCase(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Assets/Sample/"+marker, "{}")
	writeFile(t, root, "Assets/sample/"+marker, "{}")

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestLocate_MarkerNameIgnoresCase(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Assets/S/newtonsoft.json.unityconverters.tests.ASMDEF", "{}")

	roots, err := scanner.New().Locate(root, domain.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/S"}, relPaths(roots))
}

func TestLocate_ExcludedDirsAreNotSearched(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "Assets/Samples/"+marker, "{}")
	writeFile(t, root, "Assets/Ignored/Samples/"+marker, "{}")

	cfg := domain.DefaultConfig()
	cfg.ExcludeDirs = []string{"Ignored"}
	roots, err := scanner.New().Locate(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/Samples"}, relPaths(roots))
}

func TestListSources_FiltersAndSorts(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "b.cs", "class B {}")
	writeFile(t, root, "A.cs", "class A {}")
	writeFile(t, root, "Scripts/c.CS", "class C {}")
	writeFile(t, root, "Scripts/notes.txt", "text")
	writeFile(t, root, "Scripts/c.cs.meta", "meta")

	files, err := scanner.New().ListSources(root, ".cs", nil)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		rel = append(rel, scanner.RelativeSlash(root, f))
	}
	assert.Equal(t, []string{"A.cs", "b.cs", "Scripts/c.CS"}, rel)
}

func TestListSources_Empty(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "readme.md", "# hi")

	files, err := scanner.New().ListSources(root, ".cs", nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListSources_MissingRootErrors(t *testing.T) {
	_, err := scanner.New().ListSources(filepath.Join(t.TempDir(), "gone"), ".cs", nil)
	assert.Error(t, err)
}

func TestReadSource_StripsBOM(t *testing.T) {
	root := newProject(t)
	p := writeFile(t, root, "Bom.cs", "\xEF\xBB\xBF")

	content, err := scanner.New().ReadSource(p)
	require.NoError(t, err)
	assert.Empty(t, content)
}
