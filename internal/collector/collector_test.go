package collector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Berachem/reposcan/internal/collector"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
}

func TestCollectFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/main.go")
	writeFile(t, dir, "a/app.py")
	writeFile(t, dir, "README.md")     // extension not in allow-list
	writeFile(t, dir, "notes.txt")     // extension not in allow-list
	writeFile(t, dir, "sub/script.js") // nested, supported

	c := collector.New(nil)
	files, err := c.Collect(dir)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	require.Equal(t, []string{"a/app.py", "b/main.go", "sub/script.js"}, rels)
}

func TestCollectSkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/main.py")
	writeFile(t, dir, ".git/hooks/hook.py")
	writeFile(t, dir, "node_modules/pkg/index.js")
	writeFile(t, dir, "__pycache__/cached.py")
	writeFile(t, dir, "venv/lib/site.py")
	writeFile(t, dir, "build/out.go")
	writeFile(t, dir, "nested/dist/bundle.js")

	c := collector.New(nil)
	files, err := c.Collect(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "src/main.py", files[0].RelPath)
}

func TestCollectCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py")
	writeFile(t, dir, "b.go")

	c := collector.New([]string{".go"})
	files, err := c.Collect(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "b.go", files[0].RelPath)
}

func TestCollectRootNotFound(t *testing.T) {
	c := collector.New(nil)
	_, err := c.Collect(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, collector.ErrRootNotFound)
}

func TestCollectReportsSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py")

	c := collector.New(nil)
	files, err := c.Collect(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, int64(len("content\n")), files[0].Size)
}
