package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/creatorly/pkg/filesystem"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// CreateFileT creates a file and its parent directories
func CreateFileT(t *testing.T, fs types.FS, path, content string) {
	t.Helper()
	CreateBytesT(t, fs, path, []byte(content))
}

// CreateBytesT creates a file with raw content
func CreateBytesT(t *testing.T, fs types.FS, path string, content []byte) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fs.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// CreateTreeT creates every file of tree under root; keys are slash-separated
// paths relative to root
func CreateTreeT(t *testing.T, fs types.FS, root string, tree map[string]string) {
	t.Helper()

	if err := fs.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}
	for rel, content := range tree {
		CreateFileT(t, fs, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
}

// ReadFileT returns the content of path, failing the test if it can't be read
func ReadFileT(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// ListFilesT returns every regular file under root as sorted slash-separated
// relative paths
func ListFilesT(t *testing.T, fs types.FS, root string) []string {
	t.Helper()

	var files []string
	err := fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}

// ListAbsT returns every regular file under root as sorted absolute paths
func ListAbsT(t *testing.T, fs types.FS, root string) []string {
	t.Helper()

	rel := ListFilesT(t, fs, root)
	abs := make([]string, len(rel))
	for i, r := range rel {
		abs[i] = filepath.Join(root, filepath.FromSlash(r))
	}
	return abs
}
