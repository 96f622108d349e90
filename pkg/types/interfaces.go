package types

import (
	"context"
	"io/fs"
	"path/filepath"
)

// FS is the filesystem interface required for creatorly operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// FileLoader discovers the files of a template at a location
type FileLoader interface {
	Load(ctx context.Context, location string) (FileList, error)
}

// SpecStore reads and writes specification files
type SpecStore interface {
	Load(path string) (Specification, error)
	Save(path string, spec Specification) error
}

// UserInteraction is how flows talk to the person running them.
// GetSelection returns the raw response: a 1-based option index as text.
type UserInteraction interface {
	Print(msg string)
	PrintSuccess(msg string)
	PrintError(msg string)
	GetInput(prompt, def string) (string, error)
	GetSelection(prompt string, options []string) (string, error)
}

// Renderer substitutes answers into a string.
// Implementations must be safe for concurrent use.
type Renderer interface {
	Render(input string, spec Specification, answers AnswerSet) (string, error)
}
