package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CloneFunc clones url at branch into dir
type CloneFunc func(ctx context.Context, url, branch, dir string, depth int) error

// GitLoader clones a repository into a working directory and then lists its
// files like LocalLoader, without the .git directory.
type GitLoader struct {
	fs       types.FS
	local    *LocalLoader
	branch   string
	cloneDir string
	depth    int

	// Clone defaults to a go-git clone; tests replace it
	Clone CloneFunc
}

// GitOptions configures a GitLoader
type GitOptions struct {
	Branch     string
	CloneDir   string
	Depth      int
	IgnoreDirs []string
}

// NewGitLoader returns a loader cloning into opts.CloneDir/<repository name>
func NewGitLoader(fs types.FS, opts GitOptions) *GitLoader {
	ignore := append([]string{".git"}, opts.IgnoreDirs...)
	return &GitLoader{
		fs:       fs,
		local:    NewLocalLoader(fs, ignore),
		branch:   opts.Branch,
		cloneDir: opts.CloneDir,
		depth:    opts.Depth,
		Clone:    goGitClone,
	}
}

// Load clones location, replacing any previous clone, and lists its files
func (g *GitLoader) Load(ctx context.Context, location string) (types.FileList, error) {
	logger := logging.GetLogger("loader.git")

	name := RepositoryName(location)
	if name == "" {
		return types.FileList{}, errors.Newf(errors.ErrInvalidInput, "cannot derive a repository name from %q", location).
			WithDetail("url", location)
	}
	dest := filepath.Join(g.cloneDir, name)

	if err := g.fs.RemoveAll(dest); err != nil {
		return types.FileList{}, errors.Wrapf(err, errors.ErrIO, "failed to remove previous clone %s", dest).
			WithDetail("path", dest)
	}
	if err := g.fs.MkdirAll(g.cloneDir, 0755); err != nil {
		return types.FileList{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", g.cloneDir).
			WithDetail("path", g.cloneDir)
	}

	logger.Info().
		Str("url", location).
		Str("branch", g.branch).
		Str("dest", dest).
		Msg("Cloning template repository")

	if err := g.Clone(ctx, location, g.branch, dest, g.depth); err != nil {
		return types.FileList{}, errors.Wrapf(err, errors.ErrClone, "git clone of %s failed", location).
			WithDetail("url", location).
			WithDetail("branch", g.branch)
	}

	return g.local.Load(ctx, dest)
}

// RepositoryName returns the last path segment of a git URL without ".git"
func RepositoryName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimSuffix(trimmed, ".git")
}

func goGitClone(ctx context.Context, url, branch, dir string, depth int) error {
	opts := &git.CloneOptions{
		URL:               url,
		SingleBranch:      true,
		Depth:             depth,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	_, err := git.PlainCloneContext(ctx, dir, false, opts)
	return err
}
