// Package loader discovers the files of a template, either from a local
// directory or from a git repository cloned first.
package loader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// LocalLoader walks a directory and lists every regular file under it
type LocalLoader struct {
	fs         types.FS
	ignoreDirs map[string]bool
}

// NewLocalLoader returns a loader skipping directories named in ignoreDirs
func NewLocalLoader(fs types.FS, ignoreDirs []string) *LocalLoader {
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = true
	}
	return &LocalLoader{fs: fs, ignoreDirs: ignore}
}

// Load lists the files under location in lexical order
func (l *LocalLoader) Load(ctx context.Context, location string) (types.FileList, error) {
	logger := logging.GetLogger("loader.local")
	root := filepath.Clean(location)

	info, err := l.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return types.FileList{}, errors.Newf(errors.ErrNotFound, "path %s does not exist", root).
				WithDetail("path", root)
		}
		return types.FileList{}, errors.Wrapf(err, errors.ErrFileAccess, "unable to access %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return types.FileList{}, errors.Newf(errors.ErrInvalidInput, "path %s is not a directory", root).
			WithDetail("path", root)
	}

	list := types.FileList{Root: root}
	err = l.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			if path != root && l.ignoreDirs[info.Name()] {
				logger.Trace().Str("dir", path).Msg("Skipping ignored directory")
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		list.Files = append(list.Files, path)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.FileList{}, ctx.Err()
		}
		return types.FileList{}, errors.Wrapf(err, errors.ErrIO, "unable to walk %s", root).
			WithDetail("path", root)
	}

	logger.Debug().
		Str("root", root).
		Int("files", len(list.Files)).
		Msg("Template files discovered")
	return list, nil
}
