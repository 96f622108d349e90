// Package create writes or completes the specification file of a directory
// from the placeholders its files already use.
package create

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/creatorly/pkg/commands/internal"
	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/extract"
	"github.com/arthur-debert/creatorly/pkg/loader"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/resolver"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// SpecFileName is the file written when a directory has no specification yet
const SpecFileName = "creatorly.yml"

// Options holds options for the create command
type Options struct {
	EntryDir       string
	NonInteractive bool

	Config *config.Config
	FS     types.FS
	UI     types.UserInteraction
	Store  types.SpecStore
}

// Result describes the specification file written
type Result struct {
	SpecPath string
	// Created is false when an existing file was updated
	Created bool
	// Added lists the placeholder keys added, in order
	Added []string
}

// Run scans opts.EntryDir for placeholders. When a specification file sits
// directly in the entry directory only keys it lacks are asked for and
// appended; otherwise every key is asked for and creatorly.yml is written.
// Specification files anywhere in the tree are not scanned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.create")
	c := internal.Collaborators{Config: opts.Config, FS: opts.FS, UI: opts.UI, Store: opts.Store}.
		WithDefaults(opts.NonInteractive)
	names := c.Config.Template.SpecFiles

	if err := internal.RequireDir(c.FS, opts.EntryDir, "pass an existing directory with --entry-dir"); err != nil {
		return nil, err
	}

	list, err := loader.NewLocalLoader(c.FS, c.Config.Template.IgnoreDirs).Load(ctx, opts.EntryDir)
	if err != nil {
		return nil, err
	}
	content := list.Files[:0:0]
	for _, f := range list.Files {
		if !resolver.IsSpecFile(f, names) {
			content = append(content, f)
		}
	}
	list.Files = content
	if len(list.Files) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no files found in %s", list.Root).
			WithDetail("path", list.Root).
			WithAdvice("run in a directory with files")
	}

	result := &Result{SpecPath: existingSpec(c.FS, list.Root, names)}
	var spec types.Specification
	if result.SpecPath != "" {
		c.UI.Print(fmt.Sprintf("%s found, it will only update with the new placeholders", filepath.Base(result.SpecPath)))
		if spec, err = c.Store.Load(result.SpecPath); err != nil {
			return nil, err
		}
	} else {
		c.UI.Print(fmt.Sprintf("No %s found, it will be created", SpecFileName))
		result.SpecPath = filepath.Join(list.Root, SpecFileName)
		result.Created = true
	}

	keys, err := extract.New(c.FS).Extract(list, spec)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if spec.Has(key) {
			continue
		}
		raw, err := c.UI.GetInput(fmt.Sprintf("default answer for %s (comma separated for a choice)", key), key)
		if err != nil {
			return nil, err
		}
		choice, err := extract.ParseDefaultAnswer(key, raw)
		if err != nil {
			return nil, err
		}
		spec.Add(key, choice)
		result.Added = append(result.Added, key)
	}

	if !result.Created && len(result.Added) == 0 {
		c.UI.PrintSuccess(fmt.Sprintf("%s is up to date", result.SpecPath))
		return result, nil
	}

	if err := c.Store.Save(result.SpecPath, spec); err != nil {
		return nil, err
	}

	logger.Info().
		Str("spec", result.SpecPath).
		Bool("created", result.Created).
		Strs("added", result.Added).
		Msg("Specification written")

	verb := "updated"
	if result.Created {
		verb = "created"
	}
	c.UI.PrintSuccess(fmt.Sprintf("%s %s in %s", verb, filepath.Base(result.SpecPath), list.Root))
	return result, nil
}

// existingSpec returns the specification file directly inside dir, if any
func existingSpec(fs types.FS, dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := fs.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
