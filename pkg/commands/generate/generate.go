// Package generate renders a template, local or cloned from git, into a
// destination directory.
package generate

import (
	"context"
	"fmt"

	"github.com/arthur-debert/creatorly/pkg/answers"
	"github.com/arthur-debert/creatorly/pkg/commands/internal"
	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/engine"
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/loader"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/paths"
	"github.com/arthur-debert/creatorly/pkg/renderer"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Source is where the template comes from
type Source string

const (
	SourceLocal Source = "local"
	SourceGit   Source = "git"
)

// Options holds options for the generate command
type Options struct {
	Source Source
	// Location is a directory for SourceLocal and a repository URL for SourceGit
	Location    string
	Destination string
	DryRun      bool

	// Git settings; empty values fall back to the configuration
	Branch   string
	CloneDir string

	// Renderer overrides the configured renderer when set
	Renderer       string
	NonInteractive bool

	Config *config.Config
	FS     types.FS
	UI     types.UserInteraction
	Store  types.SpecStore
	// Loader replaces the loader derived from Source
	Loader types.FileLoader
}

// Result summarizes a generate run
type Result struct {
	Destination  string
	Files        int
	Placeholders int
	Answers      types.AnswerSet
}

// Run loads the template, asks for the answers and renders every file
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.generate")
	c := internal.Collaborators{Config: opts.Config, FS: opts.FS, UI: opts.UI, Store: opts.Store}.
		WithDefaults(opts.NonInteractive)

	logger.Debug().
		Str("source", string(opts.Source)).
		Str("location", opts.Location).
		Str("destination", opts.Destination).
		Bool("dryRun", opts.DryRun).
		Msg("Starting generate")

	if opts.Destination == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no destination given").
			WithAdvice("pass --destination-path")
	}

	name := opts.Renderer
	if name == "" {
		name = c.Config.Render.Renderer
	}
	r, err := renderer.New(name)
	if err != nil {
		return nil, err
	}

	l, err := fileLoader(opts, c)
	if err != nil {
		return nil, err
	}

	cfg, err := internal.LoadTemplate(ctx, l, c, opts.Location)
	if err != nil {
		return nil, err
	}

	collector := answers.NewCollector(c.UI, answers.Options{LenientSelection: c.Config.Answers.LenientSelection})
	if err := collector.Collect(cfg); err != nil {
		return nil, err
	}

	eng := engine.New(r, c.FS, c.UI, engine.Options{Concurrency: c.Config.Render.Concurrency})
	if err := eng.RenderAndPush(ctx, cfg, opts.Destination, opts.DryRun); err != nil {
		return nil, err
	}

	result := &Result{
		Destination:  opts.Destination,
		Files:        cfg.FileCount(),
		Placeholders: cfg.PlaceholderCount(),
		Answers:      cfg.Answers,
	}

	c.UI.Print(fmt.Sprintf("%d placeholder(s), %d file(s)", result.Placeholders, result.Files))
	if opts.DryRun {
		c.UI.PrintSuccess(fmt.Sprintf("Dry run complete, nothing written to %s", opts.Destination))
	} else {
		c.UI.PrintSuccess(fmt.Sprintf("Project generated in %s", opts.Destination))
	}
	return result, nil
}

func fileLoader(opts Options, c internal.Collaborators) (types.FileLoader, error) {
	if opts.Loader != nil {
		return opts.Loader, nil
	}

	switch opts.Source {
	case SourceLocal, "":
		if err := internal.RequireDir(c.FS, opts.Location, "pass an existing template directory with --template-path"); err != nil {
			return nil, err
		}
		return loader.NewLocalLoader(c.FS, c.Config.Template.IgnoreDirs), nil
	case SourceGit:
		gitOpts := loader.GitOptions{
			Branch:     opts.Branch,
			CloneDir:   opts.CloneDir,
			Depth:      c.Config.Git.Depth,
			IgnoreDirs: c.Config.Template.IgnoreDirs,
		}
		if gitOpts.Branch == "" {
			gitOpts.Branch = c.Config.Git.Branch
		}
		if gitOpts.CloneDir == "" {
			gitOpts.CloneDir = c.Config.Git.CloneDir
		}
		if gitOpts.CloneDir == "" {
			gitOpts.CloneDir = paths.CloneDir()
		}
		return loader.NewGitLoader(c.FS, gitOpts), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown template source %q", opts.Source).
			WithAdvice("use local or git")
	}
}
