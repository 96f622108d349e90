// Package check validates a template without writing anything: every
// specification file is checked against the schema and every path and
// content is rendered with the default answers.
package check

import (
	"context"

	"github.com/arthur-debert/creatorly/pkg/answers"
	"github.com/arthur-debert/creatorly/pkg/commands/internal"
	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/engine"
	"github.com/arthur-debert/creatorly/pkg/loader"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/renderer"
	"github.com/arthur-debert/creatorly/pkg/specfile"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/arthur-debert/creatorly/pkg/ui/prompt"
)

// Options holds options for the check command
type Options struct {
	Path     string
	Renderer string

	Config *config.Config
	FS     types.FS
	UI     types.UserInteraction
	Store  types.SpecStore
}

// Run checks the template at opts.Path. Problems found in the template are
// returned as issues; the error is for checks that could not run.
func Run(ctx context.Context, opts Options) (*types.CheckResult, error) {
	logger := logging.GetLogger("commands.check")
	c := internal.Collaborators{Config: opts.Config, FS: opts.FS, UI: opts.UI, Store: opts.Store}.
		WithDefaults(true)

	if err := internal.RequireDir(c.FS, opts.Path, "pass the directory of an existing template"); err != nil {
		return nil, err
	}

	name := opts.Renderer
	if name == "" {
		name = c.Config.Render.Renderer
	}
	r, err := renderer.New(name)
	if err != nil {
		return nil, err
	}

	cfg, err := internal.LoadTemplate(ctx, loader.NewLocalLoader(c.FS, c.Config.Template.IgnoreDirs), c, opts.Path)
	if err != nil {
		return nil, err
	}

	result := &types.CheckResult{}
	for _, u := range cfg.Units {
		issues, err := specfile.ValidateFile(c.FS, u.SpecPath)
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			result.Add(u.SpecPath, issue.String())
		}
	}

	defaults := answers.NewCollector(prompt.NewDefaults(), answers.Options{LenientSelection: true})
	if err := defaults.Collect(cfg); err != nil {
		return nil, err
	}

	rendered, err := engine.New(r, c.FS, c.UI, engine.Options{Concurrency: c.Config.Render.Concurrency}).Check(ctx, cfg)
	if err != nil {
		return nil, err
	}
	result.Merge(rendered)

	logger.Info().
		Str("path", opts.Path).
		Int("files", cfg.FileCount()).
		Int("issues", len(result.Issues)).
		Msg("Template checked")
	return result, nil
}
