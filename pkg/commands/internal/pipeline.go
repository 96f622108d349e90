// Package internal holds what the command flows share: collaborator
// defaults and the load-then-resolve pipeline.
package internal

import (
	"context"
	"os"

	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/filesystem"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/resolver"
	"github.com/arthur-debert/creatorly/pkg/specfile"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/arthur-debert/creatorly/pkg/ui/prompt"
)

// Collaborators are the pieces a flow talks to. Nil fields get production
// defaults from WithDefaults.
type Collaborators struct {
	Config *config.Config
	FS     types.FS
	UI     types.UserInteraction
	Store  types.SpecStore
}

// WithDefaults fills unset collaborators. The UI defaults to the
// interactive console unless nonInteractive is set.
func (c Collaborators) WithDefaults(nonInteractive bool) Collaborators {
	if c.Config == nil {
		c.Config = config.Default()
	}
	if c.FS == nil {
		c.FS = filesystem.NewOS()
	}
	if c.UI == nil {
		if nonInteractive {
			c.UI = prompt.NewDefaults()
		} else {
			c.UI = prompt.NewConsole()
		}
	}
	if c.Store == nil {
		c.Store = specfile.NewYAMLStore(c.FS)
	}
	return c
}

// RequireDir fails with NotFound unless path is an existing directory
func RequireDir(fs types.FS, path, advice string) error {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrNotFound, "path %s does not exist", path).
				WithDetail("path", path).
				WithAdvice(advice)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "unable to access %s", path).WithDetail("path", path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", path).WithDetail("path", path)
	}
	return nil
}

// LoadTemplate discovers the files at location and resolves them into a
// template configuration with an empty answer set
func LoadTemplate(ctx context.Context, loader types.FileLoader, c Collaborators, location string) (*types.TemplateConfiguration, error) {
	logger := logging.GetLogger("commands.internal.pipeline")

	list, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("root", list.Root).Int("files", len(list.Files)).Msg("Files discovered")

	cfg, err := resolver.New(c.Store, c.Config.Template.SpecFiles).Resolve(list)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("units", len(cfg.Units)).
		Int("files", cfg.FileCount()).
		Int("placeholders", cfg.PlaceholderCount()).
		Msg("Template resolved")
	return cfg, nil
}
