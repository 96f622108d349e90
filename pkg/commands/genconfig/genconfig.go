// Package genconfig prints or writes creatorly's configuration file.
package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/filesystem"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/paths"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Options holds options for the config command
type Options struct {
	// Config is the effective configuration to print; nil means the defaults
	Config *config.Config
	// Defaults prints the embedded defaults with every value commented out
	Defaults bool
	// Write saves the content to Path instead of only returning it
	Write bool
	// Path defaults to the user config file
	Path string
	FS   types.FS
}

// Result holds the generated content and the file written, if any
type Result struct {
	Content     string
	FileWritten string
}

// GenConfig renders the configuration and optionally writes it. An existing
// file is never overwritten.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &Result{}
	if opts.Defaults {
		result.Content = config.GenerateConfigContent()
	} else {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.Default()
		}
		content, err := config.Generate(cfg)
		if err != nil {
			return nil, err
		}
		result.Content = content
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	target := opts.Path
	if target == "" {
		target = paths.ConfigFilePath()
	}

	if _, err := fs.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", target).
			WithDetail("path", target)
	}
	if err := fs.WriteFile(target, []byte(result.Content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FileWritten = target
	return result, nil
}
