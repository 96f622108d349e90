package config

import (
	"fmt"

	"github.com/arthur-debert/creatorly/pkg/errors"
)

// Config is the effective application configuration
type Config struct {
	Template TemplateConfig `koanf:"template" toml:"template"`
	Render   RenderConfig   `koanf:"render" toml:"render"`
	Answers  AnswersConfig  `koanf:"answers" toml:"answers"`
	Git      GitConfig      `koanf:"git" toml:"git"`
}

// TemplateConfig controls template discovery
type TemplateConfig struct {
	SpecFiles  []string `koanf:"spec_files" toml:"spec_files"`
	IgnoreDirs []string `koanf:"ignore_dirs" toml:"ignore_dirs"`
}

// RenderConfig controls the render engine
type RenderConfig struct {
	Renderer    string `koanf:"renderer" toml:"renderer"`
	Concurrency int    `koanf:"concurrency" toml:"concurrency"`
}

// AnswersConfig controls answer collection
type AnswersConfig struct {
	LenientSelection bool `koanf:"lenient_selection" toml:"lenient_selection"`
}

// GitConfig controls the git loader
type GitConfig struct {
	Branch   string `koanf:"branch" toml:"branch"`
	CloneDir string `koanf:"clone_dir" toml:"clone_dir"`
	Depth    int    `koanf:"depth" toml:"depth"`
}

// Validate checks values that decoding alone cannot catch
func (c *Config) Validate() error {
	if len(c.Template.SpecFiles) == 0 {
		return errors.New(errors.ErrConfigParse, "template.spec_files must name at least one file")
	}
	if c.Render.Renderer == "" {
		return errors.New(errors.ErrConfigParse, "render.renderer must not be empty")
	}
	if c.Render.Concurrency < 0 {
		return errors.New(errors.ErrConfigParse, fmt.Sprintf("render.concurrency must be >= 0, got %d", c.Render.Concurrency)).
			WithDetail("concurrency", c.Render.Concurrency)
	}
	if c.Git.Depth < 0 {
		return errors.New(errors.ErrConfigParse, fmt.Sprintf("git.depth must be >= 0, got %d", c.Git.Depth)).
			WithDetail("depth", c.Git.Depth)
	}
	return nil
}
