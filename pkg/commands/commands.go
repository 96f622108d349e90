// Package commands provides the command implementations behind the CLI.
//
// Each command lives in its own subdirectory:
//   - generate/  - render a local or git template into a destination
//   - check/     - validate a template without writing anything
//   - create/    - write or complete a specification file from a directory
//   - genconfig/ - print or write the configuration file
//   - internal/  - collaborator defaults and the load-then-resolve pipeline
//
// This file re-exports the entry points so the CLI depends on one package.
package commands

import (
	"context"

	"github.com/arthur-debert/creatorly/pkg/commands/check"
	"github.com/arthur-debert/creatorly/pkg/commands/create"
	"github.com/arthur-debert/creatorly/pkg/commands/generate"
	"github.com/arthur-debert/creatorly/pkg/commands/genconfig"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Generate renders a template into a destination directory.
type GenerateOptions = generate.Options

func Generate(ctx context.Context, opts GenerateOptions) (*generate.Result, error) {
	return generate.Run(ctx, opts)
}

// Check validates a template and returns every issue found.
type CheckOptions = check.Options

func Check(ctx context.Context, opts CheckOptions) (*types.CheckResult, error) {
	return check.Run(ctx, opts)
}

// Create writes or updates the specification file of a directory.
type CreateOptions = create.Options

func Create(ctx context.Context, opts CreateOptions) (*create.Result, error) {
	return create.Run(ctx, opts)
}

// GenConfig prints or writes the configuration file.
type GenConfigOptions = genconfig.Options

func GenConfig(opts GenConfigOptions) (*genconfig.Result, error) {
	return genconfig.GenConfig(opts)
}
