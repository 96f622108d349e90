// Package engine renders a resolved template into a destination tree.
//
// Every content file becomes one task: its path relative to the scan root is
// rendered, mapped under the destination and its content is rendered and
// written. Binary files keep their bytes. Render failures on a single file
// fall back to the unrendered text and never fail the run; write failures are
// reported and the first one is returned once every task has finished.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// Options tune the engine
type Options struct {
	// Concurrency caps the files processed at once; 0 means one goroutine per file
	Concurrency int
}

// Engine renders template configurations
type Engine struct {
	logger      zerolog.Logger
	renderer    types.Renderer
	fs          types.FS
	ui          types.UserInteraction
	concurrency int
}

// New creates an engine
func New(renderer types.Renderer, filesystem types.FS, ui types.UserInteraction, opts Options) *Engine {
	return &Engine{
		logger:      logging.GetLogger("engine"),
		renderer:    renderer,
		fs:          filesystem,
		ui:          ui,
		concurrency: opts.Concurrency,
	}
}

// task is one content file together with the specification governing it
type task struct {
	path string
	spec types.Specification
}

func tasks(cfg *types.TemplateConfiguration) []task {
	var out []task
	for _, u := range cfg.Units {
		for _, f := range u.Files {
			out = append(out, task{path: f, spec: u.Specification})
		}
	}
	return out
}

func (e *Engine) group() *errgroup.Group {
	g := &errgroup.Group{}
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	return g
}

// RenderAndPush renders every file of cfg under destination. Unless dryRun is
// set the destination is cleared first.
func (e *Engine) RenderAndPush(ctx context.Context, cfg *types.TemplateConfiguration, destination string, dryRun bool) error {
	done := logging.LogOperationStart(e.logger, "render")
	defer done()
	start := time.Now()

	destination = filepath.Clean(destination)
	if err := guardDestination(cfg.Root, destination); err != nil {
		return err
	}

	if !dryRun {
		if err := e.fs.RemoveAll(destination); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "unable to clear %s", destination).
				WithDetail("path", destination)
		}
		if err := e.fs.MkdirAll(destination, dirPerm); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "unable to create %s", destination).
				WithDetail("path", destination)
		}
	}

	g := e.group()
	for _, t := range tasks(cfg) {
		if ctx.Err() != nil {
			break
		}
		t := t
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := e.push(cfg, t, destination, dryRun)
			if err != nil {
				e.logger.Error().Err(err).Str("path", t.path).Msg("Failed to write file")
				e.ui.PrintError(err.Error())
			}
			return err
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return err
	}

	e.ui.Print(fmt.Sprintf("Files rendered in %dms", time.Since(start).Milliseconds()))
	return nil
}

func (e *Engine) push(cfg *types.TemplateConfiguration, t task, destination string, dryRun bool) error {
	logger := e.logger.With().Str("path", t.path).Logger()

	target, err := e.target(cfg.Root, t, cfg.Answers, destination)
	if err != nil {
		return err
	}

	if dryRun {
		logger.Debug().Str("target", target).Msg("Dry run")
		e.ui.Print(target)
		return nil
	}

	info, err := e.fs.Stat(t.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "unable to stat %s", t.path).WithDetail("path", t.path)
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = filePerm
	}

	if err := e.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "unable to create directory for %s", target).
			WithDetail("path", target)
	}
	if err := e.fs.WriteFile(target, nil, filePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "unable to create %s", target).WithDetail("path", target)
	}

	data, err := e.fs.ReadFile(t.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "unable to read %s", t.path).WithDetail("path", t.path)
	}

	if utf8.Valid(data) {
		rendered, err := e.renderer.Render(string(data), t.spec, cfg.Answers)
		if err != nil {
			logger.Warn().Err(err).Msg("Content render failed, keeping original content")
			rendered = string(data)
		}
		data = []byte(rendered)
	} else {
		logger.Trace().Msg("Binary file copied unchanged")
	}

	if err := e.fs.WriteFile(target, data, filePerm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "unable to write %s", target).WithDetail("path", target)
	}
	// The source mode goes on last so read-only sources can still be written.
	if mode != filePerm {
		if err := e.fs.Chmod(target, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "unable to set mode of %s", target).WithDetail("path", target)
		}
	}
	logger.Trace().Str("target", target).Msg("File rendered")
	return nil
}

// target renders the path of t relative to root and maps it under destination.
// A path render failure is reported and the unrendered path is used.
func (e *Engine) target(root string, t task, answers types.AnswerSet, destination string) (string, error) {
	rel, err := filepath.Rel(root, t.path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "%s is outside %s", t.path, root).WithDetail("path", t.path)
	}

	rendered, err := e.renderer.Render(rel, t.spec, answers)
	if err != nil {
		e.logger.Warn().Err(err).Str("path", t.path).Msg("Path render failed, keeping original path")
		e.ui.PrintError(fmt.Sprintf("While rendering path %s: %v", t.path, err))
		rendered = rel
	}

	target := filepath.Join(destination, rendered)
	if !within(destination, target) {
		return "", errors.Newf(errors.ErrInvalidInput, "rendered path %s escapes %s", target, destination).
			WithDetail("path", t.path)
	}
	return target, nil
}

// Check renders every path and content without writing and records every
// failure as an issue. It only returns an error when ctx is cancelled.
func (e *Engine) Check(ctx context.Context, cfg *types.TemplateConfiguration) (*types.CheckResult, error) {
	done := logging.LogOperationStart(e.logger, "check")
	defer done()

	all := tasks(cfg)
	results := make([]types.CheckResult, len(all))

	g := e.group()
	for i, t := range all {
		if ctx.Err() != nil {
			break
		}
		i, t := i, t
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			e.checkFile(cfg, t, &results[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &types.CheckResult{}
	for i := range results {
		result.Merge(&results[i])
	}
	e.logger.Debug().Int("files", len(all)).Int("issues", len(result.Issues)).Msg("Check finished")
	return result, nil
}

func (e *Engine) checkFile(cfg *types.TemplateConfiguration, t task, result *types.CheckResult) {
	rel, err := filepath.Rel(cfg.Root, t.path)
	if err != nil {
		rel = t.path
	}
	if _, err := e.renderer.Render(rel, t.spec, cfg.Answers); err != nil {
		result.Add(t.path, fmt.Sprintf("while rendering path: %v", err))
	}

	data, err := e.fs.ReadFile(t.path)
	if err != nil {
		result.Add(t.path, fmt.Sprintf("error while reading file: %v", err))
		return
	}
	if !utf8.Valid(data) {
		return
	}
	if _, err := e.renderer.Render(string(data), t.spec, cfg.Answers); err != nil {
		result.Add(t.path, fmt.Sprintf("while rendering content: %v", err))
	}
}

// guardDestination refuses destinations that would clear the template itself
func guardDestination(root, destination string) error {
	if root == "" {
		return nil
	}
	if within(destination, filepath.Clean(root)) {
		return errors.Newf(errors.ErrInvalidInput, "destination %s contains the template %s", destination, root).
			WithDetail("path", destination).
			WithAdvice("choose a destination outside the template directory")
	}
	return nil
}

// within reports whether path is base or lies below it
func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
