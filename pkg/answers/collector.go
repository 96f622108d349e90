// Package answers collects one answer per placeholder key across all units
// of a template configuration.
package answers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Collector asks the user for every placeholder without an answer yet
type Collector struct {
	ui      types.UserInteraction
	lenient bool
}

// Options configures a Collector
type Options struct {
	// LenientSelection makes a non-numeric selection pick the first option
	// instead of failing. Out-of-range numbers fail either way.
	LenientSelection bool
}

// NewCollector returns a collector prompting through ui
func NewCollector(ui types.UserInteraction, opts Options) *Collector {
	return &Collector{ui: ui, lenient: opts.LenientSelection}
}

// Collect fills cfg.Answers. Units are visited in order, placeholders in
// declaration order; a key already answered is not asked again.
func (c *Collector) Collect(cfg *types.TemplateConfiguration) error {
	logger := logging.GetLogger("answers")
	if cfg.Answers == nil {
		cfg.Answers = types.AnswerSet{}
	}

	for _, unit := range cfg.Units {
		for _, p := range unit.Specification.Placeholders {
			if cfg.Answers.Has(p.Key) {
				logger.Trace().Str("key", p.Key).Msg("Already answered, skipping")
				continue
			}

			answer, err := c.ask(p)
			if err != nil {
				return err
			}
			cfg.Answers.SetIfAbsent(p.Key, answer)
			logger.Debug().Str("key", p.Key).Str("answer", answer).Msg("Answer collected")
		}
	}
	return nil
}

func (c *Collector) ask(p types.Placeholder) (string, error) {
	if p.Choice.IsMultiple() {
		return c.askSelection(p.Key, p.Choice.Options)
	}
	return c.askInput(p.Key, p.Choice.Default)
}

func (c *Collector) askInput(key, def string) (string, error) {
	raw, err := c.ui.GetInput(InputPrompt(key, def), def)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to read answer for %s", key).
			WithDetail("key", key)
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (c *Collector) askSelection(key string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.Newf(errors.ErrValidation, "placeholder %s has no options", key).
			WithDetail("key", key)
	}

	raw, err := c.ui.GetSelection(SelectionPrompt(key, options), options)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to read selection for %s", key).
			WithDetail("key", key)
	}

	idx, err := ParseSelection(raw, len(options), c.lenient)
	if err != nil {
		if ce, ok := err.(*errors.CreatorlyError); ok {
			return "", ce.WithDetail("key", key)
		}
		return "", err
	}
	return options[idx], nil
}

// ParseSelection converts a 1-based selection to a 0-based index.
// Non-numeric input is an error unless lenient, in which case it picks the
// first option. Numbers outside 1..count are always an error.
func ParseSelection(raw string, count int, lenient bool) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		if lenient {
			return 0, nil
		}
		return 0, errors.Newf(errors.ErrOutOfRange, "selection %q is not a number between 1 and %d", trimmed, count).
			WithDetail("selection", trimmed)
	}
	if n < 1 || n > count {
		return 0, errors.Newf(errors.ErrOutOfRange, "selection %d is out of range 1..%d", n, count).
			WithDetail("selection", n)
	}
	return n - 1, nil
}

// InputPrompt is the prompt shown for a single choice, e.g. "name (demo)"
func InputPrompt(key, def string) string {
	return fmt.Sprintf("%s (%s)", key, def)
}

// SelectionPrompt is the prompt shown for a multiple choice,
// e.g. "license (1: MIT 2: BSD)"
func SelectionPrompt(key string, options []string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprintf("%d: %s", i+1, o)
	}
	return fmt.Sprintf("%s (%s)", key, strings.Join(parts, " "))
}
