// Package prompt provides the types.UserInteraction implementations used by
// the CLI: an interactive console backed by pterm and a non-interactive
// variant that accepts every default.
package prompt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Printer writes styled messages; it is the output half of both UIs
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	err   io.Writer
	color bool
}

// NewPrinter writes messages to out and errors to errOut
func NewPrinter(out, errOut io.Writer, color bool) *Printer {
	return &Printer{out: out, err: errOut, color: color}
}

// Print writes msg as is
func (p *Printer) Print(msg string) {
	p.write(p.out, msg)
}

// PrintSuccess writes msg in the success style
func (p *Printer) PrintSuccess(msg string) {
	p.write(p.out, styles.Render("Success", msg, p.color))
}

// PrintError writes msg in the error style to the error stream
func (p *Printer) PrintError(msg string) {
	p.write(p.err, styles.Render("Error", msg, p.color))
}

func (p *Printer) write(w io.Writer, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(w, msg)
}

// Console asks questions on the terminal
type Console struct {
	*Printer
}

// NewConsole returns a console UI on stdout and stderr
func NewConsole() *Console {
	return &Console{Printer: NewPrinter(os.Stdout, os.Stderr, styles.ColorEnabled(os.Stdout))}
}

// GetInput shows a text prompt prefilled with def
func (c *Console) GetInput(prompt, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		Show(styles.Render("Prompt", prompt, c.color))
}

// GetSelection shows an arrow-key menu and returns the 1-based index of the
// chosen option as text
func (c *Console) GetSelection(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", prompt)
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(options[0]).
		Show(styles.Render("Prompt", prompt, c.color))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(IndexOf(options, choice) + 1), nil
}

// Defaults answers every question with its default without asking.
// Selections pick the first option.
type Defaults struct {
	*Printer
}

// NewDefaults returns a non-interactive UI writing to stdout and stderr
func NewDefaults() *Defaults {
	return &Defaults{Printer: NewPrinter(os.Stdout, os.Stderr, styles.ColorEnabled(os.Stdout))}
}

// GetInput returns def
func (d *Defaults) GetInput(prompt, def string) (string, error) {
	logger := logging.GetLogger("prompt")
	logger.Debug().Str("prompt", prompt).Str("answer", def).Msg("Using default answer")
	return def, nil
}

// GetSelection returns "1"
func (d *Defaults) GetSelection(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", prompt)
	}
	logger := logging.GetLogger("prompt")
	logger.Debug().Str("prompt", prompt).Str("answer", options[0]).Msg("Using first option")
	return "1", nil
}

// IndexOf returns the position of choice in options, or 0 when absent
func IndexOf(options []string, choice string) int {
	for i, o := range options {
		if o == choice {
			return i
		}
	}
	return 0
}
