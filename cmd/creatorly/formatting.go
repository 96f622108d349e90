package creatorly

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/ui/styles"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !styles.IsTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(formatUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// FormatError renders a fatal error for the terminal, followed by the
// error's advice when it carries one
func FormatError(err error, color bool) string {
	msg := styles.Render("Error", fmt.Sprintf(MsgErrorFormat, err), color)
	if advice := errors.GetAdvice(err); advice != "" {
		msg += "\n" + styles.Render("Muted", fmt.Sprintf(MsgAdviceFormat, advice), color)
	}
	return msg
}
