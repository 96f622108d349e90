package renderer

import (
	"strings"
	"text/template"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// GoTemplate renders input with text/template; answers are reachable as
// {{ .CREATORLY.key }}. Missing keys are errors.
type GoTemplate struct{}

// NewGoTemplate returns a text/template renderer
func NewGoTemplate() *GoTemplate {
	return &GoTemplate{}
}

// Render implements types.Renderer
func (g *GoTemplate) Render(input string, spec types.Specification, answers types.AnswerSet) (string, error) {
	tpl, err := template.New("creatorly").Option("missingkey=error").Parse(input)
	if err != nil {
		return input, errors.Wrap(err, errors.ErrRender, "failed to parse template")
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, namespace(spec, answers)); err != nil {
		return input, errors.Wrap(err, errors.ErrRender, "failed to execute template")
	}
	return buf.String(), nil
}
