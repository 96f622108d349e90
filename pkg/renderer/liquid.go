package renderer

import (
	"regexp"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/osteele/liquid"
)

var liquidIdent = regexp.MustCompile(`^[A-Za-z_][\w-]*$`)

// Liquid renders input as a Liquid template. Answers are reachable as
// {{ CREATORLY.key }} and, for an upper-case id, {{ creatorly.key }}.
// Undefined variables are errors.
type Liquid struct {
	engine *liquid.Engine
}

// NewLiquid returns a Liquid renderer with strict variables
func NewLiquid() *Liquid {
	engine := liquid.NewEngine()
	engine.StrictVariables()
	return &Liquid{engine: engine}
}

// Render implements types.Renderer
func (l *Liquid) Render(input string, spec types.Specification, answers types.AnswerSet) (string, error) {
	tpl, err := l.engine.ParseString(input)
	if err != nil {
		return input, errors.Wrap(err, errors.ErrRender, "failed to parse liquid template")
	}

	out, err := tpl.RenderString(liquid.Bindings(liquidBindings(spec, answers)))
	if err != nil {
		return input, errors.Wrap(err, errors.ErrRender, "failed to render liquid template")
	}
	return out, nil
}

// liquidBindings namespaces the answers under the id. With a delimiter other
// than "." each full token is also bound on its own when it is a valid
// variable name, so TPL__name works for delimiter "__".
func liquidBindings(spec types.Specification, answers types.AnswerSet) map[string]interface{} {
	data := namespace(spec, answers)
	if spec.Delimiter() == "." {
		return data
	}
	for k, v := range answers {
		if token := spec.Token(k); liquidIdent.MatchString(token) {
			data[token] = v
		}
	}
	return data
}
