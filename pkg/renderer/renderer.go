// Package renderer holds the strategies that substitute answers into file
// names and file contents.
//
//   - literal: replaces bare tokens such as CREATORLY.name
//   - liquid: evaluates the input as a Liquid template, {{ creatorly.name }}
//   - gotemplate: evaluates the input with text/template, {{ .CREATORLY.name }}
//
// Every renderer is safe for concurrent use.
package renderer

import (
	"sort"
	"strings"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Renderer names accepted by New
const (
	NameLiteral    = "literal"
	NameLiquid     = "liquid"
	NameGoTemplate = "gotemplate"
)

// Names lists the available renderers
func Names() []string {
	return []string{NameLiquid, NameLiteral, NameGoTemplate}
}

// New returns the renderer registered under name
func New(name string) (types.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameLiteral:
		l, err := NewLiteral()
		if err != nil {
			return nil, err
		}
		return l, nil
	case NameLiquid:
		return NewLiquid(), nil
	case NameGoTemplate:
		return NewGoTemplate(), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown renderer %q", name).
			WithDetail("renderer", name).
			WithAdvice("use one of: " + strings.Join(Names(), ", "))
	}
}

// namespace builds the template data: every answer under the placeholder id
func namespace(spec types.Specification, answers types.AnswerSet) map[string]interface{} {
	values := make(map[string]interface{}, len(answers))
	for k, v := range answers {
		values[k] = v
	}

	data := map[string]interface{}{spec.ID(): values}
	if lower := strings.ToLower(spec.ID()); lower != spec.ID() {
		data[lower] = values
	}
	return data
}

func sortedKeys(answers types.AnswerSet) []string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
