package renderer

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

const literalCacheSize = 256

// Literal replaces every occurrence of ID+Delimiter+key that is bounded by
// non-word characters. Matching is case-sensitive.
type Literal struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewLiteral returns a literal renderer with an empty pattern cache
func NewLiteral() (*Literal, error) {
	cache, err := lru.New[string, *regexp.Regexp](literalCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create pattern cache")
	}
	return &Literal{cache: cache}, nil
}

// Render implements types.Renderer
func (l *Literal) Render(input string, spec types.Specification, answers types.AnswerSet) (string, error) {
	output := input
	for _, key := range sortedKeys(answers) {
		token := spec.Token(key)
		if !strings.Contains(output, token) {
			continue
		}
		re, err := l.pattern(token)
		if err != nil {
			return input, err
		}
		output = re.ReplaceAllLiteralString(output, answers[key])
	}
	return output, nil
}

func (l *Literal) pattern(token string) (*regexp.Regexp, error) {
	if re, ok := l.cache.Get(token); ok {
		return re, nil
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(token) + `\b`)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "invalid token %q", token).
			WithDetail("token", token)
	}
	l.cache.Add(token, re)
	return re, nil
}
