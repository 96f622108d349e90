// Package extract finds the placeholder keys a template already uses, so a
// specification file can be written or completed from them.
package extract

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Extractor scans file names and contents for placeholder tokens
type Extractor struct {
	fs types.FS
}

// New returns an extractor reading through fs
func New(fs types.FS) *Extractor {
	return &Extractor{fs: fs}
}

// Pattern returns the expression matching spec's tokens. Group 1 holds the
// key of an exact-case token such as CREATORLY.name. Group 2 holds the key of
// a token whose id is written in any case inside a {{ }} or {% %} tag, so
// {{ creatorly.name }} is found while prose like "edit creatorly.yml" is not.
func Pattern(spec types.Specification) *regexp.Regexp {
	id := spec.ID()
	boundary := ""
	if r, _ := utf8.DecodeRuneInString(id); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		boundary = `\b`
	}
	token := regexp.QuoteMeta(id) + regexp.QuoteMeta(spec.Delimiter()) + `(\w+)`
	tagged := `\{[{%]-?[^{}%]*?` + boundary + `(?i:` + regexp.QuoteMeta(id) + `)` +
		regexp.QuoteMeta(spec.Delimiter()) + `(\w+)`
	return regexp.MustCompile(boundary + token + `|` + tagged)
}

// Extract returns the distinct keys found in list, in order of first
// appearance over the files sorted by path. For each file the path relative
// to list.Root is scanned before the content; binary content is skipped.
// Keys are not sorted alphabetically; prompts follow the order
// the template uses them.
// Finding no key at all is an ErrNoPlaceholders error.
func (e *Extractor) Extract(list types.FileList, spec types.Specification) ([]string, error) {
	logger := logging.GetLogger("extract")
	re := Pattern(spec)

	files := append([]string(nil), list.Files...)
	sort.Strings(files)

	seen := make(map[string]bool)
	var keys []string
	collect := func(text string) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			key := m[1]
			if key == "" {
				key = m[2]
			}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	for _, f := range files {
		collect(relative(list.Root, f))

		data, err := e.fs.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "unable to read %s", f).
				WithDetail("path", f)
		}
		if !utf8.Valid(data) {
			logger.Trace().Str("path", f).Msg("Skipping binary file")
			continue
		}
		collect(string(data))
	}

	if len(keys) == 0 {
		return nil, errors.New(errors.ErrNoPlaceholders, "no placeholders found").
			WithAdvice("add {{ creatorly.<name> }} to your files or file names")
	}

	logger.Debug().Strs("keys", keys).Int("files", len(files)).Msg("Placeholders extracted")
	return keys, nil
}

// ParseDefaultAnswer turns a comma-separated answer into a choice: one value
// is a single choice with that default, several are the options of a
// multiple choice. Parts are trimmed and empty parts dropped.
func ParseDefaultAnswer(key, raw string) (types.Choice, error) {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return types.Choice{}, errors.Newf(errors.ErrValidation, "no default answer provided for %s", key).
			WithDetail("key", key)
	case 1:
		return types.NewSingleChoice(parts[0]), nil
	default:
		return types.NewMultipleChoice(parts...), nil
	}
}

func relative(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
