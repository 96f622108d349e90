package specfile

import (
	"strings"
	"testing"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/testutil"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSpec = `placeholders:
  project_name: my-project
  description: A short description
  author_name: Jane Doe
  port: 8080
  license:
    - MIT
    - Apache-2.0
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(sampleSpec))
	require.NoError(t, err)

	assert.Equal(t, []string{"project_name", "description", "author_name", "port", "license"}, spec.Keys())
	assert.Equal(t, "CREATORLY", spec.ID())
	assert.Equal(t, ".", spec.Delimiter())

	port, ok := spec.Lookup("port")
	require.True(t, ok)
	assert.Equal(t, types.NewSingleChoice("8080"), port)

	license, ok := spec.Lookup("license")
	require.True(t, ok)
	assert.Equal(t, types.NewMultipleChoice("MIT", "Apache-2.0"), license)
}

func TestParseCustomToken(t *testing.T) {
	spec, err := Parse([]byte("placeholder_id: TPL\nplaceholder_delimiter: \"__\"\nplaceholders:\n  name: x\n"))
	require.NoError(t, err)

	assert.Equal(t, "TPL", spec.PlaceholderID)
	assert.Equal(t, "__", spec.PlaceholderDelimiter)
	assert.Equal(t, "TPL__name", spec.Token("name"))
}

func TestParseEmpty(t *testing.T) {
	for _, doc := range []string{"", "# only a comment\n", "placeholders:\n", "placeholders: {}\n"} {
		spec, err := Parse([]byte(doc))
		require.NoError(t, err, doc)
		assert.True(t, spec.IsEmpty(), doc)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.ErrorCode
	}{
		{"invalid yaml", "placeholders: [", errors.ErrSpecParse},
		{"root is a list", "- a\n- b\n", errors.ErrSpecParse},
		{"placeholders is a list", "placeholders:\n  - a\n", errors.ErrSpecParse},
		{"nested mapping", "placeholders:\n  name:\n    nested: x\n", errors.ErrSpecParse},
		{"null value", "placeholders:\n  name:\n", errors.ErrSpecParse},
		{"empty option list", "placeholders:\n  license: []\n", errors.ErrValidation},
		{"non scalar option", "placeholders:\n  license:\n    - [a]\n", errors.ErrSpecParse},
		{"id is a list", "placeholder_id: [a]\nplaceholders: {}\n", errors.ErrSpecParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var spec types.Specification
	spec.Add("zeta", types.NewSingleChoice("last-letter"))
	spec.Add("alpha", types.NewSingleChoice("8080"))
	spec.Add("license", types.NewMultipleChoice("MIT", "BSD"))
	spec.Add("flag", types.NewSingleChoice("true"))

	data, err := Marshal(spec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "placeholder_id")
	assert.NotContains(t, string(data), "placeholder_delimiter")

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, spec, parsed)
	// declaration order survives, it is not sorted
	assert.Equal(t, []string{"zeta", "alpha", "license", "flag"}, parsed.Keys())
}

func TestMarshalKeepsCustomToken(t *testing.T) {
	spec := types.Specification{PlaceholderID: "TPL", PlaceholderDelimiter: "-"}
	spec.Add("name", types.NewSingleChoice("x"))

	data, err := Marshal(spec)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, spec, parsed)
}

func TestYAMLStore(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.CreateFileT(t, fs, "/tpl/creatorly.yml", sampleSpec)
	store := NewYAMLStore(fs)

	spec, err := store.Load("/tpl/creatorly.yml")
	require.NoError(t, err)
	assert.Len(t, spec.Placeholders, 5)

	spec.Add("extra", types.NewSingleChoice("value"))
	require.NoError(t, store.Save("/tpl/creatorly.yml", spec))

	reloaded, err := store.Load("/tpl/creatorly.yml")
	require.NoError(t, err)
	assert.Equal(t, spec, reloaded)

	_, err = store.Load("/tpl/missing.yml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))

	testutil.CreateFileT(t, fs, "/tpl/broken.yml", "placeholders: [")
	_, err = store.Load("/tpl/broken.yml")
	require.Error(t, err)
	assert.Equal(t, "/tpl/broken.yml", errors.GetErrorDetails(err)["path"])
}

func TestYAMLStoreSaveKeepsComments(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.CreateFileT(t, fs, "/tpl/creatorly.yml", `# Project template
placeholders:
  # shown in the README title
  name: demo # lower case only
  license: [MIT, BSD]
  stale: gone
`)
	store := NewYAMLStore(fs)

	spec, err := store.Load("/tpl/creatorly.yml")
	require.NoError(t, err)
	spec.Placeholders = spec.Placeholders[:2]
	spec.Add("license", types.NewMultipleChoice("Apache-2.0", "MIT"))
	spec.Add("port", types.NewSingleChoice("8080"))
	require.NoError(t, store.Save("/tpl/creatorly.yml", spec))

	content := testutil.ReadFileT(t, fs, "/tpl/creatorly.yml")
	assert.Contains(t, content, "# Project template")
	assert.Contains(t, content, "# shown in the README title")
	assert.Contains(t, content, "# lower case only")
	assert.NotContains(t, content, "stale")

	reloaded, err := store.Load("/tpl/creatorly.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "license", "port"}, reloaded.Keys())
	license, _ := reloaded.Lookup("license")
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, license.Options)
}

func TestMergeRejectsNonMapping(t *testing.T) {
	_, err := Merge([]byte("- a\n- b\n"), types.Specification{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSpecParse))

	data, err := Merge([]byte("placeholders:\n"), specWith("name", "x"))
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, parsed.Keys())
}

func specWith(key, def string) types.Specification {
	var spec types.Specification
	spec.Add(key, types.NewSingleChoice(def))
	return spec
}

func TestValidate(t *testing.T) {
	issues, err := Validate([]byte(sampleSpec))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = Validate([]byte("placeholders: ~\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateReportsIssues(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"missing placeholders", "placeholder_id: X\n", ""},
		{"unknown top-level key", "placeholders: {}\nplaceholder: x\n", ""},
		{"nested value", "placeholders:\n  name:\n    nested: x\n", "/placeholders/name"},
		{"empty option list", "placeholders:\n  license: []\n", "/placeholders/license"},
		{"bad key", "placeholders:\n  bad-key: x\n", "/placeholders"},
		{"empty id", "placeholder_id: \"\"\nplaceholders: {}\n", "/placeholder_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := Validate([]byte(tt.doc))
			require.NoError(t, err)
			require.NotEmpty(t, issues)

			found := false
			for _, issue := range issues {
				assert.NotEmpty(t, issue.Message)
				if strings.HasPrefix(issue.Path, tt.wantPath) {
					found = true
				}
			}
			assert.True(t, found, "no issue under %q in %v", tt.wantPath, issues)
		})
	}
}

func TestValidateFile(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.CreateFileT(t, fs, "/tpl/creatorly.yaml", "placeholders: [")

	_, err := ValidateFile(fs, "/tpl/creatorly.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSpecParse))

	_, err = ValidateFile(fs, "/tpl/none.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}
