package creatorly

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args in an isolated config and state directory
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CREATORLY_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNoCommand(t *testing.T) {
	out, _, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, MsgErrNoCommand, err.Error())
	assert.Contains(t, out, "generate")
}

func TestGenerateLocal(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "tpl")
	dest := filepath.Join(dir, "out")
	writeTree(t, tpl, map[string]string{
		"creatorly.yml":         "placeholders:\n  name: billing\n  license: [MIT, BSD]\n",
		"CREATORLY.name/app.go": "package CREATORLY.name // CREATORLY.license",
	})

	out, _, err := execute(t, "generate", "local", "-t", tpl, "-d", dest, "--yes", "--renderer", "literal")
	require.NoError(t, err)

	assert.Equal(t, "package billing // MIT", readFile(t, filepath.Join(dest, "billing", "app.go")))
	assert.Contains(t, out, "Project generated in "+dest)
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "tpl")
	dest := filepath.Join(dir, "out")
	writeTree(t, tpl, map[string]string{
		"creatorly.yml":            "placeholders:\n  name: billing\n",
		"{{ creatorly.name }}.txt": "{{ creatorly.name }}",
	})

	out, _, err := execute(t, "generate", "local", "--template-path", tpl, "--destination-path", dest, "--dry-run", "-y")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(dest, "billing.txt"))
	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateRequiresFlags(t *testing.T) {
	_, _, err := execute(t, "generate", "local", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")

	_, _, err = execute(t, "generate", "git", "-d", t.TempDir(), "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote-path")
}

func TestGenerateMissingTemplate(t *testing.T) {
	_, _, err := execute(t, "generate", "local", "-t", filepath.Join(t.TempDir(), "nope"), "-d", t.TempDir(), "--yes")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Contains(t, FormatError(err, false), "Hint: ")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "good"), map[string]string{
		"creatorly.yml": "placeholders:\n  name: x\n",
		"a.txt":         "{{ creatorly.name }}",
	})
	writeTree(t, filepath.Join(dir, "bad"), map[string]string{
		"creatorly.yml": "placeholders:\n  name: x\n",
		"a.txt":         "{% if %}",
		"b.txt":         "{{ nope }}",
	})

	out, _, err := execute(t, "check", filepath.Join(dir, "good"))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, errOut, err := execute(t, "check", filepath.Join(dir, "bad"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
	assert.Contains(t, errOut, "has 2 issue(s)")
	assert.Contains(t, errOut, "a.txt")
	assert.Contains(t, errOut, "b.txt")

	_, _, err = execute(t, "check", filepath.Join(dir, "bad"), "--renderer", "literal")
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md": "# {{ creatorly.project }}",
	})

	out, _, err := execute(t, "create", "--entry-dir", dir, "--yes")
	require.NoError(t, err)

	assert.Regexp(t, `project:\s+["']?project`, readFile(t, filepath.Join(dir, "creatorly.yml")))
	assert.Contains(t, out, "No creatorly.yml found, it will be created")
	assert.Contains(t, out, "created creatorly.yml in "+dir)
}

func TestConfig(t *testing.T) {
	t.Run("flags override", func(t *testing.T) {
		out, _, err := execute(t, "config", "--renderer", "literal", "--concurrency", "3")
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`renderer = ['"]literal['"]`), out)
		assert.Contains(t, out, "concurrency = 3")
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("CREATORLY_RENDER_CONCURRENCY", "7")
		out, _, err := execute(t, "config")
		require.NoError(t, err)
		assert.Contains(t, out, "concurrency = 7")
	})

	t.Run("defaults", func(t *testing.T) {
		out, _, err := execute(t, "config", "--defaults")
		require.NoError(t, err)
		assert.Contains(t, out, "# renderer")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, _, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "none.toml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("negative concurrency", func(t *testing.T) {
		_, _, err := execute(t, "config", "--concurrency", "-1")
		require.Error(t, err)
	})
}

func TestVersionManCompletion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "creatorly dev")

	out, _, err = execute(t, "man")
	require.NoError(t, err)
	assert.Contains(t, out, ".TH")
	assert.Contains(t, out, "CREATORLY")

	out, _, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "creatorly")

	_, _, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "no specification found").WithAdvice("add a creatorly.yml file")
	assert.Equal(t, "Error: [NOT_FOUND] no specification found\nHint: add a creatorly.yml file", FormatError(err, false))

	assert.Equal(t, "Error: file already closed", FormatError(os.ErrClosed, false))
}
