package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/filesystem"
	"github.com/arthur-debert/creatorly/pkg/renderer"
	"github.com/arthur-debert/creatorly/pkg/testutil"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0xff, 0xfe, 'C', 'R', 'E', 'A', 'T', 'O', 'R', 'L', 'Y', '.', 'n'}

// failingRenderer wraps another renderer and fails on inputs containing BROKEN
type failingRenderer struct {
	next types.Renderer
}

func (f failingRenderer) Render(input string, spec types.Specification, answers types.AnswerSet) (string, error) {
	if strings.Contains(input, "BROKEN") {
		return input, errors.New(errors.ErrRender, "broken input")
	}
	return f.next.Render(input, spec, answers)
}

// failingWriteFS refuses writes to one path
type failingWriteFS struct {
	types.FS
	path string
}

func (f failingWriteFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if name == f.path {
		return fmt.Errorf("disk full")
	}
	return f.FS.WriteFile(name, data, perm)
}

func literal(t *testing.T) types.Renderer {
	t.Helper()
	r, err := renderer.NewLiteral()
	require.NoError(t, err)
	return r
}

func spec(keys ...string) types.Specification {
	var s types.Specification
	for _, k := range keys {
		s.Add(k, types.NewSingleChoice(""))
	}
	return s
}

func config(root string, answers types.AnswerSet, files ...string) *types.TemplateConfiguration {
	abs := make([]string, len(files))
	for i, f := range files {
		abs[i] = filepath.Join(root, filepath.FromSlash(f))
	}
	return &types.TemplateConfiguration{
		Root: root,
		Units: []types.TemplateUnit{{
			RootPath:      root,
			SpecPath:      filepath.Join(root, "creatorly.yml"),
			Specification: spec("name", "author"),
			Files:         abs,
		}},
		Answers: answers,
	}
}

func TestRenderAndPush(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateTreeT(t, fsys, "/tpl", map[string]string{
		"creatorly.yml":              "placeholders:\n  name: demo\n",
		"CREATORLY.name/main.go":     "package CREATORLY.name\n// by CREATORLY.author\n",
		"README.md":                  "# CREATORLY.name",
		"docs/CREATORLY.name.txt":    "plain",
		"CREATORLY.name/CREATORLY.x": "unknown key stays",
	})
	testutil.CreateBytesT(t, fsys, "/tpl/CREATORLY.name/logo.png", pngBytes)
	testutil.CreateFileT(t, fsys, "/out/stale.txt", "old")

	cfg := config("/tpl", types.AnswerSet{"name": "app", "author": "Max"},
		"CREATORLY.name/main.go", "README.md", "docs/CREATORLY.name.txt",
		"CREATORLY.name/CREATORLY.x", "CREATORLY.name/logo.png")

	ui := testutil.NewScriptedUI()
	err := New(literal(t), fsys, ui, Options{}).RenderAndPush(context.Background(), cfg, "/out", false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"README.md",
		"app/CREATORLY.x",
		"app/logo.png",
		"app/main.go",
		"docs/app.txt",
	}, testutil.ListFilesT(t, fsys, "/out"))

	assert.Equal(t, "package app\n// by Max\n", testutil.ReadFileT(t, fsys, "/out/app/main.go"))
	assert.Equal(t, "# app", testutil.ReadFileT(t, fsys, "/out/README.md"))
	assert.Equal(t, "unknown key stays", testutil.ReadFileT(t, fsys, "/out/app/CREATORLY.x"))
	assert.Equal(t, string(pngBytes), testutil.ReadFileT(t, fsys, "/out/app/logo.png"))

	require.Len(t, ui.Messages, 1)
	assert.Contains(t, ui.Messages[0], "Files rendered in")
	assert.Empty(t, ui.Errors)
}

func TestRenderAndPushLiquid(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateTreeT(t, fsys, "/tpl", map[string]string{
		"{{ creatorly.name }}/go.mod": "module {{ creatorly.name }}\n{% if creatorly.author %}// {{ creatorly.author | upcase }}{% endif %}",
	})
	cfg := config("/tpl", types.AnswerSet{"name": "svc", "author": "max"}, "{{ creatorly.name }}/go.mod")

	err := New(renderer.NewLiquid(), fsys, testutil.NewScriptedUI(), Options{Concurrency: 1}).
		RenderAndPush(context.Background(), cfg, "/out", false)
	require.NoError(t, err)
	assert.Equal(t, "module svc\n// MAX", testutil.ReadFileT(t, fsys, "/out/svc/go.mod"))
}

func TestRenderAndPushRecoversRenderFailures(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateTreeT(t, fsys, "/tpl", map[string]string{
		"BROKEN-CREATORLY.name.txt": "CREATORLY.name",
		"content.txt":               "BROKEN CREATORLY.name",
		"ok.txt":                    "CREATORLY.name",
	})
	cfg := config("/tpl", types.AnswerSet{"name": "app"}, "BROKEN-CREATORLY.name.txt", "content.txt", "ok.txt")

	ui := testutil.NewScriptedUI()
	err := New(failingRenderer{literal(t)}, fsys, ui, Options{}).RenderAndPush(context.Background(), cfg, "/out", false)
	require.NoError(t, err)

	// the path falls back to the original name, the content still renders
	assert.Equal(t, "app", testutil.ReadFileT(t, fsys, "/out/BROKEN-CREATORLY.name.txt"))
	assert.Equal(t, "BROKEN CREATORLY.name", testutil.ReadFileT(t, fsys, "/out/content.txt"))
	assert.Equal(t, "app", testutil.ReadFileT(t, fsys, "/out/ok.txt"))

	require.Len(t, ui.Errors, 1)
	assert.Contains(t, ui.Errors[0], "While rendering path /tpl/BROKEN-CREATORLY.name.txt")
}

func TestRenderAndPushBinaryNameStillRendered(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateBytesT(t, fsys, "/tpl/CREATORLY.name.png", pngBytes)
	cfg := config("/tpl", types.AnswerSet{"name": "icon"}, "CREATORLY.name.png")

	err := New(literal(t), fsys, testutil.NewScriptedUI(), Options{}).RenderAndPush(context.Background(), cfg, "/out", false)
	require.NoError(t, err)

	data, err := fsys.ReadFile("/out/icon.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestRenderAndPushDryRun(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateTreeT(t, fsys, "/tpl", map[string]string{
		"a/CREATORLY.name.txt": "x",
		"b.txt":                "y",
	})
	cfg := config("/tpl", types.AnswerSet{"name": "app"}, "a/CREATORLY.name.txt", "b.txt")

	ui := testutil.NewScriptedUI()
	err := New(literal(t), fsys, ui, Options{}).RenderAndPush(context.Background(), cfg, "/out", true)
	require.NoError(t, err)

	_, err = fsys.Stat("/out")
	assert.True(t, os.IsNotExist(err))

	require.Len(t, ui.Messages, 3)
	assert.ElementsMatch(t, []string{"/out/a/app.txt", "/out/b.txt"}, ui.Messages[:2])
	assert.Contains(t, ui.Messages[2], "Files rendered in")
}

func TestRenderAndPushRejectsDestinationAroundTemplate(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateFileT(t, fsys, "/work/tpl/a.txt", "a")
	cfg := config("/work/tpl", types.AnswerSet{}, "a.txt")

	for _, dest := range []string{"/work/tpl", "/work", "/work/tpl/"} {
		err := New(literal(t), fsys, testutil.NewScriptedUI(), Options{}).RenderAndPush(context.Background(), cfg, dest, false)
		require.Error(t, err, dest)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), dest)
	}
	assert.Equal(t, "a", testutil.ReadFileT(t, fsys, "/work/tpl/a.txt"))
}

func TestRenderAndPushRejectsEscapingPath(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateFileT(t, fsys, "/tpl/CREATORLY.name.txt", "x")
	testutil.CreateFileT(t, fsys, "/tpl/safe.txt", "y")
	cfg := config("/tpl", types.AnswerSet{"name": "../../evil"}, "CREATORLY.name.txt", "safe.txt")

	ui := testutil.NewScriptedUI()
	err := New(literal(t), fsys, ui, Options{}).RenderAndPush(context.Background(), cfg, "/out/dest", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.Equal(t, "y", testutil.ReadFileT(t, fsys, "/out/dest/safe.txt"))
	_, err = fsys.Stat("/evil.txt")
	assert.True(t, os.IsNotExist(err))
	assert.Len(t, ui.Errors, 1)
}

func TestRenderAndPushWriteFailureKeepsSiblings(t *testing.T) {
	mem := testutil.NewTestFS()
	testutil.CreateTreeT(t, mem, "/tpl", map[string]string{
		"a.txt": "a",
		"b.txt": "b",
		"c.txt": "c",
	})
	fsys := failingWriteFS{FS: mem, path: "/out/b.txt"}
	cfg := config("/tpl", types.AnswerSet{}, "a.txt", "b.txt", "c.txt")

	ui := testutil.NewScriptedUI()
	err := New(literal(t), fsys, ui, Options{Concurrency: 2}).RenderAndPush(context.Background(), cfg, "/out", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	assert.Equal(t, "a", testutil.ReadFileT(t, mem, "/out/a.txt"))
	assert.Equal(t, "c", testutil.ReadFileT(t, mem, "/out/c.txt"))
	assert.Len(t, ui.Errors, 1)
}

func TestRenderAndPushCancelled(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateFileT(t, fsys, "/tpl/a.txt", "a")
	cfg := config("/tpl", types.AnswerSet{}, "a.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(literal(t), fsys, testutil.NewScriptedUI(), Options{}).RenderAndPush(ctx, cfg, "/out", false)
	require.ErrorIs(t, err, context.Canceled)

	_, err = fsys.Stat("/out/a.txt")
	assert.True(t, os.IsNotExist(err))
}

func TestRenderAndPushPreservesMode(t *testing.T) {
	root := t.TempDir()
	tpl := filepath.Join(root, "tpl")
	require.NoError(t, os.MkdirAll(tpl, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "run-CREATORLY.name.sh"), []byte("echo CREATORLY.name"), 0755))

	fsys := filesystem.NewOS()
	cfg := config(tpl, types.AnswerSet{"name": "app"}, "run-CREATORLY.name.sh")
	dest := filepath.Join(root, "out")

	err := New(literal(t), fsys, testutil.NewScriptedUI(), Options{}).RenderAndPush(context.Background(), cfg, dest, false)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "run-app.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dest, "run-app.sh"))
	require.NoError(t, err)
	assert.Equal(t, "echo app", string(data))
}

func TestRenderAndPushReadOnlySources(t *testing.T) {
	root := t.TempDir()
	tpl := filepath.Join(root, "tpl")
	require.NoError(t, os.MkdirAll(tpl, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "LICENSE"), []byte("Copyright CREATORLY.name"), 0444))
	require.NoError(t, os.WriteFile(filepath.Join(tpl, "setup.sh"), []byte("echo CREATORLY.name"), 0555))

	fsys := filesystem.NewOS()
	cfg := config(tpl, types.AnswerSet{"name": "app"}, "LICENSE", "setup.sh")
	dest := filepath.Join(root, "out")
	eng := New(literal(t), fsys, testutil.NewScriptedUI(), Options{})

	// The second run clears a destination holding read-only files.
	for i := 0; i < 2; i++ {
		require.NoError(t, eng.RenderAndPush(context.Background(), cfg, dest, false))
	}

	tests := []struct {
		name    string
		content string
		mode    fs.FileMode
	}{
		{"LICENSE", "Copyright app", 0444},
		{"setup.sh", "echo app", 0555},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dest, tt.name)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, info.Mode().Perm())
		})
	}
}

func TestCheckCollectsEveryIssue(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateTreeT(t, fsys, "/tpl", map[string]string{
		"BROKEN.txt":  "fine",
		"content.txt": "BROKEN",
		"both-BROKEN": "BROKEN",
		"ok.txt":      "CREATORLY.name",
	})
	testutil.CreateBytesT(t, fsys, "/tpl/BROKEN.bin", append([]byte("BROKEN"), 0xff, 0xfe))
	cfg := config("/tpl", types.AnswerSet{"name": "x"},
		"BROKEN.txt", "content.txt", "both-BROKEN", "ok.txt", "missing.txt", "BROKEN.bin")

	result, err := New(failingRenderer{literal(t)}, fsys, testutil.NewScriptedUI(), Options{}).Check(context.Background(), cfg)
	require.NoError(t, err)
	require.False(t, result.IsValid())

	var got []string
	for _, issue := range result.Issues {
		got = append(got, filepath.Base(issue.Path)+" "+strings.SplitN(issue.Message, ":", 2)[0])
	}
	assert.Equal(t, []string{
		"BROKEN.txt while rendering path",
		"content.txt while rendering content",
		"both-BROKEN while rendering path",
		"both-BROKEN while rendering content",
		"missing.txt error while reading file",
		"BROKEN.bin while rendering path",
	}, got)

	_, err = fsys.Stat("/out")
	assert.True(t, os.IsNotExist(err))
}

func TestCheckValid(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.CreateFileT(t, fsys, "/tpl/{{ creatorly.name }}.txt", "{{ creatorly.name }}")
	cfg := config("/tpl", types.AnswerSet{"name": "x"}, "{{ creatorly.name }}.txt")

	result, err := New(renderer.NewLiquid(), fsys, testutil.NewScriptedUI(), Options{Concurrency: 4}).Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, result.IsValid())
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/out", "/out"))
	assert.True(t, within("/out", "/out/a/b"))
	assert.True(t, within("/out", "/out/..a"))
	assert.False(t, within("/out", "/outside"))
	assert.False(t, within("/out", "/"))
	assert.False(t, within("/out/a", "/out/b"))
}
