package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/markup/internal/errors"
	"github.com/courseforge/markup/pkg/markup"
	"github.com/courseforge/markup/pkg/pages"
)

// execute runs the CLI with a config path that does not exist, so every
// command starts from the defaults.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "markup.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRenderFromStdin(t *testing.T) {
	out, err := execute(t, `["p", {class: x}, "a < b"]`, "render")
	require.NoError(t, err)
	assert.Equal(t, "<p class=\"x\">a &lt; b</p>\n", out)

	out, err = execute(t, `["p", "hi"]`, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>\n", out)
}

func TestRenderJSON(t *testing.T) {
	file := writeFile(t, t.TempDir(), "page.yaml", "- div\n- {class: c, hidden: true}\n- Hello\n- [span, World]\n")

	out, err := execute(t, "", "render", "--format", "json", file)
	require.NoError(t, err)
	assert.Equal(t, `["div",{"class":"c","hidden":true},"Hello",["span","World"]]`+"\n", out)

	out, err = execute(t, "", "render", "--format", "json", "--indent", file)
	require.NoError(t, err)
	assert.JSONEq(t, `["div",{"class":"c","hidden":true},"Hello",["span","World"]]`, out)
	assert.Contains(t, out, "\n  ")
}

func TestRenderMinify(t *testing.T) {
	out, err := execute(t, `["p", "a    b"]`, "render", "--minify")
	require.NoError(t, err)
	assert.Equal(t, "<p>a b</p>\n", out)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  error
	}{
		{"void tag with children", `["br", "x"]`, nil, markup.ErrVoidTagHasChildren},
		{"depth limit", `["div", ["div", ["div"]]]`, []string{"--max-depth", "1"}, markup.ErrDepthExceeded},
		{"unknown component", `["@Card"]`, nil, errors.New(errors.CodeUnknownComponent)},
		{"malformed document", `["p", `, nil, errors.New(errors.CodeDocumentDecode)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, append([]string{"render"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := execute(t, `["p"]`, "render", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestRenderMissingFile(t *testing.T) {
	_, err := execute(t, "", "render", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "[p, fine]")
	bad := writeFile(t, dir, "bad.json", `["div", ["img", "child"]]`)

	out, err := execute(t, "", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, good)

	out, err = execute(t, "", "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed")
	assert.Contains(t, out, bad+": div > img: M010: ")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "markup.yaml")
	assert.FileExists(t, filepath.Join(dir, "markup.yaml"))

	_, err = execute(t, "", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "init", "--force", dir)
	require.NoError(t, err)

	out, err = execute(t, "", "render", filepath.Join(dir, "pages", "index.yaml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<!doctype html><html><head><meta charset="utf-8"><title>markup</title></head>`), out)

	store, err := pages.NewDirStore(filepath.Join(dir, "pages"))
	require.NoError(t, err)
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, names)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, `["p"]`, "--log-level", "loud", "render")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New(errors.CodeConfigInvalid)), "got %v", err)
}

func TestServeMissingPages(t *testing.T) {
	_, err := execute(t, "", "serve", "--pages", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New(errors.CodeStoreFailure)), "got %v", err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}
