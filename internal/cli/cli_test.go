package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/calcpdf/internal/config"
	"github.com/lvillar/calcpdf/pageops"
)

const dataset = "../../model/testdata/dataset.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKindsCommand(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	assert.Equal(t, "calculation\nlog\nmargins\nproducts\nstates\ntasks\n", out)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	attachment := filepath.Join(dir, "states.pdf")
	_, err := execute(t, "render", "states", "--data", dataset, "--out", attachment)
	require.NoError(t, err)

	out := filepath.Join(dir, "calculation.pdf")
	_, err = execute(t, "render", "calculation", "--data", dataset, "--id", "12", "--out", out, "--attach", attachment)
	require.NoError(t, err)

	calcPages, err := pageops.PageCount(out)
	require.NoError(t, err)
	statesPages, err := pageops.PageCount(attachment)
	require.NoError(t, err)
	assert.Greater(t, calcPages, statesPages)
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, "render", "products", "--data", dataset, "--out", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
}

func TestRenderCommandErrors(t *testing.T) {
	_, err := execute(t, "render", "state", "--data", dataset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "states"?`)

	_, err = execute(t, "render", "states")
	assert.Error(t, err)

	_, err = execute(t, "render", "calculation", "--data", dataset)
	assert.Error(t, err)

	_, err = execute(t, "render", "states", "--data", dataset, "--log-level", "verbose")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = execute(t, "kinds", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultFilename(t *testing.T) {
	assert.Equal(t, "calculation-12.pdf", defaultFilename("calculation", 12))
	assert.Equal(t, "states.pdf", defaultFilename("states", 0))
}

const noteTemplate = `
title: Note
pages:
  - elements:
      - {type: heading, text: Garden wall}
      - {type: paragraph, text: Delivered on Monday.}
`

func TestTemplateCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "note.yaml")
	require.NoError(t, os.WriteFile(in, []byte(noteTemplate), 0o644))

	_, err := execute(t, "template", in)
	require.NoError(t, err)
	n, err := pageops.PageCount(filepath.Join(dir, "note.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pages: [{elements: [{type: banner}]}]"), 0o644))
	_, err = execute(t, "template", bad)
	assert.Error(t, err)
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.yaml")
	require.NoError(t, os.WriteFile(path, []byte(noteTemplate), 0o644))

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rendered := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func() error {
			rendered <- struct{}{}
			return nil
		}, logger)
	}()

	// give the watcher time to start, then change the template until it
	// reacts
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-rendered:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(noteTemplate+"\n"), 0o644))
		case <-deadline:
			t.Fatal("template change not detected")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "calculation.pdf")
	second := filepath.Join(dir, "products.pdf")
	_, err := execute(t, "render", "calculation", "--data", dataset, "--id", "13", "--out", first)
	require.NoError(t, err)
	_, err = execute(t, "render", "products", "--data", dataset, "--out", second)
	require.NoError(t, err)

	merged := filepath.Join(dir, "merged.pdf")
	_, err = execute(t, "merge", merged, first, second)
	require.NoError(t, err)
	n, err := pageops.PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stamped := filepath.Join(dir, "stamped.pdf")
	_, err = execute(t, "merge", stamped, first, second, "--stamp", "COPY", "--numbered")
	require.NoError(t, err)
	n, err = pageops.PageCount(stamped)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = execute(t, "merge", merged)
	assert.Error(t, err)
}

func TestServeStops(t *testing.T) {
	logger, hook := test.NewNullLogger()
	a := &app{cfg: config.Default(), logger: logger}
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, serve(ctx, srv, a))
	assert.Equal(t, "Server stopped.", hook.LastEntry().Message)
}

func TestMCPCommand(t *testing.T) {
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"mcp", "--data", dataset})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "render_report")
}
