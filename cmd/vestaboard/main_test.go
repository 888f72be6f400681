package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1set/vestaboard"
	"github.com/1set/vestaboard/internal/fakeboard"
)

func runCLI(t *testing.T, srv *fakeboard.Server, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	lookup := mapEnv(map[string]string{
		envAPIKey:    "key",
		envAPISecret: "secret",
	})
	if srv != nil && len(args) > 0 && args[0] != "preview" {
		args = append(args, "--base-url", srv.URL)
	}
	err := run(context.Background(), args, &stdout, &stderr, lookup)
	return stdout.String(), stderr.String(), err
}

func TestRunText(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	out, _, err := runCLI(t, srv, "text", "Hello", `World\n{63}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Text sent (id=")

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Text)
	assert.Equal(t, "Hello World\n{63}", *msgs[0].Text)
	assert.Len(t, srv.Requests(), 2)
}

func TestRunText_InvalidTextNoRequest(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	_, _, err := runCLI(t, srv, "text", "-m", "stars***")
	assert.ErrorIs(t, err, vestaboard.ErrInvalidText)
	assert.Empty(t, srv.Requests())
}

func TestRunText_PacesRepeatedMessages(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	start := time.Now()
	out, _, err := runCLI(t, srv, "text", "--subscription", "sub-1", "--pace", "50ms", "-m", "first", "-m", "second")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, 2, strings.Count(out, "Text sent (id="))

	msgs := srv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", *msgs[0].Text)
	assert.Equal(t, "second", *msgs[1].Text)
}

func TestRunText_InvalidRepeatedMessageSendsNothing(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	_, _, err := runCLI(t, srv, "text", "--pace", "0", "-m", "fine", "-m", "not*fine")
	assert.ErrorIs(t, err, vestaboard.ErrInvalidText)
	assert.Empty(t, srv.Requests())
}

func TestNewPacer(t *testing.T) {
	ctx := context.Background()
	off := newPacer(0)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, off.Wait(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)

	require.NotNil(t, newPacer(-time.Second))
	require.NotNil(t, newPacer(vestaboard.RecommendedInterval))
}

func TestRunGrid_Lines(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	_, _, err := runCLI(t, srv, "grid", "--subscription", "sub-1", "-j", "left", "-l", "Hi", "-l", "There")
	require.NoError(t, err)
	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []int{8, 9}, msgs[0].Characters[0][:2])
	assert.Equal(t, 20, msgs[0].Characters[1][0])
	assert.Len(t, srv.Requests(), 1)
}

func TestRunGrid_FileAndFill(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("sub-1"))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "grid.json")
	data, err := json.Marshal(vestaboard.Fill(vestaboard.Orange).Codes())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, _, err = runCLI(t, srv, "grid", "--file", path)
	require.NoError(t, err)
	_, _, err = runCLI(t, srv, "grid", "--fill", "66")
	require.NoError(t, err)

	msgs := srv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 64, msgs[0].Characters[5][21])
	assert.Equal(t, 66, msgs[1].Characters[0][0])

	_, _, err = runCLI(t, srv, "grid", "--fill", "1", "-l", "x")
	assert.Error(t, err)
}

func TestRunSubscriptions(t *testing.T) {
	srv := fakeboard.New("key", "secret", fakeboard.WithSubscriptions("a", "b"))
	defer srv.Close()

	out, _, err := runCLI(t, srv, "subscriptions")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a\tboards="))
	assert.True(t, strings.HasPrefix(lines[1], "b\tboards="))
}

func TestRunTransportError(t *testing.T) {
	srv := fakeboard.New("key", "secret")
	defer srv.Close()

	_, _, err := runCLI(t, srv, "text", "hello")
	assert.ErrorIs(t, err, vestaboard.ErrNoSubscriptions)
}

func TestRunMissingCredentials(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"text", "hi"}, &stdout, &stderr, mapEnv(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key pair")
}

func TestRunPreview(t *testing.T) {
	out, _, err := runCLI(t, nil, "preview", "-j", "left", "Hello", "World")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, vestaboard.Rows+2)
	assert.Equal(t, "|HELLO"+strings.Repeat(" ", vestaboard.Columns-5)+"|", lines[1])

	out, _, err = runCLI(t, nil, "preview", "--codes", "My text")
	require.NoError(t, err)
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, rows, vestaboard.Rows)
	assert.Equal(t, "0 0 0 0 0 0 0 13 25 0 20 5 24 20 0 0 0 0 0 0 0 0", rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, strings.TrimSpace(strings.Repeat("0 ", vestaboard.Columns)), row)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	_, stderr, err := runCLI(t, nil, "dance")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage:")

	_, _, err = runCLI(t, nil)
	assert.Error(t, err)
}
