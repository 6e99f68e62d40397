package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leighmacdonald/capwatch/internal/watcher"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, body string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestReadLastLine(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", " \n\r\n\n", ""},
		{"single", "[HIT] gang=ballas", "[HIT] gang=ballas"},
		{"single padded", "\n\n  first line  \n", "  first line"},
		{"trailing newlines", "one\ntwo\n\n\n", "two"},
		{"crlf", "one\r\ntwo\r\n", "two"},
		{"keeps inner spacing", "a\n  spaced  out\n", "  spaced  out"},
		{"large", strings.Repeat("filler line\n", 2000) + "[CAPTURE] gang1=a gang2=b start=c weapon=d\n", "[CAPTURE] gang1=a gang2=b start=c weapon=d"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".log")
			writeFile(t, path, tc.body)

			line, err := watcher.ReadLastLine(path)
			require.NoError(t, err)
			require.Equal(t, tc.want, line)
		})
	}
}

func TestReadLastLineMissing(t *testing.T) {
	_, err := watcher.ReadLastLine(filepath.Join(t.TempDir(), "missing.log"))
	require.ErrorIs(t, err, watcher.ErrRead)
}

func TestOnStabilizedChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")
	writeFile(t, path, "")

	var (
		calls atomic.Int32
		lines = make(chan string, 10)
	)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error)

	go func() {
		done <- watcher.New(100*time.Millisecond).OnStabilizedChange(ctx, path, func(_ context.Context, changed string) error {
			calls.Add(1)

			line, err := watcher.ReadLastLine(changed)
			lines <- line

			return err
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)

	file, errOpen := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, errOpen)

	for _, line := range []string{"first\n", "second\n", "third\n"} {
		_, errWrite := file.WriteString(line)
		require.NoError(t, errWrite)
		time.Sleep(10 * time.Millisecond)
	}

	require.NoError(t, file.Close())

	select {
	case line := <-lines:
		require.Equal(t, "third", line)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}

	// Writes to other files in the directory are ignored.
	writeFile(t, filepath.Join(dir, "other.log"), "noise\n")
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())

	cancel()
	require.NoError(t, <-done)
}
