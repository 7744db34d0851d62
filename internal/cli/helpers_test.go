package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testSettings wires the command tree to temp paths and an optional fake
// API server.
func testSettings(t *testing.T, handler http.Handler) *Settings {
	t.Helper()

	dir := t.TempDir()
	settings := &Settings{
		ConfigPath:  filepath.Join(dir, "config.yaml"),
		HistoryPath: filepath.Join(dir, "history.db"),
	}

	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		settings.BaseURL = server.URL
	}

	return settings
}

// execute runs one pmctl invocation and captures stdout+stderr.
func execute(t *testing.T, settings *Settings, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand("test", settings)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// addProfile seeds one profile through the real command path.
func addProfile(t *testing.T, settings *Settings, name, key string, extra ...string) {
	t.Helper()
	args := append([]string{"profile", "add", name, "--api-key", key}, extra...)
	_, err := execute(t, settings, args...)
	require.NoError(t, err)
}

// jsonHandler responds to every request with the same JSON body.
func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}
