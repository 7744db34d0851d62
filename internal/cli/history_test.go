package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecording(t *testing.T) {
	settings := testSettings(t, jsonHandler(workspacesBody))
	addProfile(t, settings, "work", "PMAK-key-1-xxxxxxxxxxxxxxxxxxxxx")

	t.Run("remote commands are recorded", func(t *testing.T) {
		_, err := execute(t, settings, "workspaces", "list")
		require.NoError(t, err)

		out, err := execute(t, settings, "history", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "workspaces list")
		assert.Contains(t, out, "work")
		assert.Contains(t, out, "ok")
	})

	t.Run("newest first in json", func(t *testing.T) {
		_, err := execute(t, settings, "workspaces", "list", "--search", "team")
		require.NoError(t, err)

		out, err := execute(t, settings, "history", "list", "--json")
		require.NoError(t, err)

		var entries []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		require.NotEmpty(t, entries)
		assert.Equal(t, "workspaces list", entries[0]["command"])
		assert.Equal(t, "team", entries[0]["resource"])
	})

	t.Run("limit flag", func(t *testing.T) {
		out, err := execute(t, settings, "history", "list", "--json", "--limit", "1")
		require.NoError(t, err)
		var entries []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("clear empties the log", func(t *testing.T) {
		out, err := execute(t, settings, "history", "clear")
		require.NoError(t, err)
		assert.Contains(t, out, "History cleared.")

		out, err = execute(t, settings, "history", "list", "--json")
		require.NoError(t, err)
		var entries []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Empty(t, entries)
	})
}

func TestHistoryRecordsFailures(t *testing.T) {
	settings := testSettings(t, environmentAPI(t))
	addProfile(t, settings, "work", "PMAK-key-1-xxxxxxxxxxxxxxxxxxxxx")

	_, err := execute(t, settings, "environments", "show", "qa")
	require.Error(t, err)

	out, err := execute(t, settings, "history", "list", "--json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "environments show", entries[0]["command"])
	assert.Contains(t, entries[0]["error"], "not found")
}
