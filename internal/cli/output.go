package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// maskAPIKey hides the middle of an API key, keeping enough of the prefix
// to tell keys apart. Short keys are masked entirely.
func maskAPIKey(key string) string {
	if len(key) <= 16 {
		return "****"
	}
	return key[:12] + "..." + key[len(key)-4:]
}

// maskSecret hides all but the first few characters of a sensitive value.
func maskSecret(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + "****"
}

// sensitiveKey reports whether a variable key looks like a credential.
func sensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, marker := range []string{"password", "secret", "token", "key"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
