package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/history"
	"github.com/artpar/pmctl/internal/history/sqlite"
	"github.com/artpar/pmctl/internal/postman"
)

// Settings holds the wiring every command needs. Zero values mean the
// production defaults; tests override the paths and the API base URL.
type Settings struct {
	ConfigPath  string // profile registry file, default per-user config dir
	HistoryPath string // invocation log, default next to the config file
	BaseURL     string // Postman API endpoint, default postman.DefaultBaseURL
}

// NewRootCommand creates the root command. A nil settings uses production
// defaults.
func NewRootCommand(version string, settings *Settings) *cobra.Command {
	if settings == nil {
		settings = &Settings{}
	}

	cmd := &cobra.Command{
		Use:           "pmctl",
		Short:         "A CLI for browsing Postman workspaces, collections, and environments",
		Long:          "pmctl manages named Postman API key profiles and lets you list and\ninspect workspaces, collections, environments, and stored requests.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("profile", "p", "", "Profile to use (default: the configured default profile)")
	cmd.PersistentFlags().Bool("json", false, "Output raw JSON instead of formatted tables")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging on stderr")

	cmd.AddCommand(NewProfileCommand(settings))
	cmd.AddCommand(NewWorkspacesCommand(settings))
	cmd.AddCommand(NewCollectionsCommand(settings))
	cmd.AddCommand(NewEnvironmentsCommand(settings))
	cmd.AddCommand(NewHistoryCommand(settings))

	return cmd
}

// configStore returns the profile registry store.
func (s *Settings) configStore() (*config.Store, error) {
	path := s.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.NewStore(path), nil
}

// historyStore opens the invocation log.
func (s *Settings) historyStore() (history.Store, error) {
	path := s.HistoryPath
	if path == "" {
		store, err := s.configStore()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(store.Dir(), "history.db")
	}
	return sqlite.New(path)
}

// activeProfile loads the registry and selects the profile named by the
// --profile flag, falling back to the configured default.
func (s *Settings) activeProfile(cmd *cobra.Command) (*config.Profile, error) {
	store, err := s.configStore()
	if err != nil {
		return nil, err
	}
	registry, err := store.Load()
	if err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("profile")
	return registry.Profile(name)
}

// client builds a Postman API client for the active profile.
func (s *Settings) client(cmd *cobra.Command, p *config.Profile) *postman.Client {
	opts := []postman.Option{postman.WithLogger(commandLogger(cmd))}
	if s.BaseURL != "" {
		opts = append(opts, postman.WithBaseURL(s.BaseURL))
	}
	return postman.NewClient(p.APIKey, opts...)
}

// commandLogger returns a debug logger when --verbose is set, a null
// logger otherwise.
func commandLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "pmctl",
		Level:  hclog.Debug,
		Output: cmd.ErrOrStderr(),
	})
}

// jsonMode reads the --json persistent flag; the value is passed down
// explicitly to the output helpers rather than stored anywhere.
func jsonMode(cmd *cobra.Command) bool {
	jsonOut, _ := cmd.Flags().GetBool("json")
	return jsonOut
}

// record appends one invocation to the history log, best effort: history
// must never fail a command that already did its work.
func (s *Settings) record(profile, command, resource string, start time.Time, runErr error) {
	store, err := s.historyStore()
	if err != nil {
		return
	}
	defer store.Close()

	entry := history.Entry{
		Timestamp:  start,
		Profile:    profile,
		Command:    command,
		Resource:   resource,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	_, _ = store.Add(context.Background(), entry)
}

// checkf prints a confirmation line.
func checkf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}
