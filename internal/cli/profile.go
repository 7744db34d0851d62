package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/render"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(settings *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage Postman API key profiles",
	}

	cmd.AddCommand(newProfileListCommand(settings))
	cmd.AddCommand(newProfileAddCommand(settings))
	cmd.AddCommand(newProfileRemoveCommand(settings))
	cmd.AddCommand(newProfileSwitchCommand(settings))
	cmd.AddCommand(newProfileSetWorkspaceCommand(settings))
	cmd.AddCommand(newProfileWhoamiCommand(settings))

	return cmd
}

func newProfileListCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileList(cmd, settings, jsonMode(cmd))
		},
	}
}

func runProfileList(cmd *cobra.Command, settings *Settings, jsonOut bool) error {
	store, err := settings.configStore()
	if err != nil {
		return err
	}
	registry, err := store.Load()
	if err != nil {
		return err
	}

	if jsonOut {
		type profileRow struct {
			Name      string `json:"name"`
			Label     string `json:"label,omitempty"`
			Default   bool   `json:"default"`
			Workspace string `json:"workspace,omitempty"`
			APIKey    string `json:"api_key"`
		}
		rows := make([]profileRow, 0, registry.Len())
		for _, p := range registry.Profiles() {
			rows = append(rows, profileRow{
				Name:      p.Name,
				Label:     p.Label,
				Default:   p.Name == registry.DefaultProfile,
				Workspace: p.Workspace,
				APIKey:    maskAPIKey(p.APIKey),
			})
		}
		return printJSON(cmd, rows)
	}

	rows := make([][]string, 0, registry.Len())
	for _, p := range registry.Profiles() {
		isDefault := ""
		if p.Name == registry.DefaultProfile {
			isDefault = "✓"
		}
		rows = append(rows, []string{
			p.Name, p.Label, isDefault, truncate(p.Workspace, 12), maskAPIKey(p.APIKey),
		})
	}

	out := render.Table("Profiles", []string{"NAME", "LABEL", "DEFAULT", "WORKSPACE", "API KEY"}, rows)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// profileAddOptions holds options for the profile add command.
type profileAddOptions struct {
	APIKey  string
	Label   string
	Default bool
}

func newProfileAddCommand(settings *Settings) *cobra.Command {
	opts := &profileAddOptions{}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileAdd(cmd, settings, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.APIKey, "api-key", "k", "", "Postman API key")
	cmd.Flags().StringVarP(&opts.Label, "label", "l", "", "Description label")
	cmd.Flags().BoolVarP(&opts.Default, "default", "d", false, "Set as default profile")
	cmd.MarkFlagRequired("api-key")

	return cmd
}

func runProfileAdd(cmd *cobra.Command, settings *Settings, name string, opts *profileAddOptions) error {
	store, err := settings.configStore()
	if err != nil {
		return err
	}
	registry, err := store.AddProfile(name, opts.APIKey, opts.Label, opts.Default)
	if err != nil {
		return err
	}

	checkf(cmd, "Profile %q added.", name)
	if registry.DefaultProfile == name {
		checkf(cmd, "Set as default profile.")
	}
	return nil
}

func newProfileRemoveCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.configStore()
			if err != nil {
				return err
			}
			if _, err := store.RemoveProfile(args[0]); err != nil {
				return err
			}
			checkf(cmd, "Profile %q removed.", args[0])
			return nil
		},
	}
}

func newProfileSwitchCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "switch NAME",
		Short: "Switch the default profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.configStore()
			if err != nil {
				return err
			}
			if _, err := store.SetDefaultProfile(args[0]); err != nil {
				return err
			}
			checkf(cmd, "Default profile switched to %q.", args[0])
			return nil
		},
	}
}

func newProfileSetWorkspaceCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "set-workspace WORKSPACE_ID",
		Short: "Set the default workspace for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.configStore()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("profile")
			registry, err := store.SetProfileWorkspace(name, args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = registry.DefaultProfile
			}
			checkf(cmd, "Default workspace for %q set to %q.", name, args[0])
			return nil
		},
	}
}

func newProfileWhoamiCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info for the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileWhoami(cmd, settings, jsonMode(cmd))
		},
	}
}

func runProfileWhoami(cmd *cobra.Command, settings *Settings, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "profile whoami", "", start, err) }()

	user, err := settings.client(cmd, p).GetMe(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd, user)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Email:  %s\n", orNA(user.Email))
	fmt.Fprintf(out, "Name:   %s\n", orNA(user.FullName))
	fmt.Fprintf(out, "Team:   %s\n", orNA(user.TeamName))
	fmt.Fprintf(out, "Domain: %s\n", orNA(user.TeamDomain))
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
