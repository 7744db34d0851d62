package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/postman"
	"github.com/artpar/pmctl/internal/render"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand(settings *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "Browse Postman workspaces",
	}

	cmd.AddCommand(newWorkspacesListCommand(settings))
	cmd.AddCommand(newWorkspacesShowCommand(settings))

	return cmd
}

// workspacesListOptions holds options for the workspaces list command.
type workspacesListOptions struct {
	Search string
}

func newWorkspacesListCommand(settings *Settings) *cobra.Command {
	opts := &workspacesListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accessible workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkspacesList(cmd, settings, opts, jsonMode(cmd))
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Filter workspaces by name (case-insensitive)")

	return cmd
}

func runWorkspacesList(cmd *cobra.Command, settings *Settings, opts *workspacesListOptions, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "workspaces list", opts.Search, start, err) }()

	workspaces, err := settings.client(cmd, p).ListWorkspaces(cmd.Context())
	if err != nil {
		return err
	}

	if opts.Search != "" {
		keyword := strings.ToLower(opts.Search)
		filtered := workspaces[:0]
		for _, ws := range workspaces {
			if strings.Contains(strings.ToLower(ws.Name), keyword) {
				filtered = append(filtered, ws)
			}
		}
		workspaces = filtered
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return strings.ToLower(workspaces[i].Name) < strings.ToLower(workspaces[j].Name)
	})

	if jsonOut {
		return printJSON(cmd, workspaces)
	}

	rows := make([][]string, 0, len(workspaces))
	for _, ws := range workspaces {
		rows = append(rows, []string{ws.Name, ws.ID, ws.Type})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table(listTitle("Workspaces", p.Label, p.Name), []string{"NAME", "ID", "TYPE"}, rows))
	fmt.Fprintf(out, "\nTotal: %d workspaces\n", len(workspaces))
	return nil
}

func newWorkspacesShowCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORKSPACE_ID",
		Short: "Show workspace details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkspacesShow(cmd, settings, args[0], jsonMode(cmd))
		},
	}
}

func runWorkspacesShow(cmd *cobra.Command, settings *Settings, id string, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "workspaces show", id, start, err) }()

	ws, err := settings.client(cmd, p).GetWorkspace(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd, ws)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name: %s\n", ws.Name)
	fmt.Fprintf(out, "ID:   %s\n", ws.ID)
	fmt.Fprintf(out, "Type: %s\n", ws.Type)
	if ws.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", ws.Description)
	}

	if len(ws.Collections) > 0 {
		rows := make([][]string, 0, len(ws.Collections))
		for _, c := range ws.Collections {
			rows = append(rows, []string{c.Name, collectionUID(c)})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Table("Collections", []string{"NAME", "UID"}, rows))
	}

	if len(ws.Environments) > 0 {
		rows := make([][]string, 0, len(ws.Environments))
		for _, e := range ws.Environments {
			rows = append(rows, []string{e.Name, e.ID})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Table("Environments", []string{"NAME", "ID"}, rows))
	}

	return nil
}

// collectionUID prefers the owner-scoped uid; workspace detail payloads
// sometimes carry only the bare id.
func collectionUID(c postman.CollectionSummary) string {
	if c.UID != "" {
		return c.UID
	}
	return c.ID
}

// listTitle builds the "Entities (profile)" heading used by all listings.
func listTitle(entity, label, name string) string {
	who := label
	if who == "" {
		who = name
	}
	return fmt.Sprintf("%s (%s)", entity, who)
}
