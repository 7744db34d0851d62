package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/render"
	"github.com/artpar/pmctl/internal/resolve"
)

// NewCollectionsCommand creates the collections command group.
func NewCollectionsCommand(settings *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Browse Postman collections",
	}

	cmd.AddCommand(newCollectionsListCommand(settings))
	cmd.AddCommand(newCollectionsShowCommand(settings))
	cmd.AddCommand(newCollectionsFindCommand(settings))

	return cmd
}

// scopeOptions holds the workspace scoping flags shared by the collection
// and environment listings.
type scopeOptions struct {
	Workspace     string
	AllWorkspaces bool
}

func (o *scopeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Workspace, "workspace", "w", "", "Filter by workspace ID")
	cmd.Flags().BoolVarP(&o.AllWorkspaces, "all", "a", false, "Ignore the profile's default workspace")
}

// effective returns the workspace ID to scope remote listings to: the
// explicit flag wins, --all clears the scope, otherwise the profile's
// default workspace applies.
func (o *scopeOptions) effective(p *config.Profile) string {
	if o.Workspace != "" {
		return o.Workspace
	}
	if o.AllWorkspaces {
		return ""
	}
	return p.Workspace
}

func newCollectionsListCommand(settings *Settings) *cobra.Command {
	opts := &scopeOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsList(cmd, settings, opts, jsonMode(cmd))
		},
	}

	opts.register(cmd)

	return cmd
}

func runCollectionsList(cmd *cobra.Command, settings *Settings, opts *scopeOptions, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	workspaceID := opts.effective(p)

	start := time.Now()
	defer func() { settings.record(p.Name, "collections list", workspaceID, start, err) }()

	collections, err := settings.client(cmd, p).ListCollections(cmd.Context(), workspaceID)
	if err != nil {
		return err
	}

	sort.Slice(collections, func(i, j int) bool {
		return strings.ToLower(collections[i].Name) < strings.ToLower(collections[j].Name)
	})

	if jsonOut {
		return printJSON(cmd, collections)
	}

	rows := make([][]string, 0, len(collections))
	for _, c := range collections {
		updated := c.UpdatedAt
		if len(updated) > 10 {
			updated = updated[:10]
		}
		rows = append(rows, []string{c.Name, c.UID, updated})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table(listTitle("Collections", p.Label, p.Name), []string{"NAME", "UID", "UPDATED"}, rows))
	fmt.Fprintf(out, "\nTotal: %d collections\n", len(collections))
	return nil
}

func newCollectionsShowCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "show UID",
		Short: "Show all requests in a collection as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsShow(cmd, settings, args[0], jsonMode(cmd))
		},
	}
}

func runCollectionsShow(cmd *cobra.Command, settings *Settings, uid string, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "collections show", uid, start, err) }()

	collection, err := settings.client(cmd, p).GetCollection(cmd.Context(), uid)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd, collection)
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.CollectionTree(collection))
	return nil
}

func newCollectionsFindCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "find UID QUERY",
		Short: "Find requests in a collection by name",
		Long:  "Find requests whose name contains QUERY (case-insensitive) anywhere in the collection's folder tree.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionsFind(cmd, settings, args[0], args[1], jsonMode(cmd))
		},
	}
}

func runCollectionsFind(cmd *cobra.Command, settings *Settings, uid, query string, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "collections find", uid+" "+query, start, err) }()

	collection, err := settings.client(cmd, p).GetCollection(cmd.Context(), uid)
	if err != nil {
		return err
	}

	matches := resolve.FindRequests(collection.Items, query)
	if len(matches) == 0 {
		return &resolve.NotFoundError{
			Kind: "request",
			Name: query,
			Hint: fmt.Sprintf("run 'pmctl collections show %s' to see the full tree", uid),
		}
	}

	if jsonOut {
		type matchRow struct {
			Path    string `json:"path"`
			Method  string `json:"method"`
			URL     string `json:"url"`
			Request any    `json:"request"`
		}
		rows := make([]matchRow, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, matchRow{
				Path:    m.Path,
				Method:  m.Item.Request.Method,
				URL:     m.Item.Request.URL.String(),
				Request: m.Item.Request,
			})
		}
		return printJSON(cmd, rows)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d request(s) matching %q:\n", len(matches), query)
	for _, m := range matches {
		fmt.Fprintf(out, "  %s %s\n", render.Method(m.Item.Request.Method), m.Path)
	}

	// With several matches the first one is shown in detail as a
	// best-effort default; the listing above lets the user narrow down.
	fmt.Fprintln(out)
	fmt.Fprint(out, render.RequestDetail(matches[0].Path, matches[0].Item))
	return nil
}
