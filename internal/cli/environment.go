package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/render"
	"github.com/artpar/pmctl/internal/resolve"
)

// NewEnvironmentsCommand creates the environments command group.
func NewEnvironmentsCommand(settings *Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "environments",
		Short: "Browse Postman environments",
	}

	cmd.AddCommand(newEnvironmentsListCommand(settings))
	cmd.AddCommand(newEnvironmentsShowCommand(settings))

	return cmd
}

func newEnvironmentsListCommand(settings *Settings) *cobra.Command {
	opts := &scopeOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvironmentsList(cmd, settings, opts, jsonMode(cmd))
		},
	}

	opts.register(cmd)

	return cmd
}

func runEnvironmentsList(cmd *cobra.Command, settings *Settings, opts *scopeOptions, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	workspaceID := opts.effective(p)

	start := time.Now()
	defer func() { settings.record(p.Name, "environments list", workspaceID, start, err) }()

	environments, err := settings.client(cmd, p).ListEnvironments(cmd.Context(), workspaceID)
	if err != nil {
		return err
	}

	sort.Slice(environments, func(i, j int) bool {
		return strings.ToLower(environments[i].Name) < strings.ToLower(environments[j].Name)
	})

	if jsonOut {
		return printJSON(cmd, environments)
	}

	rows := make([][]string, 0, len(environments))
	for _, e := range environments {
		rows = append(rows, []string{e.Name, e.ID})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table(listTitle("Environments", p.Label, p.Name), []string{"NAME", "ID"}, rows))
	fmt.Fprintf(out, "\nTotal: %d environments\n", len(environments))
	return nil
}

// environmentsShowOptions holds options for the environments show command.
type environmentsShowOptions struct {
	scopeOptions
	ShowValues bool
}

func newEnvironmentsShowCommand(settings *Settings) *cobra.Command {
	opts := &environmentsShowOptions{}

	cmd := &cobra.Command{
		Use:   "show ID_OR_NAME",
		Short: "Show environment variables",
		Long:  "Show an environment's variables. The argument is tried as an environment ID first, then matched against environment names case-insensitively.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvironmentsShow(cmd, settings, args[0], opts, jsonMode(cmd))
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.ShowValues, "values", "v", false, "Show variable values")

	return cmd
}

func runEnvironmentsShow(cmd *cobra.Command, settings *Settings, idOrName string, opts *environmentsShowOptions, jsonOut bool) (err error) {
	p, err := settings.activeProfile(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { settings.record(p.Name, "environments show", idOrName, start, err) }()

	env, err := resolve.Environment(cmd.Context(), settings.client(cmd, p), idOrName, opts.effective(p))
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd, env)
	}

	headers := []string{"VARIABLE", "TYPE"}
	if opts.ShowValues {
		headers = append(headers, "VALUE")
	}

	rows := make([][]string, 0, len(env.Values))
	for _, v := range env.Values {
		varType := v.Type
		if varType == "" {
			varType = "default"
		}
		row := []string{v.Key, varType}
		if opts.ShowValues {
			value := v.Value
			if sensitiveKey(v.Key) {
				value = maskSecret(value)
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Table(env.Name, headers, rows))
	return nil
}
