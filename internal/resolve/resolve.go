// Package resolve translates user-supplied identifiers into unique remote
// entities: an environment by ID or name, or requests by name within a
// collection's item tree.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/pmctl/internal/postman"
)

// EnvironmentAPI is the slice of the Postman client the environment
// resolver needs.
type EnvironmentAPI interface {
	GetEnvironment(ctx context.Context, id string) (*postman.Environment, error)
	ListEnvironments(ctx context.Context, workspaceID string) ([]postman.EnvironmentSummary, error)
}

// NotFoundError means no entity matched the user's input.
type NotFoundError struct {
	Kind string
	Name string
	Hint string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// Candidate is one (name, id) pair of an ambiguous match.
type Candidate struct {
	Name string
	ID   string
}

// AmbiguousError means more than one entity matched by name; the caller
// must disambiguate by ID.
type AmbiguousError struct {
	Kind       string
	Name       string
	Candidates []Candidate
}

func (e *AmbiguousError) Error() string {
	pairs := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		pairs[i] = fmt.Sprintf("%s (%s)", c.Name, c.ID)
	}
	return fmt.Sprintf("%s name %q is ambiguous, matches: %s; use an ID instead",
		e.Kind, e.Name, strings.Join(pairs, ", "))
}

// Environment resolves idOrName to exactly one environment. The input is
// first tried as an ID; only a not-found-class API error falls through to
// the name scan, so transport and auth failures propagate. The name scan is
// case-insensitive over the environments in scope (optionally one
// workspace) and must match exactly one.
func Environment(ctx context.Context, api EnvironmentAPI, idOrName, workspaceID string) (*postman.Environment, error) {
	env, err := api.GetEnvironment(ctx, idOrName)
	if err == nil {
		return env, nil
	}
	var apiErr *postman.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
		return nil, err
	}

	summaries, err := api.ListEnvironments(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var matches []Candidate
	for _, s := range summaries {
		if strings.EqualFold(s.Name, idOrName) {
			matches = append(matches, Candidate{Name: s.Name, ID: s.ID})
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{
			Kind: "environment",
			Name: idOrName,
			Hint: "run 'pmctl environments list' to see what is available",
		}
	case 1:
		return api.GetEnvironment(ctx, matches[0].ID)
	default:
		return nil, &AmbiguousError{Kind: "environment", Name: idOrName, Candidates: matches}
	}
}

// RequestMatch is one request found by FindRequests, located by the
// slash-joined folder path down to it. Paths are not unique: sibling
// folders may hold same-named requests.
type RequestMatch struct {
	Path string
	Item postman.Item
}

// FindRequests walks the item tree depth-first in declaration order and
// returns every request whose name contains query, case-insensitively.
// An empty result is not an error; callers decide what zero or many
// matches mean.
func FindRequests(items []postman.Item, query string) []RequestMatch {
	return findRequests(items, "", strings.ToLower(query))
}

func findRequests(items []postman.Item, parentPath, query string) []RequestMatch {
	var matches []RequestMatch
	for _, item := range items {
		path := item.Name
		if parentPath != "" {
			path = parentPath + "/" + item.Name
		}

		if item.IsFolder() {
			matches = append(matches, findRequests(item.Items, path, query)...)
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), query) {
			matches = append(matches, RequestMatch{Path: path, Item: item})
		}
	}
	return matches
}
