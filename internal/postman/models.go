package postman

import (
	"encoding/json"
	"strings"
)

// User is the owner of the active API key, as reported by /me.
type User struct {
	ID         json.Number `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FullName   string      `json:"fullName"`
	TeamName   string      `json:"teamName"`
	TeamDomain string      `json:"teamDomain"`
}

// Workspace is a remote grouping container for collections and environments.
// The list endpoint returns only the flat fields; the detail endpoint also
// carries the nested summaries.
type Workspace struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Type         string               `json:"type"`
	Description  string               `json:"description,omitempty"`
	Collections  []CollectionSummary  `json:"collections,omitempty"`
	Environments []EnvironmentSummary `json:"environments,omitempty"`
}

// CollectionSummary is the flat record returned by collection listings.
type CollectionSummary struct {
	ID        string `json:"id"`
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Owner     string `json:"owner,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Collection is the full collection document including its item tree.
type Collection struct {
	Info  CollectionInfo `json:"info"`
	Items []Item         `json:"item"`
}

// CollectionInfo carries collection-level metadata.
type CollectionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema,omitempty"`
}

// Item is one node of a collection tree: a folder (carrying child items)
// or a request. The wire format distinguishes them by the presence of the
// "item" key.
type Item struct {
	Name    string       `json:"name"`
	Items   []Item       `json:"item,omitempty"`
	Request *RequestSpec `json:"request,omitempty"`
}

// IsFolder reports whether the item is a folder rather than a request.
func (i Item) IsFolder() bool {
	return i.Request == nil
}

// RequestSpec describes a stored request.
type RequestSpec struct {
	Method      string      `json:"method"`
	URL         URL         `json:"url"`
	Header      []KeyValue  `json:"header,omitempty"`
	Body        *Body       `json:"body,omitempty"`
	Description string      `json:"description,omitempty"`
}

// KeyValue is a header or urlencoded pair.
type KeyValue struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Body is a request body in one of the Postman body modes.
type Body struct {
	Mode       string     `json:"mode,omitempty"`
	Raw        string     `json:"raw,omitempty"`
	URLEncoded []KeyValue `json:"urlencoded,omitempty"`
	FormData   []KeyValue `json:"formdata,omitempty"`
}

// URL is the request URL union: either a raw string or a structured object
// with raw/protocol/host/path/query parts.
type URL struct {
	Raw      string         `json:"raw,omitempty"`
	Protocol string         `json:"protocol,omitempty"`
	Host     []string       `json:"host,omitempty"`
	Port     string         `json:"port,omitempty"`
	Path     []string       `json:"path,omitempty"`
	Query    []QueryParam   `json:"query,omitempty"`
	Variable []PathVariable `json:"variable,omitempty"`
}

// QueryParam is one query-string pair of a structured URL.
type QueryParam struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// PathVariable is a :name placeholder definition of a structured URL.
type PathVariable struct {
	Key         string `json:"key"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts both wire forms of a URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*u = URL{Raw: raw}
		return nil
	}

	type plain URL
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*u = URL(decoded)
	return nil
}

// String returns the displayable URL: the raw form when present, otherwise
// a best-effort assembly from the structured parts.
func (u URL) String() string {
	if u.Raw != "" {
		return u.Raw
	}

	var b strings.Builder
	if u.Protocol != "" {
		b.WriteString(u.Protocol)
		b.WriteString("://")
	}
	b.WriteString(strings.Join(u.Host, "."))
	if u.Port != "" {
		b.WriteString(":")
		b.WriteString(u.Port)
	}
	for _, segment := range u.Path {
		b.WriteString("/")
		b.WriteString(segment)
	}
	var params []string
	for _, q := range u.Query {
		if q.Disabled {
			continue
		}
		params = append(params, q.Key+"="+q.Value)
	}
	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

// EnvironmentSummary is the flat record returned by environment listings.
type EnvironmentSummary struct {
	ID    string `json:"id"`
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
}

// Environment is a named set of variable definitions. Names are not unique
// across the remote service; only the ID is.
type Environment struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Values []EnvValue `json:"values"`
}

// EnvValue is one environment variable definition.
type EnvValue struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// IsEnabled treats a missing enabled flag as enabled, matching the remote
// service's behavior.
func (v EnvValue) IsEnabled() bool {
	return v.Enabled == nil || *v.Enabled
}
