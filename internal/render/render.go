// Package render turns remote entities into styled terminal output:
// list tables, the collection tree, and request detail blocks.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/artpar/pmctl/internal/postman"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	folderStyle = lipgloss.NewStyle().Bold(true)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	// Display categories per method; everything else renders unstyled.
	methodColors = map[string]lipgloss.Color{
		"GET":    lipgloss.Color("34"),
		"POST":   lipgloss.Color("214"),
		"PUT":    lipgloss.Color("33"),
		"PATCH":  lipgloss.Color("141"),
		"DELETE": lipgloss.Color("160"),
	}
)

// Method renders a request method padded to a fixed width, colored by its
// display category.
func Method(method string) string {
	padded := fmt.Sprintf("%-7s", method)
	color, ok := methodColors[strings.ToUpper(method)]
	if !ok {
		return padded
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(padded)
}

// Table renders a bordered table with styled headers. The title line is
// omitted when empty.
func Table(title string, headers []string, rows [][]string) string {
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(styled...).
		Rows(rows...)

	if title == "" {
		return t.String()
	}
	return titleStyle.Render(title) + "\n" + t.String()
}

// CollectionTree renders the collection's folder/request tree. Folders
// become branches, requests become leaves labeled with method, name, and
// the resolved URL.
func CollectionTree(col *postman.Collection) string {
	name := col.Info.Name
	if name == "" {
		name = "Collection"
	}
	root := tree.Root(titleStyle.Render(name))
	addItems(root, col.Items)
	return root.String()
}

func addItems(parent *tree.Tree, items []postman.Item) {
	for _, item := range items {
		if item.IsFolder() {
			branch := tree.Root(folderStyle.Render("📁 " + item.Name))
			addItems(branch, item.Items)
			parent.Child(branch)
			continue
		}
		parent.Child(requestLabel(item))
	}
}

func requestLabel(item postman.Item) string {
	req := item.Request
	method := req.Method
	if method == "" {
		method = "?"
	}
	return fmt.Sprintf("%s %s  %s", Method(method), item.Name, urlStyle.Render(req.URL.String()))
}

// RequestDetail renders the full detail block of one stored request:
// method, URL, headers, query params, path variables, and body.
func RequestDetail(path string, item postman.Item) string {
	req := item.Request
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Method(req.Method), titleStyle.Render(path))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("URL:"), req.URL.String())
	if req.Description != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Description:"), req.Description)
	}

	if len(req.Header) > 0 {
		fmt.Fprintf(&b, "%s\n", labelStyle.Render("Headers:"))
		for _, h := range req.Header {
			if h.Disabled {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", h.Key, h.Value)
		}
	}

	if len(req.URL.Query) > 0 {
		fmt.Fprintf(&b, "%s\n", labelStyle.Render("Query params:"))
		for _, q := range req.URL.Query {
			if q.Disabled {
				continue
			}
			fmt.Fprintf(&b, "  %s=%s\n", q.Key, q.Value)
		}
	}

	if len(req.URL.Variable) > 0 {
		fmt.Fprintf(&b, "%s\n", labelStyle.Render("Path variables:"))
		for _, v := range req.URL.Variable {
			fmt.Fprintf(&b, "  :%s = %s\n", v.Key, v.Value)
		}
	}

	if req.Body != nil && req.Body.Mode != "" {
		fmt.Fprintf(&b, "%s (%s)\n", labelStyle.Render("Body:"), req.Body.Mode)
		switch req.Body.Mode {
		case "raw":
			b.WriteString(indent(req.Body.Raw, "  "))
		case "urlencoded":
			for _, p := range req.Body.URLEncoded {
				if !p.Disabled {
					fmt.Fprintf(&b, "  %s=%s\n", p.Key, p.Value)
				}
			}
		case "formdata":
			for _, p := range req.Body.FormData {
				if !p.Disabled {
					fmt.Fprintf(&b, "  %s=%s\n", p.Key, p.Value)
				}
			}
		}
	}

	return b.String()
}

func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
