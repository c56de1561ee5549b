// Package routes resolves client navigation paths to pages.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Page identifies a client view.
type Page string

const (
	PageLanding         Page = "landing"
	PageDashboard       Page = "dashboard"
	PageAgentBuilder    Page = "agent-builder"
	PageWorkflowBuilder Page = "workflow-builder"
	PageTemplates       Page = "templates"
	PageAgentDetail     Page = "agent-detail"
)

const (
	Landing         = "/"
	Dashboard       = "/dashboard"
	AgentBuilder    = "/agent-builder"
	WorkflowBuilder = "/workflow-builder"
	Templates       = "/templates"
	agentPrefix     = "/agent/"
)

// ErrUnknownRoute is returned for paths that do not map to a page.
var ErrUnknownRoute = errors.New("unknown route")

// Route is a resolved navigation target.
type Route struct {
	Path    string            `json:"path"`
	Page    Page              `json:"page"`
	AgentID int               `json:"agentId,omitempty"`
	Query   map[string]string `json:"query,omitempty"`
}

// AgentDetail returns the path of an agent detail page.
func AgentDetail(id int) string {
	return agentPrefix + strconv.Itoa(id)
}

var staticPages = map[string]Page{
	Landing:         PageLanding,
	Dashboard:       PageDashboard,
	AgentBuilder:    PageAgentBuilder,
	WorkflowBuilder: PageWorkflowBuilder,
	Templates:       PageTemplates,
}

// Resolve maps a path, optionally carrying a query string, to its page.
func Resolve(raw string) (Route, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
	}

	if parsed.Scheme != "" || parsed.Host != "" {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
	}

	path := parsed.Path
	if path == "" {
		path = Landing
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	route := Route{Path: path, Query: flattenQuery(parsed.Query())}

	if page, ok := staticPages[path]; ok {
		route.Page = page

		return route, nil
	}

	if rest, ok := strings.CutPrefix(path, agentPrefix); ok && !strings.Contains(rest, "/") {
		id, err := strconv.Atoi(rest)
		if err != nil || strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
		}

		route.Path = AgentDetail(id)
		route.Page = PageAgentDetail
		route.AgentID = id

		return route, nil
	}

	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
}

func flattenQuery(values url.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}

	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}

	return flat
}
