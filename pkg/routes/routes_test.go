package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_StaticPages(t *testing.T) {
	tests := map[string]Page{
		"/":                 PageLanding,
		"":                  PageLanding,
		"/dashboard":        PageDashboard,
		"/dashboard/":       PageDashboard,
		"/agent-builder":    PageAgentBuilder,
		"/workflow-builder": PageWorkflowBuilder,
		"/templates":        PageTemplates,
	}

	for path, page := range tests {
		route, err := Resolve(path)
		require.NoError(t, err, path)
		assert.Equal(t, page, route.Page, path)
	}
}

func TestResolve_AgentDetail(t *testing.T) {
	route, err := Resolve(AgentDetail(3))
	require.NoError(t, err)
	assert.Equal(t, PageAgentDetail, route.Page)
	assert.Equal(t, 3, route.AgentID)
	assert.Equal(t, "/agent/3", route.Path)
}

func TestResolve_QueryIsKept(t *testing.T) {
	route, err := Resolve("/agent-builder?edit=3")
	require.NoError(t, err)
	assert.Equal(t, PageAgentBuilder, route.Page)
	assert.Equal(t, map[string]string{"edit": "3"}, route.Query)
}

func TestResolve_Unknown(t *testing.T) {
	for _, path := range []string{"/agents", "/agent/abc", "/agent/1/logs", "/settings"} {
		_, err := Resolve(path)
		assert.ErrorIs(t, err, ErrUnknownRoute, path)
	}
}

func TestResolve_RejectsSchemeAndHost(t *testing.T) {
	for _, path := range []string{"//dashboard", "//evil.example/agent/3", "http://x/agent/3", "https://example.com/"} {
		_, err := Resolve(path)
		assert.ErrorIs(t, err, ErrUnknownRoute, path)
	}
}

func TestResolve_AgentPathIsCanonical(t *testing.T) {
	for _, path := range []string{"/agent/+3", "/agent/-3"} {
		_, err := Resolve(path)
		assert.ErrorIs(t, err, ErrUnknownRoute, path)
	}

	route, err := Resolve("/agent/03/")
	require.NoError(t, err)
	assert.Equal(t, "/agent/3", route.Path)
	assert.Equal(t, 3, route.AgentID)
}
