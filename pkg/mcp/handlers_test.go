package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/export"
)

// --- helpers ---

func testLibrary() *catalog.Library {
	return &catalog.Library{
		Name:    "test",
		Version: "1.0",
		Themes: []catalog.Theme{
			{
				ID:   "t1",
				Name: "Default",
				Slug: "default",
				Tokens: []catalog.Token{
					{
						Name: "500", Path: "Color/Primary/500", Category: catalog.CategoryColor,
						Type: "color", CSSVariable: "--color-primary-500",
						Value: catalog.Value{Kind: catalog.KindColor, Color: &catalog.ColorValue{Hex: "#657E79", Opacity: 1}},
					},
					{
						Name: "md", Path: "Spacing/md", Category: catalog.CategorySpacing,
						Type: "dimension", CSSVariable: "--spacing-md", SortOrder: 1,
						Description: "Base spacing step",
						Value:       catalog.Value{Kind: catalog.KindDimension, Dimension: &catalog.DimensionValue{Value: 16, Unit: "px"}},
					},
				},
			},
		},
		Components: []catalog.Component{
			{
				ID: "c1", Name: "Button", Slug: "button", Category: "actions",
				Status:      catalog.StatusPublished,
				Description: "A clickable button",
				Props: []catalog.Prop{
					{Name: "variant", Type: "string", AllowedValues: []string{"primary", "ghost"}},
				},
				LinkedTokens: []string{"Color/Primary/500"},
			},
			{
				ID: "c2", Name: "Dialog", Slug: "dialog", Category: "overlay",
				Status:      catalog.StatusDraft,
				Description: "A modal dialog overlay",
			},
		},
	}
}

// libFetcher resolves ids against an in-memory library.
type libFetcher struct{ lib *catalog.Library }

func (f *libFetcher) GetTheme(_ context.Context, id string) (*catalog.Theme, error) {
	for i := range f.lib.Themes {
		if f.lib.Themes[i].ID == id {
			return &f.lib.Themes[i], nil
		}
	}
	return nil, assert.AnError
}

func (f *libFetcher) GetComponent(_ context.Context, id string) (*catalog.Component, error) {
	for i := range f.lib.Components {
		if f.lib.Components[i].ID == id {
			return &f.lib.Components[i], nil
		}
	}
	return nil, assert.AnError
}

func testServer() *Server {
	lib := testLibrary()
	qs := catalog.NewQueryService(lib, lib.BuildIndex())
	return NewServer(qs, nil, nil)
}

func testServerWithBuilder() *Server {
	lib := testLibrary()
	qs := catalog.NewQueryService(lib, lib.BuildIndex())
	builder := export.NewBuilder(&libFetcher{lib: lib},
		export.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewServer(qs, builder, nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "list_themes":
		handler = s.handleListThemes
	case "get_theme":
		handler = s.handleGetTheme
	case "get_tokens":
		handler = s.handleGetTokens
	case "search_tokens":
		handler = s.handleSearchTokens
	case "list_components":
		handler = s.handleListComponents
	case "get_component":
		handler = s.handleGetComponent
	case "build_package":
		handler = s.handleBuildPackage
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- list_themes ---

func TestHandleListThemes(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_themes", nil))
	assert.False(t, result.IsError)

	var themes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &themes))
	require.Len(t, themes, 1)
	assert.Equal(t, "default", themes[0]["slug"])
	assert.Equal(t, float64(2), themes[0]["token_count"])
}

// --- get_theme ---

func TestHandleGetTheme_BySlug(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_theme", map[string]any{"theme": "default"}))
	assert.False(t, result.IsError)

	var theme map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &theme))
	assert.Equal(t, "Default", theme["name"])
	tokens, ok := theme["tokens"].([]any)
	require.True(t, ok)
	assert.Len(t, tokens, 2)
}

func TestHandleGetTheme_ByID(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_theme", map[string]any{"theme": "t1"}))
	assert.False(t, result.IsError)
}

func TestHandleGetTheme_NotFound(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_theme", map[string]any{"theme": "nope"}))
	assert.True(t, result.IsError)
}

func TestHandleGetTheme_MissingArgument(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_theme", nil))
	assert.True(t, result.IsError)
}

// --- get_tokens ---

func TestHandleGetTokens_All(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_tokens", nil))
	assert.False(t, result.IsError)

	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &tokens))
	require.Len(t, tokens, 2)
	assert.Equal(t, "#657E79", tokens[0]["value"])
}

func TestHandleGetTokens_ByCategory(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_tokens", map[string]any{"category": "spacing"}))

	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &tokens))
	require.Len(t, tokens, 1)
	assert.Equal(t, "16px", tokens[0]["value"])
}

func TestHandleGetTokens_ByTheme(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_tokens", map[string]any{
		"theme":    "default",
		"category": "color",
	}))

	var tokens []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &tokens))
	require.Len(t, tokens, 1)
	assert.Equal(t, "Color/Primary/500", tokens[0]["path"])
}

func TestHandleGetTokens_UnknownCategory(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_tokens", map[string]any{"category": "gradients"}))
	assert.True(t, result.IsError)
}

// --- search_tokens ---

func TestHandleSearchTokens_ByPath(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_tokens", map[string]any{"query": "primary"}))
	assert.False(t, result.IsError)

	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Color/Primary/500", matches[0]["path"])
	assert.Equal(t, "path", matches[0]["match_reason"])
}

func TestHandleSearchTokens_ByDescription(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_tokens", map[string]any{"query": "base spacing"}))

	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "description", matches[0]["match_reason"])
}

func TestHandleSearchTokens_NoMatch(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_tokens", map[string]any{"query": "zzz_nonexistent"}))
	assert.False(t, result.IsError)
	assert.Contains(t, resultJSON(t, result), "no tokens found")
}

func TestHandleSearchTokens_MissingQuery(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_tokens", nil))
	assert.True(t, result.IsError)
}

// --- list_components ---

func TestHandleListComponents_NoFilter(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_components", nil))
	assert.False(t, result.IsError)

	var comps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &comps))
	assert.Len(t, comps, 2)
}

func TestHandleListComponents_ByCategory(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_components", map[string]any{"category": "actions"}))

	var comps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &comps))
	require.Len(t, comps, 1)
	assert.Equal(t, "Button", comps[0]["name"])
}

func TestHandleListComponents_ByKeyword(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_components", map[string]any{"keyword": "modal"}))

	var comps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &comps))
	require.Len(t, comps, 1)
	assert.Equal(t, "Dialog", comps[0]["name"])
}

// --- get_component ---

func TestHandleGetComponent_ResolvesLinkedTokens(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component", map[string]any{"component": "button"}))
	assert.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))

	comp, ok := payload["component"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Button", comp["name"])

	linked, ok := payload["linked_tokens"].([]any)
	require.True(t, ok)
	require.Len(t, linked, 1)
	tok := linked[0].(map[string]any)
	assert.Equal(t, "#657E79", tok["value"])
}

func TestHandleGetComponent_ByName(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component", map[string]any{"component": "Dialog"}))
	assert.False(t, result.IsError)
}

func TestHandleGetComponent_NotFound(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component", map[string]any{"component": "NonExistent"}))
	assert.True(t, result.IsError)
}

// --- build_package ---

func TestHandleBuildPackage_FullPackage(t *testing.T) {
	s := testServerWithBuilder()
	result := callTool(t, s, makeRequest("build_package", map[string]any{
		"formats":      "full-package",
		"project_name": "Acme DS",
		"version":      "1.2.0",
	}))
	assert.False(t, result.IsError)

	var payload struct {
		FileCount int      `json:"file_count"`
		Files     []string `json:"files"`
		Errors    []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Empty(t, payload.Errors)
	assert.Greater(t, payload.FileCount, 0)
	assert.Contains(t, payload.Files, "LLMS.txt")
	assert.Contains(t, payload.Files, "dist/theme.css")
	assert.Contains(t, payload.Files, "package.json")
}

func TestHandleBuildPackage_ThemeSlugResolved(t *testing.T) {
	s := testServerWithBuilder()
	result := callTool(t, s, makeRequest("build_package", map[string]any{
		"themes":  "default",
		"formats": "css",
	}))
	assert.False(t, result.IsError)
}

func TestHandleBuildPackage_UnknownTheme(t *testing.T) {
	s := testServerWithBuilder()
	result := callTool(t, s, makeRequest("build_package", map[string]any{"themes": "nope"}))
	assert.True(t, result.IsError)
}

func TestHandleBuildPackage_NoBuilder(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("build_package", nil))
	assert.True(t, result.IsError)
}
