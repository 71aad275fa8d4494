package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/export"
	"github.com/KeleWarg/design-theme-library/pkg/generate"
)

// jsonResult marshals v as the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tokenView is the wire shape for token listings: the serialized CSS value
// replaces the structured union.
type tokenView struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	CSSVariable string `json:"css_variable"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	MatchReason string `json:"match_reason,omitempty"`
}

func viewOf(tok catalog.Token) tokenView {
	return tokenView{
		Path:        tok.Path,
		Name:        tok.Name,
		Category:    string(tok.Category),
		CSSVariable: tok.CSSVariable,
		Value:       strings.ReplaceAll(generate.CSSValue(tok), ",\n", ","),
		Description: tok.Description,
	}
}

// --- list_themes ---

func (s *Server) handleListThemes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	themes := s.query.ListThemes()
	summaries := make([]map[string]any, 0, len(themes))
	for _, th := range themes {
		summaries = append(summaries, map[string]any{
			"id":          th.ID,
			"name":        th.Name,
			"slug":        th.Slug,
			"token_count": len(th.Tokens),
		})
	}
	return jsonResult(summaries)
}

// --- get_theme ---

func (s *Server) handleGetTheme(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("theme", "")
	if key == "" {
		return mcp.NewToolResultError("missing required argument: theme"), nil
	}
	theme, ok := s.query.GetTheme(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("theme not found: %s", key)), nil
	}
	return jsonResult(theme)
}

// --- get_tokens ---

func (s *Server) handleGetTokens(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	if category != "" && !catalog.ValidCategory(catalog.Category(strings.ToLower(category))) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", category)), nil
	}

	var tokens []catalog.Token
	if key := req.GetString("theme", ""); key != "" {
		theme, ok := s.query.GetTheme(key)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("theme not found: %s", key)), nil
		}
		for _, tok := range theme.Tokens {
			if category == "" || strings.EqualFold(string(tok.Category), category) {
				tokens = append(tokens, tok)
			}
		}
		catalog.SortTokens(tokens)
	} else {
		tokens = s.query.GetTokens(category)
	}

	views := make([]tokenView, 0, len(tokens))
	for _, tok := range tokens {
		views = append(views, viewOf(tok))
	}
	return jsonResult(views)
}

// --- search_tokens ---

func (s *Server) handleSearchTokens(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("missing required argument: query"), nil
	}

	matches := s.query.SearchTokens(query)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no tokens found matching %q", query)), nil
	}

	views := make([]tokenView, 0, len(matches))
	for _, m := range matches {
		view := viewOf(*m.Token)
		view.MatchReason = m.MatchReason
		views = append(views, view)
	}
	return jsonResult(views)
}

// --- list_components ---

func (s *Server) handleListComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	comps := s.query.ListComponents(req.GetString("category", ""), req.GetString("keyword", ""))
	summaries := make([]map[string]any, 0, len(comps))
	for _, comp := range comps {
		summaries = append(summaries, map[string]any{
			"name":        comp.Name,
			"slug":        comp.Slug,
			"category":    comp.Category,
			"status":      comp.Status,
			"description": comp.Description,
		})
	}
	return jsonResult(summaries)
}

// --- get_component ---

func (s *Server) handleGetComponent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("component", "")
	if key == "" {
		return mcp.NewToolResultError("missing required argument: component"), nil
	}
	comp, ok := s.query.GetComponent(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", key)), nil
	}

	linked := s.query.LinkedTokens(comp)
	linkedViews := make([]tokenView, 0, len(linked))
	for _, tok := range linked {
		linkedViews = append(linkedViews, viewOf(tok))
	}
	return jsonResult(map[string]any{
		"component":     comp,
		"linked_tokens": linkedViews,
	})
}

// --- build_package ---

func (s *Server) handleBuildPackage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.builder == nil {
		return mcp.NewToolResultError("package building is not available: no store configured"), nil
	}

	themeIDs, err := s.resolveThemeIDs(req.GetString("themes", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	componentIDs, err := s.resolveComponentIDs(req.GetString("components", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	buildReq := export.Request{
		ThemeIDs:     themeIDs,
		ComponentIDs: componentIDs,
		Formats:      splitList(req.GetString("formats", "")),
		Options: generate.Options{
			ProjectName: req.GetString("project_name", ""),
			Version:     req.GetString("version", ""),
			GeneratedAt: time.Now().UTC(),
		},
	}

	result, err := s.builder.BuildPackage(ctx, buildReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build package: %v", err)), nil
	}

	files := make([]string, 0, len(result.Files))
	for name := range result.Files {
		files = append(files, name)
	}
	sort.Strings(files)

	return jsonResult(map[string]any{
		"file_count": result.FileCount,
		"files":      files,
		"errors":     result.Errors,
		"warnings":   result.Warnings,
	})
}

func (s *Server) resolveThemeIDs(arg string) ([]string, error) {
	keys := splitList(arg)
	if len(keys) == 0 {
		themes := s.query.ListThemes()
		ids := make([]string, 0, len(themes))
		for _, th := range themes {
			ids = append(ids, th.ID)
		}
		return ids, nil
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		theme, ok := s.query.GetTheme(key)
		if !ok {
			return nil, fmt.Errorf("theme not found: %s", key)
		}
		ids = append(ids, theme.ID)
	}
	return ids, nil
}

func (s *Server) resolveComponentIDs(arg string) ([]string, error) {
	keys := splitList(arg)
	if len(keys) == 0 {
		comps := s.query.ListComponents("", "")
		ids := make([]string, 0, len(comps))
		for _, comp := range comps {
			ids = append(ids, comp.ID)
		}
		return ids, nil
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		comp, ok := s.query.GetComponent(key)
		if !ok {
			return nil, fmt.Errorf("component not found: %s", key)
		}
		ids = append(ids, comp.ID)
	}
	return ids, nil
}

// splitList parses a comma-separated argument, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
