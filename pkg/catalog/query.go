package catalog

import (
	"sort"
	"strings"
)

// TokenSearchResult holds a token match with the reason it matched.
type TokenSearchResult struct {
	Token       *Token
	MatchReason string
}

// QueryService provides read-only query methods over a loaded library.
type QueryService struct {
	Library *Library
	Index   *Index
}

// NewQueryService creates a QueryService from a validated library and its index.
func NewQueryService(lib *Library, idx *Index) *QueryService {
	return &QueryService{Library: lib, Index: idx}
}

// LoadAndQuery loads a library from file and returns a ready-to-use QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	lib, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(lib, idx), nil
}

// LoadAndQueryBytes loads a library from raw JSON bytes and returns a ready-to-use QueryService.
func LoadAndQueryBytes(data []byte) (*QueryService, error) {
	lib, idx, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	return NewQueryService(lib, idx), nil
}

// ListThemes returns all themes in the library.
func (q *QueryService) ListThemes() []Theme {
	return q.Library.Themes
}

// GetTheme looks up a theme by slug, falling back to id.
// The bool indicates whether the theme was found.
func (q *QueryService) GetTheme(key string) (*Theme, bool) {
	if th, ok := q.Index.ThemeBySlug[key]; ok {
		return th, true
	}
	for i := range q.Library.Themes {
		if q.Library.Themes[i].ID == key {
			return &q.Library.Themes[i], true
		}
	}
	return nil, false
}

// GetTokens returns tokens, optionally filtered by category, ordered by
// SortOrder then Name. Pass "" to return tokens from every category.
func (q *QueryService) GetTokens(category string) []Token {
	var source []*Token
	if category == "" {
		for _, cat := range CategoryOrder {
			source = append(source, q.Index.TokensByCategory[cat]...)
		}
	} else {
		source = q.Index.TokensByCategory[Category(strings.ToLower(category))]
	}

	result := make([]Token, 0, len(source))
	for _, tok := range source {
		result = append(result, *tok)
	}
	SortTokens(result)
	return result
}

// GetTokenByPath resolves a token by its canonical path.
func (q *QueryService) GetTokenByPath(path string) (*Token, bool) {
	tok, ok := q.Index.TokenByPath[path]
	return tok, ok
}

// ListComponents returns components filtered by category and/or keyword.
// Both filters are optional (pass "" to skip). When both are provided, they
// combine with AND logic. The keyword matches case-insensitively against
// component Name and Description.
func (q *QueryService) ListComponents(category, keyword string) []Component {
	keyword = strings.ToLower(keyword)
	result := make([]Component, 0)

	for i := range q.Library.Components {
		comp := &q.Library.Components[i]
		if category != "" && !strings.EqualFold(comp.Category, category) {
			continue
		}
		if keyword != "" {
			nameLower := strings.ToLower(comp.Name)
			descLower := strings.ToLower(comp.Description)
			if !strings.Contains(nameLower, keyword) && !strings.Contains(descLower, keyword) {
				continue
			}
		}
		result = append(result, *comp)
	}

	return result
}

// GetComponent looks up a component by slug, falling back to a
// case-insensitive name match.
func (q *QueryService) GetComponent(key string) (*Component, bool) {
	if comp, ok := q.Index.ComponentBySlug[key]; ok {
		return comp, true
	}
	for i := range q.Library.Components {
		if strings.EqualFold(q.Library.Components[i].Name, key) {
			return &q.Library.Components[i], true
		}
	}
	return nil, false
}

// LinkedTokens resolves a component's linked token paths into full tokens.
// Unresolvable paths are silently skipped; Validate reports them.
func (q *QueryService) LinkedTokens(comp *Component) []Token {
	result := make([]Token, 0, len(comp.LinkedTokens))
	for _, path := range comp.LinkedTokens {
		if tok, ok := q.Index.TokenByPath[path]; ok {
			result = append(result, *tok)
		}
	}
	return result
}

// SearchTokens performs a case-insensitive search across token paths, names,
// css variables, and descriptions. Returns matches with the reason for the match.
func (q *QueryService) SearchTokens(query string) []TokenSearchResult {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	seen := make(map[string]bool)
	var results []TokenSearchResult

	for i := range q.Library.Themes {
		th := &q.Library.Themes[i]
		for j := range th.Tokens {
			tok := &th.Tokens[j]
			if seen[tok.Path] {
				continue
			}

			switch {
			case strings.Contains(strings.ToLower(tok.Path), query):
				seen[tok.Path] = true
				results = append(results, TokenSearchResult{Token: tok, MatchReason: "path"})
			case strings.Contains(strings.ToLower(tok.Name), query):
				seen[tok.Path] = true
				results = append(results, TokenSearchResult{Token: tok, MatchReason: "name"})
			case strings.Contains(tok.CSSVariable, query):
				seen[tok.Path] = true
				results = append(results, TokenSearchResult{Token: tok, MatchReason: "variable"})
			case strings.Contains(strings.ToLower(tok.Description), query):
				seen[tok.Path] = true
				results = append(results, TokenSearchResult{Token: tok, MatchReason: "description"})
			}
		}
	}

	return results
}

// SortTokens orders tokens by SortOrder then Name, the order every
// generator emits declarations in.
func SortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].SortOrder != tokens[j].SortOrder {
			return tokens[i].SortOrder < tokens[j].SortOrder
		}
		return tokens[i].Name < tokens[j].Name
	})
}

// PublishedComponents filters to components whose status is published,
// the only ones AI-context docs may include.
func PublishedComponents(comps []Component) []Component {
	result := make([]Component, 0, len(comps))
	for _, c := range comps {
		if c.Status == StatusPublished {
			result = append(result, c)
		}
	}
	return result
}

// GroupByCategory splits tokens into per-category groups, preserving input
// order within each group.
func GroupByCategory(tokens []Token) map[Category][]Token {
	groups := make(map[Category][]Token)
	for _, tok := range tokens {
		groups[tok.Category] = append(groups[tok.Category], tok)
	}
	return groups
}
