package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
)

// Library holds a full design-system snapshot: every theme with its tokens
// inlined, plus the component catalog.
type Library struct {
	Name       string      `json:"name"`
	Version    string      `json:"version"`
	Themes     []Theme     `json:"themes"`
	Components []Component `json:"components"`
}

// Index provides O(1) lookups into a library.
// Built during LoadFromFile after validation passes.
type Index struct {
	// ThemeBySlug maps theme slug -> *Theme.
	ThemeBySlug map[string]*Theme

	// TokenByPath maps token path -> *Token across all themes.
	// On a path collision between themes the first theme wins.
	TokenByPath map[string]*Token

	// TokensByCategory maps category -> []*Token in sort order.
	TokensByCategory map[Category][]*Token

	// ComponentBySlug maps component slug -> *Component.
	ComponentBySlug map[string]*Component
}

// cssVariablePattern is the shape every derived variable must satisfy.
var cssVariablePattern = regexp.MustCompile(`^--[a-z0-9-]+$`)

// uuidPattern recognizes identifier-shaped strings. LinkedTokens must hold
// token paths; a UUID there means a caller wired the wrong key.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Validate checks the theme for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (t *Theme) Validate() []error {
	var errs []error

	if t.Name == "" {
		errs = append(errs, fmt.Errorf("theme name is required"))
	}
	if t.Slug == "" {
		errs = append(errs, fmt.Errorf("theme %q: slug is required", t.Name))
	}

	seenPaths := make(map[string]bool, len(t.Tokens))
	seenVars := make(map[string]string, len(t.Tokens))

	for i, tok := range t.Tokens {
		if tok.Path == "" {
			errs = append(errs, fmt.Errorf("theme %q tokens[%d]: path is required", t.Name, i))
			continue
		}
		if seenPaths[tok.Path] {
			errs = append(errs, fmt.Errorf("theme %q: duplicate token path %q", t.Name, tok.Path))
			continue
		}
		seenPaths[tok.Path] = true

		if !ValidCategory(tok.Category) {
			errs = append(errs, fmt.Errorf("token %q: unknown category %q", tok.Path, tok.Category))
		}
		if tok.CSSVariable == "" {
			errs = append(errs, fmt.Errorf("token %q: css variable is required", tok.Path))
		} else if !cssVariablePattern.MatchString(tok.CSSVariable) {
			errs = append(errs, fmt.Errorf("token %q: malformed css variable %q", tok.Path, tok.CSSVariable))
		} else if prev, dup := seenVars[tok.CSSVariable]; dup {
			errs = append(errs, fmt.Errorf("theme %q: tokens %q and %q derive the same css variable %q", t.Name, prev, tok.Path, tok.CSSVariable))
		} else {
			seenVars[tok.CSSVariable] = tok.Path
		}
		if tok.Value.Kind == "" {
			errs = append(errs, fmt.Errorf("token %q: missing value", tok.Path))
		}
	}

	for i, tf := range t.Typefaces {
		if tf.Family == "" {
			errs = append(errs, fmt.Errorf("theme %q typefaces[%d]: family is required", t.Name, i))
		}
		switch tf.Source {
		case TypefaceSourceGoogle, TypefaceSourceCustom:
		default:
			errs = append(errs, fmt.Errorf("theme %q typeface %q: invalid source %q (must be google/custom)", t.Name, tf.Family, tf.Source))
		}
		if tf.Source == TypefaceSourceCustom && tf.URL == "" {
			errs = append(errs, fmt.Errorf("theme %q typeface %q: custom typeface needs a file URL", t.Name, tf.Family))
		}
	}

	return errs
}

// Validate checks the component for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Component) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, fmt.Errorf("component name is required"))
	}
	if c.Slug == "" {
		errs = append(errs, fmt.Errorf("component %q: slug is required", c.Name))
	}

	switch c.Status {
	case StatusDraft, StatusPublished:
	default:
		errs = append(errs, fmt.Errorf("component %q: invalid status %q (must be draft/published)", c.Name, c.Status))
	}

	for i, prop := range c.Props {
		if prop.Name == "" {
			errs = append(errs, fmt.Errorf("component %q props[%d]: name is required", c.Name, i))
		}
		if prop.Type == "" {
			errs = append(errs, fmt.Errorf("component %q props[%d]: type is required", c.Name, i))
		}
	}

	for i, v := range c.Variants {
		if v.Name == "" {
			errs = append(errs, fmt.Errorf("component %q variants[%d]: name is required", c.Name, i))
		}
	}

	// LinkedTokens hold token paths, never record ids. Reject identifier
	// shapes loudly instead of resolving them both ways.
	for _, ref := range c.LinkedTokens {
		if uuidPattern.MatchString(ref) {
			errs = append(errs, fmt.Errorf("component %q: linked token %q looks like a record id; linked tokens must be token paths", c.Name, ref))
		}
	}

	return errs
}

// Validate checks the whole library: per-theme and per-component validation
// plus cross-references from linked tokens to existing token paths.
func (l *Library) Validate() []error {
	var errs []error

	themeSlugs := make(map[string]bool, len(l.Themes))
	tokenPaths := make(map[string]bool)
	for i := range l.Themes {
		th := &l.Themes[i]
		errs = append(errs, th.Validate()...)
		if th.Slug != "" {
			if themeSlugs[th.Slug] {
				errs = append(errs, fmt.Errorf("duplicate theme slug %q", th.Slug))
			}
			themeSlugs[th.Slug] = true
		}
		for _, tok := range th.Tokens {
			tokenPaths[tok.Path] = true
		}
	}

	componentSlugs := make(map[string]bool, len(l.Components))
	for i := range l.Components {
		comp := &l.Components[i]
		errs = append(errs, comp.Validate()...)
		if comp.Slug != "" {
			if componentSlugs[comp.Slug] {
				errs = append(errs, fmt.Errorf("duplicate component slug %q", comp.Slug))
			}
			componentSlugs[comp.Slug] = true
		}
		for _, ref := range comp.LinkedTokens {
			if !uuidPattern.MatchString(ref) && !tokenPaths[ref] {
				errs = append(errs, fmt.Errorf("component %q: linked token %q does not match any token path", comp.Name, ref))
			}
		}
	}

	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (l *Library) BuildIndex() *Index {
	idx := &Index{
		ThemeBySlug:      make(map[string]*Theme, len(l.Themes)),
		TokenByPath:      make(map[string]*Token),
		TokensByCategory: make(map[Category][]*Token),
		ComponentBySlug:  make(map[string]*Component, len(l.Components)),
	}

	for i := range l.Themes {
		th := &l.Themes[i]
		idx.ThemeBySlug[th.Slug] = th
		for j := range th.Tokens {
			tok := &th.Tokens[j]
			if _, exists := idx.TokenByPath[tok.Path]; !exists {
				idx.TokenByPath[tok.Path] = tok
			}
			idx.TokensByCategory[tok.Category] = append(idx.TokensByCategory[tok.Category], tok)
		}
	}

	for i := range l.Components {
		idx.ComponentBySlug[l.Components[i].Slug] = &l.Components[i]
	}

	return idx
}

// LoadFromFile loads a library from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Library, *Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read library file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a library from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Library, *Index, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, nil, fmt.Errorf("failed to parse library JSON: %w", err)
	}

	if errs := lib.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("library validation failed: %w", errors.Join(errs...))
	}

	index := lib.BuildIndex()
	return &lib, index, nil
}
