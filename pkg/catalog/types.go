// Package catalog defines the design-library data model: themes, tokens,
// components, and the typed token values exchanged between the ingestion
// pipeline, the store, and the export generators.
package catalog

import "strings"

// Category is the coarse classification of a token. It determines how the
// token is grouped and serialized by the export generators.
type Category string

const (
	CategoryColor      Category = "color"
	CategorySpacing    Category = "spacing"
	CategoryTypography Category = "typography"
	CategoryShadow     Category = "shadow"
	CategoryRadius     Category = "radius"
	CategoryGrid       Category = "grid"
	CategoryOther      Category = "other"
)

// CategoryOrder is the fixed order in which generators emit token groups.
var CategoryOrder = []Category{
	CategoryColor,
	CategoryTypography,
	CategorySpacing,
	CategoryShadow,
	CategoryRadius,
	CategoryGrid,
	CategoryOther,
}

// categoryBySegment maps the first path segment (lower-cased) to a category.
// Unlisted segments fall back to CategoryOther.
var categoryBySegment = map[string]Category{
	"color":   CategoryColor,
	"colors":  CategoryColor,
	"colour":  CategoryColor,
	"palette": CategoryColor,
	"brand":   CategoryColor,

	"spacing": CategorySpacing,
	"space":   CategorySpacing,
	"size":    CategorySpacing,
	"sizes":   CategorySpacing,
	"sizing":  CategorySpacing,
	"gap":     CategorySpacing,

	"typography": CategoryTypography,
	"type":       CategoryTypography,
	"font":       CategoryTypography,
	"fonts":      CategoryTypography,
	"text":       CategoryTypography,

	"shadow":    CategoryShadow,
	"shadows":   CategoryShadow,
	"elevation": CategoryShadow,
	"effect":    CategoryShadow,
	"effects":   CategoryShadow,

	"radius":  CategoryRadius,
	"radii":   CategoryRadius,
	"corner":  CategoryRadius,
	"corners": CategoryRadius,
	"rounded": CategoryRadius,

	"grid":        CategoryGrid,
	"breakpoint":  CategoryGrid,
	"breakpoints": CategoryGrid,
	"screen":      CategoryGrid,
	"screens":     CategoryGrid,
	"layout":      CategoryGrid,
}

// CategoryForPath derives a token category from the first meaningful
// (non-empty) segment of a slash-delimited path. The lookup is
// case-insensitive; unknown segments map to CategoryOther.
func CategoryForPath(path string) Category {
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if cat, ok := categoryBySegment[strings.ToLower(seg)]; ok {
			return cat
		}
		return CategoryOther
	}
	return CategoryOther
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, known := range CategoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Token is an atomic design decision bound to a theme. Path is the canonical
// cross-reference identifier (slash-delimited, e.g. "Color/Primary/500");
// CSSVariable is derived deterministically from Path and must be unique
// within a theme.
type Token struct {
	ID          string   `json:"id,omitempty"`
	ThemeID     string   `json:"theme_id,omitempty"`
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Category    Category `json:"category"`
	Type        string   `json:"type"`
	Value       Value    `json:"value"`
	CSSVariable string   `json:"css_variable"`
	SortOrder   int      `json:"sort_order"`
	Description string   `json:"description,omitempty"`
}

// Theme is a named collection of tokens, typefaces, and typography roles.
// A theme owns its tokens; tokens cannot outlive their theme.
type Theme struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Tokens          []Token          `json:"tokens"`
	Typefaces       []Typeface       `json:"typefaces,omitempty"`
	TypographyRoles []TypographyRole `json:"typography_roles,omitempty"`
}

// Typeface source values.
const (
	TypefaceSourceGoogle = "google"
	TypefaceSourceCustom = "custom"
)

// Typeface describes one font file or Google Fonts family/weight pairing.
// For custom typefaces URL references the font file; the file bytes are
// passed through opaquely and never parsed.
type Typeface struct {
	Family string `json:"family"`
	Weight int    `json:"weight"`
	Style  string `json:"style,omitempty"` // "normal" (default) or "italic"
	Source string `json:"source"`          // "google" or "custom"
	URL    string `json:"url,omitempty"`
}

// TypographyRole names a composite typography setting (e.g. "Heading/1").
type TypographyRole struct {
	Name  string          `json:"name"`
	Value TypographyValue `json:"value"`
}

// Component status values. Only published components appear in generated
// AI-context documentation.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Component represents a UI component in the library. LinkedTokens holds
// token paths — never record ids. Code is an opaque source snippet passed
// through to exports unmodified.
type Component struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status"`
	Code         string    `json:"code,omitempty"`
	Props        []Prop    `json:"props,omitempty"`
	Variants     []Variant `json:"variants,omitempty"`
	LinkedTokens []string  `json:"linked_tokens,omitempty"`
	Examples     []Example `json:"examples,omitempty"`
}

// Prop represents a component property.
type Prop struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Required      bool     `json:"required,omitempty"`
	Default       string   `json:"default,omitempty"`
	Description   string   `json:"description,omitempty"`
	AllowedValues []string `json:"allowed_values,omitempty"`
}

// Variant is a named prop combination (e.g. "primary", "destructive").
type Variant struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Props       map[string]string `json:"props,omitempty"`
}

// Example is a titled code snippet demonstrating component usage.
type Example struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// Format identifies one export format understood by the package builder.
type Format string

const (
	FormatCSS              Format = "css"
	FormatSCSS             Format = "scss"
	FormatJSON             Format = "json"
	FormatTailwind         Format = "tailwind"
	FormatLLMSTxt          Format = "llms-txt"
	FormatCursorRules      Format = "cursor-rules"
	FormatClaudeMD         Format = "claude-md"
	FormatProjectKnowledge Format = "project-knowledge"
	FormatMCPServer        Format = "mcp-server"
	FormatClaudeSkill      Format = "claude-skill"
	FormatFullPackage      Format = "full-package"
)

// AllFormats returns every concrete export format in emission order.
// FormatFullPackage is an alias that expands to this set.
func AllFormats() []Format {
	return []Format{
		FormatCSS,
		FormatSCSS,
		FormatJSON,
		FormatTailwind,
		FormatLLMSTxt,
		FormatCursorRules,
		FormatClaudeMD,
		FormatProjectKnowledge,
		FormatMCPServer,
		FormatClaudeSkill,
	}
}

// ParseFormat normalizes a format identifier. "all" is accepted as an alias
// for "full-package".
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "all" {
		return FormatFullPackage, true
	}
	if f == FormatFullPackage {
		return f, true
	}
	for _, known := range AllFormats() {
		if f == known {
			return f, true
		}
	}
	return "", false
}
