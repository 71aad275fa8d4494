// Package generate contains one pure generator per export format. Every
// generator maps an immutable snapshot of themes and components to a set of
// named files, deterministically: identical input (with GeneratedAt fixed)
// yields byte-identical output.
package generate

import (
	"time"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// File is one generated output: UTF-8 text, or an opaque reference to a
// binary asset (font files are passed through, never parsed).
type File struct {
	Text  string
	Asset *AssetRef
}

// AssetRef points at a binary file by its source URL or path.
type AssetRef struct {
	URL string
}

// TextFile wraps a string as a text File.
func TextFile(text string) File {
	return File{Text: text}
}

// Options carries the caller-tunable knobs shared by all generators.
type Options struct {
	ProjectName      string
	Version          string
	GeneratedAt      time.Time
	Selector         string // stylesheet scope, ":root" when empty
	Minify           bool
	UseLiteralValues bool // tailwind: literals instead of var() references
}

// Input is the immutable snapshot a generator reads. Generators never
// mutate it.
type Input struct {
	Themes     []catalog.Theme
	Components []catalog.Component
	Options    Options
}

// Output is one generator's files plus any non-fatal warnings (for
// example, budget truncation notices).
type Output struct {
	Files    map[string]File
	Warnings []string
}

// Generator maps a snapshot to one export format's files.
type Generator interface {
	Format() catalog.Format
	Generate(Input) (*Output, error)
}

// All returns every generator in emission order, mirroring
// catalog.AllFormats.
func All() []Generator {
	return []Generator{
		&StylesheetGenerator{SCSS: false},
		&StylesheetGenerator{SCSS: true},
		&DataGenerator{},
		&TailwindGenerator{},
		&LLMSGenerator{},
		&CursorRulesGenerator{},
		&ClaudeMDGenerator{},
		&ProjectKnowledgeGenerator{},
		&MCPServerGenerator{},
		&ClaudeSkillGenerator{},
	}
}

// ForFormat resolves a concrete format to its generator.
func ForFormat(f catalog.Format) (Generator, bool) {
	for _, g := range All() {
		if g.Format() == f {
			return g, true
		}
	}
	return nil, false
}

// Tokens flattens the input's themes into one token list ordered by
// SortOrder then Name, the order generators emit declarations in.
func (in Input) Tokens() []catalog.Token {
	var tokens []catalog.Token
	for _, th := range in.Themes {
		tokens = append(tokens, th.Tokens...)
	}
	catalog.SortTokens(tokens)
	return tokens
}

// Typefaces flattens the input's theme typefaces.
func (in Input) Typefaces() []catalog.Typeface {
	var faces []catalog.Typeface
	for _, th := range in.Themes {
		faces = append(faces, th.Typefaces...)
	}
	return faces
}

// Published filters the input's components to published ones.
func (in Input) Published() []catalog.Component {
	return catalog.PublishedComponents(in.Components)
}

// projectName returns the option or a neutral default, so generators stay
// total on zero-value options.
func (o Options) projectName() string {
	if o.ProjectName == "" {
		return "Design System"
	}
	return o.ProjectName
}

func (o Options) version() string {
	if o.Version == "" {
		return "0.0.0"
	}
	return o.Version
}

func (o Options) selector() string {
	if o.Selector == "" {
		return ":root"
	}
	return o.Selector
}
