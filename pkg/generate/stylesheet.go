package generate

import (
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// StylesheetGenerator emits the theme as CSS custom properties (or SCSS
// variables plus the interpolated custom-property block).
type StylesheetGenerator struct {
	SCSS bool
}

func (g *StylesheetGenerator) Format() catalog.Format {
	if g.SCSS {
		return catalog.FormatSCSS
	}
	return catalog.FormatCSS
}

func (g *StylesheetGenerator) Generate(in Input) (*Output, error) {
	name := "theme.css"
	var content string
	if g.SCSS {
		name = "theme.scss"
		content = scssContent(in)
	} else {
		content = cssContent(in)
	}
	return &Output{Files: map[string]File{name: TextFile(content)}}, nil
}

// declaration is one custom-property line. Typography composites expand to
// one declaration per sub-field, suffixed variable names.
type declaration struct {
	property string
	value    string
}

// declarationsFor expands a token into its stylesheet declarations.
func declarationsFor(tok catalog.Token) []declaration {
	if tok.Value.Kind == catalog.KindTypography && tok.Value.Typography != nil {
		tv := tok.Value.Typography
		var decls []declaration
		if tv.FontFamily != "" {
			decls = append(decls, declaration{tok.CSSVariable + "-font-family", quoteFamily(tv.FontFamily) + ", " + genericFontStack})
		}
		if size := tv.FontSize.String(); size != "" && size != "0" {
			decls = append(decls, declaration{tok.CSSVariable + "-font-size", size})
		}
		if tv.FontWeight != "" {
			decls = append(decls, declaration{tok.CSSVariable + "-font-weight", tv.FontWeight})
		}
		if tv.LineHeight != "" {
			decls = append(decls, declaration{tok.CSSVariable + "-line-height", tv.LineHeight})
		}
		if tv.LetterSpacing != "" {
			decls = append(decls, declaration{tok.CSSVariable + "-letter-spacing", tv.LetterSpacing})
		}
		return decls
	}
	return []declaration{{tok.CSSVariable, CSSValue(tok)}}
}

// groupedDeclarations orders tokens by the fixed category order, then by
// SortOrder and Name within each category.
func groupedDeclarations(in Input) []struct {
	category catalog.Category
	decls    []declaration
} {
	groups := catalog.GroupByCategory(in.Tokens())
	var out []struct {
		category catalog.Category
		decls    []declaration
	}
	for _, cat := range catalog.CategoryOrder {
		tokens := groups[cat]
		if len(tokens) == 0 {
			continue
		}
		var decls []declaration
		for _, tok := range tokens {
			decls = append(decls, declarationsFor(tok)...)
		}
		out = append(out, struct {
			category catalog.Category
			decls    []declaration
		}{cat, decls})
	}
	return out
}

// cssContent renders the selector block. Output always starts with the
// selector and "{" and ends with "}", even for zero tokens.
func cssContent(in Input) string {
	groups := groupedDeclarations(in)

	if in.Options.Minify {
		var b strings.Builder
		b.WriteString(in.Options.selector())
		b.WriteString("{")
		for _, group := range groups {
			for _, d := range group.decls {
				b.WriteString(d.property)
				b.WriteString(":")
				b.WriteString(minifyValue(d.value))
				b.WriteString(";")
			}
		}
		b.WriteString("}")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(in.Options.selector())
	b.WriteString(" {\n")
	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  /* ")
		b.WriteString(string(group.category))
		b.WriteString(" */\n")
		for _, d := range group.decls {
			b.WriteString("  ")
			b.WriteString(d.property)
			b.WriteString(": ")
			b.WriteString(d.value)
			b.WriteString(";\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// scssContent renders $-variables first, then the selector block
// interpolating them.
func scssContent(in Input) string {
	groups := groupedDeclarations(in)

	var b strings.Builder
	for _, group := range groups {
		b.WriteString("// ")
		b.WriteString(string(group.category))
		b.WriteString("\n")
		for _, d := range group.decls {
			b.WriteString("$")
			b.WriteString(strings.TrimPrefix(d.property, "--"))
			b.WriteString(": ")
			b.WriteString(d.value)
			b.WriteString(";\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(in.Options.selector())
	b.WriteString(" {\n")
	for _, group := range groups {
		for _, d := range group.decls {
			b.WriteString("  ")
			b.WriteString(d.property)
			b.WriteString(": #{$")
			b.WriteString(strings.TrimPrefix(d.property, "--"))
			b.WriteString("};\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// minifyValue collapses the multi-line shadow join for single-line output.
func minifyValue(v string) string {
	return strings.ReplaceAll(v, ",\n", ",")
}
