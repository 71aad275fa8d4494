package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateOne(t *testing.T, g Generator, in Input, name string) string {
	t.Helper()
	out, err := g.Generate(in)
	require.NoError(t, err)
	f, ok := out.Files[name]
	require.True(t, ok, "missing file %s", name)
	return f.Text
}

// --- css ---

func TestCSS_StartsWithSelectorEndsWithBrace(t *testing.T) {
	css := generateOne(t, &StylesheetGenerator{}, fixtureInput(), "theme.css")
	assert.True(t, strings.HasPrefix(css, ":root {"))
	assert.True(t, strings.HasSuffix(strings.TrimRight(css, "\n"), "}"))
}

func TestCSS_WorkedExample(t *testing.T) {
	css := generateOne(t, &StylesheetGenerator{}, fixtureInput(), "theme.css")
	assert.Contains(t, css, "  --color-primary-500: #657E79;\n")
}

func TestCSS_EveryConvertibleValueAppearsVerbatim(t *testing.T) {
	in := fixtureInput()
	css := generateOne(t, &StylesheetGenerator{}, in, "theme.css")
	for _, tok := range in.Tokens() {
		for _, d := range declarationsFor(tok) {
			assert.Contains(t, css, d.property+": "+d.value+";", "token %s", tok.Path)
		}
	}
}

func TestCSS_CategoryGroupOrder(t *testing.T) {
	css := generateOne(t, &StylesheetGenerator{}, fixtureInput(), "theme.css")
	color := strings.Index(css, "/* color */")
	typo := strings.Index(css, "/* typography */")
	spacing := strings.Index(css, "/* spacing */")
	shadow := strings.Index(css, "/* shadow */")
	radius := strings.Index(css, "/* radius */")
	require.NotEqual(t, -1, color)
	assert.Less(t, color, typo)
	assert.Less(t, typo, spacing)
	assert.Less(t, spacing, shadow)
	assert.Less(t, shadow, radius)
}

func TestCSS_TypographyDestructured(t *testing.T) {
	css := generateOne(t, &StylesheetGenerator{}, fixtureInput(), "theme.css")
	assert.Contains(t, css, "--typography-heading-1-font-family: Inter, system-ui, sans-serif;")
	assert.Contains(t, css, "--typography-heading-1-font-size: 32px;")
	assert.Contains(t, css, "--typography-heading-1-font-weight: 700;")
	assert.Contains(t, css, "--typography-heading-1-line-height: 1.2;")
	assert.NotContains(t, css, "--typography-heading-1: ")
}

func TestCSS_CustomSelector(t *testing.T) {
	in := fixtureInput()
	in.Options.Selector = "[data-theme='acme']"
	css := generateOne(t, &StylesheetGenerator{}, in, "theme.css")
	assert.True(t, strings.HasPrefix(css, "[data-theme='acme'] {"))
}

func TestCSS_EmptyInputStillValidBlock(t *testing.T) {
	css := generateOne(t, &StylesheetGenerator{}, emptyInput(), "theme.css")
	assert.Equal(t, ":root {\n}\n", css)
}

func TestCSS_Minified(t *testing.T) {
	in := fixtureInput()
	in.Options.Minify = true
	css := generateOne(t, &StylesheetGenerator{}, in, "theme.css")
	assert.NotContains(t, css, "\n")
	assert.NotContains(t, css, "/*")
	assert.True(t, strings.HasPrefix(css, ":root{"))
	assert.True(t, strings.HasSuffix(css, "}"))
	assert.Contains(t, css, "--color-primary-500:#657E79;")
}

func TestCSS_Idempotent(t *testing.T) {
	in := fixtureInput()
	first := generateOne(t, &StylesheetGenerator{}, in, "theme.css")
	second := generateOne(t, &StylesheetGenerator{}, in, "theme.css")
	assert.Equal(t, first, second)
}

// --- scss ---

func TestSCSS_VariablesAndInterpolation(t *testing.T) {
	scss := generateOne(t, &StylesheetGenerator{SCSS: true}, fixtureInput(), "theme.scss")
	assert.Contains(t, scss, "$color-primary-500: #657E79;")
	assert.Contains(t, scss, "--color-primary-500: #{$color-primary-500};")
	assert.Contains(t, scss, ":root {")
	assert.True(t, strings.HasSuffix(scss, "}\n"))
}

func TestSCSS_PreludeDeclaresVariablesBeforeSelectorBlock(t *testing.T) {
	scss := generateOne(t, &StylesheetGenerator{SCSS: true}, fixtureInput(), "theme.scss")

	// SCSS variables must exist before the #{$var} interpolations that use
	// them, so the $-prelude opens the file and the selector block follows.
	assert.True(t, strings.HasPrefix(scss, "// color\n"))
	decl := strings.Index(scss, "$color-primary-500: ")
	block := strings.Index(scss, ":root {")
	require.NotEqual(t, -1, decl)
	require.NotEqual(t, -1, block)
	assert.Less(t, decl, block)
}

func TestSCSS_EmptyInput(t *testing.T) {
	scss := generateOne(t, &StylesheetGenerator{SCSS: true}, emptyInput(), "theme.scss")
	assert.Equal(t, ":root {\n}\n", scss)
}
