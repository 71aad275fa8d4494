package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

func TestFontFaceCSS_GoogleWeightsMergedIntoOneImport(t *testing.T) {
	css, assets := FontFaceCSS([]catalog.Typeface{
		{Family: "Inter", Weight: 400, Source: catalog.TypefaceSourceGoogle},
		{Family: "Inter", Weight: 700, Source: catalog.TypefaceSourceGoogle},
		{Family: "Source Serif", Weight: 400, Source: catalog.TypefaceSourceGoogle},
	})

	assert.Equal(t, 1, strings.Count(css, "@import"))
	assert.Contains(t, css, "family=Inter:wght@400;700")
	assert.Contains(t, css, "family=Source+Serif:wght@400")
	assert.Contains(t, css, "&display=swap")
	assert.Empty(t, assets)
}

func TestFontFaceCSS_CustomFontRuleAndAsset(t *testing.T) {
	css, assets := FontFaceCSS([]catalog.Typeface{
		{Family: "Acme Sans", Weight: 500, Style: "normal", Source: catalog.TypefaceSourceCustom,
			URL: "https://assets.acme.test/fonts/acme-sans-500.woff2"},
	})

	assert.Contains(t, css, "@font-face {")
	assert.Contains(t, css, `font-family: "Acme Sans";`)
	assert.Contains(t, css, "font-weight: 500;")
	assert.Contains(t, css, "font-display: swap;")
	assert.Contains(t, css, "src: url('../fonts/acme-sans-500.woff2');")

	ref, ok := assets["fonts/acme-sans-500.woff2"]
	require.True(t, ok)
	assert.Equal(t, "https://assets.acme.test/fonts/acme-sans-500.woff2", ref.URL)
}

func TestFontFaceCSS_DefaultsForMissingStyleAndWeight(t *testing.T) {
	css, _ := FontFaceCSS([]catalog.Typeface{
		{Family: "Acme Sans", Source: catalog.TypefaceSourceCustom,
			URL: "https://assets.acme.test/fonts/acme-sans.woff2"},
	})
	assert.Contains(t, css, "font-style: normal;")
	assert.Contains(t, css, "font-weight: 400;")
}

func TestFontFaceCSS_CustomWithoutURLSkipped(t *testing.T) {
	css, assets := FontFaceCSS([]catalog.Typeface{
		{Family: "Ghost", Weight: 400, Source: catalog.TypefaceSourceCustom},
	})
	assert.Empty(t, css)
	assert.Empty(t, assets)
}

func TestFontFaceCSS_DuplicateGoogleWeightsDeduped(t *testing.T) {
	css, _ := FontFaceCSS([]catalog.Typeface{
		{Family: "Inter", Weight: 400, Source: catalog.TypefaceSourceGoogle},
		{Family: "Inter", Weight: 400, Source: catalog.TypefaceSourceGoogle},
	})
	assert.Contains(t, css, "family=Inter:wght@400&")
}

func TestFontFaceCSS_EmptyInput(t *testing.T) {
	css, assets := FontFaceCSS(nil)
	assert.Empty(t, css)
	assert.Empty(t, assets)
}

func TestFontFaceCSS_MixedSourcesOrdered(t *testing.T) {
	css, assets := FontFaceCSS(fixtureInput().Typefaces())
	// Import first, then the @font-face rules.
	require.True(t, strings.HasPrefix(css, "@import"))
	assert.Less(t, strings.Index(css, "@import"), strings.Index(css, "@font-face"))
	assert.Len(t, assets, 1)
}
