package generate

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// FontFaceCSS renders @font-face rules for custom typefaces and a single
// merged Google Fonts @import for google-sourced ones. It also returns the
// custom font files as opaque asset references keyed by their package path
// (fonts/<file>); the bytes are never read here.
func FontFaceCSS(typefaces []catalog.Typeface) (string, map[string]AssetRef) {
	assets := make(map[string]AssetRef)
	var b strings.Builder

	if imp := googleImport(typefaces); imp != "" {
		b.WriteString(imp)
		b.WriteString("\n\n")
	}

	var rules []string
	for _, tf := range typefaces {
		if tf.Source != catalog.TypefaceSourceCustom || tf.URL == "" {
			continue
		}
		file := path.Base(tf.URL)
		assets["fonts/"+file] = AssetRef{URL: tf.URL}

		style := tf.Style
		if style == "" {
			style = "normal"
		}
		weight := tf.Weight
		if weight == 0 {
			weight = 400
		}
		rules = append(rules, fmt.Sprintf(
			"@font-face {\n  font-family: %s;\n  font-style: %s;\n  font-weight: %d;\n  font-display: swap;\n  src: url('../fonts/%s');\n}",
			quoteFamily(tf.Family), style, weight, file))
	}
	sort.Strings(rules)
	b.WriteString(strings.Join(rules, "\n\n"))

	css := strings.TrimRight(b.String(), "\n")
	if css != "" {
		css += "\n"
	}
	return css, assets
}

// googleImport merges every google-sourced family and its weights into one
// css2 @import line.
func googleImport(typefaces []catalog.Typeface) string {
	weightsByFamily := make(map[string][]int)
	for _, tf := range typefaces {
		if tf.Source != catalog.TypefaceSourceGoogle || tf.Family == "" {
			continue
		}
		weight := tf.Weight
		if weight == 0 {
			weight = 400
		}
		weightsByFamily[tf.Family] = append(weightsByFamily[tf.Family], weight)
	}
	if len(weightsByFamily) == 0 {
		return ""
	}

	families := make([]string, 0, len(weightsByFamily))
	for family := range weightsByFamily {
		families = append(families, family)
	}
	sort.Strings(families)

	var params []string
	for _, family := range families {
		weights := weightsByFamily[family]
		sort.Ints(weights)
		parts := make([]string, 0, len(weights))
		seen := make(map[int]bool)
		for _, w := range weights {
			if seen[w] {
				continue
			}
			seen[w] = true
			parts = append(parts, fmt.Sprintf("%d", w))
		}
		params = append(params, fmt.Sprintf("family=%s:wght@%s",
			url.QueryEscape(family), strings.Join(parts, ";")))
	}

	return fmt.Sprintf("@import url('https://fonts.googleapis.com/css2?%s&display=swap');",
		strings.Join(params, "&"))
}
