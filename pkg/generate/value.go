package generate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// genericFontStack closes every font-family declaration so a missing font
// file still renders something readable.
const genericFontStack = "system-ui, sans-serif"

// CSSValue serializes a token's typed value into the literal text embedded
// in stylesheet-like output. It is total: unrecognized shapes degrade to the
// raw fallback literal, never an error.
//
// Typography composites render as a font shorthand here; the stylesheet
// generators destructure them into per-part declarations instead.
func CSSValue(tok catalog.Token) string {
	v := tok.Value
	switch v.Kind {
	case catalog.KindColor:
		if v.Color == nil {
			return ""
		}
		if v.Color.Opacity >= 1 {
			return v.Color.Hex
		}
		r, g, b, ok := hexToRGB(v.Color.Hex)
		if !ok {
			return v.Color.Hex
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(v.Color.Opacity))

	case catalog.KindDimension:
		if v.Dimension == nil {
			return ""
		}
		return v.Dimension.String()

	case catalog.KindShadow:
		if len(v.Shadow) == 0 {
			return "none"
		}
		layers := make([]string, len(v.Shadow))
		for i, layer := range v.Shadow {
			layers[i] = strings.TrimSpace(fmt.Sprintf("%s %s %s %s %s",
				layer.X, layer.Y, layer.Blur, layer.Spread, layer.Color))
		}
		return strings.Join(layers, ",\n")

	case catalog.KindFontFamily:
		if v.FontFamily == nil || v.FontFamily.Family == "" {
			return genericFontStack
		}
		return quoteFamily(v.FontFamily.Family) + ", " + genericFontStack

	case catalog.KindTypography:
		if v.Typography == nil {
			return ""
		}
		return fontShorthand(*v.Typography)

	default:
		return v.Raw
	}
}

// fontShorthand renders a typography composite as a CSS font shorthand:
// "600 18px/1.4 Inter". Missing parts are omitted.
func fontShorthand(tv catalog.TypographyValue) string {
	var parts []string
	if tv.FontWeight != "" {
		parts = append(parts, tv.FontWeight)
	}
	size := tv.FontSize.String()
	if size != "" && size != "0" {
		if tv.LineHeight != "" {
			size += "/" + tv.LineHeight
		}
		parts = append(parts, size)
	}
	if tv.FontFamily != "" {
		parts = append(parts, quoteFamily(tv.FontFamily))
	}
	return strings.Join(parts, " ")
}

// quoteFamily wraps a family name in quotes when it contains whitespace.
func quoteFamily(family string) string {
	if strings.ContainsAny(family, " \t") {
		return `"` + family + `"`
	}
	return family
}

// hexToRGB parses "#RGB" or "#RRGGBB" into channels.
func hexToRGB(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) < 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(h[:6], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16), int(n >> 8 & 0xFF), int(n & 0xFF), true
}

// trimFloat renders a float without trailing zeros ("0.5", "0.25", "1").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
