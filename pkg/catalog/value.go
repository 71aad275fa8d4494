package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the token value union. It is derived from the
// token's category and type tag at parse time, never by inspecting the
// value's shape after the fact.
type ValueKind string

const (
	KindColor      ValueKind = "color"
	KindDimension  ValueKind = "dimension"
	KindShadow     ValueKind = "shadow"
	KindFontFamily ValueKind = "fontFamily"
	KindTypography ValueKind = "typography"
	KindRaw        ValueKind = "raw"
)

// ColorValue holds a color literal. Hex carries the literal as ingested
// (typically "#RRGGBB"); Opacity is 1 unless the source specified otherwise.
type ColorValue struct {
	Hex     string  `json:"hex"`
	Opacity float64 `json:"opacity"`
}

// DimensionValue is a number with an optional unit ("16px", "1.5rem", "1.2").
type DimensionValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// String renders the dimension as CSS text, e.g. "16px" or "1.5".
func (d DimensionValue) String() string {
	return formatNumber(d.Value) + d.Unit
}

// ShadowLayer is one layer of a box shadow. Offsets and radii are dimension
// strings ("0px") so that ingested units survive round-trips untouched.
type ShadowLayer struct {
	X      string `json:"x"`
	Y      string `json:"y"`
	Blur   string `json:"blur"`
	Spread string `json:"spread"`
	Color  string `json:"color"`
}

// FontFamilyValue references a font family by name.
type FontFamilyValue struct {
	Family string `json:"family"`
}

// TypographyValue bundles the parts of a composite typography token.
// Generators destructure it; it has no single-string CSS form of its own
// beyond the font shorthand.
type TypographyValue struct {
	FontFamily    string         `json:"font_family,omitempty"`
	FontSize      DimensionValue `json:"font_size"`
	FontWeight    string         `json:"font_weight,omitempty"`
	LineHeight    string         `json:"line_height,omitempty"`
	LetterSpacing string         `json:"letter_spacing,omitempty"`
}

// Value is the tagged union of token value shapes. Exactly one member is
// populated, selected by Kind.
type Value struct {
	Kind       ValueKind        `json:"-"`
	Color      *ColorValue      `json:"-"`
	Dimension  *DimensionValue  `json:"-"`
	Shadow     []ShadowLayer    `json:"-"`
	FontFamily *FontFamilyValue `json:"-"`
	Typography *TypographyValue `json:"-"`
	Raw        string           `json:"-"`
}

// MarshalJSON emits the natural wire shape for each kind: a bare hex string
// for opaque colors, {hex, opacity} otherwise, {value, unit} for dimensions,
// an array of layers for shadows, and so on.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindColor:
		if v.Color == nil {
			return []byte(`null`), nil
		}
		if v.Color.Opacity >= 1 {
			return json.Marshal(v.Color.Hex)
		}
		return json.Marshal(v.Color)
	case KindDimension:
		if v.Dimension == nil {
			return []byte(`null`), nil
		}
		return json.Marshal(v.Dimension)
	case KindShadow:
		if v.Shadow == nil {
			return json.Marshal([]ShadowLayer{})
		}
		return json.Marshal(v.Shadow)
	case KindFontFamily:
		if v.FontFamily == nil {
			return []byte(`null`), nil
		}
		return json.Marshal(v.FontFamily)
	case KindTypography:
		if v.Typography == nil {
			return []byte(`null`), nil
		}
		return json.Marshal(v.Typography)
	default:
		return json.Marshal(v.Raw)
	}
}

// UnmarshalJSON is intentionally not implemented on Value: decoding requires
// the token's category and type tag, so Token.UnmarshalJSON routes the raw
// value through ParseValueJSON instead.

// UnmarshalJSON decodes a token, parsing the value member against the
// token's category and type tag.
func (t *Token) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          string          `json:"id"`
		ThemeID     string          `json:"theme_id"`
		Name        string          `json:"name"`
		Path        string          `json:"path"`
		Category    Category        `json:"category"`
		Type        string          `json:"type"`
		Value       json.RawMessage `json:"value"`
		CSSVariable string          `json:"css_variable"`
		SortOrder   int             `json:"sort_order"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	t.ID = aux.ID
	t.ThemeID = aux.ThemeID
	t.Name = aux.Name
	t.Path = aux.Path
	t.Category = aux.Category
	t.Type = aux.Type
	t.CSSVariable = aux.CSSVariable
	t.SortOrder = aux.SortOrder
	t.Description = aux.Description

	if len(aux.Value) == 0 || string(aux.Value) == "null" {
		return fmt.Errorf("token %q: missing value", t.Path)
	}
	val, err := ParseValueJSON(t.Category, t.Type, aux.Value)
	if err != nil {
		return fmt.Errorf("token %q: %w", t.Path, err)
	}
	t.Value = val
	return nil
}

// KindFor selects the value kind for a category/type pairing. The type tag
// wins when recognized; otherwise the category decides; anything else is raw.
func KindFor(category Category, typ string) ValueKind {
	switch strings.ToLower(typ) {
	case "color":
		return KindColor
	case "dimension", "number", "float", "spacing", "size", "sizing",
		"borderradius", "fontsize", "fontweight", "fontweights", "weight",
		"lineheight", "lineheights", "letterspacing", "opacity":
		return KindDimension
	case "shadow", "boxshadow":
		return KindShadow
	case "fontfamily", "fontfamilies":
		return KindFontFamily
	case "typography":
		return KindTypography
	}

	switch category {
	case CategoryColor:
		return KindColor
	case CategorySpacing, CategoryRadius, CategoryGrid:
		return KindDimension
	case CategoryShadow:
		return KindShadow
	default:
		return KindRaw
	}
}

// ParseValue decodes a raw (already JSON-decoded) value into the tagged
// union for the given category/type. A nil or empty value is an error — the
// normalizer skips such leaves. A value whose shape does not match its kind
// degrades to the raw fallback instead of failing.
func ParseValue(category Category, typ string, raw any) (Value, error) {
	if raw == nil {
		return Value{}, fmt.Errorf("missing value")
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return Value{}, fmt.Errorf("empty value")
	}

	switch KindFor(category, typ) {
	case KindColor:
		return parseColor(raw), nil
	case KindDimension:
		return parseDimension(raw), nil
	case KindShadow:
		return parseShadow(raw), nil
	case KindFontFamily:
		return parseFontFamily(raw), nil
	case KindTypography:
		return parseTypography(raw), nil
	default:
		return rawValue(raw), nil
	}
}

// ParseValueJSON is ParseValue over a still-encoded JSON value.
func ParseValueJSON(category Category, typ string, raw json.RawMessage) (Value, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Value{}, fmt.Errorf("invalid value JSON: %w", err)
	}
	return ParseValue(category, typ, decoded)
}

func parseColor(raw any) Value {
	switch c := raw.(type) {
	case string:
		return Value{Kind: KindColor, Color: &ColorValue{Hex: c, Opacity: 1}}
	case map[string]any:
		if hex, ok := c["hex"].(string); ok {
			opacity := 1.0
			if o, ok := asFloat(c["opacity"]); ok {
				opacity = o
			} else if a, ok := asFloat(c["alpha"]); ok {
				opacity = a
			}
			return Value{Kind: KindColor, Color: &ColorValue{Hex: hex, Opacity: opacity}}
		}
		// Design-tool channel form: r/g/b floats in [0,1], optional a.
		if r, ok := asFloat(c["r"]); ok {
			g, _ := asFloat(c["g"])
			b, _ := asFloat(c["b"])
			opacity := 1.0
			if a, ok := asFloat(c["a"]); ok {
				opacity = a
			}
			return Value{Kind: KindColor, Color: &ColorValue{Hex: channelsToHex(r, g, b), Opacity: opacity}}
		}
	}
	return rawValue(raw)
}

func parseDimension(raw any) Value {
	switch d := raw.(type) {
	case float64:
		return Value{Kind: KindDimension, Dimension: &DimensionValue{Value: d}}
	case string:
		if dim, ok := splitDimension(d); ok {
			return Value{Kind: KindDimension, Dimension: &dim}
		}
	case map[string]any:
		if v, ok := asFloat(d["value"]); ok {
			unit, _ := d["unit"].(string)
			return Value{Kind: KindDimension, Dimension: &DimensionValue{Value: v, Unit: unit}}
		}
	}
	return rawValue(raw)
}

func parseShadow(raw any) Value {
	switch s := raw.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(s), "none") {
			return Value{Kind: KindShadow, Shadow: []ShadowLayer{}}
		}
	case map[string]any:
		if layer, ok := parseShadowLayer(s); ok {
			return Value{Kind: KindShadow, Shadow: []ShadowLayer{layer}}
		}
	case []any:
		layers := make([]ShadowLayer, 0, len(s))
		for _, entry := range s {
			m, ok := entry.(map[string]any)
			if !ok {
				return rawValue(raw)
			}
			layer, ok := parseShadowLayer(m)
			if !ok {
				return rawValue(raw)
			}
			layers = append(layers, layer)
		}
		return Value{Kind: KindShadow, Shadow: layers}
	}
	return rawValue(raw)
}

func parseShadowLayer(m map[string]any) (ShadowLayer, bool) {
	x, okX := shadowPart(m, "x", "offsetX", "offset_x")
	y, okY := shadowPart(m, "y", "offsetY", "offset_y")
	if !okX && !okY {
		return ShadowLayer{}, false
	}
	blur, _ := shadowPart(m, "blur")
	spread, _ := shadowPart(m, "spread")
	color, _ := m["color"].(string)
	return ShadowLayer{X: x, Y: y, Blur: blur, Spread: spread, Color: color}, true
}

// shadowPart reads a shadow dimension under any of the given keys. Numbers
// are treated as pixel offsets; missing parts default to "0px".
func shadowPart(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			return v, true
		case float64:
			return formatNumber(v) + "px", true
		}
	}
	return "0px", false
}

func parseFontFamily(raw any) Value {
	switch f := raw.(type) {
	case string:
		return Value{Kind: KindFontFamily, FontFamily: &FontFamilyValue{Family: f}}
	case []any:
		if len(f) > 0 {
			if first, ok := f[0].(string); ok {
				return Value{Kind: KindFontFamily, FontFamily: &FontFamilyValue{Family: first}}
			}
		}
	case map[string]any:
		if family, ok := f["family"].(string); ok {
			return Value{Kind: KindFontFamily, FontFamily: &FontFamilyValue{Family: family}}
		}
	}
	return rawValue(raw)
}

func parseTypography(raw any) Value {
	m, ok := raw.(map[string]any)
	if !ok {
		return rawValue(raw)
	}

	var tv TypographyValue
	if fam, ok := stringField(m, "fontFamily", "font_family", "family"); ok {
		tv.FontFamily = fam
	}
	if size, ok := lookupField(m, "fontSize", "font_size", "size"); ok {
		if parsed := parseDimension(size); parsed.Kind == KindDimension {
			tv.FontSize = *parsed.Dimension
		}
	}
	if w, ok := lookupField(m, "fontWeight", "font_weight", "weight"); ok {
		tv.FontWeight = scalarString(w)
	}
	if lh, ok := lookupField(m, "lineHeight", "line_height"); ok {
		tv.LineHeight = scalarString(lh)
	}
	if ls, ok := lookupField(m, "letterSpacing", "letter_spacing"); ok {
		tv.LetterSpacing = scalarString(ls)
	}
	return Value{Kind: KindTypography, Typography: &tv}
}

// rawValue is the best-effort fallback for value shapes no kind recognizes.
// Composite values keep their compact JSON form so nothing is lost.
func rawValue(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Value{Kind: KindRaw, Raw: v}
	case float64:
		return Value{Kind: KindRaw, Raw: formatNumber(v)}
	case bool:
		return Value{Kind: KindRaw, Raw: strconv.FormatBool(v)}
	}
	if b, err := json.Marshal(raw); err == nil {
		return Value{Kind: KindRaw, Raw: string(b)}
	}
	return Value{Kind: KindRaw, Raw: fmt.Sprintf("%v", raw)}
}

// splitDimension splits "16px" into 16 + "px". The numeric prefix may be
// signed or fractional; a bare number yields an empty unit.
func splitDimension(s string) (DimensionValue, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DimensionValue{}, false
	}
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return DimensionValue{}, false
	}
	num, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return DimensionValue{}, false
	}
	return DimensionValue{Value: num, Unit: strings.TrimSpace(s[end:])}, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func stringField(m map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func lookupField(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return formatNumber(s)
	}
	return fmt.Sprintf("%v", v)
}

// channelsToHex converts 0–1 color channels to "#RRGGBB".
func channelsToHex(r, g, b float64) string {
	to255 := func(f float64) int {
		n := int(math.Round(f * 255))
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return n
	}
	return fmt.Sprintf("#%02X%02X%02X", to255(r), to255(g), to255(b))
}

// formatNumber renders a float without a trailing ".0" ("16", "1.5", "-0.02").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
