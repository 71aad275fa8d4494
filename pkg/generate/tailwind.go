package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// TailwindGenerator emits a tailwind.config.js whose theme.extend maps
// categories to Tailwind theme buckets. Values reference the CSS custom
// properties by default so the stylesheet stays the single source of truth;
// Options.UseLiteralValues inlines the literals instead.
type TailwindGenerator struct{}

func (g *TailwindGenerator) Format() catalog.Format { return catalog.FormatTailwind }

// bucketFor maps a token to its Tailwind theme bucket. Typography tokens
// split by type: sizes vs weights vs families.
func bucketFor(tok catalog.Token) string {
	switch tok.Category {
	case catalog.CategoryColor:
		return "colors"
	case catalog.CategorySpacing:
		return "spacing"
	case catalog.CategoryRadius:
		return "borderRadius"
	case catalog.CategoryShadow:
		return "boxShadow"
	case catalog.CategoryGrid:
		return "screens"
	case catalog.CategoryTypography:
		switch tok.Value.Kind {
		case catalog.KindFontFamily:
			return "fontFamily"
		case catalog.KindDimension:
			if strings.Contains(strings.ToLower(tok.Type), "weight") {
				return "fontWeight"
			}
			return "fontSize"
		default:
			return "fontSize"
		}
	default:
		return ""
	}
}

// keyFor derives the bucket key: the variable name minus its category
// prefix, so "--color-primary-500" keys as "primary-500".
func keyFor(tok catalog.Token) string {
	key := strings.TrimPrefix(tok.CSSVariable, "--")
	prefix := string(tok.Category) + "-"
	if trimmed := strings.TrimPrefix(key, prefix); trimmed != "" && trimmed != key {
		return trimmed
	}
	return key
}

func (g *TailwindGenerator) Generate(in Input) (*Output, error) {
	buckets := make(map[string]map[string]string)
	for _, tok := range in.Tokens() {
		bucket := bucketFor(tok)
		if bucket == "" {
			continue
		}
		if buckets[bucket] == nil {
			buckets[bucket] = make(map[string]string)
		}
		var value string
		if in.Options.UseLiteralValues {
			value = minifyValue(CSSValue(tok))
		} else {
			value = fmt.Sprintf("var(%s)", tok.CSSVariable)
		}
		buckets[bucket][keyFor(tok)] = value
	}

	var b strings.Builder
	b.WriteString("/** @type {import('tailwindcss').Config} */\n")
	b.WriteString("module.exports = {\n")
	b.WriteString("  content: ['./src/**/*.{js,ts,jsx,tsx,html}'],\n")
	b.WriteString("  theme: {\n")
	b.WriteString("    extend: {")

	bucketNames := make([]string, 0, len(buckets))
	for name := range buckets {
		bucketNames = append(bucketNames, name)
	}
	sort.Strings(bucketNames)

	if len(bucketNames) == 0 {
		b.WriteString("},\n")
	} else {
		b.WriteString("\n")
		for _, name := range bucketNames {
			entries := buckets[name]
			keys := make([]string, 0, len(entries))
			for k := range entries {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			fmt.Fprintf(&b, "      %s: {\n", name)
			for _, k := range keys {
				fmt.Fprintf(&b, "        %s: %s,\n", jsKey(k), jsString(entries[k]))
			}
			b.WriteString("      },\n")
		}
		b.WriteString("    },\n")
	}
	b.WriteString("  },\n")
	b.WriteString("  plugins: [],\n")
	b.WriteString("};\n")

	return &Output{Files: map[string]File{"tailwind.config.js": TextFile(b.String())}}, nil
}

// jsKey quotes an object key unless it is a bare identifier.
func jsKey(k string) string {
	for i, r := range k {
		alpha := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || r == '$'
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return jsString(k)
		}
	}
	return k
}

// jsString renders a single-quoted JS string literal.
func jsString(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s) + "'"
}
