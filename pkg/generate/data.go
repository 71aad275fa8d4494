package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// DataGenerator emits the tokens as machine-readable JSON in three shapes:
// flat (cssVariable keys), nested (path segments as object keys), and a
// DTCG re-export for interchange with other token tools.
type DataGenerator struct{}

func (g *DataGenerator) Format() catalog.Format { return catalog.FormatJSON }

func (g *DataGenerator) Generate(in Input) (*Output, error) {
	tokens := in.Tokens()

	flat, err := marshalPretty(flatData(tokens))
	if err != nil {
		return nil, fmt.Errorf("flat tokens: %w", err)
	}
	nested, err := marshalPretty(nestedData(tokens))
	if err != nil {
		return nil, fmt.Errorf("nested tokens: %w", err)
	}
	dtcg, err := marshalPretty(dtcgData(tokens))
	if err != nil {
		return nil, fmt.Errorf("dtcg tokens: %w", err)
	}

	return &Output{Files: map[string]File{
		"tokens.json":        TextFile(flat),
		"tokens.nested.json": TextFile(nested),
		"tokens.dtcg.json":   TextFile(dtcg),
	}}, nil
}

// flatData maps cssVariable -> serialized value. Empty input yields {}.
func flatData(tokens []catalog.Token) map[string]string {
	out := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		out[tok.CSSVariable] = CSSValue(tok)
	}
	return out
}

// nestedData rebuilds the path hierarchy as nested objects with serialized
// leaf values. A path that is a strict prefix of another keeps its value
// under the reserved "$" key, whichever of the two tokens arrives first.
func nestedData(tokens []catalog.Token) map[string]any {
	root := make(map[string]any)
	for _, tok := range tokens {
		segments := strings.Split(tok.Path, "/")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				// A leaf already sits where a group is needed; keep its
				// value under "$" instead of dropping it.
				if prior, exists := node[seg]; exists {
					child["$"] = prior
				}
				node[seg] = child
			}
			node = child
		}
		leaf := segments[len(segments)-1]
		if existing, ok := node[leaf].(map[string]any); ok {
			existing["$"] = CSSValue(tok)
		} else {
			node[leaf] = CSSValue(tok)
		}
	}
	return root
}

// dtcgData re-exports tokens in the $type/$value interchange shape. A token
// whose path is a strict prefix of another's keeps its $-members on the
// group node, regardless of which token arrives first.
func dtcgData(tokens []catalog.Token) map[string]any {
	root := make(map[string]any)
	for _, tok := range tokens {
		segments := strings.Split(tok.Path, "/")
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		leaf, ok := node[segments[len(segments)-1]].(map[string]any)
		if !ok {
			leaf = make(map[string]any)
			node[segments[len(segments)-1]] = leaf
		}
		leaf["$type"] = dtcgType(tok)
		leaf["$value"] = tok.Value
		if tok.Description != "" {
			leaf["$description"] = tok.Description
		}
	}
	return root
}

// dtcgType maps the value kind back to a DTCG type tag.
func dtcgType(tok catalog.Token) string {
	switch tok.Value.Kind {
	case catalog.KindColor:
		return "color"
	case catalog.KindDimension:
		return "dimension"
	case catalog.KindShadow:
		return "shadow"
	case catalog.KindFontFamily:
		return "fontFamily"
	case catalog.KindTypography:
		return "typography"
	default:
		if tok.Type != "" {
			return tok.Type
		}
		return "string"
	}
}

// marshalPretty renders deterministic two-space-indented JSON (map keys are
// sorted by encoding/json).
func marshalPretty(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
